package services

import (
	"ClinicFlow/models"
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DayCell is one cell of a month calendar grid. Padding cells around the
// displayed month carry InMonth=false and no date.
type DayCell struct {
	Day          int                  `json:"day"`
	Date         string               `json:"date,omitempty"`
	InMonth      bool                 `json:"in_month"`
	Appointments []models.Appointment `json:"appointments,omitempty"`
}

// BuildMonthGrid lays out the calendar grid for a month: leading blank cells
// for the previous month's tail (first weekday of the month, Sunday = 0), one
// cell per day carrying the appointments dated that day, and trailing blanks
// padding the total to the smallest of 28, 35 or 42 cells that fits.
// Appointments dated outside the month are ignored. The function is pure and
// cheap enough to re-run on every navigation.
func BuildMonthGrid(year int, month time.Month, appointments []models.Appointment) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	leading := int(first.Weekday())

	byDay := make(map[int][]models.Appointment)
	for _, appointment := range appointments {
		day, err := appointment.Day()
		if err != nil {
			continue
		}
		if day.Year() != year || day.Month() != month {
			continue
		}
		byDay[day.Day()] = append(byDay[day.Day()], appointment)
	}

	cells := make([]DayCell, 0, 42)
	for i := 0; i < leading; i++ {
		cells = append(cells, DayCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cells = append(cells, DayCell{
			Day:          day,
			Date:         date.Format(models.DateLayout),
			InMonth:      true,
			Appointments: byDay[day],
		})
	}
	for len(cells) < gridSize(leading+daysInMonth) {
		cells = append(cells, DayCell{})
	}
	return cells
}

// gridSize picks the smallest 7-row-aligned grid that holds n cells.
func gridSize(n int) int {
	for _, size := range []int{28, 35, 42} {
		if n <= size {
			return size
		}
	}
	return 42
}

// CalendarService renders month views over the persisted appointment
// collection. It only ever reads.
type CalendarService struct {
	store AppointmentStore
}

func NewCalendarService(store AppointmentStore) *CalendarService {
	return &CalendarService{store: store}
}

// MonthGrid loads the appointment collection and builds the grid for the
// requested month.
func (s *CalendarService) MonthGrid(ctx context.Context, year int, month int) ([]DayCell, error) {
	errs := validation.Errors{}
	if month < 1 || month > 12 {
		errs["month"] = errors.New("month must be between 1 and 12")
	}
	if year < 1 {
		errs["year"] = errors.New("year must be positive")
	}
	if err := errs.Filter(); err != nil {
		return nil, err
	}

	appointments, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMonthGrid(year, time.Month(month), appointments), nil
}
