package handlers

import (
	"ClinicFlow/models"
	"ClinicFlow/services"
	"time"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &appointment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, appointment)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := parseID(c, "appointment_id")
	if !ok {
		return
	}
	appointment, err := h.service.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	appointments, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

// ListUpcomingAppointments returns non-cancelled appointments from the start
// of the reference day onward. The reference defaults to today and can be
// overridden with ?from=YYYY-MM-DD.
func (h *AppointmentHandler) ListUpcomingAppointments(c *gin.Context) {
	ref := time.Now()
	if from := c.Query("from"); from != "" {
		parsed, err := models.ParseClinicTime(from)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid from date, use YYYY-MM-DD"})
			return
		}
		ref = parsed
	}
	appointments, err := h.service.ListUpcoming(c, ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := parseID(c, "appointment_id")
	if !ok {
		return
	}
	var fields models.Appointment
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	appointment, err := h.service.Update(c, id, &fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id, ok := parseID(c, "appointment_id")
	if !ok {
		return
	}
	appointment, err := h.service.Cancel(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := parseID(c, "appointment_id")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Appointment deleted"})
}
