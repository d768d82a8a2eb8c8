package services

import (
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"

	"github.com/google/uuid"
)

type PatientService struct {
	repository *repositories.PatientRepository
	bills      *repositories.BillRepository
}

func NewPatientService(repository *repositories.PatientRepository, bills *repositories.BillRepository) *PatientService {
	return &PatientService{repository: repository, bills: bills}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if err := utils.ValidatePatient(*patient); err != nil {
		return err
	}
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatient(*patient); err != nil {
		return err
	}
	return s.repository.Update(ctx, patient)
}

// Delete removes the patient and everything they own: appointments go with
// them, and each of their bills releases its reserved stock on the way out.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id, s.bills)
}
