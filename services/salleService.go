package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SalleInput registers or renames a treatment room.
type SalleInput struct {
	NumeroSalle    string                `json:"numero_salle"`
	ServiceMedical models.ServiceMedical `json:"service_medical"`
}

func (input SalleInput) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.NumeroSalle, validation.Required, validation.Length(1, 20)),
		validation.Field(&input.ServiceMedical, validation.Required),
	)
}

type SalleService struct {
	salleRepo *repositories.SalleRepository
	recorder  ActionRecorder
}

func NewSalleService(salleRepo *repositories.SalleRepository, recorder ActionRecorder) *SalleService {
	return &SalleService{salleRepo: salleRepo, recorder: recorder}
}

// Create registers a salle for a medical service. New salles start DISPONIBLE.
func (s *SalleService) Create(ctx context.Context, input SalleInput) (*models.Salle, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}
	if !models.ValidServiceMedical(input.ServiceMedical) {
		return nil, utils.ValidationError("unknown medical service: %s", input.ServiceMedical)
	}

	salle := models.Salle{
		NumeroSalle:    input.NumeroSalle,
		ServiceMedical: input.ServiceMedical,
		StatutSalle:    models.SalleDisponible,
	}
	if err := s.salleRepo.Create(ctx, &salle); err != nil {
		return nil, err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Création de la salle %s", salle.NumeroSalle))
	return &salle, nil
}

func (s *SalleService) GetByID(ctx context.Context, id uint) (*models.Salle, error) {
	return s.salleRepo.GetByID(ctx, id)
}

func (s *SalleService) GetAll(ctx context.Context) ([]models.Salle, error) {
	return s.salleRepo.GetAll(ctx)
}

// FindByServiceMedical returns the designated salle of a service.
func (s *SalleService) FindByServiceMedical(ctx context.Context, service models.ServiceMedical) (*models.Salle, error) {
	if !models.ValidServiceMedical(service) {
		return nil, utils.ValidationError("unknown medical service: %s", service)
	}
	salle, err := s.salleRepo.FindByServiceMedical(ctx, service)
	if err != nil {
		return nil, err
	}
	if salle == nil {
		return nil, &utils.AppError{Kind: utils.KindNotFound, Message: fmt.Sprintf("no salle assigned to service %s", service)}
	}
	return salle, nil
}

// UpdateStatut flips the occupancy status of a salle by hand, for maintenance
// or cleaning; the consultation flow manages it automatically otherwise.
func (s *SalleService) UpdateStatut(ctx context.Context, id uint, statut models.StatutSalle) (*models.Salle, error) {
	if statut != models.SalleDisponible && statut != models.SalleOccupee {
		return nil, utils.ValidationError("invalid salle status: %s", statut)
	}
	if _, err := s.salleRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.salleRepo.UpdateStatut(ctx, id, statut); err != nil {
		return nil, err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Salle %d marquée %s", id, statut))
	return s.salleRepo.GetByID(ctx, id)
}
