package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// PatientInput is the registration form of a patient.
type PatientInput struct {
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	Sexe          string `json:"sexe"`
	DateNaissance string `json:"date_naissance"`
	Telephone     string `json:"telephone"`
	Email         string `json:"email"`
	Adresse       string `json:"adresse"`
}

func (input PatientInput) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.Nom, validation.Required, validation.Length(1, 100)),
		validation.Field(&input.Prenom, validation.Required, validation.Length(1, 100)),
		validation.Field(&input.Sexe, validation.Required, validation.In("M", "F")),
		validation.Field(&input.DateNaissance, validation.Required, validation.By(utils.ValidateJour)),
		validation.Field(&input.Email, is.Email),
	)
}

// DossierInput updates the medical chart of a patient.
type DossierInput struct {
	GroupeSanguin       string `json:"groupe_sanguin"`
	AntecedentsMedicaux string `json:"antecedents_medicaux"`
	Allergies           string `json:"allergies"`
	Observations        string `json:"observations"`
}

type PatientService struct {
	patientRepo *repositories.PatientRepository
	recorder    ActionRecorder
	stats       StatRefresher
}

func NewPatientService(patientRepo *repositories.PatientRepository, recorder ActionRecorder, stats StatRefresher) *PatientService {
	return &PatientService{patientRepo: patientRepo, recorder: recorder, stats: stats}
}

// Create registers a patient; their dossier medical is opened alongside.
func (s *PatientService) Create(ctx context.Context, input PatientInput) (*models.Patient, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}

	patient := models.Patient{
		Nom:           input.Nom,
		Prenom:        input.Prenom,
		Sexe:          input.Sexe,
		DateNaissance: input.DateNaissance,
		Telephone:     input.Telephone,
		Email:         input.Email,
		Adresse:       input.Adresse,
	}
	if err := s.patientRepo.Create(ctx, &patient); err != nil {
		return nil, err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Enregistrement du patient %s %s", patient.Prenom, patient.Nom))
	s.stats.RefreshAll(ctx)
	return &patient, nil
}

func (s *PatientService) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	return s.patientRepo.GetByID(ctx, id)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.patientRepo.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, id uint, input PatientInput) (*models.Patient, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patient.Nom = input.Nom
	patient.Prenom = input.Prenom
	patient.Sexe = input.Sexe
	patient.DateNaissance = input.DateNaissance
	patient.Telephone = input.Telephone
	patient.Email = input.Email
	patient.Adresse = input.Adresse
	if err := s.patientRepo.Save(ctx, patient); err != nil {
		return nil, err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Modification du patient %d", id))
	return patient, nil
}

func (s *PatientService) Delete(ctx context.Context, id uint) error {
	if _, err := s.patientRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.patientRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Suppression du patient %d", id))
	return nil
}

// GetDossier returns the patient's medical chart.
func (s *PatientService) GetDossier(ctx context.Context, patientID uint) (*models.DossierMedical, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	dossier, err := s.patientRepo.GetDossierByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if dossier == nil {
		return nil, utils.NotFoundError("dossier medical for patient", patientID)
	}
	return dossier, nil
}

// UpdateDossier amends the chart's background fields. DernierTraitement is
// owned by the consultation flow and never set here.
func (s *PatientService) UpdateDossier(ctx context.Context, patientID uint, input DossierInput) (*models.DossierMedical, error) {
	dossier, err := s.GetDossier(ctx, patientID)
	if err != nil {
		return nil, err
	}
	dossier.GroupeSanguin = input.GroupeSanguin
	dossier.AntecedentsMedicaux = input.AntecedentsMedicaux
	dossier.Allergies = input.Allergies
	dossier.Observations = input.Observations
	if err := s.patientRepo.SaveDossier(ctx, dossier); err != nil {
		return nil, err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Modification du dossier médical du patient %d", patientID))
	return dossier, nil
}
