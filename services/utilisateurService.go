package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"
)

// UtilisateurInput is the account form for clinic staff. ServiceMedical is
// required for medecins and ignored for the other roles.
type UtilisateurInput struct {
	Nom            string                 `json:"nom"`
	Prenom         string                 `json:"prenom"`
	Email          string                 `json:"email"`
	Password       string                 `json:"password"`
	Role           string                 `json:"role"`
	ServiceMedical *models.ServiceMedical `json:"service_medical"`
}

func (input UtilisateurInput) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.Nom, validation.Required, validation.Length(1, 100)),
		validation.Field(&input.Prenom, validation.Required, validation.Length(1, 100)),
		validation.Field(&input.Email, validation.Required, is.Email),
		validation.Field(&input.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&input.Role, validation.Required,
			validation.In(models.RoleAdmin, models.RoleMedecin, models.RoleSecretaire)),
	)
}

type UtilisateurService struct {
	utilisateurs *repositories.UtilisateurRepository
	recorder     ActionRecorder
}

func NewUtilisateurService(utilisateurs *repositories.UtilisateurRepository, recorder ActionRecorder) *UtilisateurService {
	return &UtilisateurService{utilisateurs: utilisateurs, recorder: recorder}
}

// Create registers a staff account with a bcrypt-hashed password.
func (s *UtilisateurService) Create(ctx context.Context, input UtilisateurInput) (*models.Utilisateur, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}
	if input.Role == models.RoleMedecin {
		if input.ServiceMedical == nil || !models.ValidServiceMedical(*input.ServiceMedical) {
			return nil, utils.ValidationError("a medecin must have a valid medical service")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	utilisateur := models.Utilisateur{
		Nom:      input.Nom,
		Prenom:   input.Prenom,
		Email:    input.Email,
		Password: string(hashed),
		Role:     input.Role,
	}
	if input.Role == models.RoleMedecin {
		utilisateur.ServiceMedical = input.ServiceMedical
	}
	if err := s.utilisateurs.Create(ctx, &utilisateur); err != nil {
		return nil, err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Création du compte %s (%s)", utilisateur.Email, utilisateur.Role))
	return &utilisateur, nil
}

func (s *UtilisateurService) GetByID(ctx context.Context, id uint) (*models.Utilisateur, error) {
	return s.utilisateurs.GetByID(ctx, id)
}

func (s *UtilisateurService) GetAll(ctx context.Context) ([]models.Utilisateur, error) {
	return s.utilisateurs.GetAll(ctx)
}

// GetMedecins lists the accounts bookable as rendez-vous medecins.
func (s *UtilisateurService) GetMedecins(ctx context.Context) ([]models.Utilisateur, error) {
	return s.utilisateurs.FindByRole(ctx, models.RoleMedecin)
}

func (s *UtilisateurService) Update(ctx context.Context, id uint, input UtilisateurInput) (*models.Utilisateur, error) {
	utilisateur, err := s.utilisateurs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	utilisateur.Nom = input.Nom
	utilisateur.Prenom = input.Prenom
	utilisateur.Email = input.Email
	if input.Role != "" {
		utilisateur.Role = input.Role
	}
	if input.ServiceMedical != nil {
		utilisateur.ServiceMedical = input.ServiceMedical
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		utilisateur.Password = string(hashed)
	}
	if err := s.utilisateurs.Save(ctx, utilisateur); err != nil {
		return nil, err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Modification du compte %d", id))
	return utilisateur, nil
}

func (s *UtilisateurService) Delete(ctx context.Context, id uint) error {
	if _, err := s.utilisateurs.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.utilisateurs.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Suppression du compte %d", id))
	return nil
}
