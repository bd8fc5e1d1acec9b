package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"log"
)

// ActionRecorder is the audit collaborator. Recording never fails the
// calling operation; implementations log their own errors.
type ActionRecorder interface {
	RecordAction(ctx context.Context, description string)
}

type HistoriqueService struct {
	repository *repositories.HistoriqueRepository
}

func NewHistoriqueService(repository *repositories.HistoriqueRepository) *HistoriqueService {
	return &HistoriqueService{repository: repository}
}

// RecordAction writes an audit entry attributed to the authenticated user
// found in the context. Failures are logged, never propagated.
func (s *HistoriqueService) RecordAction(ctx context.Context, description string) {
	entry := models.HistoriqueAction{
		Action:        description,
		UtilisateurID: utils.ActorIDFromContext(ctx),
	}
	if err := s.repository.Create(ctx, &entry); err != nil {
		log.Printf("Failed to record historique action %q: %v", description, err)
	}
}

func (s *HistoriqueService) GetAll(ctx context.Context) ([]models.HistoriqueAction, error) {
	return s.repository.GetAll(ctx)
}
