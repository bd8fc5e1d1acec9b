package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type FactureService struct {
	db             *gorm.DB
	factureRepo    *repositories.FactureRepository
	rendezVousRepo *repositories.RendezVousRepository
	recorder       ActionRecorder
	stats          StatRefresher
}

func NewFactureService(
	db *gorm.DB,
	factureRepo *repositories.FactureRepository,
	rendezVousRepo *repositories.RendezVousRepository,
	recorder ActionRecorder,
	stats StatRefresher,
) *FactureService {
	return &FactureService{
		db:             db,
		factureRepo:    factureRepo,
		rendezVousRepo: rendezVousRepo,
		recorder:       recorder,
		stats:          stats,
	}
}

// GenerateForRendezVous creates the IMPAYEE facture of a freshly booked
// rendez-vous, priced by the tariff of its medical service. The one-to-one
// unique index rejects a second facture for the same rendez-vous.
func (s *FactureService) GenerateForRendezVous(ctx context.Context, tx *gorm.DB, rendezVous *models.RendezVous) (*models.Facture, error) {
	facture := models.Facture{
		Montant:        models.TarifPourService(rendezVous.ServiceMedical),
		DateEmission:   time.Now(),
		StatutPaiement: models.FactureImpayee,
		PatientID:      &rendezVous.PatientID,
		RendezVousID:   &rendezVous.ID,
	}
	if err := s.factureRepo.WithTx(tx).Create(ctx, &facture); err != nil {
		return nil, err
	}
	return &facture, nil
}

// GenerateForConsultation bills an emergency consultation created without a
// rendez-vous. Like the rendez-vous path, the facture is born IMPAYEE and is
// settled through Payer.
func (s *FactureService) GenerateForConsultation(ctx context.Context, tx *gorm.DB, consultation *models.Consultation, montant float64) (*models.Facture, error) {
	facture := models.Facture{
		Montant:        montant,
		DateEmission:   time.Now(),
		StatutPaiement: models.FactureImpayee,
		ConsultationID: &consultation.ID,
	}
	if err := s.factureRepo.WithTx(tx).Create(ctx, &facture); err != nil {
		return nil, err
	}
	return &facture, nil
}

// Payer settles a facture with the given payment mode and confirms the
// underlying rendez-vous. The conditional update on statut_paiement makes
// a second concurrent payment fail with an invalid-state error instead of
// double-charging.
func (s *FactureService) Payer(ctx context.Context, id uint, mode models.ModePaiement) (*models.Facture, error) {
	if !models.ValidModePaiement(mode) {
		return nil, utils.ValidationError("invalid payment mode: %s", mode)
	}

	facture, err := s.factureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updated, err := s.factureRepo.WithTx(tx).MarkPayee(ctx, id, mode)
		if err != nil {
			return err
		}
		if !updated {
			return utils.InvalidStateError("facture already paid")
		}
		if facture.RendezVousID != nil {
			// Confirms the rendez-vous; a no-op when it already left EN_ATTENTE.
			if _, err := s.rendezVousRepo.WithTx(tx).UpdateStatutIf(ctx,
				*facture.RendezVousID,
				[]models.StatutRDV{models.RDVEnAttente},
				models.RDVConfirme,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.RecordAction(ctx, fmt.Sprintf("Paiement de la facture %d (%s)", id, mode))
	s.stats.RefreshAll(ctx)
	return s.factureRepo.GetByID(ctx, id)
}

func (s *FactureService) GetByID(ctx context.Context, id uint) (*models.Facture, error) {
	return s.factureRepo.GetByID(ctx, id)
}

func (s *FactureService) GetAll(ctx context.Context) ([]models.Facture, error) {
	return s.factureRepo.GetAll(ctx)
}

func (s *FactureService) FindByStatut(ctx context.Context, statut models.StatutPaiement) ([]models.Facture, error) {
	if statut != models.FactureImpayee && statut != models.FacturePayee {
		return nil, utils.ValidationError("invalid payment status: %s", statut)
	}
	return s.factureRepo.FindByStatut(ctx, statut)
}

// FindByRendezVousID returns the facture generated for a rendez-vous.
func (s *FactureService) FindByRendezVousID(ctx context.Context, rendezVousID uint) (*models.Facture, error) {
	facture, err := s.factureRepo.FindByRendezVousID(ctx, rendezVousID)
	if err != nil {
		return nil, err
	}
	if facture == nil {
		return nil, utils.NotFoundError("facture for rendez-vous", rendezVousID)
	}
	return facture, nil
}

// Delete removes an unpaid facture. Paid factures are immutable accounting
// records and cannot be deleted.
func (s *FactureService) Delete(ctx context.Context, id uint) error {
	facture, err := s.factureRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if facture.StatutPaiement == models.FacturePayee {
		return utils.InvalidStateError("cannot delete a paid facture")
	}
	if err := s.factureRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Suppression de la facture %d", id))
	return nil
}
