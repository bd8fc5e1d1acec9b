package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"fmt"
	"log"
	"time"
)

// StatRefresher recomputes the cached aggregates after mutating operations.
// Refreshing is idempotent and best-effort; it never fails the caller.
type StatRefresher interface {
	RefreshAll(ctx context.Context)
}

type StatService struct {
	statRepo         *repositories.StatRepository
	rendezVousRepo   *repositories.RendezVousRepository
	patientRepo      *repositories.PatientRepository
	consultationRepo *repositories.ConsultationRepository
	factureRepo      *repositories.FactureRepository
}

func NewStatService(
	statRepo *repositories.StatRepository,
	rendezVousRepo *repositories.RendezVousRepository,
	patientRepo *repositories.PatientRepository,
	consultationRepo *repositories.ConsultationRepository,
	factureRepo *repositories.FactureRepository,
) *StatService {
	return &StatService{
		statRepo:         statRepo,
		rendezVousRepo:   rendezVousRepo,
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
		factureRepo:      factureRepo,
	}
}

// RefreshAll recomputes today's daily, monthly and yearly rows. Errors are
// logged only; the aggregates converge on the next refresh.
func (s *StatService) RefreshAll(ctx context.Context) {
	now := time.Now()
	if _, err := s.RefreshJour(ctx, now); err != nil {
		log.Printf("Failed to refresh stat du jour: %v", err)
	}
	if _, err := s.RefreshMois(ctx, now.Year(), int(now.Month())); err != nil {
		log.Printf("Failed to refresh stats mois: %v", err)
	}
	if _, err := s.RefreshAnnee(ctx, now.Year()); err != nil {
		log.Printf("Failed to refresh stats sur l'annee: %v", err)
	}
}

// RefreshJour recomputes and overwrites the daily row for date.
func (s *StatService) RefreshJour(ctx context.Context, date time.Time) (*models.StatDuJour, error) {
	stat, err := s.calculateJour(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := s.statRepo.UpsertJour(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

// GetOrCreateJour returns the cached daily row, computing it on first read.
func (s *StatService) GetOrCreateJour(ctx context.Context, date time.Time) (*models.StatDuJour, error) {
	existing, err := s.statRepo.FindJour(ctx, date.Format(utils.JourLayout))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.RefreshJour(ctx, date)
}

func (s *StatService) calculateJour(ctx context.Context, date time.Time) (*models.StatDuJour, error) {
	jour := date.Format(utils.JourLayout)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	confirme, err := s.rendezVousRepo.CountByJourAndStatut(ctx, jour, models.RDVConfirme)
	if err != nil {
		return nil, err
	}
	annule, err := s.rendezVousRepo.CountByJourAndStatut(ctx, jour, models.RDVAnnule)
	if err != nil {
		return nil, err
	}
	patients, err := s.patientRepo.CountRegisteredBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	consultations, err := s.consultationRepo.CountCreatedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	revenu, err := s.factureRepo.SumRevenuBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return &models.StatDuJour{
		Jour:                  jour,
		NbrRendezVousConfirme: confirme,
		NbrRendezVousAnnule:   annule,
		NbrPatientEnrg:        patients,
		NbrConsultation:       consultations,
		Revenu:                revenu,
	}, nil
}

// RefreshMois recomputes and overwrites the monthly row.
func (s *StatService) RefreshMois(ctx context.Context, annee int, mois int) (*models.StatsMois, error) {
	stat, err := s.calculateMois(ctx, annee, mois)
	if err != nil {
		return nil, err
	}
	if err := s.statRepo.UpsertMois(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *StatService) GetOrCreateMois(ctx context.Context, annee int, mois int) (*models.StatsMois, error) {
	existing, err := s.statRepo.FindMois(ctx, models.NomDuMois(mois))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.RefreshMois(ctx, annee, mois)
}

func (s *StatService) calculateMois(ctx context.Context, annee int, mois int) (*models.StatsMois, error) {
	nom := models.NomDuMois(mois)
	if nom == "" {
		return nil, utils.ValidationError("invalid month number: %d", mois)
	}
	anneeStr := fmt.Sprintf("%d", annee)
	monthStart := time.Date(annee, time.Month(mois), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)

	confirme, err := s.rendezVousRepo.CountByMoisAndStatut(ctx, anneeStr, mois, models.RDVConfirme)
	if err != nil {
		return nil, err
	}
	annule, err := s.rendezVousRepo.CountByMoisAndStatut(ctx, anneeStr, mois, models.RDVAnnule)
	if err != nil {
		return nil, err
	}
	patients, err := s.patientRepo.CountRegisteredBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	consultations, err := s.consultationRepo.CountCreatedBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	revenu, err := s.factureRepo.SumRevenuBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &models.StatsMois{
		Mois:                  nom,
		NbrRendezVousConfirme: confirme,
		NbrRendezVousAnnule:   annule,
		NbrPatientEnrg:        patients,
		NbrConsultation:       consultations,
		Revenu:                revenu,
	}, nil
}

// RefreshAnnee recomputes and overwrites the yearly row.
func (s *StatService) RefreshAnnee(ctx context.Context, annee int) (*models.StatsSurLannee, error) {
	stat, err := s.calculateAnnee(ctx, annee)
	if err != nil {
		return nil, err
	}
	if err := s.statRepo.UpsertAnnee(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *StatService) GetOrCreateAnnee(ctx context.Context, annee int) (*models.StatsSurLannee, error) {
	existing, err := s.statRepo.FindAnnee(ctx, fmt.Sprintf("%d", annee))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.RefreshAnnee(ctx, annee)
}

func (s *StatService) calculateAnnee(ctx context.Context, annee int) (*models.StatsSurLannee, error) {
	anneeStr := fmt.Sprintf("%d", annee)
	yearStart := time.Date(annee, time.January, 1, 0, 0, 0, 0, time.Local)
	yearEnd := yearStart.AddDate(1, 0, 0)

	confirme, err := s.rendezVousRepo.CountByAnneeAndStatut(ctx, anneeStr, models.RDVConfirme)
	if err != nil {
		return nil, err
	}
	annule, err := s.rendezVousRepo.CountByAnneeAndStatut(ctx, anneeStr, models.RDVAnnule)
	if err != nil {
		return nil, err
	}
	patients, err := s.patientRepo.CountRegisteredBetween(ctx, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	consultations, err := s.consultationRepo.CountCreatedBetween(ctx, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	revenu, err := s.factureRepo.SumRevenuBetween(ctx, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}

	return &models.StatsSurLannee{
		Annee:                 anneeStr,
		NbrRendezVousConfirme: confirme,
		NbrRendezVousAnnule:   annule,
		NbrPatientEnrg:        patients,
		NbrConsultation:       consultations,
		Revenu:                revenu,
	}, nil
}
