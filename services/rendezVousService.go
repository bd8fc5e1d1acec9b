package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"fmt"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// RendezVousInput is the booking request. The salle is optional: when absent
// the designated salle of the medical service is used.
type RendezVousInput struct {
	Jour           string                `json:"jour"`
	Heure          string                `json:"heure"`
	ServiceMedical models.ServiceMedical `json:"service_medical"`
	Notes          string                `json:"notes"`
	PatientID      uint                  `json:"patient_id"`
	MedecinID      uint                  `json:"medecin_id"`
	SalleID        uint                  `json:"salle_id"`
}

func (input RendezVousInput) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.Jour, validation.Required, validation.By(utils.ValidateJour)),
		validation.Field(&input.Heure, validation.Required, validation.By(utils.ValidateHeure)),
		validation.Field(&input.ServiceMedical, validation.Required),
		validation.Field(&input.PatientID, validation.Required),
		validation.Field(&input.MedecinID, validation.Required),
	)
}

type RendezVousService struct {
	db             *gorm.DB
	rendezVousRepo *repositories.RendezVousRepository
	salleRepo      *repositories.SalleRepository
	patientRepo    *repositories.PatientRepository
	utilisateurs   *repositories.UtilisateurRepository
	consultations  *repositories.ConsultationRepository
	factures       *FactureService
	recorder       ActionRecorder
	notifier       RendezVousNotifier
	stats          StatRefresher
}

func NewRendezVousService(
	db *gorm.DB,
	rendezVousRepo *repositories.RendezVousRepository,
	salleRepo *repositories.SalleRepository,
	patientRepo *repositories.PatientRepository,
	utilisateurs *repositories.UtilisateurRepository,
	consultations *repositories.ConsultationRepository,
	factures *FactureService,
	recorder ActionRecorder,
	notifier RendezVousNotifier,
	stats StatRefresher,
) *RendezVousService {
	return &RendezVousService{
		db:             db,
		rendezVousRepo: rendezVousRepo,
		salleRepo:      salleRepo,
		patientRepo:    patientRepo,
		utilisateurs:   utilisateurs,
		consultations:  consultations,
		factures:       factures,
		recorder:       recorder,
		notifier:       notifier,
		stats:          stats,
	}
}

// Create books a rendez-vous in EN_ATTENTE and generates its IMPAYEE facture
// in the same transaction. The availability pre-check gives a friendly
// conflict early; the partial unique indexes close the race two concurrent
// bookings of the same slot would otherwise win together.
func (s *RendezVousService) Create(ctx context.Context, input RendezVousInput) (*models.RendezVous, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}
	if !models.ValidServiceMedical(input.ServiceMedical) {
		return nil, utils.ValidationError("unknown medical service: %s", input.ServiceMedical)
	}
	if utils.SlotInPast(input.Jour, input.Heure, time.Now()) {
		return nil, utils.ValidationError("cannot book a rendez-vous in the past")
	}

	if _, err := s.patientRepo.GetByID(ctx, input.PatientID); err != nil {
		return nil, err
	}
	medecin, err := s.utilisateurs.GetByID(ctx, input.MedecinID)
	if err != nil {
		return nil, err
	}
	if medecin.Role != models.RoleMedecin {
		return nil, utils.ValidationError("utilisateur %d is not a medecin", input.MedecinID)
	}

	salle, err := s.resolveSalle(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.checkDisponibilite(ctx, input.Jour, input.Heure, input.MedecinID, salle.ID, 0); err != nil {
		return nil, err
	}

	rendezVous := models.RendezVous{
		Jour:           input.Jour,
		Heure:          input.Heure,
		Statut:         models.RDVEnAttente,
		Notes:          input.Notes,
		ServiceMedical: input.ServiceMedical,
		PatientID:      input.PatientID,
		MedecinID:      input.MedecinID,
		SalleID:        salle.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.rendezVousRepo.WithTx(tx).Create(ctx, &rendezVous); err != nil {
			return err
		}
		_, err := s.factures.GenerateForRendezVous(ctx, tx, &rendezVous)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyRendezVousCree(ctx, &rendezVous, medecin)
	s.recorder.RecordAction(ctx, fmt.Sprintf("Création du rendez-vous %d (%s %s)", rendezVous.ID, rendezVous.Jour, rendezVous.Heure))
	s.stats.RefreshAll(ctx)
	return s.rendezVousRepo.GetByID(ctx, rendezVous.ID)
}

func (s *RendezVousService) resolveSalle(ctx context.Context, input RendezVousInput) (*models.Salle, error) {
	if input.SalleID != 0 {
		return s.salleRepo.GetByID(ctx, input.SalleID)
	}
	salle, err := s.salleRepo.FindByServiceMedical(ctx, input.ServiceMedical)
	if err != nil {
		return nil, err
	}
	if salle == nil {
		return nil, utils.ValidationError("no salle is assigned to service %s", input.ServiceMedical)
	}
	return salle, nil
}

// CheckDisponibilite reports whether the (jour, heure) slot is free for both
// the medecin and the salle, ignoring cancelled rendez-vous.
func (s *RendezVousService) CheckDisponibilite(ctx context.Context, jour, heure string, medecinID, salleID uint) (bool, error) {
	if err := utils.ValidateJour(jour); err != nil {
		return false, utils.ValidationError("jour: %v", err)
	}
	if err := utils.ValidateHeure(heure); err != nil {
		return false, utils.ValidationError("heure: %v", err)
	}
	if err := s.checkDisponibilite(ctx, jour, heure, medecinID, salleID, 0); err != nil {
		if utils.IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// checkDisponibilite returns a conflict error when the slot is taken.
// excludeID skips the rendez-vous being rescheduled so it does not collide
// with itself.
func (s *RendezVousService) checkDisponibilite(ctx context.Context, jour, heure string, medecinID, salleID, excludeID uint) error {
	occupant, err := s.rendezVousRepo.FindSlotMedecin(ctx, jour, heure, medecinID)
	if err != nil {
		return err
	}
	if occupant != nil && occupant.ID != excludeID {
		return utils.ConflictError("le médecin a déjà un rendez-vous le %s à %s", jour, heure)
	}
	occupant, err = s.rendezVousRepo.FindSlotSalle(ctx, jour, heure, salleID)
	if err != nil {
		return err
	}
	if occupant != nil && occupant.ID != excludeID {
		return utils.ConflictError("la salle est déjà réservée le %s à %s", jour, heure)
	}
	return nil
}

// Update reschedules or annotates a rendez-vous. Terminal rendez-vous
// (TERMINE, ANNULE) are immutable.
func (s *RendezVousService) Update(ctx context.Context, id uint, input RendezVousInput) (*models.RendezVous, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}

	rendezVous, err := s.rendezVousRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rendezVous.Statut == models.RDVTermine || rendezVous.Statut == models.RDVAnnule {
		return nil, utils.InvalidStateError("cannot modify a %s rendez-vous", rendezVous.Statut)
	}
	if utils.SlotInPast(input.Jour, input.Heure, time.Now()) {
		return nil, utils.ValidationError("cannot move a rendez-vous to the past")
	}

	salle, err := s.resolveSalle(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.checkDisponibilite(ctx, input.Jour, input.Heure, input.MedecinID, salle.ID, id); err != nil {
		return nil, err
	}

	rendezVous.Jour = input.Jour
	rendezVous.Heure = input.Heure
	rendezVous.Notes = input.Notes
	rendezVous.ServiceMedical = input.ServiceMedical
	rendezVous.MedecinID = input.MedecinID
	rendezVous.SalleID = salle.ID
	if err := s.rendezVousRepo.Save(ctx, rendezVous); err != nil {
		return nil, err
	}

	s.recorder.RecordAction(ctx, fmt.Sprintf("Modification du rendez-vous %d", id))
	return s.rendezVousRepo.GetByID(ctx, id)
}

// Cancel moves a rendez-vous to ANNULE and removes its unpaid facture.
// Cancelling is refused for rendez-vous already cancelled, in consultation,
// or whose slot has passed.
func (s *RendezVousService) Cancel(ctx context.Context, id uint) (*models.RendezVous, error) {
	rendezVous, err := s.rendezVousRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch rendezVous.Statut {
	case models.RDVAnnule:
		return nil, utils.InvalidStateError("rendez-vous already cancelled")
	case models.RDVEnCours, models.RDVTermine:
		return nil, utils.InvalidStateError("cannot cancel a rendez-vous in status %s", rendezVous.Statut)
	}
	if utils.SlotInPast(rendezVous.Jour, rendezVous.Heure, time.Now()) {
		return nil, utils.InvalidStateError("cannot cancel a past rendez-vous")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.cancelTx(ctx, tx, rendezVous)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.RecordAction(ctx, fmt.Sprintf("Annulation du rendez-vous %d", id))
	s.stats.RefreshAll(ctx)
	return s.rendezVousRepo.GetByID(ctx, id)
}

// cancelTx cancels one rendez-vous inside tx: a guarded status flip plus
// deletion of the IMPAYEE facture. Paid factures are kept.
func (s *RendezVousService) cancelTx(ctx context.Context, tx *gorm.DB, rendezVous *models.RendezVous) error {
	updated, err := s.rendezVousRepo.WithTx(tx).UpdateStatutIf(ctx,
		rendezVous.ID,
		[]models.StatutRDV{models.RDVEnAttente, models.RDVConfirme},
		models.RDVAnnule,
	)
	if err != nil {
		return err
	}
	if !updated {
		return utils.InvalidStateError("rendez-vous %d changed status concurrently", rendezVous.ID)
	}

	factureRepo := s.factures.factureRepo.WithTx(tx)
	facture, err := factureRepo.FindByRendezVousID(ctx, rendezVous.ID)
	if err != nil {
		return err
	}
	if facture != nil && facture.StatutPaiement == models.FactureImpayee {
		if err := factureRepo.Delete(ctx, facture.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete erases a future rendez-vous together with its facture. A rendez-vous
// with an associated consultation, or one already in the past, is kept as a
// record; cancel it instead.
func (s *RendezVousService) Delete(ctx context.Context, id uint) error {
	rendezVous, err := s.rendezVousRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	consultation, err := s.consultations.FindByRendezVousID(ctx, id)
	if err != nil {
		return err
	}
	if consultation != nil {
		return utils.InvalidStateError("cannot delete a rendez-vous with an associated consultation")
	}
	if utils.JourInPast(rendezVous.Jour, time.Now()) {
		return utils.InvalidStateError("cannot delete a past rendez-vous")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		factureRepo := s.factures.factureRepo.WithTx(tx)
		facture, err := factureRepo.FindByRendezVousID(ctx, id)
		if err != nil {
			return err
		}
		if facture != nil {
			if err := factureRepo.Delete(ctx, facture.ID); err != nil {
				return err
			}
		}
		return s.rendezVousRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.recorder.RecordAction(ctx, fmt.Sprintf("Suppression du rendez-vous %d", id))
	return nil
}

// SweepExpired cancels every EN_ATTENTE rendez-vous whose day has passed and
// drops their unpaid factures. Returns the number of rendez-vous cancelled.
func (s *RendezVousService) SweepExpired(ctx context.Context) (int, error) {
	today := time.Now().Format(utils.JourLayout)
	stale, err := s.rendezVousRepo.FindPendingBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for i := range stale {
		rendezVous := stale[i]
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return s.cancelTx(ctx, tx, &rendezVous)
		})
		if err != nil {
			log.Printf("Failed to expire rendez-vous %d: %v", rendezVous.ID, err)
			continue
		}
		cancelled++
	}

	if cancelled > 0 {
		s.recorder.RecordAction(ctx, fmt.Sprintf("Annulation automatique de %d rendez-vous expirés", cancelled))
		s.stats.RefreshAll(ctx)
	}
	return cancelled, nil
}

func (s *RendezVousService) GetByID(ctx context.Context, id uint) (*models.RendezVous, error) {
	return s.rendezVousRepo.GetByID(ctx, id)
}

func (s *RendezVousService) GetAll(ctx context.Context) ([]models.RendezVous, error) {
	return s.rendezVousRepo.GetAll(ctx)
}

func (s *RendezVousService) FindByJour(ctx context.Context, jour string) ([]models.RendezVous, error) {
	if err := utils.ValidateJour(jour); err != nil {
		return nil, utils.ValidationError("jour: %v", err)
	}
	return s.rendezVousRepo.FindByJour(ctx, jour)
}

func (s *RendezVousService) FindByPeriode(ctx context.Context, from, to string) ([]models.RendezVous, error) {
	if err := utils.ValidateJour(from); err != nil {
		return nil, utils.ValidationError("from: %v", err)
	}
	if err := utils.ValidateJour(to); err != nil {
		return nil, utils.ValidationError("to: %v", err)
	}
	return s.rendezVousRepo.FindByJourBetween(ctx, from, to)
}

// FindConfirmesByMedecin lists a medecin's CONFIRME rendez-vous over a period,
// the working list of the consultation desk.
func (s *RendezVousService) FindConfirmesByMedecin(ctx context.Context, medecinID uint, from, to string) ([]models.RendezVous, error) {
	if err := utils.ValidateJour(from); err != nil {
		return nil, utils.ValidationError("from: %v", err)
	}
	if err := utils.ValidateJour(to); err != nil {
		return nil, utils.ValidationError("to: %v", err)
	}
	return s.rendezVousRepo.FindByMedecinStatutBetween(ctx, medecinID, models.RDVConfirme, from, to)
}
