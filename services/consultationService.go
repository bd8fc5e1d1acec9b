package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// PrescriptionInput is one prescription submitted with a consultation.
type PrescriptionInput struct {
	TypePrescription  string `json:"type_prescription"`
	Medicaments       string `json:"medicaments"`
	Instructions      string `json:"instructions"`
	DureePrescription string `json:"duree_prescription"`
	Quantite          int    `json:"quantite"`
}

func (input PrescriptionInput) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.TypePrescription, validation.Required),
		validation.Field(&input.Medicaments, validation.Required),
		validation.Field(&input.Quantite, validation.Min(1)),
	)
}

// ConsultationInput carries the clinical measurements and findings captured
// during the encounter.
type ConsultationInput struct {
	Poids             float64             `json:"poids"`
	Taille            float64             `json:"taille"`
	Temperature       float64             `json:"temperature"`
	TensionArterielle string              `json:"tension_arterielle"`
	Motifs            string              `json:"motifs"`
	CompteRendu       string              `json:"compte_rendu"`
	Diagnostic        string              `json:"diagnostic"`
	Prescriptions     []PrescriptionInput `json:"prescriptions"`
}

func (input ConsultationInput) Validate() error {
	if err := validation.ValidateStruct(&input,
		validation.Field(&input.Poids, validation.Required, validation.Min(0.0)),
		validation.Field(&input.Taille, validation.Required, validation.Min(0.0)),
		validation.Field(&input.Temperature, validation.Required),
		validation.Field(&input.TensionArterielle, validation.Required),
		validation.Field(&input.Motifs, validation.Required),
	); err != nil {
		return err
	}
	for i, prescription := range input.Prescriptions {
		if err := prescription.Validate(); err != nil {
			return fmt.Errorf("prescription %d: %w", i+1, err)
		}
	}
	return nil
}

type ConsultationService struct {
	db               *gorm.DB
	consultationRepo *repositories.ConsultationRepository
	rendezVousRepo   *repositories.RendezVousRepository
	salleRepo        *repositories.SalleRepository
	patientRepo      *repositories.PatientRepository
	utilisateurs     *repositories.UtilisateurRepository
	factures         *FactureService
	recorder         ActionRecorder
	stats            StatRefresher
}

func NewConsultationService(
	db *gorm.DB,
	consultationRepo *repositories.ConsultationRepository,
	rendezVousRepo *repositories.RendezVousRepository,
	salleRepo *repositories.SalleRepository,
	patientRepo *repositories.PatientRepository,
	utilisateurs *repositories.UtilisateurRepository,
	factures *FactureService,
	recorder ActionRecorder,
	stats StatRefresher,
) *ConsultationService {
	return &ConsultationService{
		db:               db,
		consultationRepo: consultationRepo,
		rendezVousRepo:   rendezVousRepo,
		salleRepo:        salleRepo,
		patientRepo:      patientRepo,
		utilisateurs:     utilisateurs,
		factures:         factures,
		recorder:         recorder,
		stats:            stats,
	}
}

// Start runs the consultation of a rendez-vous from admission to discharge,
// performed by the given medecin: the facture must be paid, the rendez-vous
// CONFIRME and its salle free. On success the rendez-vous ends TERMINE, the
// salle is released, and the patient's dossier records the last prescribed
// treatment. The whole flow is one transaction; two concurrent starts on the
// same rendez-vous lose on the guarded CONFIRME -> ENCOURS transition.
func (s *ConsultationService) Start(ctx context.Context, rendezVousID, medecinID uint, input ConsultationInput) (*models.Consultation, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}

	rendezVous, err := s.rendezVousRepo.GetByID(ctx, rendezVousID)
	if err != nil {
		return nil, err
	}

	existing, err := s.consultationRepo.FindByRendezVousID(ctx, rendezVousID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ConflictError("rendez-vous %d is already linked to a consultation", rendezVousID)
	}

	facture, err := s.factures.factureRepo.FindByRendezVousID(ctx, rendezVousID)
	if err != nil {
		return nil, err
	}
	if facture == nil || facture.StatutPaiement != models.FacturePayee {
		return nil, utils.InvalidStateError("cannot start consultation: invoice not found or not paid for rendez-vous with ID %d", rendezVousID)
	}

	if rendezVous.Statut != models.RDVConfirme {
		return nil, utils.InvalidStateError("cannot start consultation: rendez-vous %d is %s, expected CONFIRME", rendezVousID, rendezVous.Statut)
	}

	medecin, err := s.utilisateurs.GetByID(ctx, medecinID)
	if err != nil {
		return nil, err
	}
	if medecin.Role != models.RoleMedecin {
		return nil, utils.ValidationError("utilisateur %d is not a medecin", medecinID)
	}

	salle, err := s.salleRepo.GetByID(ctx, rendezVous.SalleID)
	if err != nil {
		return nil, err
	}
	// A salle hosts one encounter at a time; OCCUPEE means another
	// consultation is running in it.
	if salle.StatutSalle != models.SalleDisponible {
		return nil, utils.InvalidStateError("salle %s is currently occupied", salle.NumeroSalle)
	}

	dossier, err := s.patientRepo.GetDossierByPatientID(ctx, rendezVous.PatientID)
	if err != nil {
		return nil, err
	}
	if dossier == nil {
		return nil, utils.InvalidStateError("patient %d has no dossier medical", rendezVous.PatientID)
	}

	var consultation models.Consultation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		rendezVousRepo := s.rendezVousRepo.WithTx(tx)
		salleRepo := s.salleRepo.WithTx(tx)

		started, err := rendezVousRepo.UpdateStatutIf(ctx, rendezVousID,
			[]models.StatutRDV{models.RDVConfirme}, models.RDVEnCours)
		if err != nil {
			return err
		}
		if !started {
			return utils.ConflictError("consultation already started for rendez-vous %d", rendezVousID)
		}

		if err := salleRepo.UpdateStatut(ctx, salle.ID, models.SalleOccupee); err != nil {
			return err
		}

		consultation = s.buildConsultation(input, medecinID)
		consultation.RendezVousID = &rendezVous.ID
		consultation.DossierMedicalID = &dossier.ID
		for i := range consultation.Prescriptions {
			consultation.Prescriptions[i].PatientID = &rendezVous.PatientID
			consultation.Prescriptions[i].DossierMedicalID = &dossier.ID
		}
		if err := s.consultationRepo.WithTx(tx).Create(ctx, &consultation); err != nil {
			return err
		}

		if len(input.Prescriptions) > 0 {
			dossier.DernierTraitement = input.Prescriptions[len(input.Prescriptions)-1].Medicaments
			if err := s.patientRepo.WithTx(tx).SaveDossier(ctx, dossier); err != nil {
				return err
			}
		}

		finished, err := rendezVousRepo.UpdateStatutIf(ctx, rendezVousID,
			[]models.StatutRDV{models.RDVEnCours}, models.RDVTermine)
		if err != nil {
			return err
		}
		if !finished {
			return utils.InvalidStateError("rendez-vous %d changed status during consultation", rendezVousID)
		}

		return salleRepo.UpdateStatut(ctx, salle.ID, models.SalleDisponible)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.RecordAction(ctx, fmt.Sprintf("Consultation %d réalisée pour le rendez-vous %d", consultation.ID, rendezVousID))
	s.stats.RefreshAll(ctx)
	return s.consultationRepo.GetByID(ctx, consultation.ID)
}

// CreateUrgence records an emergency consultation without a rendez-vous,
// performed by the given medecin. The consultation is never linked to a
// dossier medical at creation and its prescriptions carry only the
// consultation and medecin links; the facture is generated IMPAYEE at the
// tariff of the medecin's service and settled through the payment flow.
func (s *ConsultationService) CreateUrgence(ctx context.Context, medecinID uint, input ConsultationInput) (*models.Consultation, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}

	medecin, err := s.utilisateurs.GetByID(ctx, medecinID)
	if err != nil {
		return nil, err
	}
	if medecin.Role != models.RoleMedecin {
		return nil, utils.ValidationError("utilisateur %d is not a medecin", medecinID)
	}

	montant := models.TarifPourService(models.MedecineGenerale)
	if medecin.ServiceMedical != nil {
		montant = models.TarifPourService(*medecin.ServiceMedical)
	}

	var consultation models.Consultation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		consultation = s.buildConsultation(input, medecinID)
		if err := s.consultationRepo.WithTx(tx).Create(ctx, &consultation); err != nil {
			return err
		}

		_, err := s.factures.GenerateForConsultation(ctx, tx, &consultation, montant)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.recorder.RecordAction(ctx, fmt.Sprintf("Consultation d'urgence %d réalisée", consultation.ID))
	s.stats.RefreshAll(ctx)
	return s.consultationRepo.GetByID(ctx, consultation.ID)
}

func (s *ConsultationService) buildConsultation(input ConsultationInput, medecinID uint) models.Consultation {
	consultation := models.Consultation{
		Poids:             input.Poids,
		Taille:            input.Taille,
		Temperature:       input.Temperature,
		TensionArterielle: input.TensionArterielle,
		Motifs:            input.Motifs,
		CompteRendu:       input.CompteRendu,
		Diagnostic:        input.Diagnostic,
		MedecinID:         medecinID,
	}
	for _, prescription := range input.Prescriptions {
		consultation.Prescriptions = append(consultation.Prescriptions, models.Prescription{
			TypePrescription:  prescription.TypePrescription,
			Medicaments:       prescription.Medicaments,
			Instructions:      prescription.Instructions,
			DureePrescription: prescription.DureePrescription,
			Quantite:          prescription.Quantite,
			MedecinID:         medecinID,
		})
	}
	return consultation
}

// Update amends the findings of an existing consultation. Measurements and
// prescriptions are part of the encounter record and stay as captured.
func (s *ConsultationService) Update(ctx context.Context, id uint, compteRendu, diagnostic string) (*models.Consultation, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if compteRendu != "" {
		consultation.CompteRendu = compteRendu
	}
	if diagnostic != "" {
		consultation.Diagnostic = diagnostic
	}
	if err := s.consultationRepo.Save(ctx, consultation); err != nil {
		return nil, err
	}
	s.recorder.RecordAction(ctx, fmt.Sprintf("Modification de la consultation %d", id))
	return s.consultationRepo.GetByID(ctx, id)
}

// AddPrescription appends a prescription to a consultation after the fact and
// updates the dossier's last treatment. The consultation must be linked to a
// dossier medical; a dossier-less emergency consultation cannot receive
// prescriptions until the patient's chart is attached.
func (s *ConsultationService) AddPrescription(ctx context.Context, consultationID uint, input PrescriptionInput) (*models.Consultation, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}

	consultation, err := s.consultationRepo.GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation.DossierMedicalID == nil {
		return nil, utils.InvalidStateError("cannot add a prescription to a consultation without a linked dossier medical")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		dossier, err := s.patientRepo.WithTx(tx).GetDossierByID(ctx, *consultation.DossierMedicalID)
		if err != nil {
			return err
		}
		prescription := models.Prescription{
			TypePrescription:  input.TypePrescription,
			Medicaments:       input.Medicaments,
			Instructions:      input.Instructions,
			DureePrescription: input.DureePrescription,
			Quantite:          input.Quantite,
			ConsultationID:    consultation.ID,
			MedecinID:         consultation.MedecinID,
			PatientID:         &dossier.PatientID,
			DossierMedicalID:  consultation.DossierMedicalID,
		}
		if err := tx.WithContext(ctx).Create(&prescription).Error; err != nil {
			return err
		}
		dossier.DernierTraitement = input.Medicaments
		return s.patientRepo.WithTx(tx).SaveDossier(ctx, dossier)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.RecordAction(ctx, fmt.Sprintf("Prescription ajoutée à la consultation %d", consultationID))
	return s.consultationRepo.GetByID(ctx, consultationID)
}

func (s *ConsultationService) GetByID(ctx context.Context, id uint) (*models.Consultation, error) {
	return s.consultationRepo.GetByID(ctx, id)
}

func (s *ConsultationService) GetAll(ctx context.Context) ([]models.Consultation, error) {
	return s.consultationRepo.GetAll(ctx)
}

// FindByRendezVousID returns the consultation performed for a rendez-vous.
func (s *ConsultationService) FindByRendezVousID(ctx context.Context, rendezVousID uint) (*models.Consultation, error) {
	consultation, err := s.consultationRepo.FindByRendezVousID(ctx, rendezVousID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, utils.NotFoundError("consultation for rendez-vous", rendezVousID)
	}
	return s.consultationRepo.GetByID(ctx, consultation.ID)
}

// Delete erases a consultation. Its facture, if paid, stays as an accounting
// record; an unpaid facture goes with it.
func (s *ConsultationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.consultationRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		factureRepo := s.factures.factureRepo.WithTx(tx)
		facture, err := factureRepo.FindByConsultationID(ctx, id)
		if err != nil {
			return err
		}
		if facture != nil && facture.StatutPaiement == models.FactureImpayee {
			if err := factureRepo.Delete(ctx, facture.ID); err != nil {
				return err
			}
		}
		if err := tx.WithContext(ctx).Delete(&models.Prescription{}, "consultation_id = ?", id).Error; err != nil {
			return err
		}
		return s.consultationRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.recorder.RecordAction(ctx, fmt.Sprintf("Suppression de la consultation %d", id))
	s.stats.RefreshAll(ctx)
	return nil
}
