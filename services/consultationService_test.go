package services

import (
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consultationInput() ConsultationInput {
	return ConsultationInput{
		Poids:             72.5,
		Taille:            1.78,
		Temperature:       37.2,
		TensionArterielle: "12/8",
		Motifs:            "Douleurs thoraciques",
		CompteRendu:       "Examen sans particularité",
		Diagnostic:        "Angine de poitrine légère",
		Prescriptions: []PrescriptionInput{
			{TypePrescription: "MEDICAMENT", Medicaments: "Aspirine 100mg", Instructions: "1 par jour", Quantite: 30},
			{TypePrescription: "MEDICAMENT", Medicaments: "Trinitrine", Instructions: "En cas de crise", Quantite: 1},
		},
	}
}

func TestStartConsultation(t *testing.T) {
	t.Run("refuses to start while the facture is unpaid", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)

		_, err := env.consultations.Start(context.Background(), rendezVous.ID, env.medecin.ID, consultationInput())
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))
		assert.Contains(t, err.Error(), "not paid")
	})

	t.Run("runs the full encounter for a paid rendez-vous", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		env.payRendezVous(t, rendezVous.ID)

		consultation, err := env.consultations.Start(context.Background(), rendezVous.ID, env.medecin.ID, consultationInput())
		require.NoError(t, err)
		require.NotNil(t, consultation.RendezVousID)
		assert.Equal(t, rendezVous.ID, *consultation.RendezVousID)
		assert.Equal(t, env.medecin.ID, consultation.MedecinID)
		require.Len(t, consultation.Prescriptions, 2)
		for _, prescription := range consultation.Prescriptions {
			require.NotNil(t, prescription.PatientID)
			assert.Equal(t, env.patient.ID, *prescription.PatientID)
			assert.NotNil(t, prescription.DossierMedicalID)
		}

		done, err := env.rendezVousRepo.GetByID(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RDVTermine, done.Statut)

		salle, err := env.salleRepo.GetByID(context.Background(), env.salle.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SalleDisponible, salle.StatutSalle)

		dossier, err := env.patientRepo.GetDossierByPatientID(context.Background(), env.patient.ID)
		require.NoError(t, err)
		require.NotNil(t, dossier)
		assert.Equal(t, "Trinitrine", dossier.DernierTraitement)
	})

	t.Run("refuses a second start on an already consulted rendez-vous", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		env.payRendezVous(t, rendezVous.ID)

		_, err := env.consultations.Start(context.Background(), rendezVous.ID, env.medecin.ID, consultationInput())
		require.NoError(t, err)

		_, err = env.consultations.Start(context.Background(), rendezVous.ID, env.medecin.ID, consultationInput())
		require.Error(t, err)
		assert.True(t, utils.IsConflict(err))
		assert.Contains(t, err.Error(), "already linked")
	})

	t.Run("refuses to start when the salle is occupied", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		env.payRendezVous(t, rendezVous.ID)

		require.NoError(t, env.salleRepo.UpdateStatut(context.Background(), env.salle.ID, models.SalleOccupee))

		_, err := env.consultations.Start(context.Background(), rendezVous.ID, env.medecin.ID, consultationInput())
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))

		// Nothing moved: the rendez-vous is still waiting.
		unchanged, err := env.rendezVousRepo.GetByID(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RDVConfirme, unchanged.Statut)
	})

	t.Run("lets a different medecin perform the encounter", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		env.payRendezVous(t, rendezVous.ID)

		remplacant := env.createMedecin(t, "traore@clinique.test", models.Cardiologie)

		consultation, err := env.consultations.Start(context.Background(), rendezVous.ID, remplacant.ID, consultationInput())
		require.NoError(t, err)
		assert.Equal(t, remplacant.ID, consultation.MedecinID)
	})

	t.Run("returns not found for a missing rendez-vous", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.consultations.Start(context.Background(), 9999, env.medecin.ID, consultationInput())
		require.Error(t, err)
		assert.True(t, utils.IsNotFound(err))
	})
}

func TestCreateUrgence(t *testing.T) {
	t.Run("records the encounter without dossier links and bills it unpaid", func(t *testing.T) {
		env := newTestEnv(t)

		consultation, err := env.consultations.CreateUrgence(context.Background(), env.medecin.ID, consultationInput())
		require.NoError(t, err)
		assert.Nil(t, consultation.RendezVousID)
		assert.Nil(t, consultation.DossierMedicalID)
		require.Len(t, consultation.Prescriptions, 2)
		for _, prescription := range consultation.Prescriptions {
			assert.Nil(t, prescription.PatientID)
			assert.Nil(t, prescription.DossierMedicalID)
			assert.Equal(t, env.medecin.ID, prescription.MedecinID)
		}

		facture, err := env.factureRepo.FindByConsultationID(context.Background(), consultation.ID)
		require.NoError(t, err)
		require.NotNil(t, facture)
		assert.Equal(t, models.FactureImpayee, facture.StatutPaiement)
		assert.Equal(t, models.TarifPourService(models.Cardiologie), facture.Montant)
	})

	t.Run("settles the facture through the payment flow", func(t *testing.T) {
		env := newTestEnv(t)

		consultation, err := env.consultations.CreateUrgence(context.Background(), env.medecin.ID, consultationInput())
		require.NoError(t, err)

		facture, err := env.factureRepo.FindByConsultationID(context.Background(), consultation.ID)
		require.NoError(t, err)
		require.NotNil(t, facture)

		paid, err := env.factures.Payer(context.Background(), facture.ID, models.PaiementMobileMoney)
		require.NoError(t, err)
		assert.Equal(t, models.FacturePayee, paid.StatutPaiement)
		assert.Equal(t, models.PaiementMobileMoney, paid.ModePaiement)
	})

	t.Run("rejects a non-medecin", func(t *testing.T) {
		env := newTestEnv(t)
		secretaire := &models.Utilisateur{
			Nom: "Ba", Prenom: "Fatou", Email: "ba@clinique.test",
			Password: "x", Role: models.RoleSecretaire,
		}
		require.NoError(t, env.utilisateurRepo.Create(context.Background(), secretaire))

		_, err := env.consultations.CreateUrgence(context.Background(), secretaire.ID, consultationInput())
		require.Error(t, err)
		assert.True(t, utils.IsValidation(err))
	})
}

func TestAddPrescription(t *testing.T) {
	t.Run("appends and updates the last treatment", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		env.payRendezVous(t, rendezVous.ID)
		consultation, err := env.consultations.Start(context.Background(), rendezVous.ID, env.medecin.ID, consultationInput())
		require.NoError(t, err)

		updated, err := env.consultations.AddPrescription(context.Background(), consultation.ID, PrescriptionInput{
			TypePrescription: "MEDICAMENT",
			Medicaments:      "Paracétamol 500mg",
			Quantite:         10,
		})
		require.NoError(t, err)
		require.Len(t, updated.Prescriptions, 3)
		for _, prescription := range updated.Prescriptions {
			require.NotNil(t, prescription.PatientID)
			assert.Equal(t, env.patient.ID, *prescription.PatientID)
		}

		dossier, err := env.patientRepo.GetDossierByPatientID(context.Background(), env.patient.ID)
		require.NoError(t, err)
		assert.Equal(t, "Paracétamol 500mg", dossier.DernierTraitement)
	})

	t.Run("refuses a consultation without a dossier medical", func(t *testing.T) {
		env := newTestEnv(t)
		consultation, err := env.consultations.CreateUrgence(context.Background(), env.medecin.ID, consultationInput())
		require.NoError(t, err)

		_, err = env.consultations.AddPrescription(context.Background(), consultation.ID, PrescriptionInput{
			TypePrescription: "MEDICAMENT",
			Medicaments:      "Paracétamol 500mg",
			Quantite:         10,
		})
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))
	})
}

func TestDeleteConsultation(t *testing.T) {
	t.Run("removes the consultation and its prescriptions, keeps the paid facture", func(t *testing.T) {
		env := newTestEnv(t)
		consultation, err := env.consultations.CreateUrgence(context.Background(), env.medecin.ID, consultationInput())
		require.NoError(t, err)

		facture, err := env.factureRepo.FindByConsultationID(context.Background(), consultation.ID)
		require.NoError(t, err)
		require.NotNil(t, facture)
		_, err = env.factures.Payer(context.Background(), facture.ID, models.PaiementCarteBancaire)
		require.NoError(t, err)

		require.NoError(t, env.consultations.Delete(context.Background(), consultation.ID))

		_, err = env.consultationRepo.GetByID(context.Background(), consultation.ID)
		require.Error(t, err)
		assert.True(t, utils.IsNotFound(err))

		kept, err := env.factureRepo.FindByConsultationID(context.Background(), consultation.ID)
		require.NoError(t, err)
		assert.NotNil(t, kept)
	})

	t.Run("drops an unpaid facture with the consultation", func(t *testing.T) {
		env := newTestEnv(t)
		consultation, err := env.consultations.CreateUrgence(context.Background(), env.medecin.ID, consultationInput())
		require.NoError(t, err)

		require.NoError(t, env.consultations.Delete(context.Background(), consultation.ID))

		facture, err := env.factureRepo.FindByConsultationID(context.Background(), consultation.ID)
		require.NoError(t, err)
		assert.Nil(t, facture)
	})
}
