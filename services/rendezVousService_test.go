package services

import (
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRendezVous(t *testing.T) {
	t.Run("books the slot and generates an unpaid facture", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)

		rendezVous := env.bookRendezVous(t, jour, heure)
		assert.Equal(t, models.RDVEnAttente, rendezVous.Statut)
		assert.Equal(t, env.salle.ID, rendezVous.SalleID)

		facture, err := env.factureRepo.FindByRendezVousID(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		require.NotNil(t, facture)
		assert.Equal(t, models.FactureImpayee, facture.StatutPaiement)
		assert.Equal(t, models.TarifPourService(models.Cardiologie), facture.Montant)

		assert.Equal(t, 1, env.notifier.notified)
		assert.NotEmpty(t, env.recorder.actions)
	})

	t.Run("rejects a second booking of the same medecin slot", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		env.bookRendezVous(t, jour, heure)

		autre := env.createPatient(t, "Traore", "Moussa")
		_, err := env.rendezVous.Create(context.Background(), RendezVousInput{
			Jour:           jour,
			Heure:          heure,
			ServiceMedical: models.Cardiologie,
			PatientID:      autre.ID,
			MedecinID:      env.medecin.ID,
		})
		require.Error(t, err)
		assert.True(t, utils.IsConflict(err))
	})

	t.Run("rejects a second booking of the same salle slot", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		env.bookRendezVous(t, jour, heure)

		confrere := env.createMedecin(t, "sow@clinique.test", models.Cardiologie)
		_, err := env.rendezVous.Create(context.Background(), RendezVousInput{
			Jour:           jour,
			Heure:          heure,
			ServiceMedical: models.Cardiologie,
			PatientID:      env.patient.ID,
			MedecinID:      confrere.ID,
		})
		require.Error(t, err)
		assert.True(t, utils.IsConflict(err))
	})

	t.Run("frees the slot after cancellation", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		first := env.bookRendezVous(t, jour, heure)

		_, err := env.rendezVous.Cancel(context.Background(), first.ID)
		require.NoError(t, err)

		second := env.bookRendezVous(t, jour, heure)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("rejects a slot in the past", func(t *testing.T) {
		env := newTestEnv(t)
		jour := time.Now().AddDate(0, 0, -2).Format(utils.JourLayout)

		_, err := env.rendezVous.Create(context.Background(), RendezVousInput{
			Jour:           jour,
			Heure:          "10:00",
			ServiceMedical: models.Cardiologie,
			PatientID:      env.patient.ID,
			MedecinID:      env.medecin.ID,
		})
		require.Error(t, err)
		assert.True(t, utils.IsValidation(err))
	})

	t.Run("rejects an unknown patient", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)

		_, err := env.rendezVous.Create(context.Background(), RendezVousInput{
			Jour:           jour,
			Heure:          heure,
			ServiceMedical: models.Cardiologie,
			PatientID:      9999,
			MedecinID:      env.medecin.ID,
		})
		require.Error(t, err)
		assert.True(t, utils.IsNotFound(err))
	})
}

func TestCancelRendezVous(t *testing.T) {
	t.Run("cancels a pending rendez-vous and drops its unpaid facture", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)

		cancelled, err := env.rendezVous.Cancel(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RDVAnnule, cancelled.Statut)

		facture, err := env.factureRepo.FindByRendezVousID(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		assert.Nil(t, facture)
	})

	t.Run("cancels a confirmed rendez-vous but keeps the paid facture", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		env.payRendezVous(t, rendezVous.ID)

		cancelled, err := env.rendezVous.Cancel(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RDVAnnule, cancelled.Statut)

		facture, err := env.factureRepo.FindByRendezVousID(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		require.NotNil(t, facture)
		assert.Equal(t, models.FacturePayee, facture.StatutPaiement)
	})

	t.Run("refuses to cancel twice", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)

		_, err := env.rendezVous.Cancel(context.Background(), rendezVous.ID)
		require.NoError(t, err)

		_, err = env.rendezVous.Cancel(context.Background(), rendezVous.ID)
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))
	})

	t.Run("refuses to cancel a past rendez-vous", func(t *testing.T) {
		env := newTestEnv(t)
		past := &models.RendezVous{
			Jour:           time.Now().AddDate(0, 0, -3).Format(utils.JourLayout),
			Heure:          "09:00",
			Statut:         models.RDVConfirme,
			ServiceMedical: models.Cardiologie,
			PatientID:      env.patient.ID,
			MedecinID:      env.medecin.ID,
			SalleID:        env.salle.ID,
		}
		require.NoError(t, env.rendezVousRepo.Create(context.Background(), past))

		_, err := env.rendezVous.Cancel(context.Background(), past.ID)
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))
	})
}

func TestUpdateRendezVous(t *testing.T) {
	t.Run("reschedules to a free slot", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)

		newJour, _ := futureSlot(5)
		updated, err := env.rendezVous.Update(context.Background(), rendezVous.ID, RendezVousInput{
			Jour:           newJour,
			Heure:          "14:30",
			ServiceMedical: models.Cardiologie,
			PatientID:      env.patient.ID,
			MedecinID:      env.medecin.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, newJour, updated.Jour)
		assert.Equal(t, "14:30", updated.Heure)
	})

	t.Run("keeps terminal rendez-vous immutable", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		_, err := env.rendezVous.Cancel(context.Background(), rendezVous.ID)
		require.NoError(t, err)

		newJour, _ := futureSlot(5)
		_, err = env.rendezVous.Update(context.Background(), rendezVous.ID, RendezVousInput{
			Jour:           newJour,
			Heure:          "14:30",
			ServiceMedical: models.Cardiologie,
			PatientID:      env.patient.ID,
			MedecinID:      env.medecin.ID,
		})
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))
	})

	t.Run("rejects moving onto an occupied slot", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		env.bookRendezVous(t, jour, heure)

		otherJour, otherHeure := futureSlot(4)
		second := env.bookRendezVous(t, otherJour, otherHeure)

		_, err := env.rendezVous.Update(context.Background(), second.ID, RendezVousInput{
			Jour:           jour,
			Heure:          heure,
			ServiceMedical: models.Cardiologie,
			PatientID:      env.patient.ID,
			MedecinID:      env.medecin.ID,
		})
		require.Error(t, err)
		assert.True(t, utils.IsConflict(err))
	})
}

func TestDeleteRendezVous(t *testing.T) {
	t.Run("deletes a future rendez-vous together with its facture", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)

		require.NoError(t, env.rendezVous.Delete(context.Background(), rendezVous.ID))

		_, err := env.rendezVousRepo.GetByID(context.Background(), rendezVous.ID)
		require.Error(t, err)
		assert.True(t, utils.IsNotFound(err))

		facture, err := env.factureRepo.FindByRendezVousID(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		assert.Nil(t, facture)
	})

	t.Run("refuses when a consultation exists", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)

		consultation := &models.Consultation{
			Poids:             70,
			Taille:            1.75,
			Temperature:       37.0,
			TensionArterielle: "12/8",
			Motifs:            "Suivi",
			MedecinID:         env.medecin.ID,
			RendezVousID:      &rendezVous.ID,
		}
		require.NoError(t, env.consultationRepo.Create(context.Background(), consultation))

		err := env.rendezVous.Delete(context.Background(), rendezVous.ID)
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))
	})

	t.Run("refuses a past rendez-vous", func(t *testing.T) {
		env := newTestEnv(t)

		old := &models.RendezVous{
			Jour:           time.Now().AddDate(0, 0, -1).Format(utils.JourLayout),
			Heure:          "09:00",
			Statut:         models.RDVEnAttente,
			ServiceMedical: models.Cardiologie,
			PatientID:      env.patient.ID,
			MedecinID:      env.medecin.ID,
			SalleID:        env.salle.ID,
		}
		require.NoError(t, env.rendezVousRepo.Create(context.Background(), old))

		err := env.rendezVous.Delete(context.Background(), old.ID)
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))
	})
}

func TestSweepExpired(t *testing.T) {
	t.Run("cancels stale pending rendez-vous and drops their factures", func(t *testing.T) {
		env := newTestEnv(t)

		stale := &models.RendezVous{
			Jour:           time.Now().AddDate(0, 0, -2).Format(utils.JourLayout),
			Heure:          "09:00",
			Statut:         models.RDVEnAttente,
			ServiceMedical: models.Cardiologie,
			PatientID:      env.patient.ID,
			MedecinID:      env.medecin.ID,
			SalleID:        env.salle.ID,
		}
		require.NoError(t, env.rendezVousRepo.Create(context.Background(), stale))
		_, err := env.factures.GenerateForRendezVous(context.Background(), env.db, stale)
		require.NoError(t, err)

		jour, heure := futureSlot(3)
		fresh := env.bookRendezVous(t, jour, heure)

		cancelled, err := env.rendezVous.SweepExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, cancelled)

		swept, err := env.rendezVousRepo.GetByID(context.Background(), stale.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RDVAnnule, swept.Statut)

		facture, err := env.factureRepo.FindByRendezVousID(context.Background(), stale.ID)
		require.NoError(t, err)
		assert.Nil(t, facture)

		untouched, err := env.rendezVousRepo.GetByID(context.Background(), fresh.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RDVEnAttente, untouched.Statut)
	})

	t.Run("is a no-op when nothing is stale", func(t *testing.T) {
		env := newTestEnv(t)
		cancelled, err := env.rendezVous.SweepExpired(context.Background())
		require.NoError(t, err)
		assert.Zero(t, cancelled)
	})
}
