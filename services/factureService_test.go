package services

import (
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayerFacture(t *testing.T) {
	t.Run("settles the facture and confirms the rendez-vous", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)

		paid := env.payRendezVous(t, rendezVous.ID)
		assert.Equal(t, models.FacturePayee, paid.StatutPaiement)
		assert.Equal(t, models.PaiementEspeces, paid.ModePaiement)

		confirmed, err := env.rendezVousRepo.GetByID(context.Background(), rendezVous.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RDVConfirme, confirmed.Statut)
	})

	t.Run("rejects a second payment", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		paid := env.payRendezVous(t, rendezVous.ID)

		_, err := env.factures.Payer(context.Background(), paid.ID, models.PaiementCheque)
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))

		// The original payment mode stays.
		facture, err := env.factureRepo.GetByID(context.Background(), paid.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaiementEspeces, facture.ModePaiement)
	})

	t.Run("rejects an unknown payment mode", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		facture, err := env.factureRepo.FindByRendezVousID(context.Background(), rendezVous.ID)
		require.NoError(t, err)

		_, err = env.factures.Payer(context.Background(), facture.ID, "TROC")
		require.Error(t, err)
		assert.True(t, utils.IsValidation(err))
	})

	t.Run("returns not found for a missing facture", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.factures.Payer(context.Background(), 9999, models.PaiementEspeces)
		require.Error(t, err)
		assert.True(t, utils.IsNotFound(err))
	})
}

func TestFactureExclusivity(t *testing.T) {
	t.Run("refuses a second facture for the same rendez-vous", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)

		_, err := env.factures.GenerateForRendezVous(context.Background(), env.db, rendezVous)
		require.Error(t, err)
		assert.True(t, utils.IsConflict(err))
	})
}

func TestDeleteFacture(t *testing.T) {
	t.Run("deletes an unpaid facture", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		facture, err := env.factureRepo.FindByRendezVousID(context.Background(), rendezVous.ID)
		require.NoError(t, err)

		require.NoError(t, env.factures.Delete(context.Background(), facture.ID))

		_, err = env.factureRepo.GetByID(context.Background(), facture.ID)
		require.Error(t, err)
		assert.True(t, utils.IsNotFound(err))
	})

	t.Run("refuses to delete a paid facture", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		rendezVous := env.bookRendezVous(t, jour, heure)
		paid := env.payRendezVous(t, rendezVous.ID)

		err := env.factures.Delete(context.Background(), paid.ID)
		require.Error(t, err)
		assert.True(t, utils.IsInvalidState(err))
	})
}

func TestFindFactures(t *testing.T) {
	t.Run("filters by payment status", func(t *testing.T) {
		env := newTestEnv(t)
		jour, heure := futureSlot(3)
		first := env.bookRendezVous(t, jour, heure)
		env.payRendezVous(t, first.ID)

		otherJour, otherHeure := futureSlot(4)
		env.bookRendezVous(t, otherJour, otherHeure)

		impayees, err := env.factures.FindByStatut(context.Background(), models.FactureImpayee)
		require.NoError(t, err)
		assert.Len(t, impayees, 1)

		payees, err := env.factures.FindByStatut(context.Background(), models.FacturePayee)
		require.NoError(t, err)
		assert.Len(t, payees, 1)
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.factures.FindByStatut(context.Background(), "EN_RETARD")
		require.Error(t, err)
		assert.True(t, utils.IsValidation(err))
	})
}
