package services

import (
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalleService(t *testing.T) {
	t.Run("seeds one salle per medical service", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewSalleService(env.salleRepo, env.recorder)

		salles, err := service.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, salles, 6)
		for _, salle := range salles {
			assert.Equal(t, models.SalleDisponible, salle.StatutSalle)
		}
	})

	t.Run("finds the designated salle of a service", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewSalleService(env.salleRepo, env.recorder)

		salle, err := service.FindByServiceMedical(context.Background(), models.Radiologie)
		require.NoError(t, err)
		assert.Equal(t, models.Radiologie, salle.ServiceMedical)
	})

	t.Run("rejects a duplicate room number", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewSalleService(env.salleRepo, env.recorder)

		_, err := service.Create(context.Background(), SalleInput{
			NumeroSalle:    "S-101",
			ServiceMedical: models.MedecineGenerale,
		})
		require.Error(t, err)
		assert.True(t, utils.IsConflict(err))
	})

	t.Run("flips the occupancy status", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewSalleService(env.salleRepo, env.recorder)

		updated, err := service.UpdateStatut(context.Background(), env.salle.ID, models.SalleOccupee)
		require.NoError(t, err)
		assert.Equal(t, models.SalleOccupee, updated.StatutSalle)

		_, err = service.UpdateStatut(context.Background(), env.salle.ID, "EN_TRAVAUX")
		require.Error(t, err)
		assert.True(t, utils.IsValidation(err))
	})
}
