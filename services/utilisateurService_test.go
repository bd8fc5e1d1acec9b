package services

import (
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUtilisateurService(t *testing.T) {
	t.Run("stores a bcrypt hash, never the password", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewUtilisateurService(env.utilisateurRepo, env.recorder)

		created, err := service.Create(context.Background(), UtilisateurInput{
			Nom:      "Diop",
			Prenom:   "Cheikh",
			Email:    "diop@clinique.test",
			Password: "motdepasse123",
			Role:     models.RoleSecretaire,
		})
		require.NoError(t, err)
		assert.NotEqual(t, "motdepasse123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("motdepasse123")))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewUtilisateurService(env.utilisateurRepo, env.recorder)

		input := UtilisateurInput{
			Nom:      "Diop",
			Prenom:   "Cheikh",
			Email:    "diop@clinique.test",
			Password: "motdepasse123",
			Role:     models.RoleSecretaire,
		}
		_, err := service.Create(context.Background(), input)
		require.NoError(t, err)

		_, err = service.Create(context.Background(), input)
		require.Error(t, err)
		assert.True(t, utils.IsConflict(err))
	})

	t.Run("requires a medical service for medecins", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewUtilisateurService(env.utilisateurRepo, env.recorder)

		_, err := service.Create(context.Background(), UtilisateurInput{
			Nom:      "Fall",
			Prenom:   "Mariama",
			Email:    "fall@clinique.test",
			Password: "motdepasse123",
			Role:     models.RoleMedecin,
		})
		require.Error(t, err)
		assert.True(t, utils.IsValidation(err))
	})

	t.Run("lists only medecins", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewUtilisateurService(env.utilisateurRepo, env.recorder)

		_, err := service.Create(context.Background(), UtilisateurInput{
			Nom:      "Diop",
			Prenom:   "Cheikh",
			Email:    "diop@clinique.test",
			Password: "motdepasse123",
			Role:     models.RoleSecretaire,
		})
		require.NoError(t, err)

		medecins, err := service.GetMedecins(context.Background())
		require.NoError(t, err)
		// Only the fixture medecin qualifies.
		require.Len(t, medecins, 1)
		assert.Equal(t, env.medecin.ID, medecins[0].ID)
	})
}

func TestAuthService(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	newAccount := func(t *testing.T, env *testEnv) {
		t.Helper()
		service := NewUtilisateurService(env.utilisateurRepo, env.recorder)
		_, err := service.Create(context.Background(), UtilisateurInput{
			Nom:      "Diop",
			Prenom:   "Cheikh",
			Email:    "diop@clinique.test",
			Password: "motdepasse123",
			Role:     models.RoleAdmin,
		})
		require.NoError(t, err)
	}

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		env := newTestEnv(t)
		newAccount(t, env)
		auth := NewAuthService(env.utilisateurRepo, env.recorder)

		result, err := auth.Login(context.Background(), LoginInput{
			Email:    "diop@clinique.test",
			Password: "motdepasse123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)

		claims, err := utils.ValidateToken(result.AccessToken, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, result.Utilisateur.ID, claims.UserID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		newAccount(t, env)
		auth := NewAuthService(env.utilisateurRepo, env.recorder)

		_, err := auth.Login(context.Background(), LoginInput{
			Email:    "diop@clinique.test",
			Password: "mauvais-mot-de-passe",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email the same way", func(t *testing.T) {
		env := newTestEnv(t)
		auth := NewAuthService(env.utilisateurRepo, env.recorder)

		_, err := auth.Login(context.Background(), LoginInput{
			Email:    "inconnu@clinique.test",
			Password: "motdepasse123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("refreshes a token pair", func(t *testing.T) {
		env := newTestEnv(t)
		newAccount(t, env)
		auth := NewAuthService(env.utilisateurRepo, env.recorder)

		result, err := auth.Login(context.Background(), LoginInput{
			Email:    "diop@clinique.test",
			Password: "motdepasse123",
		})
		require.NoError(t, err)

		refreshed, err := auth.Refresh(context.Background(), result.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.Equal(t, result.Utilisateur.ID, refreshed.Utilisateur.ID)
	})
}
