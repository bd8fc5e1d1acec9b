package services

import (
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures never disclose which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (input LoginInput) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.Email, validation.Required, is.Email),
		validation.Field(&input.Password, validation.Required),
	)
}

// LoginResult carries the PASETO token pair and the authenticated account.
type LoginResult struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	Utilisateur  models.Utilisateur `json:"utilisateur"`
}

type AuthService struct {
	utilisateurs *repositories.UtilisateurRepository
	recorder     ActionRecorder
}

func NewAuthService(utilisateurs *repositories.UtilisateurRepository, recorder ActionRecorder) *AuthService {
	return &AuthService{utilisateurs: utilisateurs, recorder: recorder}
}

// Login verifies the credentials and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, utils.ValidationError("%v", err)
	}

	utilisateur, err := s.utilisateurs.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if utilisateur == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(utilisateur.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(utilisateur.ID, utilisateur.Role)
	if err != nil {
		return nil, err
	}

	s.recorder.RecordAction(utils.WithActor(ctx, utilisateur.ID, utilisateur.Role), "Connexion")
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Utilisateur:  *utilisateur,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	utilisateur, err := s.utilisateurs.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, err := utils.GenerateTokens(utilisateur.ID, utilisateur.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Utilisateur:  *utilisateur,
	}, nil
}
