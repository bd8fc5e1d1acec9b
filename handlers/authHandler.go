package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/services"
	"GestionClinique/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login verifies credentials and returns a PASETO token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			middlewares.HttpError(c, "Invalid email or password", http.StatusUnauthorized, err)
			return
		}
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a refresh token for a new token pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || utils.IsNotFound(err) {
			middlewares.HttpError(c, "Invalid refresh token", http.StatusUnauthorized, err)
			return
		}
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}
