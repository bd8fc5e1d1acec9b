package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UtilisateurHandler struct {
	service *services.UtilisateurService
}

func NewUtilisateurHandler(service *services.UtilisateurService) *UtilisateurHandler {
	return &UtilisateurHandler{service: service}
}

func (h *UtilisateurHandler) Create(c *gin.Context) {
	var input services.UtilisateurInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	utilisateur, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, utilisateur, http.StatusCreated)
}

func (h *UtilisateurHandler) GetAll(c *gin.Context) {
	utilisateurs, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, utilisateurs)
}

// GetMedecins lists the accounts bookable as rendez-vous medecins.
func (h *UtilisateurHandler) GetMedecins(c *gin.Context) {
	medecins, err := h.service.GetMedecins(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, medecins)
}

func (h *UtilisateurHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	utilisateur, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, utilisateur, http.StatusOK)
}

func (h *UtilisateurHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.UtilisateurInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	utilisateur, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, utilisateur, http.StatusOK)
}

func (h *UtilisateurHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
