package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/models"
	"GestionClinique/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SalleHandler struct {
	service *services.SalleService
}

func NewSalleHandler(service *services.SalleService) *SalleHandler {
	return &SalleHandler{service: service}
}

func (h *SalleHandler) Create(c *gin.Context) {
	var input services.SalleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	salle, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, salle, http.StatusCreated)
}

func (h *SalleHandler) GetAll(c *gin.Context) {
	salles, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, salles)
}

func (h *SalleHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	salle, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, salle, http.StatusOK)
}

// GetByService returns the designated salle of a medical service.
func (h *SalleHandler) GetByService(c *gin.Context) {
	salle, err := h.service.FindByServiceMedical(c.Request.Context(),
		models.ServiceMedical(c.Param("service")))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, salle, http.StatusOK)
}

type salleStatutInput struct {
	StatutSalle models.StatutSalle `json:"statut_salle"`
}

// UpdateStatut flips the occupancy status of a salle by hand.
func (h *SalleHandler) UpdateStatut(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input salleStatutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	salle, err := h.service.UpdateStatut(c.Request.Context(), id, input.StatutSalle)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, salle, http.StatusOK)
}
