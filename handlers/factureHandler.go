package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/models"
	"GestionClinique/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FactureHandler struct {
	service *services.FactureService
}

func NewFactureHandler(service *services.FactureService) *FactureHandler {
	return &FactureHandler{service: service}
}

// Payer settles a facture; the payment mode comes from the path.
func (h *FactureHandler) Payer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	mode := models.ModePaiement(c.Param("mode"))

	facture, err := h.service.Payer(c.Request.Context(), id, mode)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, facture, http.StatusOK)
}

func (h *FactureHandler) GetAll(c *gin.Context) {
	factures, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, factures)
}

func (h *FactureHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	facture, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, facture, http.StatusOK)
}

func (h *FactureHandler) GetImpayees(c *gin.Context) {
	factures, err := h.service.FindByStatut(c.Request.Context(), models.FactureImpayee)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, factures)
}

func (h *FactureHandler) GetPayees(c *gin.Context) {
	factures, err := h.service.FindByStatut(c.Request.Context(), models.FacturePayee)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, factures)
}

// GetByRendezVous returns the facture billed for a rendez-vous.
func (h *FactureHandler) GetByRendezVous(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	facture, err := h.service.FindByRendezVousID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, facture, http.StatusOK)
}

func (h *FactureHandler) Delete(c *gin.Context) {
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
