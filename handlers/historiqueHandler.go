package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/services"

	"github.com/gin-gonic/gin"
)

type HistoriqueHandler struct {
	service *services.HistoriqueService
}

func NewHistoriqueHandler(service *services.HistoriqueService) *HistoriqueHandler {
	return &HistoriqueHandler{service: service}
}

// GetAll lists the audit trail, newest first.
func (h *HistoriqueHandler) GetAll(c *gin.Context) {
	entries, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, entries)
}
