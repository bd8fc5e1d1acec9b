package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetByUtilisateur lists the in-app notifications of one staff account.
func (h *NotificationHandler) GetByUtilisateur(c *gin.Context) {
	utilisateurID, ok := parseIDParam(c, "utilisateurId")
	if !ok {
		return
	}
	notifications, err := h.service.FindByUtilisateur(c.Request.Context(), utilisateurID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, notifications)
}

// MarkLu marks one notification as read.
func (h *NotificationHandler) MarkLu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkLu(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
