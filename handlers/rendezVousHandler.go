package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/services"
	"GestionClinique/utils"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		middlewares.HttpError(c, fmt.Sprintf("Invalid %s", name), http.StatusBadRequest, err)
		return 0, false
	}
	return uint(id), true
}

// respondList writes 204 for empty collections, 200 otherwise.
func respondList[T any](c *gin.Context, items []T) {
	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	middlewares.RespondJSON(c, items, http.StatusOK)
}

type RendezVousHandler struct {
	service *services.RendezVousService
}

func NewRendezVousHandler(service *services.RendezVousService) *RendezVousHandler {
	return &RendezVousHandler{service: service}
}

func (h *RendezVousHandler) Create(c *gin.Context) {
	var input services.RendezVousInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	rendezVous, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, rendezVous, http.StatusCreated)
}

func (h *RendezVousHandler) GetAll(c *gin.Context) {
	rendezVous, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, rendezVous)
}

func (h *RendezVousHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rendezVous, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, rendezVous, http.StatusOK)
}

func (h *RendezVousHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.RendezVousInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	rendezVous, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, rendezVous, http.StatusOK)
}

func (h *RendezVousHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rendezVous, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, rendezVous, http.StatusOK)
}

func (h *RendezVousHandler) Delete(c *gin.Context) {
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

// CancelOld runs the expiry sweep over stale EN_ATTENTE rendez-vous.
func (h *RendezVousHandler) CancelOld(c *gin.Context) {
	cancelled, err := h.service.SweepExpired(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"cancelled": cancelled}, http.StatusOK)
}

func (h *RendezVousHandler) GetByJour(c *gin.Context) {
	rendezVous, err := h.service.FindByJour(c.Request.Context(), c.Param("jour"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, rendezVous)
}

func (h *RendezVousHandler) GetByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		middlewares.HttpError(c, "Invalid year", http.StatusBadRequest, err)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		middlewares.HttpError(c, "Invalid month", http.StatusBadRequest, err)
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	rendezVous, err := h.service.FindByPeriode(c.Request.Context(),
		first.Format(utils.JourLayout), last.Format(utils.JourLayout))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, rendezVous)
}

// GetConfirmesByMedecin lists a medecin's confirmed rendez-vous between the
// from and to query dates, defaulting to today.
func (h *RendezVousHandler) GetConfirmesByMedecin(c *gin.Context) {
	medecinID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	today := time.Now().Format(utils.JourLayout)
	from := c.DefaultQuery("from", today)
	to := c.DefaultQuery("to", today)

	rendezVous, err := h.service.FindConfirmesByMedecin(c.Request.Context(), medecinID, from, to)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, rendezVous)
}

// CheckDisponibilite reports whether a slot is free for the medecin and salle
// given in query parameters.
func (h *RendezVousHandler) CheckDisponibilite(c *gin.Context) {
	medecinID, err := strconv.ParseUint(c.Query("medecinId"), 10, 32)
	if err != nil {
		middlewares.HttpError(c, "Invalid medecinId", http.StatusBadRequest, err)
		return
	}
	salleID, err := strconv.ParseUint(c.Query("salleId"), 10, 32)
	if err != nil {
		middlewares.HttpError(c, "Invalid salleId", http.StatusBadRequest, err)
		return
	}

	disponible, err := h.service.CheckDisponibilite(c.Request.Context(),
		c.Query("jour"), c.Query("heure"), uint(medecinID), uint(salleID))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"disponible": disponible}, http.StatusOK)
}
