package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/services"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	service *services.StatService
}

func NewStatHandler(service *services.StatService) *StatHandler {
	return &StatHandler{service: service}
}

// GetJour returns today's aggregates, or the day given as ?date=YYYY-MM-DD.
func (h *StatHandler) GetJour(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			middlewares.HttpError(c, "Invalid date", http.StatusBadRequest, err)
			return
		}
		date = parsed
	}

	stat, err := h.service.GetOrCreateJour(c.Request.Context(), date)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, stat, http.StatusOK)
}

// GetMois returns the aggregates of one month of the current year.
func (h *StatHandler) GetMois(c *gin.Context) {
	mois, err := strconv.Atoi(c.Param("mois"))
	if err != nil || mois < 1 || mois > 12 {
		middlewares.HttpError(c, "Invalid month", http.StatusBadRequest, err)
		return
	}

	stat, err := h.service.GetOrCreateMois(c.Request.Context(), time.Now().Year(), mois)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, stat, http.StatusOK)
}

// GetAnnee returns the aggregates of one year.
func (h *StatHandler) GetAnnee(c *gin.Context) {
	annee, err := strconv.Atoi(c.Param("annee"))
	if err != nil {
		middlewares.HttpError(c, "Invalid year", http.StatusBadRequest, err)
		return
	}

	stat, err := h.service.GetOrCreateAnnee(c.Request.Context(), annee)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, stat, http.StatusOK)
}

// Refresh forces a recomputation of today's aggregates.
func (h *StatHandler) Refresh(c *gin.Context) {
	h.service.RefreshAll(c.Request.Context())
	c.Status(http.StatusNoContent)
}
