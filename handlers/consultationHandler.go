package handlers

import (
	"GestionClinique/middlewares"
	"GestionClinique/services"
	"GestionClinique/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ConsultationHandler struct {
	service *services.ConsultationService
}

func NewConsultationHandler(service *services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{service: service}
}

// Start runs a consultation for a paid, confirmed rendez-vous. The
// authenticated medecin performs the encounter.
func (h *ConsultationHandler) Start(c *gin.Context) {
	rendezVousID, ok := parseIDParam(c, "rendezVousId")
	if !ok {
		return
	}
	medecinID := utils.ActorIDFromContext(c.Request.Context())
	if medecinID == nil {
		middlewares.HttpError(c, "Authentication required", http.StatusUnauthorized, nil)
		return
	}
	var input services.ConsultationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	consultation, err := h.service.Start(c.Request.Context(), rendezVousID, *medecinID, input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, consultation, http.StatusCreated)
}

// CreateUrgence records an emergency walk-in consultation performed by the
// authenticated medecin.
func (h *ConsultationHandler) CreateUrgence(c *gin.Context) {
	medecinID := utils.ActorIDFromContext(c.Request.Context())
	if medecinID == nil {
		middlewares.HttpError(c, "Authentication required", http.StatusUnauthorized, nil)
		return
	}
	var input services.ConsultationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	consultation, err := h.service.CreateUrgence(c.Request.Context(), *medecinID, input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, consultation, http.StatusCreated)
}

func (h *ConsultationHandler) GetAll(c *gin.Context) {
	consultations, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, consultations)
}

func (h *ConsultationHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	consultation, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, consultation, http.StatusOK)
}

// GetByRendezVous returns the consultation performed for a rendez-vous.
func (h *ConsultationHandler) GetByRendezVous(c *gin.Context) {
	id, ok := parseIDParam(c, "rendezVousId")
	if !ok {
		return
	}
	consultation, err := h.service.FindByRendezVousID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, consultation, http.StatusOK)
}

type consultationUpdateInput struct {
	CompteRendu string `json:"compte_rendu"`
	Diagnostic  string `json:"diagnostic"`
}

func (h *ConsultationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input consultationUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	consultation, err := h.service.Update(c.Request.Context(), id, input.CompteRendu, input.Diagnostic)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, consultation, http.StatusOK)
}

func (h *ConsultationHandler) Delete(c *gin.Context) {
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

// AddPrescription appends a prescription to an existing consultation.
func (h *ConsultationHandler) AddPrescription(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.PrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	consultation, err := h.service.AddPrescription(c.Request.Context(), id, input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, consultation, http.StatusCreated)
}

// GetPrescriptions lists the prescriptions of a consultation.
func (h *ConsultationHandler) GetPrescriptions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	consultation, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	respondList(c, consultation.Prescriptions)
}
