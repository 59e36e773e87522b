package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/consultation"
)

// ======================================================
// HANDLER
// ======================================================

type ConsultationHandler struct {
	engine *consultation.Engine
}

func NewConsultationHandler(engine *consultation.Engine) *ConsultationHandler {
	return &ConsultationHandler{engine: engine}
}

// ======================================================
// REQUESTS
// ======================================================

// Dates travel as RFC 3339 instants.
type CreateConsultationRequest struct {
	ClientID       models.LinkID `json:"client_id" binding:"required"`
	ProfessionalID models.LinkID `json:"professional_id" binding:"required"`
	TreatmentID    uuid.UUID     `json:"treatment_id" binding:"required"`
	DateTime       time.Time     `json:"date_time" binding:"required"`
	Status         string        `json:"status"`
}

type UpdateConsultationRequest struct {
	ClientID       *models.LinkID `json:"client_id"`
	ProfessionalID *models.LinkID `json:"professional_id"`
	TreatmentID    *uuid.UUID     `json:"treatment_id"`
	DateTime       *time.Time     `json:"date_time"`
	Status         *string        `json:"status"`
}

// ======================================================
// WRITE
// ======================================================

func (h *ConsultationHandler) Create(c *gin.Context) {
	var req CreateConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.engine.Create(c.Request.Context(), consultation.CreateInput{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		TreatmentID:    req.TreatmentID,
		DateTime:       req.DateTime,
		Status:         req.Status,
		Actor:          actorID(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewConsultationView(*created))
}

func (h *ConsultationHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.engine.Update(c.Request.Context(), id, consultation.UpdateInput{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		TreatmentID:    req.TreatmentID,
		DateTime:       req.DateTime,
		Status:         req.Status,
		Actor:          actorID(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewConsultationView(*updated))
}

func (h *ConsultationHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.engine.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// READ
// ======================================================

func (h *ConsultationHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	view, err := h.engine.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *ConsultationHandler) ListAll(c *gin.Context) {
	list, err := h.engine.ListAll(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ConsultationHandler) ListByClient(c *gin.Context) {
	clientID, ok := linkIDParam(c, "clientId")
	if !ok {
		return
	}

	list, err := h.engine.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ConsultationHandler) ListByProfessional(c *gin.Context) {
	professionalID, ok := linkIDParam(c, "professionalId")
	if !ok {
		return
	}

	list, err := h.engine.ListByProfessional(c.Request.Context(), professionalID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}
