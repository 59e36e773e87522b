package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/treatment"
)

type TreatmentHandler struct {
	catalog *treatment.Catalog
}

func NewTreatmentHandler(catalog *treatment.Catalog) *TreatmentHandler {
	return &TreatmentHandler{catalog: catalog}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTreatmentRequest struct {
	Name            string         `json:"name" binding:"required"`
	Description     *string        `json:"description"`
	DurationMinutes int            `json:"duration_minutes" binding:"required"`
	Price           float64        `json:"price" binding:"required"`
	ProfessionalID  *models.LinkID `json:"professional_id"`
}

type UpdateTreatmentRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes"`
	Price           *float64 `json:"price"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *TreatmentHandler) Create(c *gin.Context) {
	var req CreateTreatmentRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.catalog.Create(c.Request.Context(), treatment.CreateInput{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		ProfessionalID:  req.ProfessionalID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, t)
}

func (h *TreatmentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	t, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *TreatmentHandler) List(c *gin.Context) {
	list, err := h.catalog.FindMany(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *TreatmentHandler) ListByProfessional(c *gin.Context) {
	professionalID, ok := linkIDParam(c, "professionalId")
	if !ok {
		return
	}

	list, err := h.catalog.FindByProfessional(c.Request.Context(), professionalID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *TreatmentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTreatmentRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.catalog.Update(c.Request.Context(), id, treatment.UpdateInput{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *TreatmentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// --------------------------------------------------
// Professional links
// --------------------------------------------------

func (h *TreatmentHandler) AddProfessional(c *gin.Context) {
	treatmentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	professionalID, ok := linkIDParam(c, "professionalId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.catalog.LinkProfessional(ctx, treatmentID, professionalID); err != nil {
		httperr.FromError(c, err)
		return
	}

	t, err := h.catalog.Get(ctx, treatmentID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *TreatmentHandler) RemoveProfessional(c *gin.Context) {
	treatmentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	professionalID, ok := linkIDParam(c, "professionalId")
	if !ok {
		return
	}

	if err := h.catalog.UnlinkProfessional(c.Request.Context(), treatmentID, professionalID); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
