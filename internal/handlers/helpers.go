package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// --------------------------------------------------
// Path params
// --------------------------------------------------

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return uuid.Nil, false
	}
	return id, true
}

func userIDParam(c *gin.Context, name string) (models.UserID, bool) {
	id, err := models.ParseUserID(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return models.UserID{}, false
	}
	return id, true
}

func linkIDParam(c *gin.Context, name string) (models.LinkID, bool) {
	id, err := models.ParseLinkID(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return models.LinkID{}, false
	}
	return id, true
}

// --------------------------------------------------
// Body / query
// --------------------------------------------------

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return false
	}
	return true
}

// pagination reads ?page=&per_page=. Out-of-range values are clamped by
// the registry.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return page, perPage
}

func actorID(c *gin.Context) *models.UserID {
	id := middleware.Actor(c).UserID
	return &id
}
