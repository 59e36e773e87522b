package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/inbox"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/identity"
)

type MeHandler struct {
	registry *identity.Registry
	inbox    inbox.Repository
}

func NewMeHandler(registry *identity.Registry, inbox inbox.Repository) *MeHandler {
	return &MeHandler{registry: registry, inbox: inbox}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	profile, err := h.registry.Profile(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": dto.NewUserView(*profile.User, profile.Link)})
}

func (h *MeHandler) ListNotifications(c *gin.Context) {
	list, err := h.inbox.ListByUser(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *MeHandler) MarkNotificationViewed(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.inbox.MarkViewed(c.Request.Context(), middleware.Actor(c).UserID, id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
