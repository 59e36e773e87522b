package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/identity"
)

type UserHandler struct {
	registry *identity.Registry
}

func NewUserHandler(registry *identity.Registry) *UserHandler {
	return &UserHandler{registry: registry}
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := userIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.registry.GetUser(ctx, middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	link, err := h.registry.FindLinkByUserID(ctx, user.Role, user.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewUserView(*user, link))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.registry.ListUsers(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.NewUserViews(users))
}

func (h *UserHandler) ListProfessionals(c *gin.Context) {
	page, perPage := pagination(c)

	res, err := h.registry.ListProfessionals(c.Request.Context(), page, perPage)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Page(c, dto.NewMemberViews(res.Members), res.Total, res.Page, res.PerPage)
}

func (h *UserHandler) ListClients(c *gin.Context) {
	page, perPage := pagination(c)

	res, err := h.registry.ListClients(c.Request.Context(), middleware.Actor(c), page, perPage)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Page(c, dto.NewMemberViews(res.Members), res.Total, res.Page, res.PerPage)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := userIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.registry.UpdateUser(c.Request.Context(), middleware.Actor(c), id, identity.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.NewUserView(*user, nil))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := userIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.registry.DeleteUser(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
