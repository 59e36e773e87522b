package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/identity"
)

type AuthHandler struct {
	registry *identity.Registry
	tokens   *auth.JWTManager
}

func NewAuthHandler(registry *identity.Registry, tokens *auth.JWTManager) *AuthHandler {
	return &AuthHandler{registry: registry, tokens: tokens}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required"`
	CPF      string      `json:"cpf" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Phone    *string     `json:"phone"`
	Role     models.Role `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// --------- Responses ---------

type SessionResponse struct {
	User dto.UserView `json:"user"`
	auth.TokenPair
}

// --------- Handlers ---------

// RegisterClient is the public sign-up: the role is always CLIENT.
func (h *AuthHandler) RegisterClient(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Role = models.RoleClient
	h.register(c, req)
}

// Register lets an administrator create a user of any role.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Role == "" {
		req.Role = models.RoleClient
	}
	h.register(c, req)
}

func (h *AuthHandler) register(c *gin.Context, req RegisterRequest) {
	user, link, err := h.registry.CreateUser(c.Request.Context(), identity.Profile{
		Name:     req.Name,
		Email:    req.Email,
		CPF:      req.CPF,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"user": dto.NewUserView(*user, link)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.registry.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.respondSession(c, user)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	claims, err := h.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		code := "invalid_token"
		if errors.Is(err, auth.ErrTokenExpired) {
			code = "token_expired"
		}
		httperr.Unauthorized(c, code, "Refresh token inválido.")
		return
	}

	user, err := h.registry.FindUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if user == nil {
		httperr.Unauthorized(c, "invalid_token", "Refresh token inválido.")
		return
	}

	h.respondSession(c, user)
}

func (h *AuthHandler) respondSession(c *gin.Context, user *models.User) {
	pair, err := h.tokens.GenerateTokenPair(auth.Claims{UserID: user.ID, Role: user.Role})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	link, err := h.registry.FindLinkByUserID(c.Request.Context(), user.Role, user.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		User:      dto.NewUserView(*user, link),
		TokenPair: *pair,
	})
}
