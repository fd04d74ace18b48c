// Package handler implements the REST API handlers on top of the domain
// services.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/secureapi/auth"
	apperrors "github.com/skillsenselab/secureapi/errors"
	"github.com/skillsenselab/secureapi/logger"
	"github.com/skillsenselab/secureapi/server"
	"github.com/skillsenselab/secureapi/user"
	"github.com/skillsenselab/secureapi/validation"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	auth *auth.Service
	log  *logger.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *auth.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, log: log.WithComponent("handler")}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=standard admin"`
}

// Register handles POST /api/auth/register. The created account is returned
// without its password digest.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	created, err := h.auth.Register(c.Request.Context(), auth.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondCreated(c, created)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login and returns a bearer token on success.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, result)
}
