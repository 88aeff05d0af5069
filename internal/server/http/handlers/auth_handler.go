package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
	"github.com/polkiloo/marketplace/internal/server/http/middleware"
)

// AuthHandler processes registration and login for both roles.
type AuthHandler struct {
	facade AuthFacade
	ttl    time.Duration
}

// NewAuthHandler creates AuthHandler instance. ttl bounds the auth cookie lifetime.
func NewAuthHandler(facade AuthFacade, ttl time.Duration) *AuthHandler {
	return &AuthHandler{facade: facade, ttl: ttl}
}

// Register handles POST /api/auth/{role}/register.
func (h *AuthHandler) Register(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RegisterRequest
		if !bindJSON(c, &req) {
			return
		}

		user, token, err := h.facade.Register(c.Request.Context(), role, req.Name, req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}

		middleware.SetAuthCookie(c, token, h.ttl)
		c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, User: user})
	}
}

// Login handles POST /api/auth/{role}/login.
func (h *AuthHandler) Login(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		user, token, err := h.facade.Authenticate(c.Request.Context(), role, req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}

		middleware.SetAuthCookie(c, token, h.ttl)
		c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: user})
	}
}
