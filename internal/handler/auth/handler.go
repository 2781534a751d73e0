package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medisys/hospital-api/config"
	"github.com/medisys/hospital-api/pkg/auth"
	"github.com/medisys/hospital-api/pkg/security"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Handler authenticates the configured admin credential and issues access
// tokens.
type Handler struct {
	cfg    config.AuthConfig
	tokens *auth.TokenService
	hasher security.PasswordHasher
}

func NewHandler(cfg config.AuthConfig, tokens *auth.TokenService, hasher security.PasswordHasher) *Handler {
	return &Handler{cfg: cfg, tokens: tokens, hasher: hasher}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != h.cfg.AdminUsername ||
		h.hasher.Compare(h.cfg.AdminPasswordHash, req.Password) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateToken(req.Username, "admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token})
}
