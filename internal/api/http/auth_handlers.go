package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nimbusdrive/nimbus/backend/internal/domain/accounts"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account, provisions its sandbox and returns a token.
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.Register(req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, accounts.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		h.respondError(c, err)
		return
	}

	// Provision the user's sandbox directory at account creation.
	if _, err := h.sandboxes.Sandbox(user.ID); err != nil {
		h.respondError(c, err)
		return
	}

	signed, _, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("account registered", zap.String("user_id", user.ID))
	c.JSON(http.StatusOK, gin.H{"access_token": signed, "token_type": "bearer"})
}

// Login authenticates credentials and returns a token.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
			return
		}
		h.respondError(c, err)
		return
	}

	signed, _, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": signed, "token_type": "bearer"})
}

// Me returns the authenticated account.
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.store.Get(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	c.JSON(http.StatusOK, user)
}
