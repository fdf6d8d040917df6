// Package http contains the Gin handlers for the file service API.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nimbusdrive/nimbus/backend/internal/domain/accounts"
	"github.com/nimbusdrive/nimbus/backend/internal/domain/token"
	"github.com/nimbusdrive/nimbus/backend/internal/infrastructure/logging"
	"github.com/nimbusdrive/nimbus/backend/internal/infrastructure/monitoring"
	"github.com/nimbusdrive/nimbus/backend/internal/vfs"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	sandboxes *vfs.Manager
	store     *accounts.Store
	tokens    *token.Service
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// NewHandlers creates a new handler set.
func NewHandlers(
	sandboxes *vfs.Manager,
	store *accounts.Store,
	tokens *token.Service,
	logger *logging.Logger,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		sandboxes: sandboxes,
		store:     store,
		tokens:    tokens,
		logger:    logger,
		metrics:   metrics,
	}
}

// Root handles the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Nimbus File Service",
		"version": "0.1.0",
	})
}

// Health handles the health check.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"storage_root": h.sandboxes.Base(),
	})
}

// respondError translates a sandbox error into an HTTP status and JSON body.
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var opErr *vfs.Error
	if errors.As(err, &opErr) {
		switch opErr.Kind {
		case vfs.KindNotFound:
			status = http.StatusNotFound
		case vfs.KindConflict:
			status = http.StatusConflict
		case vfs.KindContainment:
			status = http.StatusForbidden
		case vfs.KindBadRequest:
			status = http.StatusBadRequest
		}
	}
	if status == http.StatusInternalServerError {
		logger := h.logger
		if userID := c.GetString("user_id"); userID != "" {
			logger = logger.WithUser(userID)
		}
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// sandbox resolves the caller's sandbox from the authenticated user id.
func (h *Handlers) sandbox(c *gin.Context) (*vfs.Sandbox, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}
	sb, err := h.sandboxes.Sandbox(userID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return sb, true
}
