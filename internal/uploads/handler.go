package uploads

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/auth"
)

// Handler exposes the presign endpoint for authenticated designers.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Presign(c *gin.Context) {
	designerID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "filename and contentType are required"})
		return
	}

	resp, err := h.service.Presign(c.Request.Context(), designerID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidUpload) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.logger.Error("presign upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not prepare upload"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes mounts the upload endpoint behind authentication.
func (h *Handler) RegisterRoutes(r gin.IRouter, authRequired gin.HandlerFunc) {
	r.POST("/api/uploads/presign", authRequired, h.Presign)
}
