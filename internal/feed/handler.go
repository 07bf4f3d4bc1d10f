package feed

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/auth"
)

// Handler handles HTTP requests for the feed.
type Handler struct {
	svc Service
}

// NewHandler creates a feed handler.
func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

// Feed handles GET /api/feed.
func (h *Handler) Feed(c *gin.Context) {
	viewerID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	posts, err := h.svc.Feed(c.Request.Context(), viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// DesignerWorks handles GET /api/designers/works/:designerId.
func (h *Handler) DesignerWorks(c *gin.Context) {
	viewerID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	posts, err := h.svc.DesignerWorks(c.Request.Context(), viewerID, c.Param("designerId"))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid designer id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load works"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ToggleLike handles POST /api/posts/toggle-like/:postId.
func (h *Handler) ToggleLike(c *gin.Context) {
	viewerID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := h.svc.ToggleLike(c.Request.Context(), viewerID, c.Param("postId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// AddComment handles POST /api/products/comments/:postId.
func (h *Handler) AddComment(c *gin.Context) {
	viewerID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), viewerID, auth.DisplayName(c), c.Param("postId"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "comment text cannot be empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		}
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// RegisterRoutes mounts the feed endpoints behind the auth middleware.
func (h *Handler) RegisterRoutes(r gin.IRouter, authRequired gin.HandlerFunc) {
	api := r.Group("/api", authRequired)
	{
		api.GET("/feed", h.Feed)
		api.GET("/designers/works/:designerId", h.DesignerWorks)
		api.POST("/posts/toggle-like/:postId", h.ToggleLike)
		api.POST("/products/comments/:postId", h.AddComment)
	}
}
