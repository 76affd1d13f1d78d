package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/pkg/response"
	"github.com/devlinkhq/devlink/pkg/validation"
)

type PostsHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostsHandler(svc *application.PostService, logger *logrus.Logger) *PostsHandler {
	return &PostsHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Text string `json:"text" binding:"required,postlen"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required,postlen"`
}

// Create POST /api/posts
func (h *PostsHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), identityFromCtx(c), req.Text)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "post created", nil)
}

// List GET /api/posts
func (h *PostsHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", gin.H{"count": len(posts)})
}

// Get GET /api/posts/:id
func (h *PostsHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post", nil)
}

// Delete DELETE /api/posts/:id
func (h *PostsHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), identityFromCtx(c), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "post deleted", nil)
}

// Like POST /api/posts/like/:id
func (h *PostsHandler) Like(c *gin.Context) {
	p, err := h.Svc.Like(c.Request.Context(), identityFromCtx(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post liked", nil)
}

// Unlike POST /api/posts/unlike/:id
func (h *PostsHandler) Unlike(c *gin.Context) {
	p, err := h.Svc.Unlike(c.Request.Context(), identityFromCtx(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post unliked", nil)
}

// AddComment POST /api/posts/comment/:id
func (h *PostsHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddComment(c.Request.Context(), identityFromCtx(c), c.Param("id"), req.Text)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "comment added", nil)
}

// RemoveComment DELETE /api/posts/comment/:id/:comment_id
func (h *PostsHandler) RemoveComment(c *gin.Context) {
	p, err := h.Svc.RemoveComment(c.Request.Context(), identityFromCtx(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "comment removed", nil)
}

func (h *PostsHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "post not found", gin.H{"post": "no post found with that id"})
	case errors.Is(err, application.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "comment not found", gin.H{"comment": "no comment found with that id"})
	case errors.Is(err, application.ErrNotAuthorized):
		response.Error(c, http.StatusUnauthorized, "not authorized", gin.H{"authorization": "user not authorized"})
	case errors.Is(err, application.ErrAlreadyLiked):
		response.Error(c, http.StatusBadRequest, "like failed", gin.H{"like": "user already liked this post"})
	case errors.Is(err, application.ErrNotLiked):
		response.Error(c, http.StatusBadRequest, "unlike failed", gin.H{"like": "user has not yet liked this post"})
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("post operation failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
