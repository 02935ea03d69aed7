package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/apperr"
	"github.com/postboard/postboard/internal/repository"
	"github.com/postboard/postboard/internal/service"
	"github.com/postboard/postboard/pkg/logger"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListPosts handles GET /posts.
// Query params: page, limit, username, orderBy (createdAt|likesCount),
// order (asc|desc), all optional.
func (h *PostHandler) ListPosts(c *gin.Context) {
	h.listPosts(c, c.Query("username"))
}

// ListUserPosts handles GET /posts/:username.
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	h.listPosts(c, c.Param("username"))
}

func (h *PostHandler) listPosts(c *gin.Context, username string) {
	input := service.ListInput{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 10),
		Username: username,
		OrderBy:  c.DefaultQuery("orderBy", repository.OrderByCreatedAt),
		Order:    c.DefaultQuery("order", repository.OrderAsc),
	}

	posts, page, err := h.postService.ListPosts(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"data":       posts,
		"pagination": page,
	})
}

// CreatePost handles POST /posts.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Unauthenticated("not authorized"))
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Invalid("content is required"))
		return
	}

	post, err := h.postService.CreatePost(userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, post)
}

// UpdatePost handles PATCH /posts/:id. Owner only.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Unauthenticated("not authorized"))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Invalid("invalid post id"))
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Invalid("at least one field must be provided for update"))
		return
	}

	post, err := h.postService.UpdatePost(userID, postID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, post)
}

// LikePost handles POST /posts/:postId/like.
func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Unauthenticated("not authorized"))
		return
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		respondError(c, apperr.Invalid("invalid post id"))
		return
	}

	post, err := h.postService.LikePost(userID, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Log.Debug("Like request completed",
		zap.String("post_id", postID.String()),
		zap.String("user_id", userID.String()),
	)

	respondData(c, http.StatusOK, post)
}

// UnlikePost handles DELETE /posts/:postId/like.
func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Unauthenticated("not authorized"))
		return
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		respondError(c, apperr.Invalid("invalid post id"))
		return
	}

	post, err := h.postService.UnlikePost(userID, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, post)
}

// queryInt parses an integer query param, falling back to a default on
// absence or garbage, matching the lenient feed query handling.
func queryInt(c *gin.Context, key string, defaultVal int) int {
	valStr := c.Query(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
