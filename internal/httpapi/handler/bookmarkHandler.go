package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"moviemarks/internal/httpapi/dto"
	"moviemarks/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	svc service.BookmarkService
}

func NewBookmarkHandler(svc service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

// RegisterRoutes registers bookmark routes. The caller applies the auth
// middleware on the group.
func (h *BookmarkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Add)
	rg.DELETE("/:movie_id", h.Remove)
}

// Add bookmarks a movie for the authenticated user
// POST /api/bookmarks
func (h *BookmarkHandler) Add(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	bookmark, err := h.svc.Add(ctx, userID.(string), req)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyBookmarked) {
			c.JSON(http.StatusConflict, gin.H{"error": "movie already bookmarked"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add bookmark"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "bookmark added successfully",
		"bookmark": bookmark,
	})
}

// List returns one page of the user's bookmarks enriched with rating data
// GET /api/bookmarks?page=1&limit=10
func (h *BookmarkHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.svc.ListByUser(ctx, userID.(string), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookmarks"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Remove deletes the authenticated user's bookmark for a movie
// DELETE /api/bookmarks/:movie_id
func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	movieID, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, userID.(string), movieID); err != nil {
		if errors.Is(err, service.ErrBookmarkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete bookmark"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bookmark deleted successfully"})
}

// CatalogOverview returns every movie with a review or a bookmark by the
// requesting user. Works without authentication; userID is empty then.
// GET /api/catalog
func (h *BookmarkHandler) CatalogOverview(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.svc.CatalogOverview(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build catalog overview"})
		return
	}

	c.JSON(http.StatusOK, result)
}
