package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/01moynul/vrshop-golang/internal/middleware"
	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Forum Handlers (any authenticated user) ---
//

// CreateCommentInput is the body of POST /api/comentarios.
// The author comes from the session, never from the body.
type CreateCommentInput struct {
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// ListComments is the handler for GET /api/comentarios.
// Returns every user's comments: the forum is public to members.
func (h *Handlers) ListComments(c *gin.Context) {
	comments, err := h.Comments.ListComments(c.Request.Context())
	if err != nil {
		log.Printf("list comments: %v", err)
		respondInternal(c, "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment is the handler for POST /api/comentarios.
func (h *Handlers) CreateComment(c *gin.Context) {
	// 1. --- Get User ID ---
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	// 2. --- Bind & Validate JSON ---
	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		respondValidation(c, FieldErrors{"content": "is required"})
		return
	}

	// 3. --- Save ---
	comment := &models.Comment{
		UserID:  userID,
		Content: content,
		Rating:  input.Rating,
	}
	if err := h.Comments.CreateComment(c.Request.Context(), comment); err != nil {
		log.Printf("create comment for user %d: %v", userID, err)
		respondInternal(c, "Failed to save comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}
