package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/shelfshare/shelfshare/internal/entities"
)

// CommentService defines the append operation on a book's comment log.
type CommentService interface {
	Add(ctx context.Context, bookID, actorID uint, text string) (*entities.Comment, error)
}

type CommentsController struct {
	comments CommentService
}

func NewCommentsController(comments CommentService) *CommentsController {
	return &CommentsController{comments: comments}
}

type addCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddComment appends a comment under the actor's display name.
// POST /api/books/:id/comment
func (controller *CommentsController) AddComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "text is required")
		return
	}

	if _, err := controller.comments.Add(c.Request.Context(), id, GetActorID(c), req.Text); err != nil {
		respondDomainError(c, err, "add comment")
		return
	}

	respondSuccess(c)
}
