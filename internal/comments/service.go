// Package comments implements the append-only comment log per book copy.
package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shelfshare/shelfshare/internal/audit"
	"github.com/shelfshare/shelfshare/internal/database/books"
	"github.com/shelfshare/shelfshare/internal/database/comments"
	"github.com/shelfshare/shelfshare/internal/database/users"
	"github.com/shelfshare/shelfshare/internal/entities"
	"github.com/shelfshare/shelfshare/internal/lending"
)

// Service appends annotations to a book copy's comment log. Any
// authenticated user may comment on any existing copy; growth is unbounded.
type Service struct {
	books    *books.Repository
	users    *users.Repository
	comments *comments.Repository
	auditor  *audit.Service
}

// NewService creates a comment service. The auditor may be nil.
func NewService(bookRepo *books.Repository, userRepo *users.Repository, commentRepo *comments.Repository, auditor *audit.Service) *Service {
	return &Service{
		books:    bookRepo,
		users:    userRepo,
		comments: commentRepo,
		auditor:  auditor,
	}
}

// Add appends {actor display name, text, now} to the copy's comment
// sequence.
func (s *Service) Add(ctx context.Context, bookID, actorID uint, text string) (*entities.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", lending.ErrConflict)
	}

	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("%w: add comment: %v", lending.ErrUnavailable, err)
	}
	if !exists {
		return nil, lending.ErrNotFound
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: commenting user", lending.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: add comment: %v", lending.ErrUnavailable, err)
	}

	comment := &entities.Comment{
		BookID:     bookID,
		AuthorName: actor.DisplayName,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := s.comments.Append(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: add comment: %v", lending.ErrUnavailable, err)
	}

	s.auditor.LogComment(actorID, bookID)
	return comment, nil
}
