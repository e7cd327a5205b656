// Package wishlist implements the idempotent wishlist toggle.
package wishlist

import (
	"context"
	"fmt"

	"github.com/shelfshare/shelfshare/internal/audit"
	"github.com/shelfshare/shelfshare/internal/database/books"
	"github.com/shelfshare/shelfshare/internal/database/users"
	"github.com/shelfshare/shelfshare/internal/lending"
)

// Service flips wishlist membership for (user, book) pairs. Any
// authenticated user may wishlist any existing copy, including their own or
// one they currently borrow.
type Service struct {
	books   *books.Repository
	users   *users.Repository
	auditor *audit.Service
}

// NewService creates a wishlist service. The auditor may be nil.
func NewService(bookRepo *books.Repository, userRepo *users.Repository, auditor *audit.Service) *Service {
	return &Service{
		books:   bookRepo,
		users:   userRepo,
		auditor: auditor,
	}
}

// Toggle flips membership and reports the resulting state: true when the
// copy was added to the actor's wishlist, false when it was removed.
// Toggling twice restores the original state.
func (s *Service) Toggle(ctx context.Context, bookID, actorID uint) (bool, error) {
	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return false, fmt.Errorf("%w: wishlist toggle: %v", lending.ErrUnavailable, err)
	}
	if !exists {
		return false, lending.ErrNotFound
	}

	wishlisted, err := s.users.ToggleWishlist(ctx, actorID, bookID)
	if err != nil {
		return false, fmt.Errorf("%w: wishlist toggle: %v", lending.ErrUnavailable, err)
	}

	s.auditor.LogWishlist(actorID, bookID, wishlisted)
	return wishlisted, nil
}
