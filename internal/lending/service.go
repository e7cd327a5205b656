// Package lending enforces the borrow/return state machine for book copies.
//
// A copy moves through three states:
//
//	available --borrow(borrower)--> borrowed
//	borrowed  --request_return(borrower)--> returning
//	returning --confirm_return(owner)--> available
//
// Only the owner can finalize a return; a borrower cannot clear their own
// borrow count. Each transition executes as one conditional update, so two
// concurrent calls on the same copy resolve to exactly one success and the
// loser never observes a half-applied state.
package lending

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shelfshare/shelfshare/internal/audit"
	"github.com/shelfshare/shelfshare/internal/config"
	"github.com/shelfshare/shelfshare/internal/database/books"
	"github.com/shelfshare/shelfshare/internal/entities"
)

// Service owns the transition rules for book copies. It does not own the
// records themselves; those belong to the book store.
type Service struct {
	books   *books.Repository
	auditor *audit.Service
	limit   int
}

// NewService creates a lending service. The auditor may be nil.
func NewService(repo *books.Repository, auditor *audit.Service, borrowLimit int) *Service {
	if borrowLimit <= 0 {
		borrowLimit = config.DefaultBorrowLimit
	}
	return &Service{
		books:   repo,
		auditor: auditor,
		limit:   borrowLimit,
	}
}

// BorrowLimit returns the configured per-user quota.
func (s *Service) BorrowLimit() int {
	return s.limit
}

// CreateCopy lists a new copy for lending. The copy starts available with no
// borrower.
func (s *Service) CreateCopy(ctx context.Context, actorID uint, copy *entities.BookCopy) error {
	if strings.TrimSpace(copy.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrConflict)
	}
	copy.OwnerID = actorID
	if err := s.books.Create(ctx, copy); err != nil {
		return storeFailure("create copy", err)
	}
	s.auditor.LogListing(actorID, "list", copy.ID, copy.Title, nil)
	return nil
}

// Borrow moves an available copy to borrowed with the actor as borrower.
// The status flip and the quota check run in a single conditional update;
// two concurrent borrows at 2/3 of the quota cannot both succeed.
func (s *Service) Borrow(ctx context.Context, bookID, actorID uint) error {
	affected, err := s.books.MarkBorrowed(ctx, bookID, actorID, s.limit)
	if err != nil {
		return storeFailure("borrow", err)
	}
	if affected == 1 {
		s.auditor.LogLending(actorID, "borrow", bookID, nil)
		return nil
	}

	err = s.classifyBorrowFailure(ctx, bookID)
	s.auditor.LogLending(actorID, "borrow", bookID, err)
	return err
}

// classifyBorrowFailure explains a zero-row borrow from a fresh read. The
// snapshot may postdate the failed update, so the reported class is
// best-effort; a retry against the current state resolves any mismatch.
func (s *Service) classifyBorrowFailure(ctx context.Context, bookID uint) error {
	copy, err := s.books.GetByID(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storeFailure("borrow", err)
	}
	if copy.Status != entities.StatusAvailable {
		return fmt.Errorf("%w: copy is %s", ErrConflict, copy.Status)
	}
	return ErrQuotaExceeded
}

// RequestReturn moves a borrowed copy to returning. Only the current
// borrower may request it; the borrowed set is untouched until the owner
// confirms.
func (s *Service) RequestReturn(ctx context.Context, bookID, actorID uint) error {
	affected, err := s.books.MarkReturning(ctx, bookID, actorID)
	if err != nil {
		return storeFailure("request return", err)
	}
	if affected == 1 {
		s.auditor.LogLending(actorID, "return_request", bookID, nil)
		return nil
	}

	copy, err := s.books.GetByID(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	} else if err != nil {
		err = storeFailure("request return", err)
	} else if copy.BorrowerID == nil || *copy.BorrowerID != actorID {
		err = fmt.Errorf("%w: only the borrower can request a return", ErrForbidden)
	} else {
		err = fmt.Errorf("%w: copy is %s", ErrConflict, copy.Status)
	}
	s.auditor.LogLending(actorID, "return_request", bookID, err)
	return err
}

// ConfirmReturn completes the cycle: the owner acknowledges the copy is back
// and it becomes available again with no borrower. Clearing the borrower
// column also shrinks the former borrower's borrowed set; there is no second
// record to update, so a missing borrower can never block the transition.
func (s *Service) ConfirmReturn(ctx context.Context, bookID, actorID uint) error {
	affected, err := s.books.MarkAvailable(ctx, bookID, actorID)
	if err != nil {
		return storeFailure("confirm return", err)
	}
	if affected == 1 {
		s.auditor.LogLending(actorID, "confirm_return", bookID, nil)
		return nil
	}

	copy, err := s.books.GetByID(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	} else if err != nil {
		err = storeFailure("confirm return", err)
	} else if copy.OwnerID != actorID {
		err = fmt.Errorf("%w: only the owner can confirm a return", ErrForbidden)
	} else {
		err = fmt.Errorf("%w: copy is %s", ErrConflict, copy.Status)
	}
	s.auditor.LogLending(actorID, "confirm_return", bookID, err)
	return err
}

// DeleteCopy removes a listing permanently. Deletion is only permitted while
// the copy is available and only by its owner.
func (s *Service) DeleteCopy(ctx context.Context, bookID, actorID uint) error {
	affected, err := s.books.DeleteAvailable(ctx, bookID, actorID)
	if err != nil {
		return storeFailure("delete copy", err)
	}
	if affected == 1 {
		s.auditor.LogListing(actorID, "delete", bookID, "", nil)
		return nil
	}

	copy, err := s.books.GetByID(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	} else if err != nil {
		err = storeFailure("delete copy", err)
	} else if copy.OwnerID != actorID {
		err = fmt.Errorf("%w: only the owner can delete a listing", ErrForbidden)
	} else {
		err = fmt.Errorf("%w: copy is %s", ErrConflict, copy.Status)
	}
	s.auditor.LogListing(actorID, "delete", bookID, copyTitle(copy), err)
	return err
}

func copyTitle(copy *entities.BookCopy) string {
	if copy == nil {
		return ""
	}
	return copy.Title
}

// storeFailure wraps persistence errors into the transient class. The
// original error stays in the message for logs; callers match on
// ErrUnavailable.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
