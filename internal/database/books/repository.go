// Package books provides database operations for book copy records.
//
// The three lending transitions and the owner delete are implemented as
// single conditional statements: the WHERE clause carries the expected
// current state, so a stale caller affects zero rows instead of clobbering
// a concurrent transition. SQLite serializes writers, which makes each of
// these statements an atomic read-validate-write unit.
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/shelfshare/shelfshare/internal/entities"
)

// Repository handles all book copy database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book copy repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new copy. Status defaults to available with no borrower.
func (r *Repository) Create(ctx context.Context, copy *entities.BookCopy) error {
	copy.Status = entities.StatusAvailable
	copy.BorrowerID = nil
	return r.db.WithContext(ctx).Create(copy).Error
}

// GetByID retrieves a copy with its owner, borrower and comments populated.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.BookCopy, error) {
	var copy entities.BookCopy
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Borrower").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&copy, id).Error
	if err != nil {
		return nil, err
	}
	return &copy, nil
}

// Exists reports whether a copy with the given id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookCopy{}).
		Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Search returns copies whose title contains the search term, newest first.
// An empty term returns all copies.
func (r *Repository) Search(ctx context.Context, term string) ([]entities.BookCopy, error) {
	var copies []entities.BookCopy
	query := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC")
	if term != "" {
		query = query.Where("title LIKE ?", "%"+term+"%")
	}
	err := query.Find(&copies).Error
	return copies, err
}

// ListByIDs returns the copies with the given ids, owners populated.
func (r *Repository) ListByIDs(ctx context.Context, ids []uint) ([]entities.BookCopy, error) {
	if len(ids) == 0 {
		return []entities.BookCopy{}, nil
	}
	var copies []entities.BookCopy
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("id IN ?", ids).
		Find(&copies).Error
	return copies, err
}

// OwnedBy returns the copies listed by a user, with borrowers populated.
func (r *Repository) OwnedBy(ctx context.Context, userID uint) ([]entities.BookCopy, error) {
	var copies []entities.BookCopy
	err := r.db.WithContext(ctx).Preload("Borrower").
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&copies).Error
	return copies, err
}

// BorrowedBy returns the copies a user currently holds, i.e. those with the
// user as borrower in status borrowed or returning. This is the user's
// borrowed set; it has no separate representation that could fall out of
// sync with the copies themselves.
func (r *Repository) BorrowedBy(ctx context.Context, userID uint) ([]entities.BookCopy, error) {
	var copies []entities.BookCopy
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("borrower_id = ? AND status IN ?", userID, borrowedStatuses).
		Order("updated_at DESC").
		Find(&copies).Error
	return copies, err
}

// CountBorrowedBy returns the size of a user's borrowed set.
func (r *Repository) CountBorrowedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookCopy{}).
		Where("borrower_id = ? AND status IN ?", userID, borrowedStatuses).
		Count(&count).Error
	return count, err
}

var borrowedStatuses = []entities.CopyStatus{entities.StatusBorrowed, entities.StatusReturning}

// MarkBorrowed flips an available copy to borrowed for the given borrower,
// but only while the borrower holds fewer than limit copies. The quota guard
// is a correlated subquery inside the same UPDATE, so the check and the flip
// cannot be split by a concurrent borrow. Returns the number of rows
// changed: 1 on success, 0 when the copy is missing, not available, or the
// quota is full.
func (r *Repository) MarkBorrowed(ctx context.Context, bookID, borrowerID uint, limit int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.BookCopy{}).
		Where("id = ? AND status = ?", bookID, entities.StatusAvailable).
		Where("(SELECT COUNT(*) FROM book_copies WHERE borrower_id = ? AND status IN ?) < ?",
			borrowerID, borrowedStatuses, limit).
		Updates(map[string]any{
			"status":      entities.StatusBorrowed,
			"borrower_id": borrowerID,
		})
	return result.RowsAffected, result.Error
}

// MarkReturning flips a borrowed copy to returning, only for its borrower.
func (r *Repository) MarkReturning(ctx context.Context, bookID, borrowerID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.BookCopy{}).
		Where("id = ? AND status = ? AND borrower_id = ?", bookID, entities.StatusBorrowed, borrowerID).
		Update("status", entities.StatusReturning)
	return result.RowsAffected, result.Error
}

// MarkAvailable completes a return: a returning copy owned by ownerID goes
// back to available and its borrower is cleared. Clearing the borrower also
// removes the copy from the former borrower's borrowed set.
func (r *Repository) MarkAvailable(ctx context.Context, bookID, ownerID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.BookCopy{}).
		Where("id = ? AND status = ? AND owner_id = ?", bookID, entities.StatusReturning, ownerID).
		Updates(map[string]any{
			"status":      entities.StatusAvailable,
			"borrower_id": nil,
		})
	return result.RowsAffected, result.Error
}

// DeleteAvailable removes a copy permanently, only while available and only
// for its owner. Comments and wishlist entries referencing the copy are
// removed in the same transaction.
func (r *Repository) DeleteAvailable(ctx context.Context, bookID, ownerID uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("id = ? AND status = ? AND owner_id = ?", bookID, entities.StatusAvailable, ownerID).
			Delete(&entities.BookCopy{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		if err := tx.Where("book_id = ?", bookID).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("book_id = ?", bookID).Delete(&entities.WishlistEntry{}).Error
	})
	return affected, err
}
