package comments

import (
	"context"

	"gorm.io/gorm"

	"github.com/shelfshare/shelfshare/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append adds a comment to a book's sequence. Comments are append-only;
// there is no update or delete path.
func (r *Repository) Append(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ForBook returns a book's comments in insertion order.
func (r *Repository) ForBook(ctx context.Context, bookID uint) ([]entities.Comment, error) {
	var comments []entities.Comment
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
