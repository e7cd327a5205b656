// Package users provides database operations for member records and their
// wishlist sets.
package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"gorm.io/gorm"

	"github.com/shelfshare/shelfshare/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create registers a user and issues an API token.
func (r *Repository) Create(ctx context.Context, username, displayName string) (*entities.User, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if displayName == "" {
		displayName = username
	}

	user := &entities.User{
		Username:    username,
		DisplayName: displayName,
		Token:       token,
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by primary key.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByToken retrieves a user by API token.
func (r *Repository) GetByToken(ctx context.Context, token string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the mutable profile fields.
func (r *Repository) UpdateProfile(ctx context.Context, id uint, displayName, contact, bio, avatarURL string) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"display_name": displayName,
			"contact":      contact,
			"bio":          bio,
			"avatar_url":   avatarURL,
		}).Error
}

// ToggleWishlist flips the (user, book) wishlist membership and reports the
// resulting state. Delete-then-insert inside one transaction keeps the flip
// atomic with respect to the user's set; the unique index on (user_id,
// book_id) rules out duplicate entries from racing inserts.
func (r *Repository) ToggleWishlist(ctx context.Context, userID, bookID uint) (bool, error) {
	var wishlisted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND book_id = ?", userID, bookID).
			Delete(&entities.WishlistEntry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			wishlisted = false
			return nil
		}
		wishlisted = true
		return tx.Create(&entities.WishlistEntry{UserID: userID, BookID: bookID}).Error
	})
	return wishlisted, err
}

// IsWishlisted reports whether a book is in the user's wishlist set.
func (r *Repository) IsWishlisted(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.WishlistEntry{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// WishlistBookIDs returns the ids in the user's wishlist set, oldest first.
func (r *Repository) WishlistBookIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entities.WishlistEntry{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("book_id", &ids).Error
	return ids, err
}

// generateToken returns a 64-character hex API token.
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
