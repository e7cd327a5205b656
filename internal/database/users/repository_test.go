package users

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shelfshare/shelfshare/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_users_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.BookCopy{},
		&entities.WishlistEntry{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_CreateIssuesToken(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.DisplayName)
	assert.Len(t, user.Token, 64)

	byToken, err := repo.GetByToken(context.Background(), user.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byToken.ID)
}

func TestRepository_CreateDefaultsDisplayName(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.Create(context.Background(), "bob", "")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.DisplayName)
}

func TestRepository_CreateRejectsDuplicateUsername(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), "alice", "Other Alice")
	assert.Error(t, err)
}

func TestRepository_ToggleWishlistIsInvolution(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)

	const bookID = uint(42)

	wishlisted, err := repo.ToggleWishlist(context.Background(), user.ID, bookID)
	require.NoError(t, err)
	assert.True(t, wishlisted)

	present, err := repo.IsWishlisted(context.Background(), user.ID, bookID)
	require.NoError(t, err)
	assert.True(t, present)

	wishlisted, err = repo.ToggleWishlist(context.Background(), user.ID, bookID)
	require.NoError(t, err)
	assert.False(t, wishlisted, "second toggle must report the negation of the first")

	present, err = repo.IsWishlisted(context.Background(), user.ID, bookID)
	require.NoError(t, err)
	assert.False(t, present, "two toggles must restore the original state")
}

func TestRepository_WishlistBookIDs(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)

	for _, id := range []uint{7, 3, 9} {
		_, err := repo.ToggleWishlist(context.Background(), user.ID, id)
		require.NoError(t, err)
	}

	ids, err := repo.WishlistBookIDs(context.Background(), user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{7, 3, 9}, ids)
}

func TestRepository_UpdateProfile(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)

	err = repo.UpdateProfile(context.Background(), user.ID, "Alice L.", "alice@example.com", "Reader of everything", "/avatars/alice.png")
	require.NoError(t, err)

	updated, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.DisplayName)
	assert.Equal(t, "alice@example.com", updated.Contact)
	assert.Equal(t, "Reader of everything", updated.Bio)
	assert.Equal(t, "/avatars/alice.png", updated.AvatarURL)
	assert.Equal(t, "alice", updated.Username, "username is immutable here")
}
