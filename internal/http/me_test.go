package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shelfshare/shelfshare/internal/entities"
)

type mockUserStore struct {
	users       map[uint]*entities.User
	wishlistIDs []uint

	updatedDisplayName string
	updatedContact     string
	updatedBio         string
	updatedAvatarURL   string
}

func (m *mockUserStore) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id uint, displayName, contact, bio, avatarURL string) error {
	m.updatedDisplayName = displayName
	m.updatedContact = contact
	m.updatedBio = bio
	m.updatedAvatarURL = avatarURL
	return nil
}

func (m *mockUserStore) WishlistBookIDs(ctx context.Context, userID uint) ([]uint, error) {
	return m.wishlistIDs, nil
}

type mockShelfReader struct {
	owned    []entities.BookCopy
	borrowed []entities.BookCopy
	byIDs    []entities.BookCopy
}

func (m *mockShelfReader) OwnedBy(ctx context.Context, userID uint) ([]entities.BookCopy, error) {
	return m.owned, nil
}

func (m *mockShelfReader) BorrowedBy(ctx context.Context, userID uint) ([]entities.BookCopy, error) {
	return m.borrowed, nil
}

func (m *mockShelfReader) ListByIDs(ctx context.Context, ids []uint) ([]entities.BookCopy, error) {
	return m.byIDs, nil
}

func setupMeRouter(users *mockUserStore, books *mockShelfReader, actorID uint) *gin.Engine {
	router := newTestRouter()
	controller := NewMeController(users, books)
	router.GET("/api/me", asActor(actorID), controller.Profile)
	router.PATCH("/api/me", asActor(actorID), controller.UpdateProfile)
	return router
}

func TestMeController_Profile(t *testing.T) {
	borrower := &entities.User{Username: "bea", DisplayName: "Bea"}
	borrower.ID = 2

	users := &mockUserStore{
		users: map[uint]*entities.User{
			7: {ID: 7, Username: "alice", DisplayName: "Alice", Token: "secret-token"},
		},
		wishlistIDs: []uint{3},
	}
	books := &mockShelfReader{
		borrowed: []entities.BookCopy{{ID: 1, Title: "Borrowed One", Status: entities.StatusBorrowed}},
		owned: []entities.BookCopy{
			{ID: 2, Title: "My Listing", Status: entities.StatusReturning, Borrower: borrower},
		},
		byIDs: []entities.BookCopy{{ID: 3, Title: "Wanted", Status: entities.StatusAvailable}},
	}
	router := setupMeRouter(users, books, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User     entities.User `json:"user"`
		Borrowed []BookSummary `json:"borrowed"`
		MyBooks  []BookDetail  `json:"my_books"`
		Wishlist []BookSummary `json:"wishlist"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "alice", body.User.Username)
	require.Len(t, body.Borrowed, 1)
	require.Len(t, body.MyBooks, 1)
	require.NotNil(t, body.MyBooks[0].Borrower, "owners see who holds each copy")
	assert.Equal(t, "bea", body.MyBooks[0].Borrower.Username)
	require.Len(t, body.Wishlist, 1)
	assert.Equal(t, "Wanted", body.Wishlist[0].Title)

	assert.NotContains(t, w.Body.String(), "secret-token", "tokens never leak into payloads")
}

func TestMeController_ProfileUnknownActor(t *testing.T) {
	router := setupMeRouter(&mockUserStore{users: map[uint]*entities.User{}}, &mockShelfReader{}, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeController_UpdateProfile(t *testing.T) {
	newStore := func() *mockUserStore {
		return &mockUserStore{
			users: map[uint]*entities.User{
				7: {ID: 7, Username: "alice", DisplayName: "Alice",
					Contact: "alice@example.com", Bio: "Old bio", AvatarURL: "/avatars/alice.png"},
			},
		}
	}
	patch := func(t *testing.T, router http.Handler, payload map[string]string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/me", jsonBody(t, payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("sets new display name", func(t *testing.T) {
		users := newStore()
		router := setupMeRouter(users, &mockShelfReader{}, 7)

		w := patch(t, router, map[string]string{"display_name": "Alice L.", "bio": "Reader"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Alice L.", users.updatedDisplayName)
		assert.Equal(t, "Reader", users.updatedBio)
	})

	t.Run("omitted fields keep their current values", func(t *testing.T) {
		users := newStore()
		router := setupMeRouter(users, &mockShelfReader{}, 7)

		w := patch(t, router, map[string]string{"bio": "Updated bio only"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Alice", users.updatedDisplayName)
		assert.Equal(t, "alice@example.com", users.updatedContact)
		assert.Equal(t, "Updated bio only", users.updatedBio)
		assert.Equal(t, "/avatars/alice.png", users.updatedAvatarURL)
	})

	t.Run("explicit empty string clears a field", func(t *testing.T) {
		users := newStore()
		router := setupMeRouter(users, &mockShelfReader{}, 7)

		w := patch(t, router, map[string]string{"contact": ""})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, users.updatedContact)
		assert.Equal(t, "Old bio", users.updatedBio)
	})

	t.Run("empty display name keeps the current one", func(t *testing.T) {
		users := newStore()
		router := setupMeRouter(users, &mockShelfReader{}, 7)

		w := patch(t, router, map[string]string{"display_name": ""})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Alice", users.updatedDisplayName)
	})
}
