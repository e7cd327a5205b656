package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shelfshare/shelfshare/internal/lending"
)

type mockWishlistService struct {
	result bool
	err    error

	bookID  uint
	actorID uint
}

func (m *mockWishlistService) Toggle(ctx context.Context, bookID, actorID uint) (bool, error) {
	m.bookID = bookID
	m.actorID = actorID
	return m.result, m.err
}

func setupWishlistRouter(service *mockWishlistService, actorID uint) *gin.Engine {
	router := newTestRouter()
	controller := NewWishlistController(service)
	router.POST("/api/books/:id/wishlist", asActor(actorID), controller.Toggle)
	return router
}

func TestWishlistController_Toggle(t *testing.T) {
	t.Run("added", func(t *testing.T) {
		service := &mockWishlistService{result: true}
		router := setupWishlistRouter(service, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books/42/wishlist", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["isWishlisted"])
		assert.Equal(t, uint(42), service.bookID)
		assert.Equal(t, uint(7), service.actorID)
	})

	t.Run("removed", func(t *testing.T) {
		service := &mockWishlistService{result: false}
		router := setupWishlistRouter(service, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books/42/wishlist", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["isWishlisted"])
	})

	t.Run("unknown book", func(t *testing.T) {
		service := &mockWishlistService{err: lending.ErrNotFound}
		router := setupWishlistRouter(service, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books/999/wishlist", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
