package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WishlistService defines the wishlist toggle operation.
type WishlistService interface {
	Toggle(ctx context.Context, bookID, actorID uint) (bool, error)
}

type WishlistController struct {
	wishlist WishlistService
}

func NewWishlistController(wishlist WishlistService) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

// Toggle flips the actor's wishlist membership for a book copy and reports
// the resulting state. Toggling twice restores the original membership.
// POST /api/books/:id/wishlist
func (controller *WishlistController) Toggle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	wishlisted, err := controller.wishlist.Toggle(c.Request.Context(), id, GetActorID(c))
	if err != nil {
		respondDomainError(c, err, "toggle wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "isWishlisted": wishlisted})
}
