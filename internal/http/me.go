package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shelfshare/shelfshare/internal/entities"
)

// UserStore defines the user record operations the profile endpoints need.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	UpdateProfile(ctx context.Context, id uint, displayName, contact, bio, avatarURL string) error
	WishlistBookIDs(ctx context.Context, userID uint) ([]uint, error)
}

// ShelfReader lists the copies tied to a user: owned, borrowed, wishlisted.
type ShelfReader interface {
	OwnedBy(ctx context.Context, userID uint) ([]entities.BookCopy, error)
	BorrowedBy(ctx context.Context, userID uint) ([]entities.BookCopy, error)
	ListByIDs(ctx context.Context, ids []uint) ([]entities.BookCopy, error)
}

type MeController struct {
	users UserStore
	books ShelfReader
}

func NewMeController(users UserStore, books ShelfReader) *MeController {
	return &MeController{users: users, books: books}
}

// Profile returns the actor's record plus their shelves: currently borrowed
// copies, own listings with borrower names, and the wishlist.
// GET /api/me
func (controller *MeController) Profile(c *gin.Context) {
	actorID := GetActorID(c)
	ctx := c.Request.Context()

	user, err := controller.users.GetByID(ctx, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found", Code: "not_found"})
		return
	}
	if err != nil {
		respondInternalError(c, err, "load profile")
		return
	}

	borrowed, err := controller.books.BorrowedBy(ctx, actorID)
	if err != nil {
		respondInternalError(c, err, "load borrowed shelf")
		return
	}

	owned, err := controller.books.OwnedBy(ctx, actorID)
	if err != nil {
		respondInternalError(c, err, "load own listings")
		return
	}

	wishlistIDs, err := controller.users.WishlistBookIDs(ctx, actorID)
	if err != nil {
		respondInternalError(c, err, "load wishlist")
		return
	}
	wishlisted, err := controller.books.ListByIDs(ctx, wishlistIDs)
	if err != nil {
		respondInternalError(c, err, "load wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"borrowed": summaries(borrowed),
		"my_books": ownedListings(owned),
		"wishlist": summaries(wishlisted),
	})
}

// Pointer fields distinguish an omitted field from an explicit empty value:
// omitted fields keep their current value, an empty string clears the field.
// The display name never clears.
type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Contact     *string `json:"contact"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
}

// UpdateProfile updates the actor's mutable profile fields. The avatar is a
// URL supplied by the collaborator that owns file storage.
// PATCH /api/me
func (controller *MeController) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid profile payload")
		return
	}

	actorID := GetActorID(c)
	ctx := c.Request.Context()

	user, err := controller.users.GetByID(ctx, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found", Code: "not_found"})
		return
	}
	if err != nil {
		respondInternalError(c, err, "load profile")
		return
	}

	displayName := user.DisplayName
	if req.DisplayName != nil && *req.DisplayName != "" {
		displayName = *req.DisplayName
	}
	contact := user.Contact
	if req.Contact != nil {
		contact = *req.Contact
	}
	bio := user.Bio
	if req.Bio != nil {
		bio = *req.Bio
	}
	avatarURL := user.AvatarURL
	if req.AvatarURL != nil {
		avatarURL = *req.AvatarURL
	}

	if err := controller.users.UpdateProfile(ctx, actorID, displayName, contact, bio, avatarURL); err != nil {
		respondInternalError(c, err, "update profile")
		return
	}

	respondSuccess(c)
}

func summaries(copies []entities.BookCopy) []BookSummary {
	out := make([]BookSummary, 0, len(copies))
	for i := range copies {
		out = append(out, toSummary(&copies[i]))
	}
	return out
}

// ownedListings includes borrower references so an owner can see who holds
// each copy and confirm pending returns.
func ownedListings(copies []entities.BookCopy) []BookDetail {
	out := make([]BookDetail, 0, len(copies))
	for i := range copies {
		detail := BookDetail{
			BookSummary: toSummary(&copies[i]),
			Description: copies[i].Description,
		}
		detail.Borrower = userRef(copies[i].Borrower)
		detail.Comments = []entities.Comment{}
		out = append(out, detail)
	}
	return out
}
