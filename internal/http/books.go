package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shelfshare/shelfshare/internal/entities"
)

// BookReader defines read operations over book copies.
type BookReader interface {
	GetByID(ctx context.Context, id uint) (*entities.BookCopy, error)
	Search(ctx context.Context, term string) ([]entities.BookCopy, error)
}

// ListingService defines the lending service operations that create and
// remove listings.
type ListingService interface {
	CreateCopy(ctx context.Context, actorID uint, copy *entities.BookCopy) error
	DeleteCopy(ctx context.Context, bookID, actorID uint) error
}

type BooksController struct {
	reader   BookReader
	listings ListingService
}

func NewBooksController(reader BookReader, listings ListingService) *BooksController {
	return &BooksController{
		reader:   reader,
		listings: listings,
	}
}

// ListBooks returns book summaries, optionally filtered by title substring.
// GET /api/books?search=
func (controller *BooksController) ListBooks(c *gin.Context) {
	copies, err := controller.reader.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	summaries := make([]BookSummary, 0, len(copies))
	for i := range copies {
		summaries = append(summaries, toSummary(&copies[i]))
	}
	c.JSON(http.StatusOK, summaries)
}

// GetBook returns the full copy with populated owner/borrower names.
// GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	copy, err := controller.reader.GetByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "book copy not found", Code: "not_found"})
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, toDetail(copy))
}

type createBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
}

// CreateBook lists a new copy owned by the actor.
// POST /api/books
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	copy := &entities.BookCopy{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	}
	if err := controller.listings.CreateCopy(c.Request.Context(), GetActorID(c), copy); err != nil {
		respondDomainError(c, err, "create book")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": copy.ID})
}

// DeleteBook removes a listing. Only the owner may delete, and only while
// the copy is available.
// DELETE /api/books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.listings.DeleteCopy(c.Request.Context(), id, GetActorID(c)); err != nil {
		respondDomainError(c, err, "delete book")
		return
	}

	respondSuccess(c)
}
