package http

import (
	"github.com/gin-gonic/gin"

	"github.com/shelfshare/shelfshare/internal/database"
	"github.com/shelfshare/shelfshare/internal/identity"
)

// RouterConfig carries all router dependencies. Controllers receive narrow
// interfaces, which keeps handler tests independent of the real stores.
type RouterConfig struct {
	Books    BookReader
	Shelves  ShelfReader
	Users    UserStore
	Listings ListingService
	Lending  LendingService
	Wishlist WishlistService
	Comments CommentService

	Database *database.Database

	IdentityMiddleware *identity.Middleware
	SessionManager     *identity.SessionManager
	CSRFSecret         []byte
	SecureCookies      bool

	Version string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(identity.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadSave())
	}

	if cfg.IdentityMiddleware != nil {
		router.Use(cfg.IdentityMiddleware.Resolve())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books, cfg.Listings)
	lendingController := NewLendingController(cfg.Lending)
	wishlistController := NewWishlistController(cfg.Wishlist)
	commentsController := NewCommentsController(cfg.Comments)
	meController := NewMeController(cfg.Users, cfg.Shelves)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Public book reads
	router.GET("/api/books", booksController.ListBooks)
	router.GET("/api/books/:id", booksController.GetBook)

	// Everything below requires a resolved actor
	authed := router.Group("/", identity.RequireActor())
	authed.POST("/api/books", booksController.CreateBook)
	authed.DELETE("/api/books/:id", booksController.DeleteBook)
	authed.POST("/api/books/:id/action", lendingController.Action)
	authed.POST("/api/books/:id/wishlist", wishlistController.Toggle)
	authed.POST("/api/books/:id/comment", commentsController.AddComment)
	authed.GET("/api/me", meController.Profile)
	authed.PATCH("/api/me", meController.UpdateProfile)

	return router
}
