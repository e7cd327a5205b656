package entities

import (
	"time"
)

type CopyStatus string

const (
	StatusAvailable CopyStatus = "available"
	StatusBorrowed  CopyStatus = "borrowed"
	StatusReturning CopyStatus = "returning"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:100" json:"username"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	Contact     string    `gorm:"size:256" json:"contact,omitempty"`
	Bio         string    `gorm:"size:1024" json:"bio,omitempty"`
	AvatarURL   string    `gorm:"size:2048" json:"avatar_url,omitempty"`
	Token       string    `gorm:"uniqueIndex;size:64" json:"-"` // API token, hidden from JSON
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookCopy is a single lendable item listed by its owner.
// BorrowerID is set exactly while Status is borrowed or returning.
type BookCopy struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerID     uint       `gorm:"index;not null" json:"owner_id"`
	BorrowerID  *uint      `gorm:"index" json:"borrower_id,omitempty"`
	Status      CopyStatus `gorm:"size:20;index;default:'available'" json:"status"`
	Title       string     `gorm:"index;size:512" json:"title"`
	Author      string     `gorm:"size:256" json:"author,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CoverURL    string     `gorm:"size:2048" json:"cover_url,omitempty"`
	Owner       User       `gorm:"foreignKey:OwnerID" json:"-"`
	Borrower    *User      `gorm:"foreignKey:BorrowerID" json:"-"`
	Comments    []Comment  `gorm:"foreignKey:BookID" json:"comments,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Comment is an append-only annotation on a book copy. There is no edit or
// delete path and no pagination.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     uint      `gorm:"index;not null" json:"book_id"`
	AuthorName string    `gorm:"size:100" json:"author_name"`
	Text       string    `gorm:"type:text" json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// WishlistEntry marks a (user, book) wishlist membership. The composite
// unique index makes the toggle a single conditional row operation.
type WishlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_wishlist_user_book;not null" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_wishlist_user_book;not null" json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (BookCopy) TableName() string {
	return "book_copies"
}

func (Comment) TableName() string {
	return "comments"
}

func (WishlistEntry) TableName() string {
	return "wishlist_entries"
}
