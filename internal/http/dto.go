package http

import (
	"time"

	"github.com/shelfshare/shelfshare/internal/entities"
)

// UserRef is the public projection of a user on book payloads.
type UserRef struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Contact     string `json:"contact,omitempty"`
}

// BookSummary is the list/search projection of a book copy.
type BookSummary struct {
	ID        uint                `json:"id"`
	Title     string              `json:"title"`
	Author    string              `json:"author,omitempty"`
	CoverURL  string              `json:"cover_url,omitempty"`
	Status    entities.CopyStatus `json:"status"`
	OwnerID   uint                `json:"owner_id"`
	OwnerName string              `json:"owner_name,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// BookDetail is the full projection with populated owner/borrower names and
// the comment log.
type BookDetail struct {
	BookSummary
	Description string             `json:"description,omitempty"`
	Owner       UserRef            `json:"owner"`
	Borrower    *UserRef           `json:"borrower,omitempty"`
	Comments    []entities.Comment `json:"comments"`
}

func userRef(u *entities.User) *UserRef {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &UserRef{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Contact:     u.Contact,
	}
}

func toSummary(copy *entities.BookCopy) BookSummary {
	summary := BookSummary{
		ID:        copy.ID,
		Title:     copy.Title,
		Author:    copy.Author,
		CoverURL:  copy.CoverURL,
		Status:    copy.Status,
		OwnerID:   copy.OwnerID,
		CreatedAt: copy.CreatedAt,
	}
	if ref := userRef(&copy.Owner); ref != nil {
		summary.OwnerName = ref.Username
	}
	return summary
}

func toDetail(copy *entities.BookCopy) BookDetail {
	detail := BookDetail{
		BookSummary: toSummary(copy),
		Description: copy.Description,
		Comments:    copy.Comments,
	}
	if detail.Comments == nil {
		detail.Comments = []entities.Comment{}
	}
	if ref := userRef(&copy.Owner); ref != nil {
		detail.Owner = *ref
	}
	detail.Borrower = userRef(copy.Borrower)
	return detail
}
