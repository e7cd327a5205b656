// Package audit records lending activity as an append-only trail. Events are
// written asynchronously so a slow audit write never delays a transition.
package audit

import (
	"log"
	"time"

	"github.com/shelfshare/shelfshare/internal/database/audit"
	"github.com/shelfshare/shelfshare/internal/entities"
)

// Service provides high-level audit logging. A nil *Service is valid and
// discards all events, which keeps callers free of guards.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil || s.repo == nil {
		return
	}
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogLending records a borrow/return transition attempt.
func (s *Service) LogLending(userID uint, action string, bookID uint, err error) {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventLending,
		Action:    action,
		BookID:    &bookID,
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now(),
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogListing records a copy being listed or delisted.
func (s *Service) LogListing(userID uint, action string, bookID uint, title string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventListing,
		Action:      "copy_" + action,
		Description: title,
		BookID:      &bookID,
		Status:      entities.AuditStatusSuccess,
		CreatedAt:   time.Now(),
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogWishlist records a wishlist toggle.
func (s *Service) LogWishlist(userID, bookID uint, wishlisted bool) {
	action := "wishlist_remove"
	if wishlisted {
		action = "wishlist_add"
	}

	s.LogAsync(&entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventWishlist,
		Action:    action,
		BookID:    &bookID,
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now(),
	})
}

// LogComment records a comment append.
func (s *Service) LogComment(userID, bookID uint) {
	s.LogAsync(&entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventComment,
		Action:    "comment_add",
		BookID:    &bookID,
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now(),
	})
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
