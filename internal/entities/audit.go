package entities

import "time"

type AuditEventType string

const (
	AuditEventLending  AuditEventType = "lending"
	AuditEventListing  AuditEventType = "listing"
	AuditEventWishlist AuditEventType = "wishlist"
	AuditEventComment  AuditEventType = "comment"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "borrow", "confirm_return"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	BookID      *uint          `gorm:"index" json:"book_id,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
