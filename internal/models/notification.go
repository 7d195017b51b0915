package models

import "time"

// Notification types. Each one maps to a single qualifying interaction.
const (
	NotificationLikeMemory    = "like_memory"
	NotificationLikeReel      = "like_reel"
	NotificationCommentMemory = "comment_memory"
	NotificationCommentReel   = "comment_reel"
	NotificationFollow        = "follow"
	NotificationNewStory      = "new_story"
)

// Reference models a notification's subject can resolve against.
const (
	RefMemory = "memory"
	RefReel   = "reel"
	RefStory  = "story"
	RefUser   = "user"
)

// NotificationMeta holds arbitrary per-notification key/value context.
type NotificationMeta map[string]string

// Notification represents a stored fan-out record (PostgreSQL).
// ReferenceID plus OnModel form a polymorphic reference: the id resolves
// against the collection OnModel names.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"index;index:idx_recipient_unread,priority:1"`
	SenderID    uint             `json:"sender_id" gorm:"index"`
	Type        string           `json:"type" gorm:"size:30;index"`
	ReferenceID string           `json:"reference_id"`
	OnModel     string           `json:"on_model" gorm:"size:10"` // memory, reel, story or user
	IsRead      bool             `json:"is_read" gorm:"default:false;index:idx_recipient_unread,priority:2"`
	IsDeleted   bool             `json:"is_deleted" gorm:"default:false"`
	Meta        NotificationMeta `json:"meta,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// ShouldStore reports whether the notification qualifies for persistence.
// Self-notifications and notifications with a missing party are dropped.
func (n *Notification) ShouldStore() bool {
	if n.RecipientID == 0 || n.SenderID == 0 {
		return false
	}
	return n.RecipientID != n.SenderID
}

// OwnedBy reports whether userID is the recipient of the notification.
// Only the recipient may read, mark or soft-delete it.
func (n *Notification) OwnedBy(userID uint) bool {
	return n.RecipientID == userID
}

// Visible reports whether the notification should appear in list queries.
func (n *Notification) Visible() bool {
	return !n.IsDeleted
}
