package models

import "time"

// Comment represents a comment on a memory or reel (PostgreSQL)
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TargetID   string    `json:"target_id" gorm:"index"`
	TargetType string    `json:"target_type" gorm:"size:10"` // memory or reel
	UserID     uint      `json:"user_id" gorm:"index"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
