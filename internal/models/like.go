package models

import "time"

// Like represents a like on a memory or reel (PostgreSQL).
// TargetID is the hex id of the liked document; TargetType names its
// collection.
type Like struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TargetID   string    `json:"target_id" gorm:"index;uniqueIndex:idx_like_target_user"`
	TargetType string    `json:"target_type" gorm:"size:10;uniqueIndex:idx_like_target_user"` // memory or reel
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_like_target_user"`
	CreatedAt  time.Time `json:"created_at"`
}
