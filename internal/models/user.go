package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is the identity anchor stored in PostgreSQL.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	Email          string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	AvatarURL      string    `json:"avatar_url"`
	Bio            string    `json:"bio,omitempty"`
	PasswordHash   string    `json:"-"` // Optional; empty for Firebase-only accounts
	Role           string    `json:"role" gorm:"size:10;default:user"` // user or admin
	Banned         bool      `json:"banned" gorm:"default:false"`
	Verified       bool      `json:"verified" gorm:"default:false"`
	FollowersCount int       `json:"followers_count" gorm:"default:0"`
	FollowingCount int       `json:"following_count" gorm:"default:0"`
	FirebaseUID    string    `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCompact is the trimmed-down user shape embedded in enriched responses
// (notification senders, story feed groups, comment authors).
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact converts a full user to its compact response form
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

type UpdateUserRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=300"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
