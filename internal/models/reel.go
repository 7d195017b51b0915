package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reel represents a short-form video post stored in MongoDB
type Reel struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        uint               `json:"user_id" bson:"user_id"`
	Caption       string             `json:"caption" bson:"caption"`
	VideoURL      string             `json:"video_url" bson:"video_url"`
	ThumbnailURL  string             `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateReelRequest defines the request body for creating a new reel
type CreateReelRequest struct {
	Caption      string `json:"caption,omitempty" validate:"omitempty,max=2200"`
	VideoURL     string `json:"video_url" validate:"required,url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}
