package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoryTTL is how long a story stays visible after creation. The MongoDB
// TTL index on expires_at evicts the document once the deadline passes.
const StoryTTL = 24 * time.Hour

// Story represents an ephemeral media post stored in MongoDB.
// Viewers is an append-only set of user ids maintained with $addToSet.
type Story struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	Items     []StoryItem        `json:"items" bson:"items"`
	Viewers   []uint             `json:"viewers" bson:"viewers"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
}

// StoryItem represents a single item in a story
type StoryItem struct {
	ID        string    `json:"id" bson:"id"`
	Type      string    `json:"type" bson:"type"` // "image" or "video"
	URL       string    `json:"url" bson:"url"`
	Duration  int       `json:"duration" bson:"duration"` // seconds
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// UploadedBy reports whether userID owns the story. Only the uploader may
// delete it.
func (s *Story) UploadedBy(userID uint) bool {
	return s.UserID == userID
}

// SeenBy reports whether userID is in the story's viewer set.
func (s *Story) SeenBy(userID uint) bool {
	for _, v := range s.Viewers {
		if v == userID {
			return true
		}
	}
	return false
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	MediaURL string `json:"media_url" validate:"required,url"`
	Type     string `json:"type" validate:"required,oneof=image video"`
	Duration int    `json:"duration,omitempty" validate:"omitempty,min=1,max=60"`
}
