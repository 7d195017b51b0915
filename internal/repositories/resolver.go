package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/picnichub/memoryhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferenceResolver resolves a notification's polymorphic reference against
// whatever collection its on_model discriminator names.
type ReferenceResolver struct {
	memories MemoryRepository
	reels    ReelRepository
	stories  StoryRepository
	users    UserRepository
}

// NewReferenceResolver creates a new ReferenceResolver
func NewReferenceResolver(memories MemoryRepository, reels ReelRepository, stories StoryRepository, users UserRepository) *ReferenceResolver {
	return &ReferenceResolver{
		memories: memories,
		reels:    reels,
		stories:  stories,
		users:    users,
	}
}

// Resolve looks up the referenced entity. A dangling reference (deleted or
// expired entity, malformed id, unknown discriminator) resolves to nil with
// no error; only store failures are returned.
func (rr *ReferenceResolver) Resolve(ctx context.Context, onModel, id string) (interface{}, error) {
	switch onModel {
	case models.RefMemory:
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return nil, nil
		}
		memory, err := rr.memories.GetMemoryByID(ctx, id)
		return collapseNotFound(memory, err)
	case models.RefReel:
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return nil, nil
		}
		reel, err := rr.reels.GetReelByID(ctx, id)
		return collapseNotFound(reel, err)
	case models.RefStory:
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return nil, nil
		}
		story, err := rr.stories.GetStoryByID(ctx, id)
		return collapseNotFound(story, err)
	case models.RefUser:
		userID, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return nil, nil
		}
		user, err := rr.users.GetUserByID(uint(userID))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return user.ToCompact(), nil
	default:
		return nil, nil
	}
}

// collapseNotFound turns a missing entity into a nil reference. The
// notification carrying the reference is still valid and still returned.
func collapseNotFound(entity interface{}, err error) (interface{}, error) {
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}
