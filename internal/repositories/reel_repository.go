package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/picnichub/memoryhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReelRepository defines the interface for reel data operations
type ReelRepository interface {
	CreateReel(ctx context.Context, reel *models.Reel) error
	GetReelByID(ctx context.Context, id string) (*models.Reel, error)
	GetReels(ctx context.Context, skip, limit int64) ([]models.Reel, error)
	DeleteReel(ctx context.Context, id string) error
	IncrementLikesCount(ctx context.Context, id string, delta int) error
	IncrementCommentsCount(ctx context.Context, id string, delta int) error
}

// MongoReelRepository implements ReelRepository for MongoDB
type MongoReelRepository struct {
	collection *mongo.Collection
}

// NewMongoReelRepository creates a new MongoReelRepository
func NewMongoReelRepository(db *mongo.Database) *MongoReelRepository {
	return &MongoReelRepository{collection: db.Collection("reels")}
}

// CreateReel creates a new reel in MongoDB
func (r *MongoReelRepository) CreateReel(ctx context.Context, reel *models.Reel) error {
	reel.ID = primitive.NewObjectID()
	reel.CreatedAt = time.Now()
	reel.UpdatedAt = reel.CreatedAt
	_, err := r.collection.InsertOne(ctx, reel)
	return err
}

// GetReelByID retrieves a reel by ID from MongoDB
func (r *MongoReelRepository) GetReelByID(ctx context.Context, id string) (*models.Reel, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid reel ID format: %w", err)
	}

	var reel models.Reel
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&reel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reel, nil
}

// GetReels retrieves reels from MongoDB with pagination, newest first
func (r *MongoReelRepository) GetReels(ctx context.Context, skip, limit int64) ([]models.Reel, error) {
	var reels []models.Reel
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &reels); err != nil {
		return nil, err
	}
	return reels, nil
}

// DeleteReel deletes a reel from MongoDB
func (r *MongoReelRepository) DeleteReel(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid reel ID format: %w", err)
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementLikesCount adjusts the denormalized likes counter
func (r *MongoReelRepository) IncrementLikesCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid reel ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}

// IncrementCommentsCount adjusts the denormalized comments counter
func (r *MongoReelRepository) IncrementCommentsCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid reel ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}
