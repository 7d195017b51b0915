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

// MemoryRepository defines the interface for memory data operations
type MemoryRepository interface {
	CreateMemory(ctx context.Context, memory *models.Memory) error
	GetMemoryByID(ctx context.Context, id string) (*models.Memory, error)
	GetMemoriesByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Memory, error)
	DeleteMemory(ctx context.Context, id string) error
	IncrementLikesCount(ctx context.Context, id string, delta int) error
	IncrementCommentsCount(ctx context.Context, id string, delta int) error
}

// MongoMemoryRepository implements MemoryRepository for MongoDB
type MongoMemoryRepository struct {
	collection *mongo.Collection
}

// NewMongoMemoryRepository creates a new MongoMemoryRepository
func NewMongoMemoryRepository(db *mongo.Database) *MongoMemoryRepository {
	return &MongoMemoryRepository{collection: db.Collection("memories")}
}

// CreateMemory creates a new memory in MongoDB
func (r *MongoMemoryRepository) CreateMemory(ctx context.Context, memory *models.Memory) error {
	memory.ID = primitive.NewObjectID()
	memory.CreatedAt = time.Now()
	memory.UpdatedAt = memory.CreatedAt
	_, err := r.collection.InsertOne(ctx, memory)
	return err
}

// GetMemoryByID retrieves a memory by ID from MongoDB
func (r *MongoMemoryRepository) GetMemoryByID(ctx context.Context, id string) (*models.Memory, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid memory ID format: %w", err)
	}

	var memory models.Memory
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&memory)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &memory, nil
}

// GetMemoriesByUserID retrieves memories by a specific user from MongoDB
func (r *MongoMemoryRepository) GetMemoriesByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Memory, error) {
	var memories []models.Memory
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &memories); err != nil {
		return nil, err
	}
	return memories, nil
}

// DeleteMemory deletes a memory from MongoDB
func (r *MongoMemoryRepository) DeleteMemory(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid memory ID format: %w", err)
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
func (r *MongoMemoryRepository) IncrementLikesCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid memory ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}

// IncrementCommentsCount adjusts the denormalized comments counter
func (r *MongoMemoryRepository) IncrementCommentsCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid memory ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}
