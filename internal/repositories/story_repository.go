package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/picnichub/memoryhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoryRepository defines the interface for story operations.
// Expiry is store-driven: a TTL index on expires_at evicts documents once
// their deadline passes, so reads do not re-check expiry. The TTL monitor
// runs on a schedule, so a just-expired story may linger for a short window.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetActiveStories(ctx context.Context) ([]models.Story, error)
	AddViewer(ctx context.Context, storyID string, viewerID uint) error
	DeleteStory(ctx context.Context, id string) error
	DeleteExpiredStories(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoStoryRepository struct {
	collection *mongo.Collection
}

func NewMongoStoryRepository(db *mongo.Database) StoryRepository {
	return &mongoStoryRepository{collection: db.Collection("stories")}
}

// EnsureIndexes creates the TTL index driving story eviction. Run once at
// startup.
func (r *mongoStoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (r *mongoStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(models.StoryTTL)
	if story.Viewers == nil {
		story.Viewers = []uint{}
	}
	_, err := r.collection.InsertOne(ctx, story)
	return err
}

func (r *mongoStoryRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never resolve to a story.
		return nil, ErrNotFound
	}
	var story models.Story
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&story)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

// GetActiveStories returns every stored story, oldest first. Expired
// documents are already gone courtesy of the TTL index.
func (r *mongoStoryRepository) GetActiveStories(ctx context.Context) ([]models.Story, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// AddViewer records that viewerID has seen the story. $addToSet keeps the
// viewer set free of duplicates and makes concurrent calls commutative. A
// story that vanished between request and execution matches zero documents;
// that and a malformed id are both silent no-ops, since either way there is
// no story left to mark.
func (r *mongoStoryRepository) AddViewer(ctx context.Context, storyID string, viewerID uint) error {
	objID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return nil
	}
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$addToSet": bson.M{"viewers": viewerID}},
	)
	return err
}

// DeleteStory physically removes a story. Ownership is checked by the
// caller against the loaded document.
func (r *mongoStoryRepository) DeleteStory(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
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

// DeleteExpiredStories removes stories past their deadline. Backstop for
// the TTL monitor; the interval sweeper calls this.
func (r *mongoStoryRepository) DeleteExpiredStories(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
