package repositories

import (
	"context"
	"testing"

	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubMemoryRepo struct {
	MemoryRepository
	memory *models.Memory
}

func (s *stubMemoryRepo) GetMemoryByID(_ context.Context, id string) (*models.Memory, error) {
	if s.memory != nil && s.memory.ID.Hex() == id {
		return s.memory, nil
	}
	return nil, ErrNotFound
}

type stubReelRepo struct {
	ReelRepository
}

func (s *stubReelRepo) GetReelByID(context.Context, string) (*models.Reel, error) {
	return nil, ErrNotFound
}

type stubStoryRepo struct {
	StoryRepository
	story *models.Story
}

func (s *stubStoryRepo) GetStoryByID(_ context.Context, id string) (*models.Story, error) {
	if s.story != nil && s.story.ID.Hex() == id {
		return s.story, nil
	}
	return nil, ErrNotFound
}

type stubUserRepo struct {
	UserRepository
	user *models.User
}

func (s *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, ErrNotFound
}

func testResolver(memory *models.Memory, story *models.Story, user *models.User) *ReferenceResolver {
	return NewReferenceResolver(
		&stubMemoryRepo{memory: memory},
		&stubReelRepo{},
		&stubStoryRepo{story: story},
		&stubUserRepo{user: user},
	)
}

func TestResolveMemory(t *testing.T) {
	memory := &models.Memory{ID: primitive.NewObjectID(), UserID: 1, Caption: "hello"}
	r := testResolver(memory, nil, nil)

	got, err := r.Resolve(context.Background(), models.RefMemory, memory.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, memory, got)
}

func TestResolveUserReturnsCompact(t *testing.T) {
	user := &models.User{ID: 7, Name: "someone", Email: "s@example.com", AvatarURL: "https://cdn.example.com/a.png"}
	r := testResolver(nil, nil, user)

	got, err := r.Resolve(context.Background(), models.RefUser, "7")
	require.NoError(t, err)

	compact, ok := got.(models.UserCompact)
	require.True(t, ok, "user references resolve to the compact shape")
	assert.Equal(t, "someone", compact.Name)
}

func TestResolveDanglingIsNilNotError(t *testing.T) {
	r := testResolver(nil, nil, nil)

	for _, onModel := range []string{models.RefMemory, models.RefReel, models.RefStory} {
		got, err := r.Resolve(context.Background(), onModel, primitive.NewObjectID().Hex())
		require.NoError(t, err, onModel)
		assert.Nil(t, got, onModel)
	}

	got, err := r.Resolve(context.Background(), models.RefUser, "99")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveMalformedID(t *testing.T) {
	r := testResolver(nil, nil, nil)

	got, err := r.Resolve(context.Background(), models.RefStory, "not-a-hex-id")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.Resolve(context.Background(), models.RefUser, "not-a-number")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveUnknownDiscriminator(t *testing.T) {
	r := testResolver(nil, nil, nil)

	got, err := r.Resolve(context.Background(), "blog", "whatever")
	require.NoError(t, err)
	assert.Nil(t, got)
}
