package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
	"github.com/picnichub/memoryhub/backend/pkg/validators"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository interfaces. Behavior mirrors the real
// stores closely enough for handler semantics: ownership checks, set
// semantics on viewers, soft-delete visibility.

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (f *fakeUserRepo) CreateUser(u *models.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) UpdateUser(u *models.User) error         { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) IncrementFollowersCount(uint, int) error { return nil }
func (f *fakeUserRepo) IncrementFollowingCount(uint, int) error { return nil }

type fakeStoryRepo struct {
	stories map[string]*models.Story
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: make(map[string]*models.Story)}
}

func (f *fakeStoryRepo) CreateStory(_ context.Context, s *models.Story) error {
	s.ID = primitive.NewObjectID()
	s.CreatedAt = time.Now()
	s.ExpiresAt = s.CreatedAt.Add(models.StoryTTL)
	if s.Viewers == nil {
		s.Viewers = []uint{}
	}
	f.stories[s.ID.Hex()] = s
	return nil
}

func (f *fakeStoryRepo) GetStoryByID(_ context.Context, id string) (*models.Story, error) {
	if s, ok := f.stories[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeStoryRepo) GetActiveStories(context.Context) ([]models.Story, error) {
	out := make([]models.Story, 0, len(f.stories))
	for _, s := range f.stories {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStoryRepo) AddViewer(_ context.Context, storyID string, viewerID uint) error {
	s, ok := f.stories[storyID]
	if !ok {
		return nil // vanished story is a silent no-op
	}
	if !s.SeenBy(viewerID) {
		s.Viewers = append(s.Viewers, viewerID)
	}
	return nil
}

func (f *fakeStoryRepo) DeleteStory(_ context.Context, id string) error {
	if _, ok := f.stories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.stories, id)
	return nil
}

func (f *fakeStoryRepo) DeleteExpiredStories(context.Context) (int64, error) { return 0, nil }
func (f *fakeStoryRepo) EnsureIndexes(context.Context) error                 { return nil }

type fakeFollowRepo struct {
	followers map[uint][]uint // userID -> follower ids
}

func (f *fakeFollowRepo) CreateFollow(fl *models.Follow) error {
	if f.followers == nil {
		f.followers = make(map[uint][]uint)
	}
	f.followers[fl.FollowingID] = append(f.followers[fl.FollowingID], fl.FollowerID)
	return nil
}
func (f *fakeFollowRepo) DeleteFollow(uint, uint) error { return nil }
func (f *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	for _, id := range f.followers[followingID] {
		if id == followerID {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeFollowRepo) GetFollowerIDs(userID uint) ([]uint, error) {
	return f.followers[userID], nil
}
func (f *fakeFollowRepo) GetFollowingIDs(uint) ([]uint, error) { return nil, nil }

type fakeNotificationRepo struct {
	rows   []models.Notification
	nextID uint
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int, unreadOnly bool) ([]models.Notification, int64, error) {
	var visible []models.Notification
	for _, n := range f.rows {
		if n.RecipientID != recipientID || n.IsDeleted {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		visible = append(visible, n)
	}
	total := int64(len(visible))
	start := (page - 1) * limit
	if start > len(visible) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(visible) {
		end = len(visible)
	}
	return visible[start:end], total, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.rows {
		if n.RecipientID == recipientID && !n.IsDeleted && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(recipientID, id uint) error {
	for i, n := range f.rows {
		if n.ID == id && n.RecipientID == recipientID && !n.IsDeleted {
			f.rows[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID uint) (int64, error) {
	var updated int64
	for i, n := range f.rows {
		if n.RecipientID == recipientID && !n.IsDeleted && !n.IsRead {
			f.rows[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeNotificationRepo) SoftDelete(recipientID, id uint) error {
	for i, n := range f.rows {
		if n.ID != id {
			continue
		}
		if !n.OwnedBy(recipientID) {
			return repositories.ErrForbidden
		}
		if n.IsDeleted {
			return repositories.ErrNotFound
		}
		f.rows[i].IsDeleted = true
		return nil
	}
	return repositories.ErrNotFound
}

type fakeMemoryRepo struct {
	memories map[string]*models.Memory
}

func newFakeMemoryRepo() *fakeMemoryRepo {
	return &fakeMemoryRepo{memories: make(map[string]*models.Memory)}
}

func (f *fakeMemoryRepo) CreateMemory(_ context.Context, m *models.Memory) error {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now()
	f.memories[m.ID.Hex()] = m
	return nil
}
func (f *fakeMemoryRepo) GetMemoryByID(_ context.Context, id string) (*models.Memory, error) {
	if m, ok := f.memories[id]; ok {
		return m, nil
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeMemoryRepo) GetMemoriesByUserID(context.Context, uint, int64, int64) ([]models.Memory, error) {
	return nil, nil
}
func (f *fakeMemoryRepo) DeleteMemory(_ context.Context, id string) error {
	delete(f.memories, id)
	return nil
}
func (f *fakeMemoryRepo) IncrementLikesCount(context.Context, string, int) error    { return nil }
func (f *fakeMemoryRepo) IncrementCommentsCount(context.Context, string, int) error { return nil }

type fakeReelRepo struct {
	reels map[string]*models.Reel
}

func newFakeReelRepo() *fakeReelRepo {
	return &fakeReelRepo{reels: make(map[string]*models.Reel)}
}

func (f *fakeReelRepo) CreateReel(_ context.Context, r *models.Reel) error {
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now()
	f.reels[r.ID.Hex()] = r
	return nil
}
func (f *fakeReelRepo) GetReelByID(_ context.Context, id string) (*models.Reel, error) {
	if r, ok := f.reels[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeReelRepo) GetReels(context.Context, int64, int64) ([]models.Reel, error) {
	return nil, nil
}
func (f *fakeReelRepo) DeleteReel(_ context.Context, id string) error {
	delete(f.reels, id)
	return nil
}
func (f *fakeReelRepo) IncrementLikesCount(context.Context, string, int) error    { return nil }
func (f *fakeReelRepo) IncrementCommentsCount(context.Context, string, int) error { return nil }

// newTestContext builds an echo context with an authenticated caller.
func newTestContext(t *testing.T, method, target string, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
	}
	return c, rec
}

// decodeBody unmarshals a recorded JSON response.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
