package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/notify"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newStoryHandler(storyRepo *fakeStoryRepo, userRepo *fakeUserRepo, followRepo *fakeFollowRepo, notifRepo *fakeNotificationRepo) *StoryHandler {
	return NewStoryHandler(storyRepo, userRepo, followRepo, notify.NewWriter(notifRepo, quietLogger()))
}

func seedStory(t *testing.T, repo *fakeStoryRepo, uploaderID uint, viewers ...uint) *models.Story {
	t.Helper()
	s := &models.Story{
		UserID:  uploaderID,
		Viewers: viewers,
		Items: []models.StoryItem{
			{ID: "item", Type: "image", URL: "https://cdn.example.com/s.jpg", Duration: 5},
		},
	}
	require.NoError(t, repo.CreateStory(context.Background(), s))
	return s
}

func TestCreateStoryValidatesPayload(t *testing.T) {
	h := newStoryHandler(newFakeStoryRepo(), newFakeUserRepo(), &fakeFollowRepo{}, &fakeNotificationRepo{})

	c, _ := newTestContext(t, http.MethodPost, "/stories", `{"type":"image"}`, 1)
	err := h.CreateStory(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code, "media_url is required")
}

func TestCreateStoryFansOutToFollowers(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	followRepo := &fakeFollowRepo{followers: map[uint][]uint{1: {2, 3}}}
	notifRepo := &fakeNotificationRepo{}
	h := newStoryHandler(storyRepo, newFakeUserRepo(), followRepo, notifRepo)

	c, rec := newTestContext(t, http.MethodPost, "/stories",
		`{"media_url":"https://cdn.example.com/s.jpg","type":"image"}`, 1)
	require.NoError(t, h.CreateStory(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, notifRepo.rows, 2, "one notification per follower")
	for _, n := range notifRepo.rows {
		assert.Equal(t, models.NotificationNewStory, n.Type)
		assert.Equal(t, uint(1), n.SenderID)
		assert.Equal(t, models.RefStory, n.OnModel)
	}
}

func TestRecordViewIsIdempotent(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	s := seedStory(t, storyRepo, 1)
	h := newStoryHandler(storyRepo, newFakeUserRepo(), &fakeFollowRepo{}, &fakeNotificationRepo{})

	for i := 0; i < 3; i++ {
		c, rec := newTestContext(t, http.MethodPost, "/stories/"+s.ID.Hex()+"/view", "", 2)
		c.SetParamNames("id")
		c.SetParamValues(s.ID.Hex())
		require.NoError(t, h.RecordView(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, []uint{2}, storyRepo.stories[s.ID.Hex()].Viewers, "viewer recorded once")
}

func TestRecordViewOnVanishedStoryIsNoOp(t *testing.T) {
	h := newStoryHandler(newFakeStoryRepo(), newFakeUserRepo(), &fakeFollowRepo{}, &fakeNotificationRepo{})

	gone := primitive.NewObjectID().Hex()
	c, rec := newTestContext(t, http.MethodPost, "/stories/"+gone+"/view", "", 2)
	c.SetParamNames("id")
	c.SetParamValues(gone)

	require.NoError(t, h.RecordView(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetFeedSeenTransition(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	userRepo := newFakeUserRepo(&models.User{ID: 1, Name: "uploader"}, &models.User{ID: 2, Name: "viewer"})
	s := seedStory(t, storyRepo, 1)
	h := newStoryHandler(storyRepo, userRepo, &fakeFollowRepo{}, &fakeNotificationRepo{})

	feedGroups := func() []interface{} {
		c, rec := newTestContext(t, http.MethodGet, "/stories", "", 2)
		require.NoError(t, h.GetFeed(c))
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		return data["groups"].([]interface{})
	}

	groups := feedGroups()
	require.Len(t, groups, 1)
	first := groups[0].(map[string]interface{})
	assert.True(t, first["has_unseen"].(bool))
	stories := first["stories"].([]interface{})
	require.Len(t, stories, 1)
	assert.False(t, stories[0].(map[string]interface{})["seen"].(bool))

	// Record the view, then the same feed shows seen=true.
	c, _ := newTestContext(t, http.MethodPost, "/stories/"+s.ID.Hex()+"/view", "", 2)
	c.SetParamNames("id")
	c.SetParamValues(s.ID.Hex())
	require.NoError(t, h.RecordView(c))

	groups = feedGroups()
	require.Len(t, groups, 1)
	first = groups[0].(map[string]interface{})
	assert.False(t, first["has_unseen"].(bool))
	stories = first["stories"].([]interface{})
	assert.True(t, stories[0].(map[string]interface{})["seen"].(bool))
}

func TestGetFeedDropsDanglingUploader(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	userRepo := newFakeUserRepo(&models.User{ID: 1, Name: "known"})
	seedStory(t, storyRepo, 1)
	seedStory(t, storyRepo, 42) // uploader 42 does not exist

	h := newStoryHandler(storyRepo, userRepo, &fakeFollowRepo{}, &fakeNotificationRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/stories", "", 2)
	require.NoError(t, h.GetFeed(c))

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	groups := data["groups"].([]interface{})
	require.Len(t, groups, 1)
	uploader := groups[0].(map[string]interface{})["uploader"].(map[string]interface{})
	assert.EqualValues(t, 1, uploader["id"])
}

func TestDeleteStoryOwnerOnly(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	s := seedStory(t, storyRepo, 1)
	h := newStoryHandler(storyRepo, newFakeUserRepo(), &fakeFollowRepo{}, &fakeNotificationRepo{})

	// Non-uploader is rejected.
	c, _ := newTestContext(t, http.MethodDelete, "/stories/"+s.ID.Hex(), "", 2)
	c.SetParamNames("id")
	c.SetParamValues(s.ID.Hex())
	err := h.DeleteStory(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)

	// Uploader succeeds; deletion is physical.
	c, rec := newTestContext(t, http.MethodDelete, "/stories/"+s.ID.Hex(), "", 1)
	c.SetParamNames("id")
	c.SetParamValues(s.ID.Hex())
	require.NoError(t, h.DeleteStory(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, storyRepo.stories)
}
