package expiry

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/picnichub/memoryhub/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStoryRepo struct {
	repositories.StoryRepository
	sweeps  int64
	deleted int64
	err     error
}

func (f *fakeStoryRepo) DeleteExpiredStories(context.Context) (int64, error) {
	atomic.AddInt64(&f.sweeps, 1)
	return f.deleted, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestNewSweeperDefaultsInterval(t *testing.T) {
	s := NewSweeper(&fakeStoryRepo{}, 0, quietLogger())
	assert.Equal(t, DefaultInterval, s.interval)

	s = NewSweeper(&fakeStoryRepo{}, time.Minute, quietLogger())
	assert.Equal(t, time.Minute, s.interval)
}

func TestSweepSurvivesRepoError(t *testing.T) {
	repo := &fakeStoryRepo{err: errors.New("mongo down")}
	s := NewSweeper(repo, time.Minute, quietLogger())

	s.sweep(context.Background())
	s.sweep(context.Background())

	assert.Equal(t, int64(2), repo.sweeps)
}

func TestRunSweepsUntilCancelled(t *testing.T) {
	repo := &fakeStoryRepo{deleted: 3}
	s := NewSweeper(repo, 5*time.Millisecond, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&repo.sweeps) >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
