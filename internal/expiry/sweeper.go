// Package expiry runs the interval sweep that deletes stories past their
// deadline. The MongoDB TTL monitor does the same work on its own schedule;
// the sweeper is a backstop, so worst-case visibility overhang for an
// expired story is one sweep interval, not zero.
package expiry

import (
	"context"
	"time"

	"github.com/picnichub/memoryhub/backend/internal/repositories"
	"github.com/picnichub/memoryhub/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is how often the sweeper runs when not configured.
const DefaultInterval = 10 * time.Minute

// Sweeper deletes expired stories on a fixed interval.
type Sweeper struct {
	stories  repositories.StoryRepository
	interval time.Duration
	log      *logrus.Logger
}

// NewSweeper creates a new Sweeper
func NewSweeper(stories repositories.StoryRepository, interval time.Duration, log *logrus.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{stories: stories, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, sweeping once per interval. Call it
// from its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.stories.DeleteExpiredStories(ctx)
	if err != nil {
		s.log.WithError(err).Warn("expired story sweep failed")
		return
	}
	if deleted > 0 {
		metrics.StoriesSwept.Add(float64(deleted))
		s.log.WithField("deleted", deleted).Info("expired stories swept")
	}
}
