// Package feed reshapes active stories into the per-uploader grouped view
// the clients render. Pure value transformation; fetching is the caller's
// job.
package feed

import (
	"sort"
	"time"

	"github.com/picnichub/memoryhub/backend/internal/models"
)

// StoryView is a single story annotated with the viewer's seen state.
type StoryView struct {
	ID        string             `json:"id"`
	Items     []models.StoryItem `json:"items"`
	Seen      bool               `json:"seen"`
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// Group is one uploader's stories, oldest first.
type Group struct {
	Uploader  models.UserCompact `json:"uploader"`
	Stories   []StoryView        `json:"stories"`
	HasUnseen bool               `json:"has_unseen"`
}

// Build groups stories by uploader and orders the groups for viewerID:
// groups holding at least one unseen story come first; within each
// partition groups are ordered by their newest story, most recent first.
// Stories inside a group stay in chronological order. A story whose
// uploader is missing from uploaders is dropped rather than producing a
// malformed group.
func Build(stories []models.Story, uploaders map[uint]models.UserCompact, viewerID uint) []Group {
	type bucket struct {
		group  Group
		latest time.Time
	}

	order := make([]uint, 0)
	buckets := make(map[uint]*bucket)

	for _, s := range stories {
		uploader, ok := uploaders[s.UserID]
		if !ok {
			continue
		}
		b, ok := buckets[s.UserID]
		if !ok {
			b = &bucket{group: Group{Uploader: uploader}}
			buckets[s.UserID] = b
			order = append(order, s.UserID)
		}
		seen := s.SeenBy(viewerID)
		if !seen {
			b.group.HasUnseen = true
		}
		if s.CreatedAt.After(b.latest) {
			b.latest = s.CreatedAt
		}
		b.group.Stories = append(b.group.Stories, StoryView{
			ID:        s.ID.Hex(),
			Items:     s.Items,
			Seen:      seen,
			CreatedAt: s.CreatedAt,
			ExpiresAt: s.ExpiresAt,
		})
	}

	// Stories arrive oldest first from the store; keep each group sorted
	// even if the input order was mixed.
	for _, b := range buckets {
		sort.SliceStable(b.group.Stories, func(i, j int) bool {
			return b.group.Stories[i].CreatedAt.Before(b.group.Stories[j].CreatedAt)
		})
	}

	groups := make([]*bucket, 0, len(order))
	for _, id := range order {
		groups = append(groups, buckets[id])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].group.HasUnseen != groups[j].group.HasUnseen {
			return groups[i].group.HasUnseen
		}
		return groups[i].latest.After(groups[j].latest)
	})

	out := make([]Group, len(groups))
	for i, b := range groups {
		out[i] = b.group
	}
	return out
}
