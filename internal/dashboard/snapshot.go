package dashboard

import (
	"context"
	"time"

	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/types"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// SnapshotSource is the set of read-only listing calls
type SnapshotSource interface {
	ListContainers(ctx context.Context) ([]types.Container, error)
	Stats(ctx context.Context) (*types.Stats, error)
	AvailableProfiles(ctx context.Context) ([]types.Profile, error)
}

// Snapshot is one refresh of every listing. A section whose fetch failed
// carries the error instead of data.
type Snapshot struct {
	Containers    []types.Container
	ContainersErr error
	Stats         types.Stats
	StatsErr      error
	Profiles      []types.Profile
	ProfilesErr   error
	FetchedAt     time.Time
}

// FetchSnapshot fetches containers, stats and profiles concurrently
func FetchSnapshot(ctx context.Context, api SnapshotSource) Snapshot {
	var s Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Containers, s.ContainersErr = api.ListContainers(gctx)
		return nil
	})
	g.Go(func() error {
		stats, err := api.Stats(gctx)
		if err == nil && stats != nil {
			s.Stats = *stats
		}
		s.StatsErr = err
		return nil
	})
	g.Go(func() error {
		s.Profiles, s.ProfilesErr = api.AvailableProfiles(gctx)
		return nil
	})
	_ = g.Wait()

	s.FetchedAt = time.Now()
	for section, err := range map[string]error{
		"containers": s.ContainersErr,
		"stats":      s.StatsErr,
		"profiles":   s.ProfilesErr,
	} {
		if err != nil {
			logger.WithError(err).WithField("section", section).Warn("Refresh failed, keeping previous data")
		}
	}
	return s
}

// ApplyTo merges the snapshot over prev, keeping prev's data for every
// section that failed
func (s Snapshot) ApplyTo(prev Snapshot) Snapshot {
	next := s
	if s.ContainersErr != nil {
		next.Containers = prev.Containers
	}
	if s.StatsErr != nil {
		next.Stats = prev.Stats
	}
	if s.ProfilesErr != nil {
		next.Profiles = prev.Profiles
	}
	return next
}

// Failed reports whether every section failed
func (s Snapshot) Failed() bool {
	return s.ContainersErr != nil && s.StatsErr != nil && s.ProfilesErr != nil
}

// Container finds a container by id
func (s Snapshot) Container(id string) (types.Container, bool) {
	return lo.Find(s.Containers, func(c types.Container) bool {
		return c.ID == id
	})
}

// Profile finds an available profile by name
func (s Snapshot) Profile(name string) (types.Profile, bool) {
	return lo.Find(s.Profiles, func(p types.Profile) bool {
		return p.Name == name
	})
}
