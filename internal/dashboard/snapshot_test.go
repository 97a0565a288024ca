package dashboard

import (
	"context"
	"testing"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/testutil"
	"gphotos-admin/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFetchSnapshot(t *testing.T) {
	src := &testutil.MockSnapshotSource{}
	containers := []types.Container{{ID: "c1", Status: "running", Profile: "default"}}
	profiles := []types.Profile{{Name: "profile2"}}
	src.On("ListContainers", mock.Anything).Return(containers, nil)
	src.On("Stats", mock.Anything).Return(&types.Stats{Total: 1, Running: 1}, nil)
	src.On("AvailableProfiles", mock.Anything).Return(profiles, nil)

	s := FetchSnapshot(context.Background(), src)
	assert.NoError(t, s.ContainersErr)
	assert.Equal(t, containers, s.Containers)
	assert.Equal(t, 1, s.Stats.Running)
	assert.Equal(t, profiles, s.Profiles)
	assert.False(t, s.FetchedAt.IsZero())
	src.AssertExpectations(t)

	c, ok := s.Container("c1")
	assert.True(t, ok)
	assert.Equal(t, "default", c.Profile)
	_, ok = s.Profile("missing")
	assert.False(t, ok)
}

func TestSnapshot_ApplyToKeepsStaleSections(t *testing.T) {
	prev := Snapshot{
		Containers: []types.Container{{ID: "old"}},
		Stats:      types.Stats{Total: 1},
		Profiles:   []types.Profile{{Name: "old-profile"}},
	}

	src := &testutil.MockSnapshotSource{}
	src.On("ListContainers", mock.Anything).Return(nil, errors.New(errors.ErrNetworkConnection, "down"))
	src.On("Stats", mock.Anything).Return(&types.Stats{Total: 2}, nil)
	src.On("AvailableProfiles", mock.Anything).Return(nil, errors.New(errors.ErrAPIDecode, "bad"))

	next := FetchSnapshot(context.Background(), src).ApplyTo(prev)
	assert.Equal(t, prev.Containers, next.Containers)
	assert.Error(t, next.ContainersErr)
	assert.Equal(t, 2, next.Stats.Total)
	assert.Equal(t, prev.Profiles, next.Profiles)
	assert.False(t, next.Failed())
}

func TestSnapshot_Failed(t *testing.T) {
	down := errors.New(errors.ErrNetworkConnection, "down")
	src := &testutil.MockSnapshotSource{}
	src.On("ListContainers", mock.Anything).Return(nil, down)
	src.On("Stats", mock.Anything).Return(nil, down)
	src.On("AvailableProfiles", mock.Anything).Return(nil, down)

	assert.True(t, FetchSnapshot(context.Background(), src).Failed())
}
