package testutil

import (
	"context"
	"sync"

	"gphotos-admin/internal/types"

	"github.com/stretchr/testify/mock"
)

// MockLogSource is a mock log stream provider. Streams opened through it are
// fed with Send and ended with End.
type MockLogSource struct {
	mock.Mock
	mu      sync.Mutex
	streams map[string][]chan string
}

// NewMockLogSource creates a new mock log source
func NewMockLogSource() *MockLogSource {
	return &MockLogSource{streams: make(map[string][]chan string)}
}

// StreamLogs records the call and returns a channel driven by Send. A return
// value configured with On takes precedence.
func (m *MockLogSource) StreamLogs(ctx context.Context, containerID string) (<-chan string, error) {
	if len(m.ExpectedCalls) > 0 {
		args := m.Called(ctx, containerID)
		if err := args.Error(1); err != nil {
			return nil, err
		}
		if ch, ok := args.Get(0).(<-chan string); ok {
			return ch, nil
		}
	}

	ch := make(chan string, 64)
	m.mu.Lock()
	m.streams[containerID] = append(m.streams[containerID], ch)
	m.mu.Unlock()

	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- line:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Send delivers a line to every stream opened for the container
func (m *MockLogSource) Send(containerID, line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.streams[containerID] {
		ch <- line
	}
}

// End closes every stream opened for the container
func (m *MockLogSource) End(containerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.streams[containerID] {
		close(ch)
	}
	delete(m.streams, containerID)
}

// Opened counts the streams opened for a container
func (m *MockLogSource) Opened(containerID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.streams[containerID])
}

// MockSnapshotSource is a mock of the dashboard's read-only backend calls
type MockSnapshotSource struct {
	mock.Mock
}

// ListContainers returns the configured containers
func (m *MockSnapshotSource) ListContainers(ctx context.Context) ([]types.Container, error) {
	args := m.Called(ctx)
	containers, _ := args.Get(0).([]types.Container)
	return containers, args.Error(1)
}

// Stats returns the configured stats
func (m *MockSnapshotSource) Stats(ctx context.Context) (*types.Stats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*types.Stats)
	return stats, args.Error(1)
}

// AvailableProfiles returns the configured profiles
func (m *MockSnapshotSource) AvailableProfiles(ctx context.Context) ([]types.Profile, error) {
	args := m.Called(ctx)
	profiles, _ := args.Get(0).([]types.Profile)
	return profiles, args.Error(1)
}
