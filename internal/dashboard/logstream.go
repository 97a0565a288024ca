package dashboard

import (
	"context"
	"sync"

	"gphotos-admin/internal/logger"

	"github.com/rs/xid"
)

// LogSource opens a live stream of raw log lines for a container
type LogSource interface {
	StreamLogs(ctx context.Context, containerID string) (<-chan string, error)
}

// Subscription is one live log stream. Lines is closed when the stream ends
// or the subscription is closed.
type Subscription struct {
	ID          string
	ContainerID string
	Lines       <-chan LogLine

	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

// Subscribe opens a live log stream for a container
func Subscribe(ctx context.Context, src LogSource, containerID string) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	raw, err := src.StreamLogs(ctx, containerID)
	if err != nil {
		cancel()
		return nil, err
	}

	lines := make(chan LogLine, cap(raw))
	sub := &Subscription{
		ID:          xid.New().String(),
		ContainerID: containerID,
		Lines:       lines,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(lines)
		for {
			select {
			case <-ctx.Done():
				return
			case r, ok := <-raw:
				if !ok {
					return
				}
				select {
				case lines <- ParseLogLine(r):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	logger.WithFields(logger.Fields{
		"subscription": sub.ID,
		"container":    containerID,
	}).Debug("Log stream opened")

	return sub, nil
}

// Close cancels the stream. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		logger.WithFields(logger.Fields{
			"subscription": s.ID,
			"container":    s.ContainerID,
		}).Debug("Log stream closed")
	})
}

// Done is closed once the stream has stopped delivering lines
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
