package memory

import (
	"context"
	"sync"

	"github.com/aescanero/imuws/pkg/ports"
)

// InMemoryReadingSink implements ReadingSink with a bounded per-device buffer.
// Nothing survives a restart.
type InMemoryReadingSink struct {
	limit   int
	devices map[string][]ports.ReadingEvent
	mu      sync.RWMutex
}

// NewInMemoryReadingSink creates a sink keeping at most limit readings per device
func NewInMemoryReadingSink(limit int) *InMemoryReadingSink {
	if limit < 1 {
		limit = 1
	}
	return &InMemoryReadingSink{
		limit:   limit,
		devices: make(map[string][]ports.ReadingEvent),
	}
}

// Publish stores the event, evicting the oldest reading when full
func (s *InMemoryReadingSink) Publish(ctx context.Context, event ports.ReadingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := append(s.devices[event.DeviceID], event)
	if len(events) > s.limit {
		events = events[len(events)-s.limit:]
	}
	s.devices[event.DeviceID] = events
	return nil
}

// Recent returns up to limit readings for a device, newest first
func (s *InMemoryReadingSink) Recent(ctx context.Context, deviceID string, limit int) ([]ports.ReadingEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.devices[deviceID]
	if limit <= 0 || limit > len(events) {
		limit = len(events)
	}

	out := make([]ports.ReadingEvent, 0, limit)
	for i := len(events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, events[i])
	}
	return out, nil
}

// Close drops all stored readings
func (s *InMemoryReadingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices = make(map[string][]ports.ReadingEvent)
	return nil
}
