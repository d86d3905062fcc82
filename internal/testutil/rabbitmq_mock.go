package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

// PublishedEvent captures a single event recorded by the mock publisher
type PublishedEvent struct {
	RoutingKey string
	EventData  interface{}
	Timestamp  time.Time
	RawJSON    []byte
}

// MockPublisher records events in memory instead of talking to RabbitMQ.
// Safe for concurrent use so services can publish from multiple goroutines.
type MockPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// NewMockPublisher creates an in-memory event publisher for tests
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		events: make([]PublishedEvent, 0),
	}
}

// Publish records the event. It also round-trips the payload through JSON
// so tests catch marshalling problems the real publisher would hit.
func (m *MockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	raw, err := json.Marshal(eventData)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, PublishedEvent{
		RoutingKey: routingKey,
		EventData:  eventData,
		Timestamp:  time.Now().UTC(),
		RawJSON:    raw,
	})
	return nil
}

// Close is a no-op for the mock
func (m *MockPublisher) Close() error {
	return nil
}

// GetAllEvents returns a copy of every recorded event in publish order
func (m *MockPublisher) GetAllEvents() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// GetEventsByKey returns recorded events matching the routing key
func (m *MockPublisher) GetEventsByKey(routingKey string) []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []PublishedEvent
	for _, event := range m.events {
		if event.RoutingKey == routingKey {
			out = append(out, event)
		}
	}
	return out
}

// GetEventCount returns the total number of recorded events
func (m *MockPublisher) GetEventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// GetEventCountByKey returns the number of recorded events for the routing key
func (m *MockPublisher) GetEventCountByKey(routingKey string) int {
	return len(m.GetEventsByKey(routingKey))
}

// GetLastEventByKey returns the most recent event for the routing key, or nil
func (m *MockPublisher) GetLastEventByKey(routingKey string) *PublishedEvent {
	matches := m.GetEventsByKey(routingKey)
	if len(matches) == 0 {
		return nil
	}
	return &matches[len(matches)-1]
}

// Reset discards all recorded events
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = m.events[:0]
}

// AssertEventPublished fails the test if no event with the routing key was recorded
func (m *MockPublisher) AssertEventPublished(t *testing.T, routingKey string) {
	t.Helper()

	if m.GetEventCountByKey(routingKey) == 0 {
		t.Errorf("Expected event '%s' to be published, but it was not", routingKey)
	}
}

// AssertEventNotPublished fails the test if any event with the routing key was recorded
func (m *MockPublisher) AssertEventNotPublished(t *testing.T, routingKey string) {
	t.Helper()

	if count := m.GetEventCountByKey(routingKey); count > 0 {
		t.Errorf("Expected no '%s' events, but %d were published", routingKey, count)
	}
}

// AssertEventCount fails the test if the routing key was not published exactly expected times
func (m *MockPublisher) AssertEventCount(t *testing.T, routingKey string, expected int) {
	t.Helper()

	if count := m.GetEventCountByKey(routingKey); count != expected {
		t.Errorf("Expected %d '%s' events, got %d", expected, routingKey, count)
	}
}
