// Package sse fans typed events out to connected Server-Sent Events clients.
package sse

import (
	"sync"
)

// Topic names a kind of event a subscriber can listen to.
type Topic string

const (
	TopicProfileUpdated Topic = "profile_updated"
	TopicLogoUpdated    Topic = "logo_updated"
)

// Event is one message on the hub. An empty UserID reaches every
// subscriber of the topic; otherwise only that user's subscriptions.
type Event struct {
	Topic  Topic
	UserID string
	Data   interface{}
}

// ProfileUpdated is the payload of TopicProfileUpdated.
type ProfileUpdated struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// LogoUpdated is the payload of TopicLogoUpdated.
type LogoUpdated struct {
	Expanded  string `json:"expanded"`
	Collapsed string `json:"collapsed"`
}

// Publisher is the send side of the hub, as seen by services.
type Publisher interface {
	Publish(event Event)
}

type subscription struct {
	userID string
	topics map[Topic]struct{}
}

func (s subscription) wants(e Event) bool {
	if _, ok := s.topics[e.Topic]; !ok {
		return false
	}
	return e.UserID == "" || e.UserID == s.userID
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]subscription
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]subscription),
	}
}

// Subscribe registers a subscriber for the given topics and returns its
// channel and an idempotent cleanup function. No topics means all topics.
func (h *Hub) Subscribe(userID string, topics ...Topic) (<-chan Event, func()) {
	if len(topics) == 0 {
		topics = []Topic{TopicProfileUpdated, TopicLogoUpdated}
	}
	sub := subscription{userID: userID, topics: make(map[Topic]struct{}, len(topics))}
	for _, t := range topics {
		sub.topics[t] = struct{}{}
	}

	ch := make(chan Event, 10)

	h.mu.Lock()
	h.subscribers[ch] = sub
	h.mu.Unlock()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cleanup
}

// Publish delivers the event without blocking; full subscriber buffers drop it.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch, sub := range h.subscribers {
		if !sub.wants(event) {
			continue
		}
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscriptions of a user
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, sub := range h.subscribers {
		if sub.userID == userID {
			n++
		}
	}
	return n
}

// TotalSubscribers returns the number of active subscriptions
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
