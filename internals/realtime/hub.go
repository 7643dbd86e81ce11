// Package realtime is the in-process publish/subscribe channel behind the
// chat and whiteboard websockets. Delivery is fire-and-forget: a slow
// subscriber drops messages and recovers through the history endpoints.
package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

const subscriberBuffer = 64

func ChatTopic(teamID uuid.UUID) string       { return fmt.Sprintf("chat:%s", teamID) }
func WhiteboardTopic(teamID uuid.UUID) string { return fmt.Sprintf("whiteboard:%s", teamID) }

type Subscriber struct {
	C     chan []byte
	topic string
}

type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe(topic string) *Subscriber {
	sub := &Subscriber{C: make(chan []byte, subscriberBuffer), topic: topic}
	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscriber]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[sub.topic]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.C)
		}
		if len(set) == 0 {
			delete(h.subs, sub.topic)
		}
	}
	h.mu.Unlock()
}

// Publish marshals payload once and fans it out to every subscriber of the
// topic. Subscribers with a full buffer are skipped.
func (h *Hub) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ERROR] realtime marshal on %s: %v", topic, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[topic] {
		select {
		case sub.C <- data:
		default:
			// fire-and-forget: drop for slow consumers
		}
	}
}

// SubscriberCount is used by tests and the health endpoint.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
