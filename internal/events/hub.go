package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/nats-io/nats.go"
)

// SnapshotFunc recomputes the aggregate pushed to live subscribers.
type SnapshotFunc func(ctx context.Context) (interface{}, error)

// LiveStatsHub fans feedback events out to websocket subscribers as
// recomputed stats snapshots. It replaces client-side interval polling:
// a snapshot is pushed only when a submission actually arrives, and a
// failed recompute keeps the previous snapshot instead of clearing it.
type LiveStatsHub struct {
	snapshot SnapshotFunc

	nc  *nats.Conn
	sub *nats.Subscription

	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
	last        []byte
}

func NewLiveStatsHub(snapshot SnapshotFunc) *LiveStatsHub {
	return &LiveStatsHub{
		snapshot:    snapshot,
		subscribers: make(map[chan []byte]struct{}),
	}
}

// Listen subscribes the hub to feedback events on NATS.
func (h *LiveStatsHub) Listen(natsURL string) error {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return err
	}

	sub, err := nc.Subscribe(SubjectFeedbackReceived, func(msg *nats.Msg) {
		var event FeedbackReceivedEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.Printf("Failed to unmarshal feedback event: %v", err)
			return
		}
		h.Refresh(context.Background())
	})
	if err != nil {
		nc.Close()
		return err
	}

	h.nc = nc
	h.sub = sub

	log.Printf("Live stats hub listening on subject %q", SubjectFeedbackReceived)
	return nil
}

// Close unsubscribes and closes the hub's NATS connection. Safe to call
// when Listen never succeeded.
func (h *LiveStatsHub) Close() {
	if h.sub != nil {
		if err := h.sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe live stats hub: %v", err)
		}
		h.sub = nil
	}
	if h.nc != nil {
		h.nc.Close()
		h.nc = nil
	}
}

// Refresh recomputes the snapshot and broadcasts it. On failure the last
// good snapshot stays in place and subscribers receive nothing.
func (h *LiveStatsHub) Refresh(ctx context.Context) {
	snapshot, err := h.snapshot(ctx)
	if err != nil {
		log.Printf("Failed to recompute stats snapshot: %v", err)
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Failed to marshal stats snapshot: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = payload
	for ch := range h.subscribers {
		select {
		case ch <- payload:
		default:
			// A slow subscriber skips this tick rather than blocking the hub.
		}
	}
}

// Subscribe registers a live subscriber. The returned channel immediately
// carries the last snapshot when one exists. The cancel func must be
// called when the subscriber goes away.
func (h *LiveStatsHub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	if h.last != nil {
		ch <- h.last
	}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}
