// Package live exposes the named queries and mutations of the classroom
// and keeps every subscriber's view of them fresh: queries are re-run and
// pushed as whole snapshots whenever a mutation touches their records.
package live

import (
	"context"
	"log/slog"
	"sync"
)

// Topic names a subscribable query.
type Topic string

const (
	TopicMessages      Topic = "messages"
	TopicAnnouncements Topic = "announcements"
	TopicSchedule      Topic = "schedule"
)

// QueryFunc produces the full current result set for a topic.
type QueryFunc func(ctx context.Context) (any, error)

// Snapshot is one push: the complete current result of a topic's query.
// No delta encoding happens at this layer.
type Snapshot struct {
	Topic Topic `json:"topic"`
	Data  any   `json:"data"`
}

// Subscription delivers snapshots on C. The channel holds at most one
// snapshot: a subscriber that has not drained the previous push has it
// replaced by the newer one, so only the latest consistent state is ever
// observable. Close stops delivery and closes C.
type Subscription struct {
	C <-chan Snapshot

	ch     chan Snapshot
	topics map[Topic]struct{}
	hub    *Hub
	once   sync.Once
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		select {
		case s.hub.unregister <- s:
		case <-s.hub.done:
		}
	})
}

func (s *Subscription) wants(t Topic) bool {
	_, ok := s.topics[t]
	return ok
}

// Hub owns the subscriber set and serializes all pushes through a single
// goroutine, so snapshots are delivered in store commit order.
type Hub struct {
	queries map[Topic]QueryFunc
	log     *slog.Logger

	register   chan *Subscription
	unregister chan *Subscription
	invalidate chan Topic
	done       chan struct{}

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub(queries map[Topic]QueryFunc, log *slog.Logger) *Hub {
	return &Hub{
		queries:    queries,
		log:        log,
		register:   make(chan *Subscription),
		unregister: make(chan *Subscription),
		invalidate: make(chan Topic, 64),
		done:       make(chan struct{}),
		subs:       make(map[*Subscription]struct{}),
	}
}

// Subscribe opens a subscription to the given topics. The current snapshot
// of each topic is delivered shortly after. Unknown topics are ignored.
func (h *Hub) Subscribe(topics ...Topic) *Subscription {
	sub := &Subscription{
		ch:     make(chan Snapshot, 1),
		topics: make(map[Topic]struct{}, len(topics)),
		hub:    h,
	}
	sub.C = sub.ch
	for _, t := range topics {
		if _, ok := h.queries[t]; ok {
			sub.topics[t] = struct{}{}
		}
	}
	select {
	case h.register <- sub:
	case <-h.done:
		close(sub.ch)
	}
	return sub
}

// Invalidate marks a topic dirty. The hub re-runs its query and pushes the
// fresh snapshot to every subscriber. Call after the mutation committed.
func (h *Hub) Invalidate(t Topic) {
	select {
	case h.invalidate <- t:
	case <-h.done:
	}
}

// Run processes registrations and invalidations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subs[sub] = struct{}{}
			h.mu.Unlock()
			for t := range sub.topics {
				h.refresh(ctx, t, sub)
			}

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subs[sub]; ok {
				delete(h.subs, sub)
				close(sub.ch)
			}
			h.mu.Unlock()

		case t := <-h.invalidate:
			// Coalesce bursts: a mutation fan-out only needs the final state.
			dirty := map[Topic]struct{}{t: {}}
		drain:
			for {
				select {
				case more := <-h.invalidate:
					dirty[more] = struct{}{}
				default:
					break drain
				}
			}
			for t := range dirty {
				h.refresh(ctx, t, nil)
			}

		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for sub := range h.subs {
				delete(h.subs, sub)
				close(sub.ch)
			}
			h.mu.Unlock()
			return
		}
	}
}

// refresh re-runs the topic query and pushes the snapshot to only (when
// non-nil) or to every subscriber of the topic.
func (h *Hub) refresh(ctx context.Context, t Topic, only *Subscription) {
	query, ok := h.queries[t]
	if !ok {
		return
	}
	data, err := query(ctx)
	if err != nil {
		h.log.Error("Live query failed, subscribers keep their last snapshot", "topic", t, "error", err)
		return
	}
	snap := Snapshot{Topic: t, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()
	if only != nil {
		if _, registered := h.subs[only]; registered {
			push(only.ch, snap)
		}
		return
	}
	for sub := range h.subs {
		if sub.wants(t) {
			push(sub.ch, snap)
		}
	}
}

// push delivers latest-wins: if the subscriber has not consumed the
// previous snapshot, it is dropped in favor of the new one.
func push(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
