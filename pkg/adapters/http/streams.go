package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/flowant/pkg/domain"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  string
}

// StreamManager fans run events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	active      map[string]struct{}
	subscribers map[string]map[chan Message]struct{} // RunID -> Set of Channels
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		active:      make(map[string]struct{}),
		subscribers: make(map[string]map[chan Message]struct{}),
	}
}

// Begin marks runID as running. Only running ids accept subscribers.
func (sm *StreamManager) Begin(runID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.active[runID] = struct{}{}
}

// Active reports whether runID has begun and not yet been closed.
func (sm *StreamManager) Active(runID string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, ok := sm.active[runID]
	return ok
}

// Subscribe registers a listener for runID. The channel is closed when the run
// finishes or when the returned cancel function is called.
// ok is false when runID is not running; the channel is then nil.
func (sm *StreamManager) Subscribe(runID string) (ch <-chan Message, cancel func(), ok bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, running := sm.active[runID]; !running {
		return nil, func() {}, false
	}

	c := make(chan Message, 16)
	if _, ok := sm.subscribers[runID]; !ok {
		sm.subscribers[runID] = make(map[chan Message]struct{})
	}
	sm.subscribers[runID][c] = struct{}{}

	return c, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[runID]; ok {
			if _, live := subs[c]; live {
				delete(subs, c)
				close(c)
			}
			if len(subs) == 0 {
				delete(sm.subscribers, runID)
			}
		}
	}, true
}

// Broadcast delivers msg to every subscriber of runID. Slow subscribers lose messages.
func (sm *StreamManager) Broadcast(runID string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[runID] {
		select {
		case ch <- msg:
		default:
			slog.Warn("SSE: Client buffer full, dropping message", "run_id", runID)
		}
	}
}

// Count returns the number of live subscribers of runID.
func (sm *StreamManager) Count(runID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[runID])
}

// Close ends every stream of runID and marks the run finished.
func (sm *StreamManager) Close(runID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.active, runID)

	for ch := range sm.subscribers[runID] {
		close(ch)
	}
	delete(sm.subscribers, runID)
}

// Hooks returns lifecycle hooks that broadcast iteration ends and improvements.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	publish := func(runID string, t domain.EventType, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		sm.Broadcast(runID, Message{Event: string(t), Data: string(data)})
	}

	return domain.LifecycleHooks{
		OnIterationEnd: func(_ context.Context, e *domain.IterationEvent) {
			publish(e.RunID, e.Type, e)
		},
		OnBestImproved: func(_ context.Context, e *domain.AntEvent) {
			publish(e.RunID, e.Type, e)
		},
	}
}
