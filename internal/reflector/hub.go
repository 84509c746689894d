// Package reflector holds the operator-facing display slots and fans every
// write out to live subscribers (the /ws stream).
package reflector

import (
	"sync"

	"servo_control/internal/models"

	"github.com/benbjohnson/clock"
)

// subscriberBuffer is per-subscriber backlog; on overflow the oldest frame is dropped.
const subscriberBuffer = 16

// Hub stores the latest display and broadcasts changes.
type Hub struct {
	mu      sync.RWMutex
	display models.Display
	subs    map[chan models.Event]struct{}
	clock   clock.Clock
}

// NewHub starts with disconnected placeholders until the first poll completes.
func NewHub(clk clock.Clock) *Hub {
	if clk == nil {
		clk = clock.New()
	}
	return &Hub{
		display: models.Display{
			Connection: models.DisconnectedLabel,
			State:      models.Disconnected,
			Class:      models.Disconnected.Class(),
			Angle:      models.PlaceholderAngle,
			Mode:       models.PlaceholderMode,
		},
		subs:  make(map[chan models.Event]struct{}),
		clock: clk,
	}
}

func (h *Hub) DisplayConnection(state models.ConnectionState, label string) {
	h.update(models.EventDisplay, func(d *models.Display) {
		d.Connection = label
		d.State = state
		d.Class = state.Class()
	})
}

func (h *Hub) DisplayAngle(value string) {
	h.update(models.EventDisplay, func(d *models.Display) {
		d.Angle = value
		d.Degrees = nil
		if v, ok := models.AngleDegrees(value); ok {
			d.Degrees = &v
		}
	})
}

func (h *Hub) DisplayMode(value string) {
	h.update(models.EventDisplay, func(d *models.Display) { d.Mode = value })
}

func (h *Hub) NotifyValidationError(message string) {
	h.update(models.EventValidationError, func(d *models.Display) { d.ValidationError = message })
}

// Snapshot returns a copy of the current display.
func (h *Hub) Snapshot() models.Display {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.display
}

// Subscribe registers a new listener. The returned func unsubscribes and closes the channel.
func (h *Hub) Subscribe() (<-chan models.Event, func()) {
	ch := make(chan models.Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// update applies fn and broadcasts under the write lock, so subscribers see writes in slot order.
func (h *Hub) update(eventType string, fn func(d *models.Display)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	fn(&h.display)
	h.display.UpdatedAt = h.clock.Now().UTC()

	ev := models.Event{Type: eventType, Data: h.display}
	if eventType == models.EventValidationError {
		ev.Error = h.display.ValidationError
	}
	for ch := range h.subs {
		deliverLatest(ch, ev)
	}
}

// deliverLatest enqueues ev, evicting the oldest pending frame when ch is full.
// Only update sends on ch, so one eviction always makes room.
func deliverLatest(ch chan models.Event, ev models.Event) {
	select {
	case ch <- ev:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- ev:
	default:
	}
}
