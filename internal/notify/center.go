// Package notify is the in-process toast channel: components push short
// messages, the front end lists and dismisses them, and timers expire them.
package notify

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"eventcreator/internal/clock"
	"eventcreator/internal/domain"

	"github.com/google/uuid"
)

// Center holds the live toasts. It is safe for concurrent use and
// implements domain.Notifier.
type Center struct {
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.Mutex
	toasts []domain.Toast
	timers map[string]clock.Timer

	subsMu sync.Mutex
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func([]domain.Toast)
}

var _ domain.Notifier = (*Center)(nil)

// NewCenter returns an empty Center.
func NewCenter(clk clock.Clock, logger *slog.Logger) *Center {
	return &Center{
		clock:  clk,
		logger: logger,
		timers: make(map[string]clock.Timer),
	}
}

// Notify adds a toast and returns its id. A nil Duration selects the default
// for the toast type; a zero Duration keeps the toast until dismissed.
func (c *Center) Notify(t domain.Toast) string {
	t.ID = "toast_" + uuid.NewString()
	d := effectiveDuration(t)
	t.Duration = domain.For(d)

	c.mu.Lock()
	c.toasts = append(c.toasts, t)
	if d > 0 {
		id := t.ID
		c.timers[id] = c.clock.AfterFunc(d, func() { c.expire(id) })
	}
	list := slices.Clone(c.toasts)
	c.mu.Unlock()

	c.logger.Debug("toast shown", "id", t.ID, "type", t.Type, "message", t.Message)
	c.publish(list)
	return t.ID
}

func effectiveDuration(t domain.Toast) time.Duration {
	if t.Duration != nil {
		return max(*t.Duration, 0)
	}
	if t.Type == domain.ToastError {
		return domain.DefaultErrorToastDuration
	}
	return domain.DefaultToastDuration
}

func (c *Center) expire(id string) {
	if c.remove(id) {
		c.logger.Debug("toast expired", "id", id)
	}
}

// Dismiss removes a toast. Unknown ids are ignored.
func (c *Center) Dismiss(id string) {
	c.remove(id)
}

// Invoke runs the toast's action and removes it. It reports false when the
// id is unknown or the toast has no action.
func (c *Center) Invoke(id string) bool {
	c.mu.Lock()
	i := slices.IndexFunc(c.toasts, func(t domain.Toast) bool { return t.ID == id })
	if i < 0 || c.toasts[i].Action == nil || c.toasts[i].Action.OnClick == nil {
		c.mu.Unlock()
		return false
	}
	action := c.toasts[i].Action.OnClick
	c.mu.Unlock()

	action()
	c.remove(id)
	return true
}

// List returns the live toasts in the order they were added.
func (c *Center) List() []domain.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.toasts)
}

// ClearAll removes every toast and stops their timers.
func (c *Center) ClearAll() {
	c.mu.Lock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.toasts = nil
	c.mu.Unlock()
	c.publish(nil)
}

// Subscribe registers fn to receive the toast list after every change.
func (c *Center) Subscribe(fn func([]domain.Toast)) (unsubscribe func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		c.subs = slices.DeleteFunc(c.subs, func(s subscriber) bool { return s.id == id })
	}
}

func (c *Center) remove(id string) bool {
	c.mu.Lock()
	n := len(c.toasts)
	c.toasts = slices.DeleteFunc(c.toasts, func(t domain.Toast) bool { return t.ID == id })
	removed := len(c.toasts) != n
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	list := slices.Clone(c.toasts)
	c.mu.Unlock()

	if removed {
		c.publish(list)
	}
	return removed
}

func (c *Center) publish(list []domain.Toast) {
	c.subsMu.Lock()
	subs := slices.Clone(c.subs)
	c.subsMu.Unlock()
	for _, s := range subs {
		s.fn(list)
	}
}
