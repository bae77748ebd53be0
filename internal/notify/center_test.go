package notify

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"eventcreator/internal/clock"
	"eventcreator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestCenter() (*Center, *clock.Fake) {
	clk := clock.NewFake(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	return NewCenter(clk, testLogger), clk
}

func post(c *Center, typ domain.ToastType, msg string) string {
	return c.Notify(domain.Toast{Message: msg, Type: typ})
}

func TestCenter_DefaultDurations(t *testing.T) {
	tests := []struct {
		name    string
		toast   domain.Toast
		expires time.Duration
	}{
		{"error defaults to 5s", domain.Toast{Message: "e", Type: domain.ToastError}, 5 * time.Second},
		{"success defaults to 3s", domain.Toast{Message: "s", Type: domain.ToastSuccess}, 3 * time.Second},
		{"warning defaults to 3s", domain.Toast{Message: "w", Type: domain.ToastWarning}, 3 * time.Second},
		{"explicit duration", domain.Toast{Message: "x", Type: domain.ToastInfo, Duration: domain.For(4 * time.Second)}, 4 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clk := newTestCenter()
			c.Notify(tt.toast)

			clk.Advance(tt.expires - time.Millisecond)
			assert.Len(t, c.List(), 1)
			clk.Advance(time.Millisecond)
			assert.Empty(t, c.List())
		})
	}
}

func TestCenter_ZeroDurationPersists(t *testing.T) {
	c, clk := newTestCenter()
	keep := c.Notify(domain.Toast{Message: "stay", Type: domain.ToastError, Duration: domain.Persistent()})
	c.Notify(domain.Toast{Message: "go", Type: domain.ToastSuccess, Duration: domain.For(3000 * time.Millisecond)})

	clk.Advance(10 * time.Minute)

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, keep, list[0].ID)
	assert.Equal(t, 0, clk.Pending())
}

func TestCenter_IDsAreUniqueAndPrefixed(t *testing.T) {
	c, _ := newTestCenter()
	a := post(c, domain.ToastInfo, "same")
	b := post(c, domain.ToastInfo, "same")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "toast_"))
	assert.Len(t, c.List(), 2, "no deduplication")
}

func TestCenter_ListKeepsInsertionOrder(t *testing.T) {
	c, _ := newTestCenter()
	post(c, domain.ToastSuccess, "one")
	post(c, domain.ToastError, "two")
	post(c, domain.ToastWarning, "three")

	var msgs []string
	for _, t := range c.List() {
		msgs = append(msgs, t.Message)
	}
	assert.Equal(t, []string{"one", "two", "three"}, msgs)
}

func TestCenter_DismissIsIdempotent(t *testing.T) {
	c, clk := newTestCenter()
	id := post(c, domain.ToastInfo, "x")
	c.Dismiss(id)
	c.Dismiss(id)
	c.Dismiss("toast_unknown")
	assert.Empty(t, c.List())
	assert.Equal(t, 0, clk.Pending(), "timer stopped on dismiss")
}

func TestCenter_InvokeRunsActionThenRemoves(t *testing.T) {
	c, _ := newTestCenter()
	calls := 0
	id := c.Notify(domain.Toast{
		Message:  "Failed",
		Type:     domain.ToastError,
		Duration: domain.Persistent(),
		Action:   &domain.ToastAction{Label: "Retry", OnClick: func() { calls++ }},
	})
	plain := post(c, domain.ToastInfo, "no action")

	assert.True(t, c.Invoke(id))
	assert.Equal(t, 1, calls)
	assert.False(t, c.Invoke(id), "already removed")
	assert.False(t, c.Invoke(plain))
	require.Len(t, c.List(), 1)
	assert.Equal(t, plain, c.List()[0].ID)
}

func TestCenter_ActionMayNotifyWithoutDeadlock(t *testing.T) {
	c, _ := newTestCenter()
	id := c.Notify(domain.Toast{
		Message: "Failed",
		Type:    domain.ToastError,
		Action:  &domain.ToastAction{Label: "Retry", OnClick: func() { post(c, domain.ToastSuccess, "retried") }},
	})

	require.True(t, c.Invoke(id))
	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, "retried", list[0].Message)
}

func TestCenter_ClearAll(t *testing.T) {
	c, clk := newTestCenter()
	post(c, domain.ToastInfo, "a")
	post(c, domain.ToastError, "b")
	c.ClearAll()
	assert.Empty(t, c.List())
	assert.Equal(t, 0, clk.Pending())
}

func TestCenter_Subscribe(t *testing.T) {
	c, clk := newTestCenter()
	var sizes []int
	unsubscribe := c.Subscribe(func(list []domain.Toast) { sizes = append(sizes, len(list)) })

	post(c, domain.ToastInfo, "a")
	post(c, domain.ToastInfo, "b")
	clk.Advance(3 * time.Second)
	unsubscribe()
	post(c, domain.ToastInfo, "c")

	assert.Equal(t, []int{1, 2, 1, 0}, sizes)
}
