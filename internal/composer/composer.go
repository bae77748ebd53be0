// Package composer orchestrates the event form: debounced draft saving,
// the validate, confirm and publish workflow, optimistic module updates
// and image uploads. It mutates the store and reports outcomes through
// toasts.
package composer

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"
	"time"

	"eventcreator/internal/clock"
	"eventcreator/internal/domain"
	"eventcreator/internal/registry"
	"eventcreator/internal/store"
)

// DefaultAutoSaveDelay is the debounce window for auto-save.
const DefaultAutoSaveDelay = 500 * time.Millisecond

// ErrPublishInProgress is returned by GoLive while another publish attempt
// has not finished.
var ErrPublishInProgress = errors.New("publish already in progress")

// Prompt is a yes/no question put to the user.
type Prompt struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
}

// PublishPrompt is asked before an event is published.
var PublishPrompt = Prompt{
	Title:        "Publish Event?",
	Message:      "Are you sure you want to publish this event? This will make it visible to others.",
	ConfirmLabel: "Publish",
	CancelLabel:  "Cancel",
}

// Confirmer asks the user to confirm an action. Confirm blocks until the
// user answers or ctx is done.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) bool

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) bool { return f(ctx, p) }

// SaveState is the draft save state machine.
type SaveState int

const (
	SaveIdle SaveState = iota
	SavePending
	Saving
	SaveFailed
)

func (s SaveState) String() string {
	switch s {
	case SavePending:
		return "pending"
	case Saving:
		return "saving"
	case SaveFailed:
		return "failed"
	}
	return "idle"
}

// PublishState is the publish workflow state machine.
type PublishState int

const (
	PublishIdle PublishState = iota
	Validating
	Confirming
	Publishing
	Published
	PublishFailed
)

func (s PublishState) String() string {
	switch s {
	case Validating:
		return "validating"
	case Confirming:
		return "confirming"
	case Publishing:
		return "publishing"
	case Published:
		return "published"
	case PublishFailed:
		return "failed"
	}
	return "idle"
}

// Deps are the collaborators of a Composer. Store, API and Notifier are
// required. A nil Confirmer confirms everything.
type Deps struct {
	Store         *store.Store
	API           domain.EventAPI
	Notifier      domain.Notifier
	Modules       registry.Source
	Clock         clock.Clock
	Confirmer     Confirmer
	Logger        *slog.Logger
	AutoSaveDelay time.Duration
}

// Composer drives the event form. It is safe for concurrent use.
type Composer struct {
	store     *store.Store
	api       domain.EventAPI
	notifier  domain.Notifier
	modules   registry.Source
	clock     clock.Clock
	confirmer Confirmer
	logger    *slog.Logger
	delay     time.Duration

	// ctx bounds background work (auto-saves, retries, module persists).
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubscribe func()

	mu            sync.Mutex
	closed        bool
	timer         clock.Timer
	saveGen       uint64
	saveState     SaveState
	lastSaved     time.Time
	publishState  PublishState
	lastPublished *domain.Published
	fieldErrors   map[domain.Field]string

	// modMu serialises module bookkeeping against the store.
	modMu        sync.Mutex
	moduleSeq    map[string]uint64
	lastInstance int64

	imgMu sync.Mutex
}

// New builds a Composer and subscribes it to store changes.
func New(d Deps) *Composer {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.Modules == nil {
		d.Modules = registry.Static(registry.Default())
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Confirmer == nil {
		d.Confirmer = ConfirmFunc(func(context.Context, Prompt) bool { return true })
	}
	if d.AutoSaveDelay <= 0 {
		d.AutoSaveDelay = DefaultAutoSaveDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Composer{
		store:       d.Store,
		api:         d.API,
		notifier:    d.Notifier,
		modules:     d.Modules,
		clock:       d.Clock,
		confirmer:   d.Confirmer,
		logger:      d.Logger,
		delay:       d.AutoSaveDelay,
		ctx:         ctx,
		cancel:      cancel,
		fieldErrors: map[domain.Field]string{},
		moduleSeq:   map[string]uint64{},
	}
	c.unsubscribe = d.Store.Subscribe(c.onStoreChange)
	return c
}

// Close stops the debounce timer, detaches from the store, cancels
// background calls and waits for them to return.
func (c *Composer) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()

	c.unsubscribe()
	c.cancel()
	c.wg.Wait()
}

// FieldErrors returns the current per-field error messages.
func (c *Composer) FieldErrors() map[domain.Field]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.fieldErrors)
}

// SaveState reports the draft save state.
func (c *Composer) SaveState() SaveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveState
}

// LastSaved returns when a draft save last succeeded, or the zero time.
func (c *Composer) LastSaved() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved
}

// PublishState reports the publish workflow state.
func (c *Composer) PublishState() PublishState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publishState
}

// LastPublished returns the last successful publish response, or nil.
func (c *Composer) LastPublished() *domain.Published {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastPublished == nil {
		return nil
	}
	p := *c.lastPublished
	return &p
}

func (c *Composer) toast(typ domain.ToastType, msg string, d *time.Duration, action *domain.ToastAction) string {
	return c.notifier.Notify(domain.Toast{Message: msg, Type: typ, Duration: d, Action: action})
}

// retry returns a toast action that runs fn under the composer context.
func (c *Composer) retry(fn func(ctx context.Context)) *domain.ToastAction {
	return &domain.ToastAction{Label: "Retry", OnClick: func() { fn(c.ctx) }}
}

// userMessage prefers the server's message over a fixed fallback.
func userMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
