package domain

import "time"

// ToastType classifies a user-facing notification.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastWarning ToastType = "warning"
	ToastInfo    ToastType = "info"
)

// Default toast lifetimes.
const (
	DefaultErrorToastDuration = 5 * time.Second
	DefaultToastDuration      = 3 * time.Second
)

// ToastAction is an optional button attached to a toast.
type ToastAction struct {
	Label   string
	OnClick func()
}

// Toast is an ephemeral user-facing message. A nil Duration selects the
// default for its type; a zero Duration never expires.
type Toast struct {
	ID       string
	Message  string
	Type     ToastType
	Duration *time.Duration
	Action   *ToastAction
}

// Persistent is the Duration of a toast that only goes away when dismissed
// or when its action is taken.
func Persistent() *time.Duration {
	d := time.Duration(0)
	return &d
}

// For returns a Duration pointer for d.
func For(d time.Duration) *time.Duration {
	return &d
}

// Notifier surfaces toasts to the user.
type Notifier interface {
	Notify(t Toast) string
	Dismiss(id string)
}
