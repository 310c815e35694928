package session

import "sync"

// Kernel is the narrow surface of a running compute kernel that toolbar
// controls interact with.
type Kernel interface {
	// Name returns the kernel's display name (e.g. "Python 3").
	Name() string

	// Status returns the kernel's current status.
	Status() Status

	// Interrupt requests interruption of the currently executing cell.
	Interrupt() error

	// Restart requests a kernel restart.
	Restart() error

	// Execute submits code for execution.
	Execute(code string) error
}

// StatusHandler is called when the session's kernel status changes.
type StatusHandler func(status Status)

// KernelHandler is called when the session's kernel is replaced.
type KernelHandler func()

// Context is the live binding between a document and its kernel.
//
// Kernel returns nil until a kernel connection has been established;
// callers treat requests against an absent kernel as no-ops.
type Context interface {
	// Kernel returns the connected kernel, or nil if none.
	Kernel() Kernel

	// KernelDisplayName returns the display name of the current kernel,
	// or "No Kernel" when none is connected.
	KernelDisplayName() string

	// Status returns the session's effective status. Before a kernel
	// exists this is StatusConnecting.
	Status() Status

	// OnStatusChanged registers a handler for status transitions.
	OnStatusChanged(fn StatusHandler) *Subscription

	// OnKernelChanged registers a handler for kernel replacement.
	OnKernelChanged(fn KernelHandler) *Subscription

	// Initialize starts the session and connects a kernel.
	Initialize() error

	// Shutdown terminates the kernel and the session.
	Shutdown() error

	// Dispose releases the context. All subscriptions are dropped.
	Dispose()
}

// Subscription represents an active handler registration on a Context.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// NewSubscription wraps a cancel function for Context implementations.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe removes the handler. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}
