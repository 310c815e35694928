package session

import (
	"errors"
	"sort"
	"sync"
)

// Errors returned by session operations.
var (
	// ErrDisposed indicates the context has been disposed.
	ErrDisposed = errors.New("session context disposed")

	// ErrNoKernel indicates an operation that requires a kernel was
	// attempted while none is connected.
	ErrNoKernel = errors.New("no kernel connected")
)

// LocalContext is an in-process session context backed by a simulated
// kernel. It drives the same status transitions a remote kernel would
// and is used by the demo shell and by tests.
type LocalContext struct {
	mu sync.RWMutex

	kernelName string
	kernel     *localKernel
	disposed   bool

	nextID         uint64
	statusHandlers map[uint64]StatusHandler
	kernelHandlers map[uint64]KernelHandler
}

var _ Context = (*LocalContext)(nil)

// NewLocalContext creates a session context that will connect a
// simulated kernel with the given display name on Initialize.
func NewLocalContext(kernelName string) *LocalContext {
	return &LocalContext{
		kernelName:     kernelName,
		statusHandlers: make(map[uint64]StatusHandler),
		kernelHandlers: make(map[uint64]KernelHandler),
	}
}

// Kernel returns the connected kernel, or nil if none.
func (c *LocalContext) Kernel() Kernel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kernel == nil {
		return nil
	}
	return c.kernel
}

// KernelDisplayName returns the current kernel's display name.
func (c *LocalContext) KernelDisplayName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kernel == nil {
		return "No Kernel"
	}
	return c.kernel.name
}

// Status returns the effective session status. Before a kernel exists
// this is StatusConnecting.
func (c *LocalContext) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kernel == nil {
		return StatusConnecting
	}
	return c.kernel.status
}

// OnStatusChanged registers a handler for status transitions.
func (c *LocalContext) OnStatusChanged(fn StatusHandler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.statusHandlers[id] = fn

	return NewSubscription(func() {
		c.mu.Lock()
		delete(c.statusHandlers, id)
		c.mu.Unlock()
	})
}

// OnKernelChanged registers a handler for kernel replacement.
func (c *LocalContext) OnKernelChanged(fn KernelHandler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.kernelHandlers[id] = fn

	return NewSubscription(func() {
		c.mu.Lock()
		delete(c.kernelHandlers, id)
		c.mu.Unlock()
	})
}

// Initialize connects the simulated kernel and brings it to idle.
func (c *LocalContext) Initialize() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	if c.kernel != nil {
		c.mu.Unlock()
		return nil
	}
	c.kernel = &localKernel{ctx: c, name: c.kernelName, status: StatusStarting}
	c.mu.Unlock()

	c.notifyKernelChanged()
	c.notifyStatus(StatusStarting)
	c.setStatus(StatusIdle)
	return nil
}

// Shutdown terminates the kernel. The context remains usable; a later
// Initialize connects a fresh kernel.
func (c *LocalContext) Shutdown() error {
	c.mu.Lock()
	if c.kernel == nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.setStatus(StatusTerminating)
	c.setStatus(StatusDead)

	c.mu.Lock()
	c.kernel = nil
	c.mu.Unlock()
	c.notifyKernelChanged()
	return nil
}

// Dispose drops all subscriptions and shuts the session down.
func (c *LocalContext) Dispose() {
	_ = c.Shutdown()

	c.mu.Lock()
	c.disposed = true
	c.statusHandlers = make(map[uint64]StatusHandler)
	c.kernelHandlers = make(map[uint64]KernelHandler)
	c.mu.Unlock()
}

// setStatus updates the kernel status and notifies handlers.
func (c *LocalContext) setStatus(s Status) {
	c.mu.Lock()
	if c.kernel == nil || c.kernel.status == s {
		c.mu.Unlock()
		return
	}
	c.kernel.status = s
	c.mu.Unlock()

	c.notifyStatus(s)
}

// notifyStatus delivers a status change outside the lock, in handler
// registration order.
func (c *LocalContext) notifyStatus(s Status) {
	c.mu.RLock()
	ids := make([]uint64, 0, len(c.statusHandlers))
	for id := range c.statusHandlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]StatusHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, c.statusHandlers[id])
	}
	c.mu.RUnlock()

	for _, fn := range handlers {
		fn(s)
	}
}

// notifyKernelChanged delivers a kernel change outside the lock, in
// handler registration order.
func (c *LocalContext) notifyKernelChanged() {
	c.mu.RLock()
	ids := make([]uint64, 0, len(c.kernelHandlers))
	for id := range c.kernelHandlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]KernelHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, c.kernelHandlers[id])
	}
	c.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}

// localKernel simulates a compute kernel. Execute transitions the
// session busy then idle synchronously so observers see both states in
// order.
type localKernel struct {
	ctx    *LocalContext
	name   string
	status Status
}

// Name returns the kernel display name.
func (k *localKernel) Name() string { return k.name }

// Status returns the kernel status.
func (k *localKernel) Status() Status {
	k.ctx.mu.RLock()
	defer k.ctx.mu.RUnlock()
	return k.status
}

// Interrupt cancels any in-flight execution.
func (k *localKernel) Interrupt() error {
	if k.Status() == StatusBusy {
		k.ctx.setStatus(StatusIdle)
	}
	return nil
}

// Restart cycles the kernel back to idle.
func (k *localKernel) Restart() error {
	k.ctx.setStatus(StatusRestarting)
	k.ctx.setStatus(StatusStarting)
	k.ctx.setStatus(StatusIdle)
	return nil
}

// Execute runs code, emitting busy then idle transitions.
func (k *localKernel) Execute(code string) error {
	if k.Status() == StatusDead {
		return ErrNoKernel
	}
	k.ctx.setStatus(StatusBusy)
	k.ctx.setStatus(StatusIdle)
	return nil
}
