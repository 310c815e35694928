package toolbar

import (
	"sync"

	"github.com/dshills/notebar/internal/session"
	"github.com/dshills/notebar/internal/toolbar/widget"
)

// Host is the document widget a toolbar is attached to. Specific
// widget factories receive only the host; they are expected to close
// over anything else they need.
type Host interface {
	// Title returns the host document's display title.
	Title() string

	// Session returns the host's kernel session context, or nil for
	// documents without a kernel.
	Session() session.Context
}

// WidgetFunc constructs a widget for a specifically registered
// (factory, item) pair. It receives only the host context.
type WidgetFunc func(host Host) widget.Widget

// DefaultFunc constructs a widget when no specific registration
// matches. Standing in for an unknown item, it additionally receives
// the factory name and the item spec.
type DefaultFunc func(factoryName string, host Host, spec ItemSpec) widget.Widget

type factoryKey struct {
	factory string
	item    string
}

// WidgetRegistry maps (factory name, item name) pairs to widget
// constructors. Registrations are last-write-wins; the previous
// constructor is returned so callers can override and later restore.
type WidgetRegistry struct {
	mu             sync.RWMutex
	defaultFactory DefaultFunc
	factories      map[factoryKey]WidgetFunc
}

// WidgetRegistryOptions configures a WidgetRegistry.
type WidgetRegistryOptions struct {
	// DefaultFactory is the fallback constructor. Required.
	DefaultFactory DefaultFunc
}

// NewWidgetRegistry creates a registry. A missing default factory is a
// configuration error surfaced synchronously.
func NewWidgetRegistry(opts WidgetRegistryOptions) (*WidgetRegistry, error) {
	if opts.DefaultFactory == nil {
		return nil, ErrNoDefaultFactory
	}
	return &WidgetRegistry{
		defaultFactory: opts.DefaultFactory,
		factories:      make(map[factoryKey]WidgetFunc),
	}, nil
}

// DefaultFactory returns the current fallback constructor.
func (r *WidgetRegistry) DefaultFactory() DefaultFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultFactory
}

// SetDefaultFactory replaces the fallback constructor. The replacement
// takes effect on the next CreateWidget call. A nil factory is
// rejected; the registry always has a default.
func (r *WidgetRegistry) SetDefaultFactory(fn DefaultFunc) error {
	if fn == nil {
		return ErrNoDefaultFactory
	}
	r.mu.Lock()
	r.defaultFactory = fn
	r.mu.Unlock()
	return nil
}

// RegisterFactory registers a constructor for a (factory, item) pair,
// overwriting any existing registration. It returns the previously
// registered constructor, or nil if there was none.
func (r *WidgetRegistry) RegisterFactory(factoryName, itemName string, fn WidgetFunc) WidgetFunc {
	key := factoryKey{factory: factoryName, item: itemName}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.factories[key]
	if fn == nil {
		delete(r.factories, key)
	} else {
		r.factories[key] = fn
	}
	return prev
}

// CreateWidget constructs the widget for an item spec. A specific
// registration for (factoryName, spec.Name) is invoked with only the
// host; otherwise the default factory is invoked with the factory
// name, host, and spec. Lookup misses are not errors.
func (r *WidgetRegistry) CreateWidget(factoryName string, host Host, spec ItemSpec) widget.Widget {
	r.mu.RLock()
	fn := r.factories[factoryKey{factory: factoryName, item: spec.Name}]
	def := r.defaultFactory
	r.mu.RUnlock()

	if fn != nil {
		return fn(host)
	}
	return def(factoryName, host, spec)
}
