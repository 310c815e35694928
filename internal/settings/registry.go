package settings

import "sync"

// PluginData is the raw material fetched for one plugin.
type PluginData struct {
	// Schema is the plugin's JSON schema.
	Schema []byte

	// User is the raw user settings text (may be empty).
	User []byte

	// Version is the plugin's declared version.
	Version string
}

// Connector fetches plugin data from a storage backend.
type Connector interface {
	// Fetch returns the data for one plugin id.
	Fetch(pluginID string) (*PluginData, error)
}

// LoadResult is the outcome of one load request.
type LoadResult struct {
	Plugin *Plugin
	Err    error
}

type loadRequest struct {
	id     string
	result chan LoadResult
}

// Registry loads, stores, and announces settings plugins.
//
// Loads run on a single serial queue: requests issued in a given order
// complete, store, and notify in that same order. Observer handlers are
// invoked from the queue goroutine, so recomputations they trigger
// inherit the ordering guarantee.
type Registry struct {
	mu sync.RWMutex

	connector Connector

	// Loaded plugins and their first-load completion order.
	plugins map[string]*Plugin
	order   []string

	// Change observers.
	handlers map[uint64]Handler
	nextID   uint64

	queue  chan loadRequest
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// NewRegistry creates a registry backed by the given connector and
// starts its load queue.
func NewRegistry(c Connector) *Registry {
	r := &Registry{
		connector: c,
		plugins:   make(map[string]*Plugin),
		handlers:  make(map[uint64]Handler),
		queue:     make(chan loadRequest, 64),
		done:      make(chan struct{}),
	}
	r.wg.Add(1)
	go r.process()
	return r
}

// Load fetches and stores a plugin, blocking until the load completes.
// Loading an already-loaded plugin refreshes it in place.
func (r *Registry) Load(pluginID string) (*Plugin, error) {
	res := <-r.LoadAsync(pluginID)
	return res.Plugin, res.Err
}

// LoadAsync enqueues a load and returns a channel that receives the
// single result. Results are delivered in request order.
func (r *Registry) LoadAsync(pluginID string) <-chan LoadResult {
	ch := make(chan LoadResult, 1)

	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		ch <- LoadResult{Err: ErrRegistryClosed}
		return ch
	}

	select {
	case r.queue <- loadRequest{id: pluginID, result: ch}:
	case <-r.done:
		ch <- LoadResult{Err: ErrRegistryClosed}
	}
	return ch
}

// Get returns a loaded plugin by id.
func (r *Registry) Get(pluginID string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[pluginID]
	return p, ok
}

// Plugins returns all loaded plugins in first-load completion order.
func (r *Registry) Plugins() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Plugin, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.plugins[id])
	}
	return result
}

// Close shuts down the load queue. Pending requests receive
// ErrRegistryClosed. Safe to call more than once.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.done)
	r.wg.Wait()
}

// process serializes load requests.
func (r *Registry) process() {
	defer r.wg.Done()

	for {
		select {
		case req := <-r.queue:
			req.result <- r.doLoad(req.id)
		case <-r.done:
			for {
				select {
				case req := <-r.queue:
					req.result <- LoadResult{Err: ErrRegistryClosed}
				default:
					return
				}
			}
		}
	}
}

// doLoad fetches, composes, stores, and announces one plugin.
func (r *Registry) doLoad(pluginID string) LoadResult {
	data, err := r.connector.Fetch(pluginID)
	if err != nil {
		return LoadResult{Err: &LoadError{PluginID: pluginID, Err: err}}
	}

	composite, err := composeData(data.Schema, data.User)
	if err != nil {
		return LoadResult{Err: &LoadError{PluginID: pluginID, Err: err}}
	}

	p := &Plugin{
		ID:      pluginID,
		Version: data.Version,
		Schema:  data.Schema,
		Data:    composite,
		Raw:     string(data.User),
	}

	r.mu.Lock()
	if _, exists := r.plugins[pluginID]; !exists {
		r.order = append(r.order, pluginID)
	}
	r.plugins[pluginID] = p
	r.mu.Unlock()

	r.notify(Change{PluginID: pluginID, Plugin: p})
	return LoadResult{Plugin: p}
}
