package settings

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// fakeConnector serves plugin data from an in-memory map.
type fakeConnector struct {
	mu   sync.Mutex
	data map[string]*PluginData
}

func (c *fakeConnector) Fetch(id string) (*PluginData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[id]
	if !ok {
		return nil, ErrPluginNotFound
	}
	return d, nil
}

func (c *fakeConnector) set(id string, d *PluginData) {
	c.mu.Lock()
	c.data[id] = d
	c.mu.Unlock()
}

func newFakeConnector() *fakeConnector {
	return &fakeConnector{data: make(map[string]*PluginData)}
}

func toolbarSchema(factory string, items string) []byte {
	return fmt.Appendf(nil, `{"title":"Test","jupyter.lab.toolbars":{%q:%s}}`, factory, items)
}

func TestRegistry_Load(t *testing.T) {
	c := newFakeConnector()
	c.set("notebar:foo", &PluginData{
		Schema:  toolbarSchema("dummyFactory", `[{"name":"cut","rank":21}]`),
		Version: "1.0.0",
	})

	r := NewRegistry(c)
	defer r.Close()

	p, err := r.Load("notebar:foo")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.ID != "notebar:foo" {
		t.Errorf("ID = %q, want %q", p.ID, "notebar:foo")
	}
	if p.Version != "1.0.0" {
		t.Errorf("Version = %q, want %q", p.Version, "1.0.0")
	}

	got, ok := r.Get("notebar:foo")
	if !ok || got != p {
		t.Error("Get() did not return the loaded plugin")
	}
}

func TestRegistry_LoadNotFound(t *testing.T) {
	r := NewRegistry(newFakeConnector())
	defer r.Close()

	_, err := r.Load("missing")
	if err == nil {
		t.Fatal("Load() of unknown plugin succeeded")
	}
	if !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("error = %v, want ErrPluginNotFound", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.PluginID != "missing" {
		t.Errorf("error = %#v, want LoadError for %q", err, "missing")
	}
}

func TestRegistry_CompletionOrder(t *testing.T) {
	c := newFakeConnector()
	c.set("foo", &PluginData{Schema: toolbarSchema("f", `[]`)})
	c.set("bar", &PluginData{Schema: toolbarSchema("f", `[]`)})

	r := NewRegistry(c)
	defer r.Close()

	var order []string
	r.OnPluginChanged(func(ch Change) {
		order = append(order, ch.PluginID)
	})

	// Issue both before waiting on either; completions must preserve
	// request order.
	fooCh := r.LoadAsync("foo")
	barCh := r.LoadAsync("bar")
	<-fooCh
	<-barCh

	if len(order) != 2 || order[0] != "foo" || order[1] != "bar" {
		t.Errorf("completion order = %v, want [foo bar]", order)
	}

	plugins := r.Plugins()
	if len(plugins) != 2 || plugins[0].ID != "foo" || plugins[1].ID != "bar" {
		t.Errorf("Plugins() order wrong: %v", plugins)
	}
}

func TestRegistry_ReloadKeepsOrder(t *testing.T) {
	c := newFakeConnector()
	c.set("foo", &PluginData{Schema: toolbarSchema("f", `[]`)})
	c.set("bar", &PluginData{Schema: toolbarSchema("f", `[]`)})

	r := NewRegistry(c)
	defer r.Close()

	if _, err := r.Load("foo"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Load("bar"); err != nil {
		t.Fatal(err)
	}
	// Refresh foo; it keeps its original slot.
	if _, err := r.Load("foo"); err != nil {
		t.Fatal(err)
	}

	plugins := r.Plugins()
	if len(plugins) != 2 || plugins[0].ID != "foo" || plugins[1].ID != "bar" {
		ids := []string{}
		for _, p := range plugins {
			ids = append(ids, p.ID)
		}
		t.Errorf("Plugins() = %v, want [foo bar]", ids)
	}
}

func TestRegistry_Unsubscribe(t *testing.T) {
	c := newFakeConnector()
	c.set("foo", &PluginData{Schema: []byte(`{}`)})

	r := NewRegistry(c)
	defer r.Close()

	var calls int
	sub := r.OnPluginChanged(func(Change) { calls++ })
	sub.Unsubscribe()

	if _, err := r.Load("foo"); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("unsubscribed handler called %d times", calls)
	}
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry(newFakeConnector())
	r.Close()
	r.Close() // idempotent

	if _, err := r.Load("foo"); !errors.Is(err, ErrRegistryClosed) {
		t.Errorf("Load() after Close = %v, want ErrRegistryClosed", err)
	}
}

func TestRegistry_FailedLoadDoesNotStore(t *testing.T) {
	c := newFakeConnector()
	r := NewRegistry(c)
	defer r.Close()

	if _, err := r.Load("foo"); err == nil {
		t.Fatal("expected load failure")
	}
	if _, ok := r.Get("foo"); ok {
		t.Error("failed load stored a plugin")
	}

	// A later successful load recovers.
	c.set("foo", &PluginData{Schema: []byte(`{}`)})
	if _, err := r.Load("foo"); err != nil {
		t.Fatalf("Load() after recovery: %v", err)
	}
	if _, ok := r.Get("foo"); !ok {
		t.Error("recovered plugin not stored")
	}
}
