package toolbar

import (
	"testing"

	"github.com/dshills/notebar/internal/session"
	"github.com/dshills/notebar/internal/toolbar/widget"
)

// testHost is a minimal toolbar host for tests.
type testHost struct {
	title string
	sess  session.Context
}

func (h *testHost) Title() string            { return h.title }
func (h *testHost) Session() session.Context { return h.sess }

func defaultLabelFactory(factoryName string, host Host, spec ItemSpec) widget.Widget {
	return widget.NewLabel(factoryName + ":" + spec.Name)
}

func TestNewWidgetRegistry_RequiresDefault(t *testing.T) {
	if _, err := NewWidgetRegistry(WidgetRegistryOptions{}); err != ErrNoDefaultFactory {
		t.Errorf("error = %v, want ErrNoDefaultFactory", err)
	}

	r, err := NewWidgetRegistry(WidgetRegistryOptions{DefaultFactory: defaultLabelFactory})
	if err != nil {
		t.Fatalf("NewWidgetRegistry() error: %v", err)
	}
	if r.DefaultFactory() == nil {
		t.Error("DefaultFactory() = nil")
	}
}

func TestWidgetRegistry_CreateWidget_SpecificFactory(t *testing.T) {
	r, err := NewWidgetRegistry(WidgetRegistryOptions{DefaultFactory: defaultLabelFactory})
	if err != nil {
		t.Fatal(err)
	}

	host := &testHost{title: "Untitled.ipynb"}
	want := widget.NewLabel("specific")

	var gotHost Host
	prev := r.RegisterFactory("dummyFactory", "insert", func(h Host) widget.Widget {
		gotHost = h
		return want
	})
	if prev != nil {
		t.Error("first registration returned a previous constructor")
	}

	got := r.CreateWidget("dummyFactory", host, ItemSpec{Name: "insert"})
	if got != want {
		t.Error("CreateWidget() did not invoke the specific factory")
	}
	if gotHost != host {
		t.Error("specific factory did not receive the host")
	}
}

func TestWidgetRegistry_CreateWidget_Fallback(t *testing.T) {
	var gotFactory string
	var gotHost Host
	var gotSpec ItemSpec

	r, err := NewWidgetRegistry(WidgetRegistryOptions{
		DefaultFactory: func(factoryName string, host Host, spec ItemSpec) widget.Widget {
			gotFactory, gotHost, gotSpec = factoryName, host, spec
			return widget.NewLabel("fallback")
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	host := &testHost{title: "Untitled.ipynb"}
	w := r.CreateWidget("dummyFactory", host, ItemSpec{Name: "unknown"})

	if w == nil || w.Text() != "fallback" {
		t.Fatal("CreateWidget() did not fall through to the default factory")
	}
	if gotFactory != "dummyFactory" || gotHost != host || gotSpec.Name != "unknown" {
		t.Errorf("default factory received (%q, %v, %q)", gotFactory, gotHost, gotSpec.Name)
	}
}

func TestWidgetRegistry_RegisterFactory_ReturnsPrevious(t *testing.T) {
	r, err := NewWidgetRegistry(WidgetRegistryOptions{DefaultFactory: defaultLabelFactory})
	if err != nil {
		t.Fatal(err)
	}

	first := func(h Host) widget.Widget { return widget.NewLabel("first") }
	second := func(h Host) widget.Widget { return widget.NewLabel("second") }

	if prev := r.RegisterFactory("f", "item", first); prev != nil {
		t.Error("expected nil previous on first registration")
	}
	prev := r.RegisterFactory("f", "item", second)
	if prev == nil || prev(nil).Text() != "first" {
		t.Error("second registration did not return the first constructor")
	}
	// Re-registering the identical constructor still reports the prior one.
	prev = r.RegisterFactory("f", "item", second)
	if prev == nil || prev(nil).Text() != "second" {
		t.Error("third registration did not return the second constructor")
	}

	// Restore pattern: put the previous constructor back.
	r.RegisterFactory("f", "item", first)
	w := r.CreateWidget("f", nil, ItemSpec{Name: "item"})
	if w.Text() != "first" {
		t.Errorf("restored constructor not in effect: %q", w.Text())
	}
}

func TestWidgetRegistry_SetDefaultFactory(t *testing.T) {
	r, err := NewWidgetRegistry(WidgetRegistryOptions{DefaultFactory: defaultLabelFactory})
	if err != nil {
		t.Fatal(err)
	}

	if err := r.SetDefaultFactory(nil); err != ErrNoDefaultFactory {
		t.Errorf("SetDefaultFactory(nil) = %v, want ErrNoDefaultFactory", err)
	}

	err = r.SetDefaultFactory(func(f string, h Host, s ItemSpec) widget.Widget {
		return widget.NewLabel("replaced")
	})
	if err != nil {
		t.Fatalf("SetDefaultFactory() error: %v", err)
	}

	w := r.CreateWidget("f", nil, ItemSpec{Name: "x"})
	if w.Text() != "replaced" {
		t.Errorf("replacement default not in effect: %q", w.Text())
	}
}
