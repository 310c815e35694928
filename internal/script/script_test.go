package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/notebar/internal/toolbar"
	"github.com/dshills/notebar/internal/toolbar/widget"
)

func newRegistry(t *testing.T) *toolbar.WidgetRegistry {
	t.Helper()
	reg, err := toolbar.NewWidgetRegistry(toolbar.WidgetRegistryOptions{
		DefaultFactory: func(f string, h toolbar.Host, s toolbar.ItemSpec) widget.Widget {
			return widget.NewLabel(s.Name)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestEngine_RegisterItem(t *testing.T) {
	reg := newRegistry(t)
	e := NewEngine(reg)
	defer e.Close()

	err := e.LoadString("test.lua", `
		notebar.register_item("Notebook", "lint", {
			label = "Lint",
			icon = "✓",
			tooltip = "Lint the notebook",
		})
	`)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}

	w := reg.CreateWidget("Notebook", nil, toolbar.ItemSpec{Name: "lint"})
	b, ok := w.(*widget.Button)
	if !ok {
		t.Fatalf("widget is %T, want *widget.Button", w)
	}
	if b.Text() != "Lint" {
		t.Errorf("Text() = %q, want %q", b.Text(), "Lint")
	}
	if b.Icon() != '✓' {
		t.Errorf("Icon() = %q, want %q", b.Icon(), '✓')
	}
	if b.Tooltip() != "Lint the notebook" {
		t.Errorf("Tooltip() = %q", b.Tooltip())
	}
}

func TestEngine_RegisterItemMinimalOpts(t *testing.T) {
	reg := newRegistry(t)
	e := NewEngine(reg)
	defer e.Close()

	if err := e.LoadString("test.lua", `notebar.register_item("Notebook", "x")`); err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}

	w := reg.CreateWidget("Notebook", nil, toolbar.ItemSpec{Name: "x"})
	if _, ok := w.(*widget.Button); !ok {
		t.Fatalf("widget is %T, want *widget.Button", w)
	}
}

func TestEngine_CompileError(t *testing.T) {
	e := NewEngine(newRegistry(t))
	defer e.Close()

	if err := e.LoadString("bad.lua", `this is not lua`); err == nil {
		t.Error("LoadString() of invalid source succeeded")
	}
}

func TestEngine_SandboxBlocksOS(t *testing.T) {
	e := NewEngine(newRegistry(t))
	defer e.Close()

	tests := []string{
		`os.execute("true")`,
		`io.open("/etc/passwd")`,
		`require("socket")`,
		`loadstring("return 1")()`,
	}
	for _, src := range tests {
		if err := e.LoadString("escape.lua", src); err == nil {
			t.Errorf("sandboxed script %q ran without error", src)
		}
	}
}

func TestEngine_LoadDir(t *testing.T) {
	dir := t.TempDir()
	script := `notebar.register_item("Notebook", "from-file", {label = "File"})`
	if err := os.WriteFile(filepath.Join(dir, "a.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := newRegistry(t)
	e := NewEngine(reg)
	defer e.Close()

	if err := e.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}

	w := reg.CreateWidget("Notebook", nil, toolbar.ItemSpec{Name: "from-file"})
	if w.Text() != "File" {
		t.Errorf("Text() = %q, want %q", w.Text(), "File")
	}
}

func TestEngine_LoadDirMissing(t *testing.T) {
	e := NewEngine(newRegistry(t))
	defer e.Close()

	if err := e.LoadDir(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("LoadDir() of missing dir = %v, want nil", err)
	}
}
