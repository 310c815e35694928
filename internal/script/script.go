// Package script loads Lua-defined toolbar widget factories.
//
// User scripts extend a notebook toolbar without recompiling: a script
// calls notebar.register_item(factory, name, opts) to register a
// widget constructor for a (factory name, item name) pair. The Lua
// state is sandboxed: file, OS, and module-loading facilities are
// removed before any script runs.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/notebar/internal/toolbar"
	"github.com/dshills/notebar/internal/toolbar/widget"
)

// Engine evaluates toolbar scripts against a widget registry.
//
// gopher-lua's LState is not goroutine-safe; an Engine must be used
// from a single goroutine.
type Engine struct {
	registry *toolbar.WidgetRegistry
	L        *lua.LState
	closed   bool
}

// NewEngine creates a sandboxed script engine that registers factories
// into the given widget registry.
func NewEngine(reg *toolbar.WidgetRegistry) *Engine {
	L := lua.NewState()
	e := &Engine{registry: reg, L: L}
	e.sandbox()
	e.installAPI()
	return e
}

// Close releases the Lua state.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

// LoadFile evaluates one script file.
func (e *Engine) LoadFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script %s: %w", path, err)
	}
	return e.LoadString(filepath.Base(path), string(src))
}

// LoadDir evaluates every *.lua file in a directory, in name order. A
// missing directory is not an error.
func (e *Engine) LoadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return fmt.Errorf("listing scripts in %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, path := range matches {
		if err := e.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// LoadString evaluates script source under a name used in error
// messages.
func (e *Engine) LoadString(name, src string) error {
	fn, err := e.L.LoadString(src)
	if err != nil {
		return fmt.Errorf("compiling script %s: %w", name, err)
	}
	e.L.Push(fn)
	if err := e.L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("running script %s: %w", name, err)
	}
	return nil
}

// sandbox removes facilities that reach outside the process.
func (e *Engine) sandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		e.L.SetGlobal(name, lua.LNil)
	}
	for _, name := range []string{"os", "io", "package", "debug"} {
		e.L.SetGlobal(name, lua.LNil)
	}
}

// installAPI exposes the notebar table to scripts.
func (e *Engine) installAPI() {
	api := e.L.NewTable()
	e.L.SetField(api, "register_item", e.L.NewFunction(e.luaRegisterItem))
	e.L.SetGlobal("notebar", api)
}

// luaRegisterItem implements notebar.register_item(factory, name, opts).
// opts is a table with optional string fields label, icon, tooltip,
// and command.
func (e *Engine) luaRegisterItem(L *lua.LState) int {
	factoryName := L.CheckString(1)
	itemName := L.CheckString(2)
	opts := L.OptTable(3, L.NewTable())

	label := stringField(L, opts, "label")
	tooltip := stringField(L, opts, "tooltip")
	command := stringField(L, opts, "command")

	var icon rune
	for _, r := range stringField(L, opts, "icon") {
		icon = r
		break
	}

	e.registry.RegisterFactory(factoryName, itemName, func(host toolbar.Host) widget.Widget {
		b := widget.NewButton(label, icon, nil)
		if tooltip != "" {
			b.SetTooltip(tooltip)
		} else if command != "" {
			b.SetTooltip(command)
		}
		return b
	})
	return 0
}

func stringField(L *lua.LState, t *lua.LTable, key string) string {
	v := L.GetField(t, key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}
