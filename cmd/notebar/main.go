// Package main is the entry point for the notebar demo shell.
//
// It runs a single notebook toolbar in the terminal: kernel controls
// bound to a local session context, plus whatever items the settings
// plugins and Lua scripts contribute. Settings files are live; editing
// them while the shell runs re-derives the toolbar.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/notebar/internal/config"
	"github.com/dshills/notebar/internal/i18n"
	"github.com/dshills/notebar/internal/render"
	"github.com/dshills/notebar/internal/script"
	"github.com/dshills/notebar/internal/session"
	"github.com/dshills/notebar/internal/settings"
	"github.com/dshills/notebar/internal/settings/loader"
	"github.com/dshills/notebar/internal/settings/watcher"
	"github.com/dshills/notebar/internal/toolbar"
	"github.com/dshills/notebar/internal/toolbar/widget"
)

// The notebook panel's factory name and primary plugin id.
const (
	factoryName = "Notebook"
	pluginID    = "@notebar/notebook-extension"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	opts.apply(&cfg)

	tr := newTranslator(cfg.Locale)

	// Kernel session.
	sess := session.NewLocalContext(cfg.KernelName)
	defer sess.Dispose()

	// Widget registry: kernel controls plus a default factory that
	// renders unknown items as plain command buttons.
	reg, err := toolbar.NewWidgetRegistry(toolbar.WidgetRegistryOptions{
		DefaultFactory: func(_ string, _ toolbar.Host, spec toolbar.ItemSpec) widget.Widget {
			return widget.NewButton(spec.Name, 0, nil)
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	registerKernelControls(reg, tr)

	// Lua-scripted factories.
	engine := script.NewEngine(reg)
	defer engine.Close()
	if err := engine.LoadDir(cfg.ScriptsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading scripts: %v\n", err)
		return 1
	}

	// Settings registry fed from the settings directory.
	conn := loader.NewDirConnector(cfg.SettingsDir)
	st := settings.NewRegistry(conn)
	defer st.Close()

	if ids, err := conn.IDs(); err == nil {
		for _, id := range ids {
			st.LoadAsync(id)
		}
	}

	factory := toolbar.NewItemFactory(reg, st, factoryName, pluginID, tr)
	defer factory.Dispose()

	// Live reload of edited settings files. A missing settings
	// directory just disables reload.
	if w, err := watcher.New(cfg.SettingsDir, watcher.WithDebounce(cfg.Debounce())); err == nil {
		w.OnChange(func(id string) { st.LoadAsync(id) })
		if err := w.Start(); err == nil {
			defer w.Close()
		} else {
			w.Close()
		}
	}

	if err := sess.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: starting kernel: %v\n", err)
		return 1
	}

	if err := runUI(sess, st, factory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runUI owns the screen and the event loop.
func runUI(sess session.Context, st *settings.Registry, factory *toolbar.ItemFactory) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	// Redraw triggers from outside the event loop are posted as
	// interrupt events so all drawing happens on one goroutine.
	redraw := func() { _ = screen.PostEvent(tcell.NewEventInterrupt(nil)) }
	statusSub := sess.OnStatusChanged(func(session.Status) { redraw() })
	defer statusSub.Unsubscribe()
	pluginSub := st.OnPluginChanged(func(settings.Change) { redraw() })
	defer pluginSub.Unsubscribe()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		_ = screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
	}()

	host := &shellHost{sess: sess}
	bar := render.NewToolbar(render.DefaultTheme())

	var regions []render.Region
	draw := func() {
		screen.Clear()
		regions = bar.Draw(screen, 0, factory.Items(host))
		drawHint(screen)
		screen.Show()
	}
	draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			draw()
		case *tcell.EventInterrupt:
			if _, quit := ev.Data().(quitRequest); quit {
				return nil
			}
			draw()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				return nil
			case ev.Rune() == 'e':
				// Simulate running a cell so the status indicator
				// shows the busy transition.
				if k := sess.Kernel(); k != nil {
					_ = k.Execute("print('hello')")
				}
				draw()
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 == 0 {
				continue
			}
			x, y := ev.Position()
			if y != 0 {
				continue
			}
			if b, ok := render.HitTest(regions, x).(*widget.Button); ok {
				b.Click()
				draw()
			}
		}
	}
}

// quitRequest marks an interrupt event that ends the event loop.
type quitRequest struct{}

// shellHost is the toolbar host for the demo's single notebook panel.
type shellHost struct {
	sess session.Context
}

func (h *shellHost) Title() string            { return "Untitled.ipynb" }
func (h *shellHost) Session() session.Context { return h.sess }

// registerKernelControls installs the four kernel-bound items.
func registerKernelControls(reg *toolbar.WidgetRegistry, tr i18n.Translator) {
	reg.RegisterFactory(factoryName, "interrupt", func(h toolbar.Host) widget.Widget {
		return toolbar.NewInterruptButton(h.Session(), tr)
	})
	reg.RegisterFactory(factoryName, "restart", func(h toolbar.Host) widget.Widget {
		return toolbar.NewRestartButton(h.Session(), tr)
	})
	reg.RegisterFactory(factoryName, "kernelName", func(h toolbar.Host) widget.Widget {
		return toolbar.NewKernelNameItem(h.Session(), tr)
	})
	reg.RegisterFactory(factoryName, "kernelStatus", func(h toolbar.Host) widget.Widget {
		return toolbar.NewKernelStatusItem(h.Session(), tr)
	})
}

// newTranslator builds the message catalog for a locale. Messages are
// compiled in; an unknown locale falls back to the untranslated ids.
func newTranslator(locale string) i18n.Translator {
	cat := i18n.NewCatalog(locale)
	_ = cat.Add("notebar", "es", map[string]string{
		"Interrupt the kernel": "Interrumpir el núcleo",
		"Restart the kernel":   "Reiniciar el núcleo",
		"Kernel Connecting":    "Conectando el núcleo",
		"Kernel":               "Núcleo",
	})
	_ = cat.Add("notebar", "fr", map[string]string{
		"Interrupt the kernel": "Interrompre le noyau",
		"Restart the kernel":   "Redémarrer le noyau",
		"Kernel Connecting":    "Connexion du noyau",
		"Kernel":               "Noyau",
	})
	return cat
}

// drawHint paints the key help line under the toolbar.
func drawHint(s tcell.Screen) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	hint := fmt.Sprintf("notebar %s (%s)  e: run cell  q: quit", version, commit)
	for i, r := range hint {
		s.SetContent(i, 2, r, nil, style)
	}
}

type options struct {
	configPath  string
	settingsDir string
	scriptsDir  string
	locale      string
	kernelName  string
}

// apply overlays command-line flags onto the loaded config.
func (o options) apply(cfg *config.Config) {
	if o.settingsDir != "" {
		cfg.SettingsDir = o.settingsDir
	}
	if o.scriptsDir != "" {
		cfg.ScriptsDir = o.scriptsDir
	}
	if o.locale != "" {
		cfg.Locale = o.locale
	}
	if o.kernelName != "" {
		cfg.KernelName = o.kernelName
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.settingsDir, "settings", "", "Settings plugin directory")
	flag.StringVar(&opts.scriptsDir, "scripts", "", "Lua script directory")
	flag.StringVar(&opts.locale, "locale", "", "Display locale (e.g. es, fr-CA)")
	flag.StringVar(&opts.kernelName, "kernel", "", "Kernel display name")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Notebar - notebook toolbar shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: notebar [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Notebar %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
