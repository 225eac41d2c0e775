// Package main is an interactive terminal playground for the keybind engine.
// It wires tcell input through the translation boundary, applies a binding
// scheme (builtin, or loaded from a file), and shows matches as they happen.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind"
	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/scheme"
	"github.com/dshills/keybind/tcellkey"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	ConfigPath string
	SchemePath string
	Watch      bool
	LogPath    string
	LogLevel   string
}

func run() int {
	opts := parseFlags()

	// A missing config file yields the zero config; only malformed TOML
	// is an error.
	cfg, err := scheme.LoadTOMLConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := keybind.NullLogger
	if opts.LogPath != "" {
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()

		logCfg := keybind.DefaultLoggerConfig()
		logCfg.Output = f
		logCfg.Level = keybind.ParseLogLevel(opts.LogLevel)
		logger = keybind.NewLogger(logCfg)
	}

	engineOpts := append(cfg.EngineOptions(), keybind.WithLogger(logger))
	engine := keybind.New(engineOpts...)
	defer engine.Close()

	d := &demo{engine: engine, source: "builtin bindings"}

	// Quit keys are registered directly so the demo stays exitable no
	// matter what a loaded scheme binds.
	for _, quitKey := range []string{"Ctrl+Q", "Escape"} {
		if _, err := engine.Register(quitKey, func(hotkey.Context) { d.requestQuit() }); err != nil {
			fmt.Fprintf(os.Stderr, "Error: binding %s: %v\n", quitKey, err)
			return 1
		}
	}

	schemePath := opts.SchemePath
	if schemePath == "" {
		schemePath = cfg.Scheme
	}

	switch {
	case schemePath != "" && opts.Watch:
		w, err := scheme.Watch(engine, schemePath, d.actions(), scheme.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching scheme: %v\n", err)
			return 1
		}
		defer w.Close()
		d.watcher = w
		d.source = schemePath + " (watching)"
		d.noteSkips(w.Applied().Skips())

	case schemePath != "":
		s, err := scheme.Load(schemePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading scheme: %v\n", err)
			return 1
		}
		applied, err := scheme.Apply(engine, s, d.actions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: applying scheme: %v\n", err)
			return 1
		}
		defer applied.Close()
		d.source = schemePath
		d.noteSkips(applied.Skips())

	default:
		applied, err := scheme.Apply(engine, builtinScheme(), d.actions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: applying builtin bindings: %v\n", err)
			return 1
		}
		defer applied.Close()
		d.noteSkips(applied.Skips())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	d.screen = screen

	d.draw()
	for {
		switch tev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			// Hard escape hatch, independent of any binding.
			if tev.Key() == tcell.KeyCtrlC {
				return 0
			}
			press := tcellkey.Translate(tev)
			if press == nil {
				continue
			}
			d.setLastKey(press.String())
			engine.ProcessEvent(press)
			engine.ProcessEvent(tcellkey.ReleaseFor(press))
			if d.quitRequested() {
				return 0
			}
			d.draw()
		case *tcell.EventResize:
			screen.Sync()
			d.draw()
		case nil:
			return 0
		}
	}
}

// builtinScheme is the binding set used when no scheme file is given.
func builtinScheme() *scheme.Scheme {
	bind := func(keys, action, desc string) scheme.Binding {
		return scheme.Binding{Keys: keys, Action: action, Description: desc, Enabled: true}
	}
	return &scheme.Scheme{
		Name: "builtin demo bindings",
		Bindings: []scheme.Binding{
			bind("Mod+S", "save", "Save the buffer"),
			bind("Mod+O", "open", "Open the file picker"),
			bind("Mod+Shift+P", "palette", "Open the command palette"),
			bind("F1", "help", "Show help"),
			bind("Alt+1", "tab1", "Switch to tab 1"),
			bind("Alt+2", "tab2", "Switch to tab 2"),
			bind("Alt+3", "tab3", "Switch to tab 3"),
		},
		Sequences: []scheme.SequenceBinding{
			{Steps: []string{"g", "g"}, Action: "top", Description: "Jump to the top"},
			{Steps: []string{"d", "d"}, Action: "delete-line", Description: "Delete the line"},
			{Steps: []string{"Ctrl+K", "Ctrl+T"}, Action: "theme", Description: "Cycle the theme"},
		},
	}
}

const maxActivity = 8

// demo holds the screen state. All mutation happens on the event loop
// goroutine; the mutex covers reads the watcher goroutine may race.
type demo struct {
	engine  *keybind.Engine
	screen  tcell.Screen
	watcher *scheme.Watcher

	mu       sync.Mutex
	activity []string
	lastKey  string
	source   string
	quit     bool
}

// actions maps scheme action names to demo behavior.
func (d *demo) actions() scheme.Actions {
	note := func(msg string) func() {
		return func() { d.note(msg) }
	}
	return scheme.Actions{
		"quit":        d.requestQuit,
		"save":        note("saved buffer"),
		"open":        note("opened file picker"),
		"palette":     note("opened command palette"),
		"help":        note("this is the help action"),
		"top":         note("jumped to the top"),
		"delete-line": note("deleted the line"),
		"theme":       note("cycled the theme"),
		"tab1":        note("switched to tab 1"),
		"tab2":        note("switched to tab 2"),
		"tab3":        note("switched to tab 3"),
	}
}

func (d *demo) note(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.activity = append(d.activity, msg)
	if len(d.activity) > maxActivity {
		d.activity = d.activity[len(d.activity)-maxActivity:]
	}
}

func (d *demo) noteSkips(skips []scheme.Skip) {
	for _, s := range skips {
		d.note(fmt.Sprintf("skipped %q (%s): %s", s.Keys, s.Action, s.Reason))
	}
}

func (d *demo) setLastKey(s string) {
	d.mu.Lock()
	d.lastKey = s
	d.mu.Unlock()
}

func (d *demo) requestQuit() {
	d.mu.Lock()
	d.quit = true
	d.mu.Unlock()
}

func (d *demo) quitRequested() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quit
}

func (d *demo) draw() {
	d.mu.Lock()
	activity := append([]string(nil), d.activity...)
	lastKey := d.lastKey
	source := d.source
	d.mu.Unlock()

	if d.watcher != nil {
		if s := d.watcher.Scheme(); s != nil && s.Name != "" {
			source += " [" + s.Name + "]"
		}
	}

	header := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	plain := tcell.StyleDefault

	d.screen.Clear()
	y := 0
	put := func(style tcell.Style, text string) {
		d.putLine(y, style, text)
		y++
	}

	put(header, fmt.Sprintf(" keybind demo %s (platform %s)", version, d.engine.Platform()))
	put(dim, " source: "+source)
	put(plain, "")

	put(header, " bindings")
	for _, info := range d.engine.Registrations() {
		label := info.Canonical
		if len(info.Sequence) > 0 {
			label = strings.Join(info.Sequence, " ")
		}
		suffix := ""
		if !info.Enabled {
			suffix = "  (disabled)"
		}
		put(plain, "   "+label+suffix)
	}
	put(plain, "")

	put(header, " activity")
	if len(activity) == 0 {
		put(dim, "   press a bound key")
	}
	for _, msg := range activity {
		put(plain, "   "+msg)
	}
	put(plain, "")

	if lastKey != "" {
		put(dim, " last key: "+lastKey)
	}
	stats := d.engine.Stats()
	put(dim, fmt.Sprintf(" events %d   matches %d   sequences %d   panics %d",
		stats.Events, stats.Matches, stats.SequenceCompletions, stats.CallbackPanics))
	put(dim, " quit: Ctrl+Q or Escape (Ctrl+C always works)")

	d.screen.Show()
}

// putLine writes one padded row of text.
func (d *demo) putLine(y int, style tcell.Style, text string) {
	w, h := d.screen.Size()
	if y >= h {
		return
	}
	col := 0
	for _, r := range text {
		if col >= w {
			break
		}
		d.screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < w; col++ {
		d.screen.SetContent(col, y, ' ', nil, style)
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to TOML engine config")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to TOML engine config (shorthand)")
	flag.StringVar(&opts.SchemePath, "scheme", "", "Path to a binding scheme (.json or .lua)")
	flag.StringVar(&opts.SchemePath, "s", "", "Path to a binding scheme (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the scheme when the file changes")
	flag.StringVar(&opts.LogPath, "log", "", "Write engine logs to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keybind-demo - interactive hotkey engine playground\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keybind-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keybind-demo                          Builtin bindings\n")
		fmt.Fprintf(os.Stderr, "  keybind-demo -s my.json               Load a JSON scheme\n")
		fmt.Fprintf(os.Stderr, "  keybind-demo -s my.lua -watch         Live-reload a Lua scheme\n")
		fmt.Fprintf(os.Stderr, "  keybind-demo -c keybind.toml -log d.log -log-level debug\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keybind-demo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
