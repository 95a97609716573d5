package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/pikedit/pike/internal/config"
	"github.com/pikedit/pike/internal/input/key"
	"github.com/pikedit/pike/internal/operation"
	"github.com/pikedit/pike/internal/renderer"
	"github.com/pikedit/pike/internal/vfs"
	"github.com/pikedit/pike/internal/workspace"
)

// Options configures application startup.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Files are opened in order at startup.
	Files []string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// LogOutput is where logs are written. Defaults to stderr.
	LogOutput io.Writer
}

// App is the running editor: workspace, keymap, renderer, and the
// interactive prompt state.
type App struct {
	log *Logger
	ws  *workspace.Workspace

	cfgPath string
	cfgLog  *Logger
	watcher *config.Watcher

	// cfgMu guards cfg and keymap, which a live reload swaps from the
	// watcher goroutine while the event loop reads them.
	cfgMu  sync.RWMutex
	cfg    *config.Config
	keymap map[string]operation.Operation

	screen    tcell.Screen
	rend      *renderer.Renderer
	ownScreen bool

	prompt  prompt
	message string
}

// New creates the application: loads configuration, builds the keymap,
// and opens any startup files. Files that fail to open are skipped with
// a warning rather than aborting startup.
func New(opts Options) (*App, error) {
	log := NewLogger(opts.LogOutput, ParseLogLevel(opts.LogLevel))

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	keymap, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	a := &App{
		log:     log,
		cfgPath: path,
		cfgLog:  log.WithComponent("config"),
		cfg:     cfg,
		keymap:  keymap,
		ws: workspace.New(vfs.NewOSFS(), cwd,
			workspace.WithHistoryLimit(cfg.Editor.HistoryLimit)),
	}

	for _, file := range opts.Files {
		if _, err := a.ws.OpenFile(file); err != nil {
			log.Warn("open %s: %v", file, err)
			a.message = err.Error()
		}
	}
	if a.ws.Len() == 0 {
		a.ws.NewBuffer()
	}

	log.Info("started with %d buffer(s)", a.ws.Len())
	return a, nil
}

// SetScreen attaches a screen created by the caller, used by tests with
// tcell's simulation screen. Run creates a real terminal screen when
// none is attached.
func (a *App) SetScreen(s tcell.Screen) {
	a.screen = s
	a.rend = renderer.New(s, a.config().Editor.TabWidth)
}

// Workspace exposes the workspace for tests.
func (a *App) Workspace() *workspace.Workspace {
	return a.ws
}

// config returns the current configuration, which a live reload may
// have swapped since startup.
func (a *App) config() *config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

func (a *App) lookupKey(chord string) (operation.Operation, bool) {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	op, ok := a.keymap[chord]
	return op, ok
}

// Run executes the event loop until the user quits. Returns ErrQuit on
// a normal exit.
func (a *App) Run() error {
	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("initializing screen: %w", err)
		}
		a.ownScreen = true
		a.SetScreen(s)
	}
	if a.ownScreen {
		defer a.screen.Fini()
	}

	a.watchConfig()
	defer a.stopConfigWatch()

	for {
		a.rend.Render(a.frame())

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil // screen finalized
		}

		switch tev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			if cfg, ok := tev.Data().(*config.Config); ok {
				a.applyConfig(cfg)
			}
		case *tcell.EventKey:
			if err := a.handleKey(key.FromTcell(tev)); err != nil {
				return err
			}
		}
	}
}

// HandleKey processes one key event, used by tests to drive the editor
// without a terminal.
func (a *App) HandleKey(ev key.Event) error {
	return a.handleKey(ev)
}

func (a *App) handleKey(ev key.Event) error {
	a.message = ""

	if a.prompt.kind != promptNone {
		a.handlePromptKey(ev)
		if a.prompt.quit {
			return ErrQuit
		}
		return nil
	}

	if op, ok := a.lookupKey(ev.Chord()); ok {
		err := a.execute(op)
		if errors.Is(err, ErrQuit) {
			return ErrQuit
		}
		if err != nil {
			a.report(err)
		}
		return nil
	}

	a.handleEditingKey(ev)
	return nil
}

// execute dispatches a named operation.
func (a *App) execute(op operation.Operation) error {
	a.log.Debug("execute %s", op)

	switch op {
	case operation.OpenFile:
		a.startPrompt(promptOpen, "Open file")

	case operation.NewFile:
		a.startPrompt(promptNewFile, "New file")

	case operation.NewBuffer:
		a.ws.NewBuffer()

	case operation.CloseBuffer:
		b, ok := a.ws.ActiveBuffer()
		if !ok {
			return opError(op, workspace.ErrEmptyWorkspace)
		}
		if b.Modified() {
			a.startPrompt(promptConfirmClose, "Discard unsaved changes? (y/n)")
			return nil
		}
		return opError(op, a.ws.CloseActive())

	case operation.NextBuffer:
		a.ws.NextBuffer()

	case operation.PreviousBuffer:
		a.ws.PrevBuffer()

	case operation.SearchInCurrentBuffer:
		if _, ok := a.ws.ActiveBuffer(); !ok {
			return opError(op, workspace.ErrEmptyWorkspace)
		}
		a.startPrompt(promptSearch, "Search")

	case operation.ReplaceInCurrentBuffer:
		if _, ok := a.ws.ActiveBuffer(); !ok {
			return opError(op, workspace.ErrEmptyWorkspace)
		}
		a.startPrompt(promptReplaceQuery, "Replace")

	case operation.Save:
		err := a.ws.SaveActive()
		if errors.Is(err, workspace.ErrNoPath) {
			a.startPrompt(promptSaveAs, "Save as")
			return nil
		}
		if err != nil {
			return opError(op, err)
		}
		if b, ok := a.ws.ActiveBuffer(); ok {
			a.message = "saved " + b.Name()
		}

	case operation.Undo:
		if b, ok := a.ws.ActiveBuffer(); ok && !b.Undo() {
			a.message = "nothing to undo"
		}

	case operation.Redo:
		if b, ok := a.ws.ActiveBuffer(); ok && !b.Redo() {
			a.message = "nothing to redo"
		}

	case operation.Quit:
		if a.ws.AnyModified() {
			a.startPrompt(promptConfirmQuit, "Discard unsaved changes and quit? (y/n)")
			return nil
		}
		return ErrQuit
	}
	return nil
}

// handleEditingKey applies the hardwired editing and motion keys to the
// active buffer. While a search is live, Enter and the vertical arrows
// navigate matches instead; any other key ends the search first.
func (a *App) handleEditingKey(ev key.Event) {
	b, ok := a.ws.ActiveBuffer()
	if !ok {
		return
	}

	if b.SearchActive() {
		switch {
		case ev.Key == key.KeyEnter || ev.Key == key.KeyDown:
			if _, ok := b.NextMatch(); !ok {
				a.message = "no matches"
			}
			return
		case ev.Key == key.KeyUp:
			if _, ok := b.PrevMatch(); !ok {
				a.message = "no matches"
			}
			return
		case ev.Key == key.KeyEscape:
			b.EndSearch()
			return
		default:
			b.EndSearch()
		}
	}

	switch {
	case ev.IsChar():
		b.Insert(string(ev.Rune))
	case ev.Key == key.KeyEnter:
		b.Insert("\n")
	case ev.Key == key.KeyTab:
		b.Insert("\t")
	case ev.Key == key.KeyBackspace:
		b.DeleteBackward()
	case ev.Key == key.KeyDelete:
		b.DeleteForward()
	case ev.Key == key.KeyLeft:
		b.MoveLeft()
	case ev.Key == key.KeyRight:
		b.MoveRight()
	case ev.Key == key.KeyUp:
		b.MoveUp()
	case ev.Key == key.KeyDown:
		b.MoveDown()
	case ev.Key == key.KeyHome:
		b.MoveLineStart()
	case ev.Key == key.KeyEnd:
		b.MoveLineEnd()
	case ev.Key == key.KeyPageUp:
		for i := 0; i < a.pageSize(); i++ {
			b.MoveUp()
		}
	case ev.Key == key.KeyPageDown:
		for i := 0; i < a.pageSize(); i++ {
			b.MoveDown()
		}
	}
}

// pageSize is the text-area height, used for page movement.
func (a *App) pageSize() int {
	if a.screen == nil {
		return 20
	}
	_, h := a.screen.Size()
	if h <= 2 {
		return 1
	}
	return h - 1
}

func (a *App) report(err error) {
	a.message = err.Error()
	a.log.Error("%v", err)
}
