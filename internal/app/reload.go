package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pikedit/pike/internal/config"
)

// watchConfig starts the config file watcher so edits to the config
// take effect without restarting. A watcher that cannot be started is
// logged and skipped; the editor keeps the startup configuration.
func (a *App) watchConfig() {
	if a.cfgPath == "" {
		return
	}
	w, err := config.Watch(a.cfgPath, a.onConfigReload)
	if err != nil {
		a.cfgLog.Warn("watch %s: %v", a.cfgPath, err)
		return
	}
	a.watcher = w
	a.cfgLog.Debug("watching %s", a.cfgPath)
}

func (a *App) stopConfigWatch() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		a.cfgLog.Warn("closing watcher: %v", err)
	}
	a.watcher = nil
}

// onConfigReload runs on the watcher goroutine. With a screen attached
// the new config is posted to the event loop, so the swap happens on
// the loop goroutine between key events; otherwise it is applied
// directly. A file that no longer loads is logged and the running
// configuration kept.
func (a *App) onConfigReload(cfg *config.Config, err error) {
	if err != nil {
		a.cfgLog.Warn("reload: %v", err)
		return
	}
	if a.screen != nil {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(cfg))
		return
	}
	a.applyConfig(cfg)
}

// applyConfig swaps in a freshly loaded configuration: settings,
// keymap, and the renderer's tab width.
func (a *App) applyConfig(cfg *config.Config) {
	keymap, err := cfg.Keymap()
	if err != nil {
		a.cfgLog.Warn("reload: %v", err)
		return
	}

	a.cfgMu.Lock()
	a.cfg = cfg
	a.keymap = keymap
	a.cfgMu.Unlock()

	if a.rend != nil {
		a.rend.SetTabWidth(cfg.Editor.TabWidth)
	}
	a.cfgLog.Info("config reloaded")
}
