package app

import (
	"fmt"

	"github.com/pikedit/pike/internal/input/key"
)

// promptKind identifies what the prompt line is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptOpen
	promptNewFile
	promptSaveAs
	promptSearch
	promptReplaceQuery
	promptReplaceWith
	promptConfirmClose
	promptConfirmQuit
)

// prompt is the state of the interactive input line. Text is kept as
// runes so cursor movement and deletion stay character-based.
type prompt struct {
	kind   promptKind
	label  string
	text   []rune
	cursor int

	// query carries the search pattern between the two replace stages.
	query string

	// quit is set when a confirm prompt approved quitting.
	quit bool
}

func (a *App) startPrompt(kind promptKind, label string) {
	a.prompt = prompt{kind: kind, label: label, query: a.prompt.query}
}

func (a *App) cancelPrompt() {
	a.prompt = prompt{}
}

// handlePromptKey edits the prompt line or, for confirm prompts,
// interprets the y/n answer.
func (a *App) handlePromptKey(ev key.Event) {
	if a.prompt.kind == promptConfirmClose || a.prompt.kind == promptConfirmQuit {
		a.handleConfirmKey(ev)
		return
	}

	p := &a.prompt
	switch {
	case ev.Key == key.KeyEscape:
		a.cancelPrompt()
	case ev.Key == key.KeyEnter:
		a.submitPrompt()
	case ev.Key == key.KeyBackspace:
		if p.cursor > 0 {
			p.text = append(p.text[:p.cursor-1], p.text[p.cursor:]...)
			p.cursor--
		}
	case ev.Key == key.KeyDelete:
		if p.cursor < len(p.text) {
			p.text = append(p.text[:p.cursor], p.text[p.cursor+1:]...)
		}
	case ev.Key == key.KeyLeft:
		if p.cursor > 0 {
			p.cursor--
		}
	case ev.Key == key.KeyRight:
		if p.cursor < len(p.text) {
			p.cursor++
		}
	case ev.Key == key.KeyHome:
		p.cursor = 0
	case ev.Key == key.KeyEnd:
		p.cursor = len(p.text)
	case ev.IsChar():
		p.text = append(p.text[:p.cursor], append([]rune{ev.Rune}, p.text[p.cursor:]...)...)
		p.cursor++
	}
}

func (a *App) handleConfirmKey(ev key.Event) {
	kind := a.prompt.kind

	switch {
	case ev.Key == key.KeyRune && (ev.Rune == 'y' || ev.Rune == 'Y'):
		a.cancelPrompt()
		switch kind {
		case promptConfirmClose:
			if err := a.ws.CloseActive(); err != nil {
				a.report(err)
			}
		case promptConfirmQuit:
			a.prompt.quit = true
		}
	case ev.Key == key.KeyEscape,
		ev.Key == key.KeyRune && (ev.Rune == 'n' || ev.Rune == 'N'):
		a.cancelPrompt()
	}
}

// submitPrompt runs the action the prompt was collecting input for.
func (a *App) submitPrompt() {
	kind := a.prompt.kind
	text := string(a.prompt.text)
	query := a.prompt.query
	a.cancelPrompt()

	switch kind {
	case promptOpen:
		if text == "" {
			return
		}
		if _, err := a.ws.OpenFile(text); err != nil {
			a.report(err)
		}

	case promptNewFile:
		if text == "" {
			return
		}
		if _, err := a.ws.NewFileBuffer(text); err != nil {
			a.report(err)
		}

	case promptSaveAs:
		if text == "" {
			return
		}
		if err := a.ws.SaveActiveAs(text); err != nil {
			a.report(err)
			return
		}
		if b, ok := a.ws.ActiveBuffer(); ok {
			a.message = "saved " + b.Name()
		}

	case promptSearch:
		b, ok := a.ws.ActiveBuffer()
		if !ok {
			return
		}
		n, err := b.StartSearch(text, a.config().Search.CaseSensitive)
		if err != nil {
			a.report(err)
			return
		}
		if n == 0 {
			b.EndSearch()
			a.message = fmt.Sprintf("no matches for %q", text)
		}

	case promptReplaceQuery:
		if text == "" {
			return
		}
		a.prompt.query = text
		a.startPrompt(promptReplaceWith, "Replace with")

	case promptReplaceWith:
		b, ok := a.ws.ActiveBuffer()
		if !ok {
			return
		}
		n, err := b.ReplaceAll(query, text, a.config().Search.CaseSensitive)
		if err != nil {
			a.report(err)
			return
		}
		a.message = fmt.Sprintf("replaced %d occurrence(s)", n)
	}
}
