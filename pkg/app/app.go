// Package app exposes the operations the interaction surfaces call.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"

	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/datefmt"
	"github.com/veslyn/tally/pkg/install"
	"github.com/veslyn/tally/pkg/journal"
	"github.com/veslyn/tally/pkg/view"
)

// Toast is a transient notification for the active surface. Hosts show it
// for a fixed two seconds; a new toast replaces any pending one.
type Toast struct {
	Text string
	OK   bool
}

// Clipboard abstracts the host clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the real host clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// App is the façade both the TUI and the CLI drive. Every operation runs
// to completion on the caller's goroutine; nothing here is fatal.
type App struct {
	journal *journal.Journal
	fmtr    *datefmt.Formatter
	clip    Clipboard
	prompt  install.Prompt
	logger  *slog.Logger
	now     func() time.Time
}

// New wires the façade. A nil logger falls back to slog.Default().
func New(j *journal.Journal, f *datefmt.Formatter, clip Clipboard, prompt install.Prompt, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		journal: j,
		fmtr:    f,
		clip:    clip,
		prompt:  prompt,
		logger:  logger,
		now:     time.Now,
	}
}

// LogEvent records one event now.
func (a *App) LogEvent() (core.Entry, Toast) {
	e := a.journal.Append()
	return e, Toast{Text: "recorded " + a.fmtr.Time(e.Timestamp), OK: true}
}

// ClearAll empties the journal. Confirmation is the surface's job; by the
// time this runs the user already said yes.
func (a *App) ClearAll() Toast {
	n := a.journal.Len()
	a.journal.Clear()
	return Toast{Text: "cleared " + entryCount(n), OK: true}
}

// CopyAll exports the journal as text onto the host clipboard. An empty
// journal and a clipboard failure both come back as toasts, never errors.
func (a *App) CopyAll() Toast {
	text, ok := a.journal.ExportText(a.fmtr)
	if !ok {
		return Toast{Text: "nothing to copy", OK: true}
	}
	if err := a.clip.WriteAll(text); err != nil {
		a.logger.Error("clipboard write failed", "err", err)
		return Toast{Text: "copy failed: " + err.Error(), OK: false}
	}
	return Toast{Text: "copied " + entryCount(a.journal.Len()), OK: true}
}

// Export returns the journal's export text. ok is false when empty.
func (a *App) Export() (string, bool) {
	return a.journal.ExportText(a.fmtr)
}

// Groups projects the journal into day buckets for the list view.
func (a *App) Groups() []view.DayGroup {
	return view.GroupByDay(a.journal.Entries(), a.fmtr)
}

// Chart projects the journal into the period's chart.
func (a *App) Chart(p core.Period) view.Chart {
	return view.BuildChart(a.journal.Entries(), p, a.now(), a.fmtr)
}

// SelectDay returns one calendar day's entries, newest first.
func (a *App) SelectDay(key string) []core.Entry {
	return view.SelectDay(a.journal.Entries(), key, a.fmtr.Location())
}

// Entries returns the collection in sequence order, newest first.
func (a *App) Entries() []core.Entry {
	return a.journal.Entries()
}

// Len reports the number of recorded entries.
func (a *App) Len() int {
	return a.journal.Len()
}

// Formatter exposes the date renderer for surface labels.
func (a *App) Formatter() *datefmt.Formatter {
	return a.fmtr
}

// InstallAvailable reports whether the install prompt can be offered.
func (a *App) InstallAvailable() bool {
	return a.prompt != nil && a.prompt.Available()
}

// RequestInstall triggers the install prompt after the user accepted it.
func (a *App) RequestInstall() (install.Outcome, Toast) {
	if a.prompt == nil || !a.prompt.Available() {
		return install.OutcomeDismissed, Toast{Text: "install not available", OK: false}
	}
	outcome, err := a.prompt.Trigger()
	if err != nil {
		a.logger.Error("install failed", "err", err)
		return install.OutcomeDismissed, Toast{Text: "install failed: " + err.Error(), OK: false}
	}
	if outcome != install.OutcomeAccepted {
		return outcome, Toast{Text: "install dismissed", OK: true}
	}
	return outcome, Toast{Text: "installed: launch tally from your app menu", OK: true}
}

// DismissInstall records the user declining the install prompt.
func (a *App) DismissInstall() (install.Outcome, Toast) {
	return install.OutcomeDismissed, Toast{Text: "install dismissed", OK: true}
}

func entryCount(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}
