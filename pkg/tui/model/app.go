package model

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veslyn/tally/pkg/app"
	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/view"
)

// Pane identifies which TUI pane is focused.
type Pane int

const (
	PaneDays Pane = iota
	PaneDetail
	PaneChart
)

// Mode identifies the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeConfirmClear
	ModeConfirmInstall
)

// toastDuration is how long a toast stays on screen before it dismisses
// itself.
const toastDuration = 2 * time.Second

// App is the root Bubble Tea model.
type App struct {
	// Engine
	tally *app.App

	// State
	groups      []view.DayGroup
	chart       view.Chart
	period      core.Period
	selectedIdx int
	selectedBin int

	// UI
	activePane Pane
	mode       Mode
	keys       keyMap
	help       help.Model
	width      int
	height     int

	// Toast display
	toast    string
	toastOK  bool
	toastSeq int
}

// New creates a new TUI app model around the interaction surface.
func New(tally *app.App, period core.Period) App {
	a := App{
		tally:      tally,
		period:     period,
		keys:       defaultKeys,
		help:       help.New(),
		activePane: PaneDays,
		mode:       ModeNormal,
	}
	return a.refresh()
}

// Init sets the window title.
func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle("Tally")
}

// toastExpireMsg dismisses the toast whose timer fired.
type toastExpireMsg struct{ seq int }

func toastExpireCmd(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpireMsg{seq: seq}
	})
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case toastExpireMsg:
		// Only the latest toast's timer may clear the bar. A stale
		// timer from a replaced toast is a no-op.
		if msg.seq == a.toastSeq {
			a.toast = ""
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear confirmation mode
	if a.mode == ModeConfirmClear {
		a.mode = ModeNormal
		switch msg.String() {
		case "y", "Y":
			toast := a.tally.ClearAll()
			a = a.refresh()
			return a.showToast(toast)
		default:
			return a.showToast(app.Toast{Text: "clear cancelled", OK: true})
		}
	}

	// Install confirmation mode
	if a.mode == ModeConfirmInstall {
		a.mode = ModeNormal
		switch msg.String() {
		case "y", "Y":
			_, toast := a.tally.RequestInstall()
			return a.showToast(toast)
		default:
			_, toast := a.tally.DismissInstall()
			return a.showToast(toast)
		}
	}

	// Normal mode
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Log):
		_, toast := a.tally.LogEvent()
		a = a.refresh()
		a.selectedIdx = 0
		a.selectedBin = max(0, len(a.chart.Bins)-1)
		return a.showToast(toast)

	case key.Matches(msg, a.keys.Down):
		if a.activePane == PaneDays && a.selectedIdx < len(a.groups)-1 {
			a.selectedIdx++
		}

	case key.Matches(msg, a.keys.Up):
		if a.activePane == PaneDays && a.selectedIdx > 0 {
			a.selectedIdx--
		}

	case key.Matches(msg, a.keys.Left):
		if a.selectedBin > 0 {
			a.selectedBin--
		}

	case key.Matches(msg, a.keys.Right):
		if a.selectedBin < len(a.chart.Bins)-1 {
			a.selectedBin++
		}

	case key.Matches(msg, a.keys.NextPane):
		a.activePane = (a.activePane + 1) % 3

	case key.Matches(msg, a.keys.Open):
		if a.activePane == PaneChart {
			if bin := a.selectedBinRef(); bin != nil {
				a = a.openDay(bin.Key)
			}
		} else if a.activePane == PaneDays {
			a.activePane = PaneDetail
		}

	case key.Matches(msg, a.keys.Week):
		a = a.setPeriod(core.PeriodWeek)
	case key.Matches(msg, a.keys.Month):
		a = a.setPeriod(core.PeriodMonth)
	case key.Matches(msg, a.keys.All):
		a = a.setPeriod(core.PeriodAll)

	case key.Matches(msg, a.keys.Copy):
		return a.showToast(a.tally.CopyAll())

	case key.Matches(msg, a.keys.Clear):
		if a.tally.Len() == 0 {
			return a.showToast(app.Toast{Text: "nothing to clear", OK: true})
		}
		a.mode = ModeConfirmClear
		return a.showPrompt("Clear all entries? (y/n)"), nil

	case key.Matches(msg, a.keys.Install):
		if !a.tally.InstallAvailable() {
			_, toast := a.tally.RequestInstall()
			return a.showToast(toast)
		}
		a.mode = ModeConfirmInstall
		return a.showPrompt("Install desktop entry? (y/n)"), nil

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}

	return a, nil
}

// showToast replaces whatever the status bar shows and arms a fresh
// dismiss timer. Bumping the sequence orphans any timer already in
// flight.
func (a App) showToast(t app.Toast) (App, tea.Cmd) {
	a.toast = t.Text
	a.toastOK = t.OK
	a.toastSeq++
	return a, toastExpireCmd(a.toastSeq)
}

// showPrompt puts a question in the status bar without a dismiss timer;
// it stays until the user answers.
func (a App) showPrompt(text string) App {
	a.toast = text
	a.toastOK = true
	a.toastSeq++
	return a
}

// refresh rebuilds the projections after the journal changed.
func (a App) refresh() App {
	a.groups = a.tally.Groups()
	a.chart = a.tally.Chart(a.period)
	if a.selectedIdx >= len(a.groups) {
		a.selectedIdx = max(0, len(a.groups)-1)
	}
	if a.selectedBin >= len(a.chart.Bins) {
		a.selectedBin = max(0, len(a.chart.Bins)-1)
	}
	return a
}

func (a App) setPeriod(p core.Period) App {
	a.period = p
	a.chart = a.tally.Chart(p)
	a.selectedBin = max(0, len(a.chart.Bins)-1)
	return a
}

// openDay jumps the day list to the given day and focuses the detail
// pane.
func (a App) openDay(key string) App {
	for i := range a.groups {
		if a.groups[i].Key == key {
			a.selectedIdx = i
			a.activePane = PaneDetail
			break
		}
	}
	return a
}

func (a App) selectedGroup() *view.DayGroup {
	if a.selectedIdx < len(a.groups) {
		return &a.groups[a.selectedIdx]
	}
	return nil
}

func (a App) selectedBinRef() *view.Bin {
	if a.selectedBin >= 0 && a.selectedBin < len(a.chart.Bins) {
		return &a.chart.Bins[a.selectedBin]
	}
	return nil
}
