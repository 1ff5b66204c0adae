package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	toastOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	toastBadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	barStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selectedBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	activePaneStyle = paneStyle.
			BorderForeground(lipgloss.Color("205"))

	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the TUI.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading..."
	}

	statusBarH := 2
	if a.help.ShowAll {
		statusBarH = 5
	}
	chartH := max(a.height/3, 8)
	mainH := a.height - chartH - statusBarH - 2
	daysW := a.width*2/5 - 2
	detailW := a.width - daysW - 4

	// Day list pane
	days := a.renderDays(daysW, mainH)
	daysPane := a.paneBox(PaneDays, " Days ", days, daysW, mainH)

	// Detail pane
	detail := a.renderDetail(detailW, mainH)
	detailPane := a.paneBox(PaneDetail, " Detail ", detail, detailW, mainH)

	// Top row
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, daysPane, detailPane)

	// Chart pane
	chart := a.renderChart(a.width-4, chartH)
	chartPane := a.paneBox(PaneChart, a.chartTitle(), chart, a.width-4, chartH)

	// Status bar
	statusBar := a.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, topRow, chartPane, statusBar)
}

func (a App) paneBox(pane Pane, title, content string, w, h int) string {
	style := paneStyle
	if a.activePane == pane {
		style = activePaneStyle
	}
	return style.Width(w).Height(h).Render(
		titleStyle.Render(title) + "\n" + content,
	)
}

func (a App) renderDays(w, h int) string {
	if len(a.groups) == 0 {
		return dimStyle.Render("no entries yet")
	}

	var b strings.Builder
	maxVisible := h - 2
	start := 0
	if a.selectedIdx >= maxVisible {
		start = a.selectedIdx - maxVisible + 1
	}

	for i := start; i < len(a.groups) && i-start < maxVisible; i++ {
		g := a.groups[i]
		label := truncate(g.Label, w-8)
		line := fmt.Sprintf(" %-*s %3d", w-8, label, len(g.Entries))

		if i == a.selectedIdx {
			line = selectedStyle.Width(w).Render(line)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func (a App) renderDetail(w, h int) string {
	g := a.selectedGroup()
	if g == nil {
		return dimStyle.Render("select a day")
	}

	f := a.tally.Formatter()
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", truncate(g.Label, w))
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render(countLabel(len(g.Entries))))

	maxVisible := h - 5
	for i, e := range g.Entries {
		if maxVisible > 0 && i >= maxVisible {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(g.Entries)-i)))
			break
		}
		fmt.Fprintf(&b, "  %s\n", f.Time(e.Timestamp))
	}

	return b.String()
}

func (a App) renderChart(w, h int) string {
	bins := a.chart.Bins
	if len(bins) == 0 {
		return dimStyle.Render("no entries in this period")
	}

	top := a.chart.Axis.Top
	axisW := len(strconv.Itoa(top))
	plotH := h - 3
	if plotH < 1 {
		plotH = 1
	}

	// Window the bins around the selection when they outgrow the pane.
	const colW = 8
	maxCols := (w - axisW - 2) / colW
	if maxCols < 1 {
		maxCols = 1
	}
	start := 0
	if len(bins) > maxCols {
		start = len(bins) - maxCols
		if a.selectedBin < start {
			start = a.selectedBin
		}
	}
	end := min(start+maxCols, len(bins))

	ticks := make(map[int]string, len(a.chart.Axis.Ticks))
	for _, t := range a.chart.Axis.Ticks {
		ticks[tickRow(t, top, plotH)] = strconv.Itoa(t)
	}

	var b strings.Builder
	for r := 0; r < plotH; r++ {
		fmt.Fprintf(&b, "%*s │", axisW, ticks[r])
		for i := start; i < end; i++ {
			if barRows(bins[i].Count, top, plotH) >= plotH-r {
				style := barStyle
				if i == a.selectedBin {
					style = selectedBarStyle
				}
				b.WriteString("  " + style.Render("███") + "   ")
			} else {
				b.WriteString(strings.Repeat(" ", colW))
			}
		}
		b.WriteString("\n")
	}

	// Bin labels
	b.WriteString(strings.Repeat(" ", axisW+2))
	for i := start; i < end; i++ {
		cell := fmt.Sprintf(" %-*s", colW-1, truncate(bins[i].Label, colW-1))
		if i == a.selectedBin {
			cell = selectedStyle.Render(cell)
		}
		b.WriteString(cell)
	}

	return b.String()
}

func (a App) chartTitle() string {
	title := " Activity (" + string(a.period) + ") "
	if bin := a.selectedBinRef(); bin != nil {
		title += dimStyle.Render(bin.Label+": "+strconv.Itoa(bin.Count)) + " "
	}
	return title
}

func (a App) renderStatusBar() string {
	left := a.toast
	if left != "" {
		if a.toastOK {
			left = toastOKStyle.Render(left)
		} else {
			left = toastBadStyle.Render(left)
		}
	}

	right := a.help.View(a.keys)
	if a.mode == ModeConfirmClear || a.mode == ModeConfirmInstall {
		right = helpStyle.Render("y:confirm n:cancel")
	}

	if a.help.ShowAll && a.mode == ModeNormal {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// barRows converts a count to a bar height in plot rows. Any nonzero
// count fills at least one row.
func barRows(count, top, plotH int) int {
	if count <= 0 || top <= 0 {
		return 0
	}
	rows := count * plotH / top
	if rows < 1 {
		rows = 1
	}
	return rows
}

// tickRow places a tick value on its plot row, top row zero.
func tickRow(tick, top, plotH int) int {
	if top <= 0 {
		return plotH - 1
	}
	row := plotH - tick*plotH/top
	if row >= plotH {
		row = plotH - 1
	}
	if row < 0 {
		row = 0
	}
	return row
}

func countLabel(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
