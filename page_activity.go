package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

/**
 * Border operation feed
 */

// borderOp is one recorded border operation.
type borderOp struct {
	when      time.Time
	op        string
	ranges    int
	decorated int
	enabled   bool
}

// activityFeed collects border operations as the sheet page applies them.
// The app runs single threaded inside Bubble Tea's update loop, so plain
// slice appends are safe.
type activityFeed struct {
	ops []borderOp
}

func newActivityFeed() *activityFeed {
	return &activityFeed{}
}

// Record appends one operation with the current timestamp.
func (f *activityFeed) Record(op string, ranges, decorated int, enabled bool) {
	f.ops = append(f.ops, borderOp{
		when:      time.Now(),
		op:        op,
		ranges:    ranges,
		decorated: decorated,
		enabled:   enabled,
	})
}

// Ops returns a copy of the recorded operations in chronological order.
func (f *activityFeed) Ops() []borderOp {
	out := make([]borderOp, len(f.ops))
	copy(out, f.ops)
	return out
}

// InvalidateActivityPageMsg resets the Activity page's initialized state so
// it rebuilds from the feed on its next visit.
type InvalidateActivityPageMsg struct{}

// invalidateActivityPage is the tea.Cmd form of the invalidation message.
func invalidateActivityPage() tea.Msg {
	return InvalidateActivityPageMsg{}
}

// activityRefreshMsg asks the Activity page to rebuild its chart and table.
type activityRefreshMsg struct{}

func activityRefreshCmd() tea.Msg {
	return activityRefreshMsg{}
}

/**
 * ActivityPage implements the Page interface
 */

// activityKeyMap defines key bindings for the Activity page.
type activityKeyMap struct {
	Refresh key.Binding
}

var activityKeys = activityKeyMap{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
}

const activityAccent = "#E67E22"

// ActivityPage charts the decorated-cell count over time and lists recent
// border operations.
type ActivityPage struct {
	feed     *activityFeed
	ops      []borderOp
	opChart  timeserieslinechart.Model
	opsTable table.Model
	built    time.Time
	width    int
	height   int
}

// NewActivityPage creates and initializes the Activity page.
func NewActivityPage(feed *activityFeed) *ActivityPage {
	return &ActivityPage{feed: feed}
}

func (p *ActivityPage) ID() PageID {
	return ActivityPageID
}

func (p *ActivityPage) Title() title {
	return title{
		text:  "Activity",
		color: lipgloss.Color(activityAccent),
	}
}

func (p *ActivityPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	if len(p.ops) > 0 {
		p.buildOpChart()
	}
}

// InitCmd schedules a rebuild from the feed.
func (p *ActivityPage) InitCmd() tea.Cmd {
	return activityRefreshCmd
}

func (p *ActivityPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case activityRefreshMsg:
		p.rebuild()
		return p, nil

	case tea.KeyMsg:
		if key.Matches(msg, activityKeys.Refresh) {
			p.rebuild()
			return p, nil
		}

		// Forward key events to the table for navigation
		if len(p.ops) > 0 {
			var cmd tea.Cmd
			p.opsTable, cmd = p.opsTable.Update(msg)
			return p, cmd
		}
	}

	return p, nil
}

func (p *ActivityPage) rebuild() {
	p.ops = p.feed.Ops()
	p.built = time.Now()
	if len(p.ops) == 0 {
		return
	}
	p.buildOpChart()
	p.buildOpsTable()
}

// buildOpChart charts the decorated-cell count after each operation.
func (p *ActivityPage) buildOpChart() {
	chartWidth := max(p.width-docStyle.GetHorizontalFrameSize()-4, 40)
	chartHeight := 8

	p.opChart = timeserieslinechart.New(chartWidth, chartHeight)
	for _, op := range p.ops {
		p.opChart.Push(timeserieslinechart.TimePoint{Time: op.when, Value: float64(op.decorated)})
	}
	p.opChart.DrawBraille()
}

// buildOpsTable lists the recorded operations, most recent first.
func (p *ActivityPage) buildOpsTable() {
	columns := []table.Column{
		{Title: "Time", Width: 10},
		{Title: "Operation", Width: 18},
		{Title: "Ranges", Width: 7},
		{Title: "Decorated", Width: 10},
		{Title: "Engine", Width: 7},
	}

	rows := make([]table.Row, 0, len(p.ops))
	for i := len(p.ops) - 1; i >= 0; i-- {
		op := p.ops[i]
		engine := "on"
		if !op.enabled {
			engine = "off"
		}
		rows = append(rows, table.Row{
			op.when.Format("15:04:05"),
			op.op,
			fmt.Sprintf("%d", op.ranges),
			fmt.Sprintf("%d", op.decorated),
			engine,
		})
	}

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(activityAccent)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(activityAccent)).
		Bold(false)

	p.opsTable = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(s),
	)
}

func (p *ActivityPage) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(activityAccent)).
		MarginBottom(1)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888"))

	b.WriteString(titleStyle.Render("Border Activity"))
	b.WriteString("\n\n")

	if len(p.ops) == 0 {
		b.WriteString("No border operations recorded yet.\n\n")
		b.WriteString("Open a sheet, select a range and apply borders; the\n")
		b.WriteString("operations will show up here.\n")
		return b.String()
	}

	b.WriteString(infoStyle.Render("Decorated cells over time:"))
	b.WriteString("\n")
	b.WriteString(p.opChart.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Recent operations:"))
	b.WriteString("\n")
	b.WriteString(p.opsTable.View())
	b.WriteString("\n\n")

	statusParts := []string{
		fmt.Sprintf("%d operations", len(p.ops)),
		fmt.Sprintf("Last rebuilt: %s", p.built.Format("15:04:05")),
	}
	last := p.ops[len(p.ops)-1]
	statusParts = append(statusParts, fmt.Sprintf("%d cells decorated", last.decorated))
	b.WriteString(infoStyle.Render(strings.Join(statusParts, " | ")))

	return b.String()
}

func (p *ActivityPage) KeyMap() []key.Binding {
	return []key.Binding{
		activityKeys.Refresh,
	}
}
