package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridlines.dev/tui/borders"
	"gridlines.dev/tui/grid"
)

/**
 * Sheet persistence messages
 */

// sheetLoadedMsg carries a fully loaded sheet ready for editing.
type sheetLoadedMsg struct {
	sheet *grid.Sheet
}

// sheetLoadFailedMsg indicates loading the sheet failed.
type sheetLoadFailedMsg struct {
	err error
}

// loadSheetCmd loads one sheet with all its cells.
func loadSheetCmd(store *grid.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		sheet, err := store.LoadSheet(id)
		if err != nil {
			return sheetLoadFailedMsg{err: err}
		}
		return sheetLoadedMsg{sheet: sheet}
	}
}

// openDefaultSheetCmd loads the first stored sheet, creating one when the
// library is empty.
func openDefaultSheetCmd(store *grid.Store) tea.Cmd {
	return func() tea.Msg {
		sheets, err := store.Sheets()
		if err != nil {
			return sheetLoadFailedMsg{err: err}
		}
		var id int64
		if len(sheets) > 0 {
			id = sheets[0].ID
		} else {
			id, err = store.CreateSheet("Sheet 1", grid.DefaultRows, grid.DefaultCols)
			if err != nil {
				return sheetLoadFailedMsg{err: err}
			}
		}
		sheet, err := store.LoadSheet(id)
		if err != nil {
			return sheetLoadFailedMsg{err: err}
		}
		return sheetLoadedMsg{sheet: sheet}
	}
}

// cellSavedMsg indicates the cell write succeeded.
type cellSavedMsg struct {
	row, col int
}

// cellSaveFailedMsg indicates the cell write failed; prev holds the value to
// roll the sheet back to.
type cellSaveFailedMsg struct {
	row, col int
	prev     string
	err      error
}

// saveCellCmd persists one cell value to the database.
func saveCellCmd(store *grid.Store, sheetID int64, row, col int, value, prev string) tea.Cmd {
	return func() tea.Msg {
		if err := store.SaveCell(sheetID, row, col, value); err != nil {
			return cellSaveFailedMsg{row: row, col: col, prev: prev, err: err}
		}
		return cellSavedMsg{row: row, col: col}
	}
}

// dimsSaveFailedMsg indicates persisting the sheet dimensions failed.
type dimsSaveFailedMsg struct {
	err error
}

// saveDimensionsCmd persists the sheet dimensions to the database.
func saveDimensionsCmd(store *grid.Store, sheetID int64, rows, cols int) tea.Cmd {
	return func() tea.Msg {
		if err := store.SaveDimensions(sheetID, rows, cols); err != nil {
			return dimsSaveFailedMsg{err: err}
		}
		return nil
	}
}

/**
 * Border menu overlay
 */

// borderMenuEntry is one border operation in the overlay list. shown marks
// directional edges that every selected boundary cell already displays, so
// invoking the entry would hide the edge instead of drawing it.
type borderMenuEntry struct {
	item  borders.MenuItem
	shown bool
}

func (e borderMenuEntry) FilterValue() string { return e.item.Title }
func (e borderMenuEntry) Description() string { return "" }

func (e borderMenuEntry) Title() string {
	marker := "  "
	if e.item.Placement.Directional() {
		marker = "□ "
		if e.shown {
			marker = "■ "
		}
	}
	return marker + e.item.Title
}

const (
	borderMenuWidth  = 26
	borderMenuHeight = 9
)

func newBorderMenu() list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	m := list.New([]list.Item{}, d, borderMenuWidth, borderMenuHeight)
	m.Title = "Borders"
	m.SetShowStatusBar(false)
	m.SetFilteringEnabled(false)
	m.SetShowHelp(false)
	m.DisableQuitKeybindings()
	return m
}

/**
 * SheetPage implements the Page interface
 */

// sheetKeyMap defines key bindings for the Sheet page.
type sheetKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Anchor       key.Binding
	AddRange     key.Binding
	SelectAll    key.Binding
	Escape       key.Binding
	Menu         key.Binding
	Edit         key.Binding
	ClearBorders key.Binding
	ToggleEngine key.Binding
	AddRow       key.Binding
	AddCol       key.Binding
	Quit         key.Binding
}

var sheetKeys = sheetKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "move down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("left/h", "move left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("right/l", "move right"),
	),
	Anchor: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "anchor range"),
	),
	AddRange: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "add range"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("V", "ctrl+a"),
		key.WithHelp("V", "select all"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear selection"),
	),
	Menu: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "border menu"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", "e"),
		key.WithHelp("enter/e", "edit cell"),
	),
	ClearBorders: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear borders"),
	),
	ToggleEngine: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "toggle borders"),
	),
	AddRow: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "add row"),
	),
	AddCol: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "add column"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// SheetPage is the grid editor: cursor movement, multi-range selection,
// cell editing and the border menu, all backed by the borders engine.
type SheetPage struct {
	store *grid.Store
	feed  *activityFeed
	specs []borders.Spec

	sheet    *grid.Sheet
	sel      *grid.Selection
	decor    *grid.DecorationSet
	engine   *borders.Engine
	renderer *grid.Renderer

	menu     list.Model
	menuOpen bool

	input   textinput.Model
	editing bool

	// view caches the rendered grid; the engine's render trigger and every
	// cursor or selection change invalidate it through redraw.
	view   string
	redraw bool

	status  string
	loadErr error

	width  int
	height int
}

// NewSheetPage creates the Sheet page. specs is the optional border
// configuration applied once a sheet is loaded.
func NewSheetPage(store *grid.Store, feed *activityFeed, specs []borders.Spec) *SheetPage {
	input := textinput.New()
	input.CharLimit = 0
	input.Width = 40

	return &SheetPage{
		store: store,
		feed:  feed,
		specs: specs,
		menu:  newBorderMenu(),
		input: input,
	}
}

func (p *SheetPage) ID() PageID {
	return SheetPageID
}

func (p *SheetPage) Title() title {
	return title{
		text:  "Sheet",
		color: lipgloss.Color("#5A56E0"),
	}
}

func (p *SheetPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.applySize()
}

// InitCmd opens the first stored sheet when the page is visited before the
// library picked one.
func (p *SheetPage) InitCmd() tea.Cmd {
	return openDefaultSheetCmd(p.store)
}

// CapturesNavigation reports that the grid consumes left/right keys whenever
// a sheet is loaded. Page switching happens via tab instead.
func (p *SheetPage) CapturesNavigation() bool {
	return p.sheet != nil
}

func (p *SheetPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case openSheetMsg:
		p.status = fmt.Sprintf("opening %s", msg.name)
		return p, loadSheetCmd(p.store, msg.id)

	case sheetLoadedMsg:
		p.attach(msg.sheet)
		if len(p.specs) > 0 {
			p.engine.Update(p.specs)
			return p, p.logOp("configure")
		}
		return p, nil

	case sheetLoadFailedMsg:
		if p.sheet == nil {
			p.loadErr = msg.err
		} else {
			p.status = fmt.Sprintf("open failed: %v", msg.err)
		}
		return p, nil

	case cellSavedMsg:
		p.status = fmt.Sprintf("saved %s", grid.CellName(msg.row, msg.col))
		return p, nil

	case cellSaveFailedMsg:
		// Roll the optimistic write back.
		p.sheet.SetValue(msg.row, msg.col, msg.prev)
		p.redraw = true
		p.status = fmt.Sprintf("save failed: %v", msg.err)
		return p, nil

	case dimsSaveFailedMsg:
		p.status = fmt.Sprintf("resize failed: %v", msg.err)
		return p, nil

	case tea.KeyMsg:
		if p.sheet == nil {
			return p, nil
		}
		if p.editing {
			return p, p.updateEditing(msg)
		}
		if p.menuOpen {
			return p, p.updateMenu(msg)
		}
		return p, p.updateGrid(msg)
	}

	return p, nil
}

// attach wires a freshly loaded sheet to a new selection, decoration set,
// engine and renderer.
func (p *SheetPage) attach(sheet *grid.Sheet) {
	p.sheet = sheet
	p.loadErr = nil
	p.sel = grid.NewSelection(sheet.Rows, sheet.Cols)
	p.decor = grid.NewDecorationSet()
	p.engine = borders.New(sheet, p.decor, func() { p.redraw = true })
	p.renderer = grid.NewRenderer(sheet, p.decor, p.sel)
	p.applySize()
	p.redraw = true
	p.status = fmt.Sprintf("opened %s", sheet.Name)
}

func (p *SheetPage) applySize() {
	contentWidth := max(p.width-docStyle.GetHorizontalFrameSize(), 0)
	p.input.Width = max(contentWidth-12, 10)
	if p.renderer == nil {
		return
	}
	gridHeight := max(p.height-12, 4)
	p.renderer.FitWindow(contentWidth, gridHeight)
	p.ensureVisible()
	p.redraw = true
}

// ensureVisible scrolls the renderer window so the cursor stays on screen.
func (p *SheetPage) ensureVisible() {
	r := p.renderer
	if r == nil {
		return
	}
	if p.sel.CursorRow < r.TopRow {
		r.TopRow = p.sel.CursorRow
	}
	if r.MaxRows > 0 && p.sel.CursorRow >= r.TopRow+r.MaxRows {
		r.TopRow = p.sel.CursorRow - r.MaxRows + 1
	}
	if p.sel.CursorCol < r.LeftCol {
		r.LeftCol = p.sel.CursorCol
	}
	if r.MaxCols > 0 && p.sel.CursorCol >= r.LeftCol+r.MaxCols {
		r.LeftCol = p.sel.CursorCol - r.MaxCols + 1
	}
}

// logOp appends one operation to the activity feed and asks the app to
// refresh the Activity page on its next visit.
func (p *SheetPage) logOp(op string) tea.Cmd {
	p.feed.Record(op, len(p.sel.Ranges()), len(p.engine.Records()), p.engine.Enabled())
	return invalidateActivityPage
}

func (p *SheetPage) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return p.commitEdit()
	case "esc":
		p.editing = false
		p.input.Blur()
		p.status = "edit cancelled"
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *SheetPage) commitEdit() tea.Cmd {
	p.editing = false
	p.input.Blur()

	row, col := p.sel.CursorRow, p.sel.CursorCol
	value := p.input.Value()
	prev := p.sheet.Value(row, col)
	if value == prev {
		p.status = ""
		return nil
	}

	// Optimistic update, rolled back if the write fails.
	p.sheet.SetValue(row, col, value)
	p.redraw = true
	p.status = fmt.Sprintf("saving %s", grid.CellName(row, col))
	return saveCellCmd(p.store, p.sheet.ID, row, col, value, prev)
}

func (p *SheetPage) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, sheetKeys.Escape), key.Matches(msg, sheetKeys.Menu):
		p.menuOpen = false
		return nil

	case msg.String() == "enter":
		entry, ok := p.menu.SelectedItem().(borderMenuEntry)
		if !ok {
			return nil
		}
		p.menuOpen = false
		p.engine.Invoke(entry.item.Placement, p.sel.ToBorders())
		return p.logOp(strings.ToLower(entry.item.Title))
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return cmd
}

func (p *SheetPage) updateGrid(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, sheetKeys.Up):
		p.moveCursor(-1, 0)

	case key.Matches(msg, sheetKeys.Down):
		p.moveCursor(1, 0)

	case key.Matches(msg, sheetKeys.Left):
		p.moveCursor(0, -1)

	case key.Matches(msg, sheetKeys.Right):
		p.moveCursor(0, 1)

	case key.Matches(msg, sheetKeys.Anchor):
		p.sel.ToggleAnchor()
		p.redraw = true

	case key.Matches(msg, sheetKeys.AddRange):
		p.sel.AddRange()
		p.redraw = true
		p.status = fmt.Sprintf("%d ranges selected", len(p.sel.Ranges()))

	case key.Matches(msg, sheetKeys.SelectAll):
		p.sel.SelectAll()
		p.redraw = true
		p.status = "whole sheet selected from corner"

	case key.Matches(msg, sheetKeys.Escape):
		p.sel.Clear()
		p.redraw = true
		p.status = ""

	case key.Matches(msg, sheetKeys.Menu):
		if !borders.Available(p.sel.ToBorders()) {
			p.status = "borders are not available for a corner select-all"
			return nil
		}
		p.openMenu()

	case key.Matches(msg, sheetKeys.Edit):
		p.startEdit()
		return textinput.Blink

	case key.Matches(msg, sheetKeys.ClearBorders):
		if !borders.Available(p.sel.ToBorders()) {
			p.status = "borders are not available for a corner select-all"
			return nil
		}
		p.engine.Invoke(borders.NoBorders, p.sel.ToBorders())
		return p.logOp("no borders")

	case key.Matches(msg, sheetKeys.ToggleEngine):
		op := "disable"
		if p.engine.Enabled() {
			p.engine.Disable()
		} else {
			p.engine.Enable()
			op = "enable"
		}
		return p.logOp(op)

	case key.Matches(msg, sheetKeys.AddRow):
		p.sheet.Rows++
		p.sel.Resize(p.sheet.Rows, p.sheet.Cols)
		p.redraw = true
		return saveDimensionsCmd(p.store, p.sheet.ID, p.sheet.Rows, p.sheet.Cols)

	case key.Matches(msg, sheetKeys.AddCol):
		p.sheet.Cols++
		p.sel.Resize(p.sheet.Rows, p.sheet.Cols)
		p.redraw = true
		return saveDimensionsCmd(p.store, p.sheet.ID, p.sheet.Rows, p.sheet.Cols)

	case key.Matches(msg, sheetKeys.Quit):
		return tea.Quit
	}

	return nil
}

func (p *SheetPage) moveCursor(dr, dc int) {
	p.sel.Move(dr, dc)
	p.ensureVisible()
	p.redraw = true
}

func (p *SheetPage) openMenu() {
	sel := p.sel.ToBorders()
	menuItems := borders.MenuItems()
	items := make([]list.Item, 0, len(menuItems))
	for _, item := range menuItems {
		items = append(items, borderMenuEntry{
			item:  item,
			shown: p.engine.SelectionShowsEdge(sel, item.Placement),
		})
	}
	p.menu.SetItems(items)
	p.menu.Select(0)
	p.menuOpen = true
}

func (p *SheetPage) startEdit() {
	p.input.SetValue(p.sheet.Value(p.sel.CursorRow, p.sel.CursorCol))
	p.input.CursorEnd()
	p.input.Focus()
	p.editing = true
	p.status = ""
}

func (p *SheetPage) statusLine() string {
	parts := []string{
		grid.CellName(p.sel.CursorRow, p.sel.CursorCol),
		fmt.Sprintf("%dx%d", p.sheet.Rows, p.sheet.Cols),
		fmt.Sprintf("%d ranges", len(p.sel.Ranges())),
	}
	if p.sel.Anchored() {
		parts = append(parts, "anchored")
	}
	state := "borders on"
	if !p.engine.Enabled() {
		state = "borders off"
	}
	parts = append(parts, state, fmt.Sprintf("%d decorated", len(p.engine.Records())))
	if p.status != "" {
		parts = append(parts, p.status)
	}
	return strings.Join(parts, " | ")
}

func (p *SheetPage) View() string {
	if p.loadErr != nil {
		return errTextStyle.Render(fmt.Sprintf("could not open sheet: %v", p.loadErr))
	}
	if p.sheet == nil {
		return "Loading sheet..."
	}

	if p.redraw || p.view == "" {
		p.view = p.renderer.View()
		p.redraw = false
	}

	gridView := p.view
	if p.menuOpen {
		gridView = lipgloss.JoinHorizontal(lipgloss.Top, gridView, "   ", p.menu.View())
	}

	var b strings.Builder
	b.WriteString(gridView)
	b.WriteString("\n\n")
	if p.editing {
		fmt.Fprintf(&b, "%s = %s\n", grid.CellName(p.sel.CursorRow, p.sel.CursorCol), p.input.View())
	}
	b.WriteString(statusStyle.Render(p.statusLine()))
	return b.String()
}

func (p *SheetPage) KeyMap() []key.Binding {
	return []key.Binding{
		sheetKeys.Anchor,
		sheetKeys.AddRange,
		sheetKeys.SelectAll,
		sheetKeys.Menu,
		sheetKeys.Edit,
		sheetKeys.ClearBorders,
		sheetKeys.ToggleEngine,
		sheetKeys.AddRow,
		sheetKeys.AddCol,
		sheetKeys.Quit,
	}
}
