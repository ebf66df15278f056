package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gridlines.dev/tui/grid"
)

/**
 * Sheet library items
 */

// sheetEntry wraps a stored sheet summary for the library list.
type sheetEntry struct {
	info grid.SheetInfo
}

func (s sheetEntry) FilterValue() string { return s.info.Name }
func (s sheetEntry) Title() string       { return s.info.Name }
func (s sheetEntry) Description() string {
	return fmt.Sprintf("%dx%d, %d filled cells", s.info.Rows, s.info.Cols, s.info.CellCount)
}

/**
 * Library persistence messages
 */

// sheetsLoadedMsg contains the sheet summaries loaded from the database.
type sheetsLoadedMsg struct {
	sheets []grid.SheetInfo
}

// sheetsLoadFailedMsg indicates listing sheets failed.
type sheetsLoadFailedMsg struct {
	err error
}

// loadSheetsCmd lists all stored sheets with their fill counts.
func loadSheetsCmd(store *grid.Store) tea.Cmd {
	return func() tea.Msg {
		sheets, err := store.Sheets()
		if err != nil {
			return sheetsLoadFailedMsg{err: err}
		}
		return sheetsLoadedMsg{sheets: sheets}
	}
}

// sheetCreatedMsg indicates a new sheet row was inserted.
type sheetCreatedMsg struct {
	info grid.SheetInfo
}

// sheetCreateFailedMsg indicates the insert failed (e.g. duplicate name).
type sheetCreateFailedMsg struct {
	err error
}

// createSheetCmd inserts a new empty sheet and reports the assigned ID.
func createSheetCmd(store *grid.Store, name string, rows, cols int) tea.Cmd {
	return func() tea.Msg {
		id, err := store.CreateSheet(name, rows, cols)
		if err != nil {
			return sheetCreateFailedMsg{err: err}
		}
		return sheetCreatedMsg{info: grid.SheetInfo{ID: id, Name: name, Rows: rows, Cols: cols}}
	}
}

// openSheetMsg asks the app to switch to the sheet page and load this sheet.
// Emitted by the library page, routed by AppModel.
type openSheetMsg struct {
	id   int64
	name string
}

/**
 * Library list delegate marking the currently open sheet
 */

const ellipsis = "…"

// sheetDelegate embeds list.DefaultDelegate and overrides Render to mark the
// sheet that is currently open on the sheet page.
type sheetDelegate struct {
	list.DefaultDelegate
	openedID *int64
}

func (d *sheetDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(sheetEntry)
	if !ok {
		return
	}

	if m.Width() <= 0 {
		return
	}

	s := &d.Styles

	// Filled box for the sheet currently open in the editor, empty otherwise.
	marker := "□"
	if d.openedID != nil && *d.openedID == entry.info.ID {
		marker = "■"
	}

	textwidth := m.Width() - s.NormalTitle.GetPaddingLeft() - s.NormalTitle.GetPaddingRight()
	if textwidth < 1 {
		textwidth = 1
	}

	heading := ansi.Truncate(marker+" "+entry.Title(), textwidth, ellipsis)
	desc := ansi.Truncate(entry.Description(), textwidth, ellipsis)

	isSelected := index == m.Index() && m.FilterState() != list.Filtering
	if isSelected {
		heading = s.SelectedTitle.Render(heading)
		desc = s.SelectedDesc.Render(desc)
	} else {
		heading = s.NormalTitle.Render(heading)
		desc = s.NormalDesc.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", heading, desc)
}

func newSheetDelegate(openedID *int64) *sheetDelegate {
	return &sheetDelegate{DefaultDelegate: list.NewDefaultDelegate(), openedID: openedID}
}

/**
 * LibraryPage implements the Page interface
 */

// libraryKeyMap defines key bindings for the Library page.
type libraryKeyMap struct {
	Open key.Binding
	New  key.Binding
}

var libraryKeys = libraryKeyMap{
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open sheet"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new sheet"),
	),
}

// LibraryPage lists stored sheets and opens them in the editor.
type LibraryPage struct {
	sheets   list.Model
	store    *grid.Store
	openedID int64
}

// NewLibraryPage creates and initializes the Library page.
func NewLibraryPage(store *grid.Store) *LibraryPage {
	p := &LibraryPage{store: store}

	delegate := newSheetDelegate(&p.openedID)
	sheets := list.New([]list.Item{}, delegate, 0, 0)
	sheets.Title = "Sheet Library"
	sheets.SetShowHelp(false)
	p.sheets = sheets

	return p
}

func (p *LibraryPage) ID() PageID {
	return LibraryPageID
}

func (p *LibraryPage) Title() title {
	return title{
		text:  "Library",
		color: lipgloss.Color("#04B575"),
	}
}

func (p *LibraryPage) SetSize(width, height int) {
	contentWidth := max(width-docStyle.GetHorizontalFrameSize(), 0)
	p.sheets.SetWidth(contentWidth)
	p.sheets.SetHeight(height)
}

// InitCmd loads the sheet summaries from the database.
func (p *LibraryPage) InitCmd() tea.Cmd {
	return loadSheetsCmd(p.store)
}

// CapturesNavigation keeps arrow keys and letters with the filter input
// while the user is typing a filter.
func (p *LibraryPage) CapturesNavigation() bool {
	return p.sheets.SettingFilter()
}

func (p *LibraryPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	var cmds []tea.Cmd

	// First, let the list handle the message
	var listCmd tea.Cmd
	p.sheets, listCmd = p.sheets.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	switch msg := msg.(type) {
	case sheetsLoadedMsg:
		items := make([]list.Item, len(msg.sheets))
		for i, info := range msg.sheets {
			items[i] = sheetEntry{info: info}
		}
		p.sheets.SetItems(items)

	case sheetsLoadFailedMsg:
		cmds = append(cmds, p.sheets.NewStatusMessage(fmt.Sprintf("load failed: %v", msg.err)))

	case sheetCreatedMsg:
		cmds = append(cmds,
			p.sheets.NewStatusMessage(fmt.Sprintf("created %s", msg.info.Name)),
			loadSheetsCmd(p.store),
		)

	case sheetCreateFailedMsg:
		cmds = append(cmds, p.sheets.NewStatusMessage(fmt.Sprintf("create failed: %v", msg.err)))

	case tea.KeyMsg:
		if p.sheets.SettingFilter() {
			break
		}

		switch {
		case key.Matches(msg, libraryKeys.Open):
			entry, ok := p.sheets.SelectedItem().(sheetEntry)
			if !ok {
				break
			}
			p.openedID = entry.info.ID
			open := openSheetMsg{id: entry.info.ID, name: entry.info.Name}
			cmds = append(cmds, func() tea.Msg { return open })

		case key.Matches(msg, libraryKeys.New):
			name := fmt.Sprintf("Sheet %d", len(p.sheets.Items())+1)
			cmds = append(cmds, createSheetCmd(p.store, name, grid.DefaultRows, grid.DefaultCols))
		}
	}

	return p, tea.Batch(cmds...)
}

func (p *LibraryPage) View() string {
	return p.sheets.View()
}

func (p *LibraryPage) KeyMap() []key.Binding {
	return []key.Binding{
		libraryKeys.Open,
		libraryKeys.New,
	}
}
