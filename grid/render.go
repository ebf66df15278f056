package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gridlines.dev/tui/borders"
)

// ---------------------------------------------------------------------------
// Glyphs and styles
// ---------------------------------------------------------------------------

const (
	lightHorizontal = "─"
	heavyHorizontal = "━"
	lightVertical   = "│"
	heavyVertical   = "┃"
	lightJunction   = "┼"
	heavyJunction   = "╋"

	defaultCellWidth = 9
	gutterWidth      = 4
)

var (
	gridlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C"))
	axisStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	selectionStyle = lipgloss.NewStyle().Background(lipgloss.Color("#264F78"))
)

// cssColors maps the color names border configs commonly use to hex values
// lipgloss can render.
var cssColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff5f5f",
	"green":   "#5fd75f",
	"blue":    "#5f87ff",
	"yellow":  "#ffd75f",
	"orange":  "#ff875f",
	"purple":  "#af87ff",
	"magenta": "#ff5fff",
	"cyan":    "#5fd7ff",
	"gray":    "#808080",
	"grey":    "#808080",
}

func edgeColor(c string) lipgloss.Color {
	if c == "" {
		c = "#000"
	}
	if hex, ok := cssColors[strings.ToLower(c)]; ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(c)
}

// ---------------------------------------------------------------------------
// Edge resolution
// ---------------------------------------------------------------------------

// edgeClass ranks what a cell contributes to a shared boundary line. A
// custom edge beats an explicit hide, which beats the default gridline.
type edgeClass int

const (
	edgeDefault edgeClass = iota
	edgeHidden
	edgeLight
	edgeHeavy
)

type boundary struct {
	class edgeClass
	color string
}

func classify(st borders.EdgeStyle) boundary {
	switch {
	case st.Hidden:
		return boundary{class: edgeHidden}
	case st.Width >= 2:
		return boundary{class: edgeHeavy, color: st.Color}
	default:
		return boundary{class: edgeLight, color: st.Color}
	}
}

// stronger resolves two cells' claims on their shared line. Ties keep the
// first argument, the top or left neighbor.
func stronger(a, b boundary) boundary {
	if b.class > a.class {
		return b
	}
	return a
}

// ---------------------------------------------------------------------------
// Renderer
// ---------------------------------------------------------------------------

// Renderer draws a sheet as styled terminal text: axis headers, faint
// default gridlines, and custom borders as colored box-drawing glyphs read
// from the sheet's mirrored border records. Hidden edges blank out even the
// default gridline. The renderer consults the decoration set, so records
// whose class names were withdrawn are not drawn.
type Renderer struct {
	Sheet       *Sheet
	Decorations *DecorationSet
	Selection   *Selection

	CellWidth int

	// Viewport window for sheets larger than the screen. MaxRows and
	// MaxCols of zero draw everything.
	TopRow  int
	LeftCol int
	MaxRows int
	MaxCols int
}

// NewRenderer wires a renderer to the host models.
func NewRenderer(sheet *Sheet, decor *DecorationSet, sel *Selection) *Renderer {
	return &Renderer{
		Sheet:       sheet,
		Decorations: decor,
		Selection:   sel,
		CellWidth:   defaultCellWidth,
	}
}

// FitWindow sizes the viewport window to a character budget. Each grid row
// costs a separator line plus a content line, and the window also carries
// the header and the closing separator.
func (r *Renderer) FitWindow(width, height int) {
	if width > 0 {
		r.MaxCols = max((width-gutterWidth-1)/(r.CellWidth+1), 1)
	}
	if height > 0 {
		r.MaxRows = max((height-2)/2, 1)
	}
}

// View renders the visible window of the sheet.
func (r *Renderer) View() string {
	rowStart, rowEnd := r.rowWindow()
	colStart, colEnd := r.colWindow()

	var b strings.Builder
	b.WriteString(r.headerLine(colStart, colEnd))
	b.WriteByte('\n')
	for row := rowStart; row < rowEnd; row++ {
		b.WriteString(r.separatorLine(row, colStart, colEnd))
		b.WriteByte('\n')
		b.WriteString(r.contentLine(row, colStart, colEnd))
		b.WriteByte('\n')
	}
	b.WriteString(r.separatorLine(rowEnd, colStart, colEnd))
	return b.String()
}

func (r *Renderer) rowWindow() (int, int) {
	start := clamp(r.TopRow, 0, max(r.Sheet.Rows-1, 0))
	end := r.Sheet.Rows
	if r.MaxRows > 0 && end-start > r.MaxRows {
		end = start + r.MaxRows
	}
	return start, end
}

func (r *Renderer) colWindow() (int, int) {
	start := clamp(r.LeftCol, 0, max(r.Sheet.Cols-1, 0))
	end := r.Sheet.Cols
	if r.MaxCols > 0 && end-start > r.MaxCols {
		end = start + r.MaxCols
	}
	return start, end
}

// record returns the cell's border record when the sheet mirrors it and the
// decoration set still registers its class name.
func (r *Renderer) record(row, col int) *borders.Record {
	rec, ok := r.Sheet.Meta(row, col, borders.MetaKey).(*borders.Record)
	if !ok || rec == nil {
		return nil
	}
	if r.Decorations != nil && !r.Decorations.Has(rec.ClassName) {
		return nil
	}
	return rec
}

// horizontalEdge resolves the line above row at col from the two cells that
// share it.
func (r *Renderer) horizontalEdge(row, col int) boundary {
	above := boundary{}
	below := boundary{}
	if rec := r.record(row-1, col); rec != nil {
		above = classify(rec.Bottom)
	}
	if rec := r.record(row, col); rec != nil {
		below = classify(rec.Top)
	}
	return stronger(above, below)
}

// verticalEdge resolves the line left of col at row.
func (r *Renderer) verticalEdge(row, col int) boundary {
	left := boundary{}
	right := boundary{}
	if rec := r.record(row, col-1); rec != nil {
		left = classify(rec.Right)
	}
	if rec := r.record(row, col); rec != nil {
		right = classify(rec.Left)
	}
	return stronger(left, right)
}

func (r *Renderer) headerLine(colStart, colEnd int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for col := colStart; col < colEnd; col++ {
		b.WriteByte(' ')
		b.WriteString(axisStyle.Render(center(ColumnLabel(col), r.CellWidth)))
	}
	return b.String()
}

func (r *Renderer) separatorLine(row, colStart, colEnd int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for col := colStart; col < colEnd; col++ {
		b.WriteString(r.junction(row, col))
		b.WriteString(r.horizontalSegment(row, col))
	}
	b.WriteString(r.junction(row, colEnd))
	return b.String()
}

func (r *Renderer) horizontalSegment(row, col int) string {
	seg := r.horizontalEdge(row, col)
	switch seg.class {
	case edgeHidden:
		return strings.Repeat(" ", r.CellWidth)
	case edgeLight:
		return lipgloss.NewStyle().Foreground(edgeColor(seg.color)).Render(strings.Repeat(lightHorizontal, r.CellWidth))
	case edgeHeavy:
		return lipgloss.NewStyle().Foreground(edgeColor(seg.color)).Render(strings.Repeat(heavyHorizontal, r.CellWidth))
	default:
		return gridlineStyle.Render(strings.Repeat(lightHorizontal, r.CellWidth))
	}
}

// junction picks the crossing glyph where up to four boundary segments
// meet. The strongest custom segment wins; with none, a faint default cross
// is drawn unless every in-bounds segment is hidden.
func (r *Renderer) junction(row, col int) string {
	best := boundary{class: edgeHidden}
	sawDefault := false

	consider := func(seg boundary) {
		if seg.class == edgeDefault {
			sawDefault = true
			return
		}
		if seg.class > best.class {
			best = seg
		}
	}

	if col > 0 {
		consider(r.horizontalEdge(row, col-1))
	}
	if col < r.Sheet.Cols {
		consider(r.horizontalEdge(row, col))
	}
	if row > 0 {
		consider(r.verticalEdge(row-1, col))
	}
	if row < r.Sheet.Rows {
		consider(r.verticalEdge(row, col))
	}

	switch {
	case best.class == edgeHeavy:
		return lipgloss.NewStyle().Foreground(edgeColor(best.color)).Render(heavyJunction)
	case best.class == edgeLight:
		return lipgloss.NewStyle().Foreground(edgeColor(best.color)).Render(lightJunction)
	case sawDefault:
		return gridlineStyle.Render(lightJunction)
	default:
		return " "
	}
}

func (r *Renderer) contentLine(row, colStart, colEnd int) string {
	var b strings.Builder
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*d ", gutterWidth-1, row+1)))
	for col := colStart; col < colEnd; col++ {
		b.WriteString(r.verticalGlyph(row, col))
		b.WriteString(r.cellText(row, col))
	}
	b.WriteString(r.verticalGlyph(row, colEnd))
	return b.String()
}

func (r *Renderer) verticalGlyph(row, col int) string {
	seg := r.verticalEdge(row, col)
	switch seg.class {
	case edgeHidden:
		return " "
	case edgeLight:
		return lipgloss.NewStyle().Foreground(edgeColor(seg.color)).Render(lightVertical)
	case edgeHeavy:
		return lipgloss.NewStyle().Foreground(edgeColor(seg.color)).Render(heavyVertical)
	default:
		return gridlineStyle.Render(lightVertical)
	}
}

func (r *Renderer) cellText(row, col int) string {
	text := r.Sheet.Value(row, col)
	if lipgloss.Width(text) > r.CellWidth {
		text = ansi.Truncate(text, r.CellWidth-1, "…")
	}
	if pad := r.CellWidth - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}

	if r.Selection != nil {
		switch {
		case r.Selection.CursorRow == row && r.Selection.CursorCol == col:
			return cursorStyle.Render(text)
		case r.Selection.Contains(row, col):
			return selectionStyle.Render(text)
		}
	}
	return text
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
