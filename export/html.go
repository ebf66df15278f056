package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"gridlines.dev/tui/borders"
	"gridlines.dev/tui/grid"
)

// WriteHTML renders the sheet as a standalone HTML document. Every border
// record becomes one CSS class named after its class name, carrying the
// four border declarations; decorated cells reference the class, so the
// markup stays small however many cells share a style shape.
func WriteHTML(sheet *grid.Sheet, records []*borders.Record, w io.Writer) error {
	rows, cols := sheet.Rows, sheet.Cols
	byCell := make(map[[2]int]*borders.Record, len(records))
	for _, rec := range records {
		byCell[[2]int{rec.Row, rec.Col}] = rec
		rows = max(rows, rec.Row+1)
		cols = max(cols, rec.Col+1)
	}

	var b strings.Builder
	name := html.EscapeString(sheet.Name)
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", name))
	b.WriteString("<style>\n")
	b.WriteString(".table { border-collapse: collapse; table-layout: fixed; }\n")
	b.WriteString(".table td { border: 1px solid #ddd; padding: 4px 8px; white-space: nowrap; overflow: hidden; }\n")
	for _, rec := range records {
		b.WriteString(fmt.Sprintf(".%s { %s}\n", rec.ClassName, borderCSS(rec)))
	}
	b.WriteString("</style>\n</head>\n<body>\n")

	b.WriteString(fmt.Sprintf("<div class=\"sheet\" data-name=\"%s\">\n", name))
	b.WriteString("<table class=\"table\">\n")
	b.WriteString("  <colgroup>\n")
	for col := 0; col < cols; col++ {
		b.WriteString("    <col style=\"width:90px;\">\n")
	}
	b.WriteString("  </colgroup>\n")

	for row := 0; row < rows; row++ {
		b.WriteString("  <tr>\n")
		for col := 0; col < cols; col++ {
			classAttr := ""
			if rec, ok := byCell[[2]int{row, col}]; ok {
				classAttr = fmt.Sprintf(" class=\"%s\"", rec.ClassName)
			}
			escaped := html.EscapeString(sheet.Value(row, col))
			escaped = strings.ReplaceAll(escaped, "\n", "<br>")
			b.WriteString(fmt.Sprintf("    <td data-row=\"%d\" data-col=\"%d\"%s>%s</td>\n",
				row, col, classAttr, escaped))
		}
		b.WriteString("  </tr>\n")
	}
	b.WriteString("</table>\n</div>\n</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// borderCSS emits the four border declarations of one record.
func borderCSS(rec *borders.Record) string {
	var b strings.Builder
	b.WriteString(edgeCSS("top", rec.Top))
	b.WriteString(edgeCSS("right", rec.Right))
	b.WriteString(edgeCSS("bottom", rec.Bottom))
	b.WriteString(edgeCSS("left", rec.Left))
	return b.String()
}

func edgeCSS(side string, st borders.EdgeStyle) string {
	if st.Hidden {
		return fmt.Sprintf("border-%s: none; ", side)
	}
	color := st.Color
	if color == "" {
		color = "#000"
	}
	return fmt.Sprintf("border-%s: %dpx solid %s; ", side, st.Width, color)
}
