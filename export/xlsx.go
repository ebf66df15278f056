// Package export writes a decorated sheet to interchange formats: an XLSX
// workbook with real per-edge cell borders, or a standalone HTML document.
package export

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"

	"gridlines.dev/tui/borders"
	"gridlines.dev/tui/grid"
)

// cssNames maps color names accepted in border configs to RGB hex.
var cssNames = map[string]string{
	"black":   "000000",
	"white":   "FFFFFF",
	"red":     "FF0000",
	"green":   "008000",
	"blue":    "0000FF",
	"yellow":  "FFFF00",
	"orange":  "FFA500",
	"purple":  "800080",
	"magenta": "FF00FF",
	"cyan":    "00FFFF",
	"gray":    "808080",
	"grey":    "808080",
}

// WriteXLSX builds a workbook holding the sheet's values and, for every
// border record, a cell style whose border element mirrors the record's
// visible edges.
func WriteXLSX(sheet *grid.Sheet, records []*borders.Record, path string) error {
	wb := spreadsheet.New()
	ws := wb.AddSheet()
	ws.SetName(sheet.Name)

	for row := 0; row < sheet.Rows; row++ {
		for col := 0; col < sheet.Cols; col++ {
			if v := sheet.Value(row, col); v != "" {
				ws.Cell(grid.CellName(row, col)).SetString(v)
			}
		}
	}

	ss := wb.StyleSheet.X()
	for _, rec := range records {
		styleIdx := addBorderStyle(ss, borderFromRecord(rec))
		ws.Cell(grid.CellName(rec.Row, rec.Col)).X().SAttr = u32(styleIdx)
	}

	if err := wb.Validate(); err != nil {
		return fmt.Errorf("validate workbook: %w", err)
	}
	if err := wb.SaveToFile(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// borderFromRecord converts a record into a border element. Hidden edges
// get no border side at all.
func borderFromRecord(rec *borders.Record) *sml.CT_Border {
	b := sml.NewCT_Border()
	b.Top = borderPr(rec.Top)
	b.Right = borderPr(rec.Right)
	b.Bottom = borderPr(rec.Bottom)
	b.Left = borderPr(rec.Left)
	return b
}

func borderPr(st borders.EdgeStyle) *sml.CT_BorderPr {
	if st.Hidden {
		return nil
	}
	pr := sml.NewCT_BorderPr()
	pr.StyleAttr = borderStyle(st.Width)
	color := sml.NewCT_Color()
	rgb := argbColor(st.Color)
	color.RgbAttr = &rgb
	pr.Color = color
	return pr
}

func borderStyle(width int) sml.ST_BorderStyle {
	switch {
	case width >= 3:
		return sml.ST_BorderStyleThick
	case width == 2:
		return sml.ST_BorderStyleMedium
	default:
		return sml.ST_BorderStyleThin
	}
}

// addBorderStyle appends the border to the stylesheet and a cell format
// referencing it, and returns the new format's style index.
func addBorderStyle(ss *sml.CT_Stylesheet, border *sml.CT_Border) uint32 {
	if ss.Borders == nil {
		ss.Borders = sml.NewCT_Borders()
	}
	ss.Borders.Border = append(ss.Borders.Border, border)
	borderID := uint32(len(ss.Borders.Border) - 1)
	ss.Borders.CountAttr = u32(uint32(len(ss.Borders.Border)))

	if ss.CellXfs == nil {
		ss.CellXfs = sml.NewCT_CellXfs()
	}
	xf := sml.NewCT_Xf()
	xf.NumFmtIdAttr = u32(0)
	xf.FontIdAttr = u32(0)
	xf.FillIdAttr = u32(0)
	xf.XfIdAttr = u32(0)
	xf.BorderIdAttr = u32(borderID)
	applyBorder := true
	xf.ApplyBorderAttr = &applyBorder
	ss.CellXfs.Xf = append(ss.CellXfs.Xf, xf)
	ss.CellXfs.CountAttr = u32(uint32(len(ss.CellXfs.Xf)))

	return uint32(len(ss.CellXfs.Xf) - 1)
}

func u32(v uint32) *uint32 { return &v }

// argbColor converts a color name, #rgb or #rrggbb value to the 8-digit
// ARGB hex form cell styles carry. Unparseable input falls back to black.
func argbColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return "FF000000"
	}
	if hex, ok := cssNames[strings.ToLower(c)]; ok {
		return "FF" + hex
	}
	hex := strings.TrimPrefix(c, "#")
	if len(hex) == 3 {
		hex = strings.Repeat(string(hex[0]), 2) +
			strings.Repeat(string(hex[1]), 2) +
			strings.Repeat(string(hex[2]), 2)
	}
	if len(hex) != 6 {
		return "FF000000"
	}
	return "FF" + strings.ToUpper(hex)
}
