package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gridlines.dev/tui/borders"
	"gridlines.dev/tui/export"
	"gridlines.dev/tui/grid"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func printSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

func printError(err error) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %v\n", err)
}

// rootCmd starts the TUI.
var rootCmd = &cobra.Command{
	Use:   "gridlines",
	Short: "Terminal spreadsheet with a cell border engine",
	Long: `gridlines is a terminal spreadsheet editor built around a border
assignment engine: select ranges of cells and draw, toggle or clear
per-edge borders, with every assignment deduplicated and mirrored into
the sheet's metadata.

Sheets live in a local SQLite database. Border configurations can be
loaded from a JSON file via the GRIDLINES_BORDERS env var.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

var (
	exportSheetID int64
	exportFormat  string
	exportOut     string
	exportBorders string
)

// exportCmd writes a stored sheet with its borders to a file without
// starting the TUI.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored sheet with its borders to xlsx or html",
	Long: `Export loads a sheet from the local database, replays a border
configuration against it and writes the decorated sheet to a file.

The border configuration comes from --borders, falling back to the
GRIDLINES_BORDERS env var. Without either the sheet is exported bare.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Int64Var(&exportSheetID, "sheet", 0, "sheet ID to export (defaults to the first sheet)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "output format: xlsx or html")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file path")
	exportCmd.Flags().StringVar(&exportBorders, "borders", "", "JSON border configuration file applied before export")
	_ = exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	fileLogger := newFileLogger()
	wireEngineLogging(fileLogger)

	specs, err := loadBorderSpecs()
	if err != nil {
		return err
	}

	db, err := openDatabase(fileLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Alt-screen makes this a true full-window TUI (no scrollback spam).
	p := tea.NewProgram(NewAppModel(db, specs), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	fileLogger := newFileLogger()
	wireEngineLogging(fileLogger)

	db, err := openDatabase(fileLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	store := grid.NewStore(db)

	id := exportSheetID
	if id == 0 {
		sheets, err := store.Sheets()
		if err != nil {
			return err
		}
		if len(sheets) == 0 {
			return fmt.Errorf("no sheets stored; run the TUI first")
		}
		id = sheets[0].ID
	}

	sheet, err := store.LoadSheet(id)
	if err != nil {
		return err
	}

	specs, err := exportSpecs()
	if err != nil {
		return err
	}

	// Replay the configuration against the sheet. The engine mirrors its
	// records into the sheet's metadata store exactly as the TUI does.
	engine := borders.New(sheet, grid.NewDecorationSet(), nil)
	engine.Update(specs)
	records := engine.Records()

	switch exportFormat {
	case "xlsx":
		if err := export.WriteXLSX(sheet, records, exportOut); err != nil {
			return err
		}
	case "html":
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		if err := export.WriteHTML(sheet, records, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want xlsx or html)", exportFormat)
	}

	printSuccess(fmt.Sprintf("exported %s (%d cells, %d border records) to %s",
		sheet.Name, sheet.CellCount(), len(records), exportOut))
	return nil
}

// exportSpecs resolves the border configuration for the export command:
// the --borders flag wins over the GRIDLINES_BORDERS env var.
func exportSpecs() ([]borders.Spec, error) {
	if exportBorders == "" {
		return loadBorderSpecs()
	}
	data, err := os.ReadFile(exportBorders)
	if err != nil {
		return nil, fmt.Errorf("read border config: %w", err)
	}
	specs, err := borders.ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse border config: %w", err)
	}
	return specs, nil
}
