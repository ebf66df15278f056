package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"gopkg.in/natefinch/lumberjack.v2"
	_ "modernc.org/sqlite"

	"gridlines.dev/tui/borders"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const dbPath = "$HOME/.local/share/gridlines/data.db"
const logPath = "$HOME/.local/share/gridlines/debug.log"

func main() {
	// Load .env file (ignore error if not found)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// newFileLogger returns the rotating debug logger. GRIDLINES_LOG overrides
// the default location.
func newFileLogger() *log.Logger {
	path := os.ExpandEnv(logPath)
	if v := os.Getenv("GRIDLINES_LOG"); v != "" {
		path = os.ExpandEnv(v)
	}
	return log.New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,  // Megabytes before it rotates
		MaxBackups: 3,  // Keep only the 3 most recent old log files
		MaxAge:     28, // Days to keep logs
		Compress:   true,
	}, "APP: ", log.LstdFlags)
}

// wireEngineLogging points the borders package logger at the rotating file.
func wireEngineLogging(fileLogger *log.Logger) {
	handler := slog.NewTextHandler(fileLogger.Writer(), &slog.HandlerOptions{Level: slog.LevelDebug})
	borders.SetLogger(slog.New(handler))
}

// openDatabase opens the SQLite store and brings the schema up to date.
// GRIDLINES_DB overrides the default location.
func openDatabase(fileLogger *log.Logger) (*sql.DB, error) {
	path := os.ExpandEnv(dbPath)
	if v := os.Getenv("GRIDLINES_DB"); v != "" {
		path = os.ExpandEnv(v)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	goose.SetLogger(&migrationLogger{fileLogger})
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, err
	}

	// "migrations" is the folder name inside the embedded FS
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// loadBorderSpecs reads the optional border configuration file named by the
// GRIDLINES_BORDERS env var.
func loadBorderSpecs() ([]borders.Spec, error) {
	path := os.Getenv("GRIDLINES_BORDERS")
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("read border config: %w", err)
	}
	specs, err := borders.ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse border config: %w", err)
	}
	return specs, nil
}
