package main

import "github.com/charmbracelet/lipgloss"

// docStyle is the shared outer frame style for content areas.
// The actual width/height are set dynamically in AppModel.View based on the
// current terminal size (tea.WindowSizeMsg).
var docStyle = lipgloss.NewStyle().Padding(1, 2)

// statusStyle renders the one-line status footer under a page's content.
var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

// errTextStyle renders inline error text (load failures, save failures).
var errTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
