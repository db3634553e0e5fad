package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/horario/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information and free slots
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Warnings: persistence failures and out-of-bounds notices
	colorWarn = color.New(color.FgYellow)

	// Task color tags
	taskColors = map[task.Color]*color.Color{
		task.ColorBlue:   color.New(color.FgBlue),
		task.ColorGreen:  color.New(color.FgGreen),
		task.ColorYellow: color.New(color.FgYellow),
		task.ColorRed:    color.New(color.FgRed),
		task.ColorPurple: color.New(color.FgMagenta),
		task.ColorGrey:   color.New(color.FgWhite, color.Faint),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatWarn formats text as a warning.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatTask colors text with the task's color tag.
func formatTask(t *task.Task, s string) string {
	c, ok := taskColors[t.Color]
	if !ok {
		return s
	}
	return c.Sprint(s)
}
