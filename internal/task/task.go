// Package task defines the core domain types for horario.
package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/javiermolinar/horario/internal/timeutil"
)

// Practical field caps; anything longer is a validation error.
const (
	MaxNameLen        = 200
	MaxDescriptionLen = 1000
)

// Validation errors.
var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrInvalidColor       = errors.New("unknown color tag")
	ErrInvalidTimeFormat  = timeutil.ErrInvalidTimeFormat
	ErrEndBeforeStart     = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// Color is a semantic color tag used for display grouping only.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
	ColorGrey   Color = "grey"
)

// Valid returns true if the color is a known tag.
func (c Color) Valid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorYellow, ColorRed, ColorPurple, ColorGrey:
		return true
	default:
		return false
	}
}

// Task represents one scheduled item within a day.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime"` // "HH:MM" format
	EndTime     string `json:"endTime"`   // "HH:MM" format
	Duration    int    `json:"duration"`  // minutes, always end - start
	Color       Color  `json:"color"`
	Break       bool   `json:"break,omitempty"` // auto-generated gap filler
}

// New creates a Task with validation. The id is assigned here and is
// immutable afterwards.
// start and end must be in HH:MM format, with end strictly after start.
func New(name, description, start, end string, color Color) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	if len(description) > MaxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}
	if color == "" {
		color = ColorBlue
	}
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}

	if err := timeutil.ValidTime(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	if err := timeutil.ValidTime(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return nil, ErrEndBeforeStart
	}

	return &Task{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		StartTime:   start,
		EndTime:     end,
		Duration:    timeutil.TimeToMinutes(end) - timeutil.TimeToMinutes(start),
		Color:       color,
	}, nil
}

// NewBreak creates an auto-generated break task spanning [start, end).
func NewBreak(start, end string) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Name:      "Break",
		StartTime: start,
		EndTime:   end,
		Duration:  timeutil.TimeToMinutes(end) - timeutil.TimeToMinutes(start),
		Color:     ColorGrey,
		Break:     true,
	}
}

// StartMinutes returns the start time as minutes since midnight.
func (t *Task) StartMinutes() int {
	return timeutil.TimeToMinutes(t.StartTime)
}

// EndMinutes returns the end time as minutes since midnight.
func (t *Task) EndMinutes() int {
	return timeutil.TimeToMinutes(t.EndTime)
}

// OverlapsRange returns true if the task's interval intersects the
// half-open range [start, end).
func (t *Task) OverlapsRange(start, end string) bool {
	return timeutil.TimesOverlap(t.StartTime, t.EndTime, start, end)
}

// Validate checks the task's invariants. Used on load and import,
// where tasks arrive from outside rather than through New.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLen {
		return ErrNameTooLong
	}
	if len(t.Description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if err := timeutil.ValidTime(t.StartTime); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := timeutil.ValidTime(t.EndTime); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if t.EndTime <= t.StartTime {
		return ErrEndBeforeStart
	}
	if want := t.EndMinutes() - t.StartMinutes(); t.Duration != want {
		return fmt.Errorf("duration %d does not match times (want %d)", t.Duration, want)
	}
	if !t.Color.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, t.Color)
	}
	return nil
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
