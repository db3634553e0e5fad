package schedule

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/horario/internal/timeutil"
)

// Interval bounds in minutes per grid slot.
const (
	MinInterval = 5
	MaxInterval = 240
)

// Config validation errors.
var (
	ErrIntervalOutOfRange = errors.New("interval must be between 5 and 240 minutes")
	ErrEndBeforeStart     = errors.New("day end must be after day start")
)

// DayConfig is the time window and grid granularity for one day.
type DayConfig struct {
	StartTime string `json:"startTime"` // "HH:MM" format
	EndTime   string `json:"endTime"`   // "HH:MM" format
	Interval  int    `json:"interval"`  // minutes per grid slot
}

// DefaultConfig returns the built-in global default.
func DefaultConfig() DayConfig {
	return DayConfig{
		StartTime: "08:00",
		EndTime:   "18:00",
		Interval:  30,
	}
}

// Validate checks the config's invariants.
func (c DayConfig) Validate() error {
	if err := timeutil.ValidTime(c.StartTime); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := timeutil.ValidTime(c.EndTime); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if c.EndTime <= c.StartTime {
		return ErrEndBeforeStart
	}
	if c.Interval < MinInterval || c.Interval > MaxInterval {
		return fmt.Errorf("%w: got %d", ErrIntervalOutOfRange, c.Interval)
	}
	return nil
}

// StartMinutes returns the window start as minutes since midnight.
func (c DayConfig) StartMinutes() int {
	return timeutil.TimeToMinutes(c.StartTime)
}

// EndMinutes returns the window end as minutes since midnight.
func (c DayConfig) EndMinutes() int {
	return timeutil.TimeToMinutes(c.EndTime)
}

// DayConfigPatch is a partial update to one day's override.
// Nil fields keep the current effective value.
type DayConfigPatch struct {
	StartTime *string
	EndTime   *string
	Interval  *int
}

// GlobalConfigPatch is a partial update to the global default config.
// Nil fields keep the current value.
type GlobalConfigPatch struct {
	StartTime *string
	EndTime   *string
	Interval  *int
}

func (c DayConfig) applyDayPatch(p DayConfigPatch) DayConfig {
	if p.StartTime != nil {
		c.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		c.EndTime = *p.EndTime
	}
	if p.Interval != nil {
		c.Interval = *p.Interval
	}
	return c
}

func (c DayConfig) applyGlobalPatch(p GlobalConfigPatch) DayConfig {
	if p.StartTime != nil {
		c.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		c.EndTime = *p.EndTime
	}
	if p.Interval != nil {
		c.Interval = *p.Interval
	}
	return c
}
