// Package timeutil provides minute-granularity clock arithmetic for
// "HH:MM" wall-clock times.
package timeutil

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is returned when a string is not a valid HH:MM time.
var ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

// SnapMode selects how Snap rounds to the grid.
type SnapMode int

const (
	SnapNearest SnapMode = iota
	SnapFloor
	SnapCeil
)

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input; callers validate with ValidTime first.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values outside a single day are clamped to [00:00, 23:59].
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidTime reports whether s is a well-formed HH:MM time within
// 00:00-23:59.
func ValidTime(s string) error {
	if len(s) != 5 || s[2] != ':' {
		return ErrInvalidTimeFormat
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return ErrInvalidTimeFormat
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return ErrInvalidTimeFormat
	}
	return nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// TimesOverlap is Overlaps for HH:MM strings. Zero-padded times
// compare correctly as strings.
func TimesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// Snap rounds minutes to a multiple of step measured from anchor.
// A step of zero or less leaves minutes unchanged.
func Snap(minutes, step, anchor int, mode SnapMode) int {
	if step <= 0 {
		return minutes
	}
	offset := minutes - anchor
	q := offset / step
	r := offset % step
	if r < 0 {
		q--
		r += step
	}
	switch mode {
	case SnapFloor:
		// q already floors
	case SnapCeil:
		if r != 0 {
			q++
		}
	default:
		if 2*r >= step {
			q++
		}
	}
	return anchor + q*step
}
