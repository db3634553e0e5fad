// Package share builds sanitized day snapshots and talks to the
// share backend. This is the only place planner data crosses the
// trust boundary; everything upstream works on the full task shape.
package share

import (
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
)

// Payload is the public snapshot of one day.
type Payload struct {
	DateKey string             `json:"dateKey"`
	Items   []Item             `json:"items"`
	Config  schedule.DayConfig `json:"config"`
}

// Item is a task stripped down to its public fields. Ids and
// descriptions never leave the planner.
type Item struct {
	Name      string     `json:"name"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Duration  int        `json:"duration"`
	Color     task.Color `json:"color"`
	Break     bool       `json:"break,omitempty"`
}

// BuildPayload assembles the shareable snapshot for one day:
// zero-duration tasks are dropped, remaining tasks are reduced to
// their public fields, and the day's effective config rides along so
// the viewer can render the same grid.
func BuildPayload(st *schedule.Store, dayKey string) Payload {
	payload := Payload{
		DateKey: dayKey,
		Items:   []Item{},
		Config:  st.EffectiveConfig(dayKey),
	}
	for _, t := range st.Tasks(dayKey) {
		if t.Duration <= 0 {
			continue
		}
		payload.Items = append(payload.Items, Item{
			Name:      t.Name,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
			Duration:  t.Duration,
			Color:     t.Color,
			Break:     t.Break,
		})
	}
	return payload
}
