// Package schedule holds the authoritative in-memory planner state:
// per-day task lists, the global day config, and per-day overrides.
// Mutations validate against the effective config, run the conflict
// check, and hand committed state to the persistence collaborator.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/javiermolinar/horario/internal/task"
)

// Domain errors.
var (
	ErrOutOfBounds = errors.New("time range outside day window")
)

// Persister is the external durable-store collaborator. Writes happen
// after the in-memory commit; a failed write never rolls it back.
type Persister interface {
	SaveDay(dayKey string, tasks []*task.Task) error
	SaveDayConfig(dayKey string, cfg DayConfig) error
	DeleteDayConfig(dayKey string) error
	SaveGlobalConfig(cfg DayConfig) error
}

// Candidate describes a task to be created or proposed.
type Candidate struct {
	Name        string
	Description string
	StartTime   string // "HH:MM" format
	EndTime     string // "HH:MM" format
	Color       task.Color
}

// TaskPatch is a partial update to an existing task. Nil fields keep
// the current value.
type TaskPatch struct {
	Name        *string
	Description *string
	StartTime   *string
	EndTime     *string
	Color       *task.Color
}

// Outcome is the result of a mutation proposal. Exactly one of Task
// or Conflicts is set: Task when the change committed, Conflicts when
// it needs explicit confirmation via OverrideAndAdd.
// Warning carries a non-blocking persistence failure; the in-memory
// state committed regardless.
type Outcome struct {
	Task      *task.Task
	Conflicts []*task.Task
	Warning   error
}

// Committed returns true if the mutation was applied.
func (o Outcome) Committed() bool {
	return o.Task != nil
}

// Store owns the schedule map and config overrides. It is not safe
// for concurrent use; the caller serializes mutations (single UI
// event loop).
type Store struct {
	global    DayConfig
	overrides map[string]DayConfig
	days      map[string][]*task.Task // sorted ascending by StartTime
	persist   Persister
}

// NewStore creates an empty store with the built-in global defaults.
// persist may be nil, in which case changes are memory-only.
func NewStore(persist Persister) *Store {
	return &Store{
		global:    DefaultConfig(),
		overrides: make(map[string]DayConfig),
		days:      make(map[string][]*task.Task),
		persist:   persist,
	}
}

// Reset replaces the entire state wholesale. Used on load and import.
// Task lists are re-sorted; configs are taken as-is.
func (s *Store) Reset(global DayConfig, overrides map[string]DayConfig, days map[string][]*task.Task) {
	s.global = global
	s.overrides = make(map[string]DayConfig, len(overrides))
	for k, v := range overrides {
		s.overrides[k] = v
	}
	s.days = make(map[string][]*task.Task, len(days))
	for k, v := range days {
		list := make([]*task.Task, len(v))
		copy(list, v)
		sortTasks(list)
		s.days[k] = list
	}
}

// GlobalConfig returns the current global default config.
func (s *Store) GlobalConfig() DayConfig {
	return s.global
}

// EffectiveConfig returns the day override if present, else the
// global config.
func (s *Store) EffectiveConfig(dayKey string) DayConfig {
	if cfg, ok := s.overrides[dayKey]; ok {
		return cfg
	}
	return s.global
}

// HasOverride returns true if the day deviates from the global config.
func (s *Store) HasOverride(dayKey string) bool {
	_, ok := s.overrides[dayKey]
	return ok
}

// Overrides returns a copy of the override map.
func (s *Store) Overrides() map[string]DayConfig {
	out := make(map[string]DayConfig, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}

// SetGlobalConfig merges the patch into the global config. Days
// without an override pick up the change immediately.
func (s *Store) SetGlobalConfig(p GlobalConfigPatch) (DayConfig, error) {
	merged := s.global.applyGlobalPatch(p)
	if err := merged.Validate(); err != nil {
		return s.global, err
	}
	s.global = merged
	if s.persist != nil {
		if err := s.persist.SaveGlobalConfig(merged); err != nil {
			return merged, fmt.Errorf("saving global config: %w", err)
		}
	}
	return merged, nil
}

// SetDayConfig creates or updates the day's override, seeded from the
// current effective config, and merges the patch into it.
// Existing tasks are not validated against the new bounds here; use
// TasksOutsideBounds before committing a narrowing change.
func (s *Store) SetDayConfig(dayKey string, p DayConfigPatch) (DayConfig, error) {
	merged := s.EffectiveConfig(dayKey).applyDayPatch(p)
	if err := merged.Validate(); err != nil {
		return s.EffectiveConfig(dayKey), err
	}
	s.overrides[dayKey] = merged
	if s.persist != nil {
		if err := s.persist.SaveDayConfig(dayKey, merged); err != nil {
			return merged, fmt.Errorf("saving day config: %w", err)
		}
	}
	return merged, nil
}

// ClearDayOverride deletes the day's override so it reverts to the
// global config. Clearing a day without an override is a no-op.
func (s *Store) ClearDayOverride(dayKey string) error {
	if _, ok := s.overrides[dayKey]; !ok {
		return nil
	}
	delete(s.overrides, dayKey)
	if s.persist != nil {
		if err := s.persist.DeleteDayConfig(dayKey); err != nil {
			return fmt.Errorf("deleting day config: %w", err)
		}
	}
	return nil
}

// TasksOutsideBounds returns the day's tasks that would fall outside
// the given config's window. The two-phase companion to SetDayConfig:
// callers query first, warn, then commit.
func (s *Store) TasksOutsideBounds(dayKey string, cfg DayConfig) []*task.Task {
	var out []*task.Task
	for _, t := range s.days[dayKey] {
		if t.StartTime < cfg.StartTime || t.EndTime > cfg.EndTime {
			out = append(out, t)
		}
	}
	return out
}

// Tasks returns a copy of the day's task list, sorted by start time.
func (s *Store) Tasks(dayKey string) []*task.Task {
	list := s.days[dayKey]
	out := make([]*task.Task, len(list))
	copy(out, list)
	return out
}

// DayKeys returns the keys of all days with at least one task, sorted
// ascending.
func (s *Store) DayKeys() []string {
	keys := make([]string, 0, len(s.days))
	for k, list := range s.days {
		if len(list) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// FindTask returns the task with the given id in the day, or nil.
func (s *Store) FindTask(dayKey, id string) *task.Task {
	for _, t := range s.days[dayKey] {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AddTask validates and proposes a new task for the day.
// Validation and bounds failures return an error with nothing
// mutated. Conflicts return an Outcome carrying the conflicting
// tasks, again with nothing mutated; the caller decides and then
// calls OverrideAndAdd. On success the task gets a fresh id and the
// day stays sorted by start time.
func (s *Store) AddTask(dayKey string, c Candidate) (Outcome, error) {
	t, err := task.New(c.Name, c.Description, c.StartTime, c.EndTime, c.Color)
	if err != nil {
		return Outcome{}, err
	}

	cfg := s.EffectiveConfig(dayKey)
	if err := s.checkBounds(t.StartTime, t.EndTime, cfg); err != nil {
		return Outcome{}, err
	}

	if conflicts := FindConflicts(s.days[dayKey], t.StartTime, t.EndTime, ""); len(conflicts) > 0 {
		return Outcome{Conflicts: conflicts}, nil
	}

	return s.commitInsert(dayKey, t), nil
}

// OverrideAndAdd removes every task whose id is in conflictIDs from
// the day, then inserts the candidate. Destructive; callers are
// expected to have confirmed with the user.
func (s *Store) OverrideAndAdd(dayKey string, c Candidate, conflictIDs []string) (Outcome, error) {
	t, err := task.New(c.Name, c.Description, c.StartTime, c.EndTime, c.Color)
	if err != nil {
		return Outcome{}, err
	}

	cfg := s.EffectiveConfig(dayKey)
	if err := s.checkBounds(t.StartTime, t.EndTime, cfg); err != nil {
		return Outcome{}, err
	}

	drop := make(map[string]bool, len(conflictIDs))
	for _, id := range conflictIDs {
		drop[id] = true
	}
	list := s.days[dayKey]
	kept := list[:0]
	for _, existing := range list {
		if !drop[existing.ID] {
			kept = append(kept, existing)
		}
	}
	s.days[dayKey] = kept

	return s.commitInsert(dayKey, t), nil
}

// UpdateTask applies a partial update to an existing task. The
// conflict search excludes the task itself, so an unchanged time
// range never conflicts with its own prior version.
func (s *Store) UpdateTask(dayKey, id string, p TaskPatch) (Outcome, error) {
	existing := s.FindTask(dayKey, id)
	if existing == nil {
		return Outcome{}, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}

	updated := existing.Clone()
	if p.Name != nil {
		updated.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		updated.Description = *p.Description
	}
	if p.StartTime != nil {
		updated.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		updated.EndTime = *p.EndTime
	}
	if p.Color != nil {
		updated.Color = *p.Color
	}
	updated.Duration = updated.EndMinutes() - updated.StartMinutes()

	if err := updated.Validate(); err != nil {
		return Outcome{}, err
	}
	cfg := s.EffectiveConfig(dayKey)
	if err := s.checkBounds(updated.StartTime, updated.EndTime, cfg); err != nil {
		return Outcome{}, err
	}

	if conflicts := FindConflicts(s.days[dayKey], updated.StartTime, updated.EndTime, id); len(conflicts) > 0 {
		return Outcome{Conflicts: conflicts}, nil
	}

	*existing = *updated
	sortTasks(s.days[dayKey])
	return Outcome{Task: existing, Warning: s.persistDay(dayKey)}, nil
}

// RemoveTask removes a task by id. Removing a nonexistent id is a
// no-op, not an error. Returns the persistence warning, if any.
func (s *Store) RemoveTask(dayKey, id string) error {
	list := s.days[dayKey]
	for i, t := range list {
		if t.ID == id {
			s.days[dayKey] = append(list[:i], list[i+1:]...)
			return s.persistDay(dayKey)
		}
	}
	return nil
}

// ClearDay removes all tasks for the day.
func (s *Store) ClearDay(dayKey string) error {
	if len(s.days[dayKey]) == 0 {
		return nil
	}
	delete(s.days, dayKey)
	return s.persistDay(dayKey)
}

// FillDayBreaks replaces the day's task list with the break-filled
// derivation of it (see FillBreaks) and persists the result.
func (s *Store) FillDayBreaks(dayKey string) ([]*task.Task, error) {
	cfg := s.EffectiveConfig(dayKey)
	filled := FillBreaks(s.days[dayKey], cfg)
	s.days[dayKey] = filled
	return s.Tasks(dayKey), s.persistDay(dayKey)
}

func (s *Store) checkBounds(start, end string, cfg DayConfig) error {
	if start < cfg.StartTime || end > cfg.EndTime {
		return fmt.Errorf("%w: %s-%s not within %s-%s",
			ErrOutOfBounds, start, end, cfg.StartTime, cfg.EndTime)
	}
	return nil
}

func (s *Store) commitInsert(dayKey string, t *task.Task) Outcome {
	s.days[dayKey] = append(s.days[dayKey], t)
	sortTasks(s.days[dayKey])
	return Outcome{Task: t, Warning: s.persistDay(dayKey)}
}

func (s *Store) persistDay(dayKey string) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveDay(dayKey, s.Tasks(dayKey)); err != nil {
		return fmt.Errorf("saving day %s: %w", dayKey, err)
	}
	return nil
}

func sortTasks(list []*task.Task) {
	slices.SortFunc(list, func(a, b *task.Task) int {
		if a.StartTime < b.StartTime {
			return -1
		}
		if a.StartTime > b.StartTime {
			return 1
		}
		return 0
	})
}
