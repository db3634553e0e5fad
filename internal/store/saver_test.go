package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
)

// recordingPersister captures writes for inspection.
type recordingPersister struct {
	mu   sync.Mutex
	days map[string][]*task.Task
	err  error
}

func newRecordingPersister() *recordingPersister {
	return &recordingPersister{days: make(map[string][]*task.Task)}
}

func (p *recordingPersister) SaveDay(key string, tasks []*task.Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.days[key] = tasks
	return nil
}

func (p *recordingPersister) SaveDayConfig(string, schedule.DayConfig) error { return nil }
func (p *recordingPersister) DeleteDayConfig(string) error                   { return nil }
func (p *recordingPersister) SaveGlobalConfig(schedule.DayConfig) error      { return nil }

func (p *recordingPersister) get(key string) []*task.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.days[key]
}

func TestSaverWritesThrough(t *testing.T) {
	dst := newRecordingPersister()
	s := NewSaver(dst, nil)

	if err := s.SaveDay("2025-01-15", []*task.Task{testTask("a", "x", "09:00", "10:00")}); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	s.Close()

	got := dst.get("2025-01-15")
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("after close, persisted = %v, want task a", got)
	}
}

func TestSaverCoalesces(t *testing.T) {
	dst := newRecordingPersister()
	s := NewSaver(dst, nil)

	// Queue several states for the same key before any drain is
	// guaranteed; the last one must win.
	for i := 0; i < 10; i++ {
		_ = s.SaveDay("2025-01-15", []*task.Task{testTask("final", "x", "09:00", "10:00")})
	}
	last := []*task.Task{testTask("winner", "x", "11:00", "12:00")}
	_ = s.SaveDay("2025-01-15", last)
	s.Close()

	got := dst.get("2025-01-15")
	if len(got) != 1 || got[0].ID != "winner" {
		t.Errorf("persisted = %v, want the latest state", got)
	}
}

func TestSaverReportsErrors(t *testing.T) {
	dst := newRecordingPersister()
	dst.err = errors.New("disk full")

	var mu sync.Mutex
	var reported []error
	s := NewSaver(dst, func(err error) {
		mu.Lock()
		reported = append(reported, err)
		mu.Unlock()
	})

	if err := s.SaveDay("2025-01-15", nil); err != nil {
		t.Fatalf("SaveDay must not propagate write errors, got %v", err)
	}
	s.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(reported) == 0 {
		t.Error("write failure was not reported")
	}
}

// gatedPersister blocks inside SaveDay until released, so a test can
// hold the drain goroutine mid-write.
type gatedPersister struct {
	recordingPersister
	entered chan string
	release chan struct{}
}

func newGatedPersister() *gatedPersister {
	return &gatedPersister{
		recordingPersister: recordingPersister{days: make(map[string][]*task.Task)},
		entered:            make(chan string, 8),
		release:            make(chan struct{}),
	}
}

func (p *gatedPersister) SaveDay(key string, tasks []*task.Task) error {
	p.entered <- key
	<-p.release
	return p.recordingPersister.SaveDay(key, tasks)
}

func TestSaverQueuedStateIsolatedFromLaterMutation(t *testing.T) {
	dst := newGatedPersister()
	s := NewSaver(dst, nil)

	// Park the drain goroutine inside a write for an unrelated key.
	_ = s.SaveDay("blocker", []*task.Task{testTask("z", "x", "07:00", "08:00")})
	<-dst.entered

	// Queue the day we care about, then mutate the original task the
	// way UpdateTask overwrites a committed task in place.
	tk := testTask("a", "before", "09:00", "10:00")
	_ = s.SaveDay("2025-01-15", []*task.Task{tk})
	tk.Name = "after"
	tk.StartTime = "13:00"

	close(dst.release)
	s.Flush()

	got := dst.get("2025-01-15")
	if len(got) != 1 {
		t.Fatalf("persisted %d tasks, want 1", len(got))
	}
	if got[0].Name != "before" || got[0].StartTime != "09:00" {
		t.Errorf("persisted mutated state %s %s, want the state at queue time", got[0].Name, got[0].StartTime)
	}
	s.Close()
}

func TestSaverConcurrentUpdates(t *testing.T) {
	dst := newRecordingPersister()
	s := NewSaver(dst, nil)
	st := schedule.NewStore(s)
	day := "2025-01-15"

	out, err := st.AddTask(day, schedule.Candidate{Name: "a", StartTime: "09:00", EndTime: "10:00"})
	if err != nil || !out.Committed() {
		t.Fatalf("AddTask: outcome=%+v err=%v", out, err)
	}
	id := out.Task.ID

	// Hammer the same task while the drain goroutine persists each
	// state; the saver must never read a task the store is writing.
	names := []string{"b", "c", "d", "e"}
	for i := 0; i < 200; i++ {
		name := names[i%len(names)]
		if _, err := st.UpdateTask(day, id, schedule.TaskPatch{Name: &name}); err != nil {
			t.Fatalf("UpdateTask: %v", err)
		}
	}
	s.Close()

	got := dst.get(day)
	if len(got) != 1 || got[0].Name != "e" {
		t.Errorf("persisted = %v, want the final state", got)
	}
}

func TestSaverFlush(t *testing.T) {
	dst := newRecordingPersister()
	s := NewSaver(dst, nil)
	defer s.Close()

	_ = s.SaveDay("2025-01-15", []*task.Task{testTask("a", "x", "09:00", "10:00")})
	s.Flush()

	if got := dst.get("2025-01-15"); len(got) != 1 {
		t.Errorf("after flush, persisted = %v, want 1 task", got)
	}
}
