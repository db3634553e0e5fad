package store

import (
	"path/filepath"
	"testing"

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "horario.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testTask(id, name, start, end string) *task.Task {
	tk := &task.Task{ID: id, Name: name, StartTime: start, EndTime: end, Color: task.ColorBlue}
	tk.Duration = tk.EndMinutes() - tk.StartMinutes()
	return tk
}

func TestSaveAndLoadDay(t *testing.T) {
	s := openTestDB(t)
	day := "2025-01-15"

	tasks := []*task.Task{
		testTask("a", "standup", "09:00", "09:30"),
		testTask("b", "review", "10:00", "11:00"),
	}
	if err := s.SaveDay(day, tasks); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}

	snap, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	got := snap.Days[day]
	if len(got) != 2 {
		t.Fatalf("loaded %d tasks, want 2", len(got))
	}
	if got[0].ID != "a" || got[0].Name != "standup" || got[0].Duration != 30 {
		t.Errorf("task round-trip mismatch: %+v", got[0])
	}
}

func TestSaveDayReplaces(t *testing.T) {
	s := openTestDB(t)
	day := "2025-01-15"

	if err := s.SaveDay(day, []*task.Task{testTask("a", "old", "09:00", "10:00")}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDay(day, []*task.Task{testTask("b", "new", "11:00", "12:00")}); err != nil {
		t.Fatal(err)
	}

	snap, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	got := snap.Days[day]
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("second save did not replace the first: %v", got)
	}
}

func TestSaveDayEmptyDeletes(t *testing.T) {
	s := openTestDB(t)
	day := "2025-01-15"

	if err := s.SaveDay(day, []*task.Task{testTask("a", "x", "09:00", "10:00")}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDay(day, nil); err != nil {
		t.Fatal(err)
	}

	snap, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := snap.Days[day]; ok {
		t.Error("empty save left the day row behind")
	}
}

func TestDayConfigRoundTrip(t *testing.T) {
	s := openTestDB(t)

	cfg := schedule.DayConfig{StartTime: "09:00", EndTime: "17:00", Interval: 15}
	if err := s.SaveDayConfig("2025-01-15", cfg); err != nil {
		t.Fatalf("SaveDayConfig: %v", err)
	}

	snap, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if got := snap.Overrides["2025-01-15"]; got != cfg {
		t.Errorf("override round-trip = %+v, want %+v", got, cfg)
	}

	if err := s.DeleteDayConfig("2025-01-15"); err != nil {
		t.Fatalf("DeleteDayConfig: %v", err)
	}
	snap, err = s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := snap.Overrides["2025-01-15"]; ok {
		t.Error("override survived deletion")
	}
}

func TestGlobalConfigRoundTrip(t *testing.T) {
	s := openTestDB(t)

	snap, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Global != schedule.DefaultConfig() {
		t.Errorf("fresh db global = %+v, want default", snap.Global)
	}

	cfg := schedule.DayConfig{StartTime: "07:00", EndTime: "19:00", Interval: 60}
	if err := s.SaveGlobalConfig(cfg); err != nil {
		t.Fatalf("SaveGlobalConfig: %v", err)
	}
	snap, err = s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Global != cfg {
		t.Errorf("global round-trip = %+v, want %+v", snap.Global, cfg)
	}
}

func TestReplaceAll(t *testing.T) {
	s := openTestDB(t)

	if err := s.SaveDay("2025-01-15", []*task.Task{testTask("old", "old", "09:00", "10:00")}); err != nil {
		t.Fatal(err)
	}

	snap := &Snapshot{
		Global: schedule.DayConfig{StartTime: "06:00", EndTime: "20:00", Interval: 10},
		Overrides: map[string]schedule.DayConfig{
			"2025-02-01": {StartTime: "10:00", EndTime: "16:00", Interval: 30},
		},
		Days: map[string][]*task.Task{
			"2025-02-01": {testTask("n", "new", "10:00", "11:00")},
		},
	}
	if err := s.ReplaceAll(snap); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	got, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.Days["2025-01-15"]; ok {
		t.Error("old day survived ReplaceAll")
	}
	if len(got.Days["2025-02-01"]) != 1 {
		t.Errorf("new day missing after ReplaceAll: %v", got.Days)
	}
	if got.Global.Interval != 10 {
		t.Errorf("global interval = %d, want 10", got.Global.Interval)
	}
}
