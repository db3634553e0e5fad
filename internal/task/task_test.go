package task

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		taskName string
		desc     string
		start    string
		end      string
		color    Color
		wantErr  error
	}{
		{name: "valid", taskName: "Standup", start: "09:00", end: "09:30", color: ColorBlue},
		{name: "default color", taskName: "Standup", start: "09:00", end: "09:30", color: ""},
		{name: "empty name", taskName: "", start: "09:00", end: "09:30", wantErr: ErrEmptyName},
		{name: "whitespace name", taskName: "   ", start: "09:00", end: "09:30", wantErr: ErrEmptyName},
		{name: "name too long", taskName: strings.Repeat("x", MaxNameLen+1), start: "09:00", end: "09:30", wantErr: ErrNameTooLong},
		{name: "description too long", taskName: "ok", desc: strings.Repeat("x", MaxDescriptionLen+1), start: "09:00", end: "09:30", wantErr: ErrDescriptionTooLong},
		{name: "bad start", taskName: "ok", start: "9:00", end: "09:30", wantErr: ErrInvalidTimeFormat},
		{name: "bad end", taskName: "ok", start: "09:00", end: "25:00", wantErr: ErrInvalidTimeFormat},
		{name: "end equals start", taskName: "ok", start: "09:00", end: "09:00", wantErr: ErrEndBeforeStart},
		{name: "end before start", taskName: "ok", start: "10:00", end: "09:00", wantErr: ErrEndBeforeStart},
		{name: "bad color", taskName: "ok", start: "09:00", end: "09:30", color: "magenta", wantErr: ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.taskName, tt.desc, tt.start, tt.end, tt.color)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if got.ID == "" {
				t.Error("New() did not assign an id")
			}
			if got.Duration != 30 {
				t.Errorf("Duration = %d, want 30", got.Duration)
			}
			if got.Break {
				t.Error("New() tasks must not be breaks")
			}
			if !got.Color.Valid() {
				t.Errorf("Color = %q not valid", got.Color)
			}
		})
	}
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a, err := New("one", "", "09:00", "10:00", ColorBlue)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New("two", "", "10:00", "11:00", ColorBlue)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Errorf("ids collide: %q", a.ID)
	}
}

func TestNewBreak(t *testing.T) {
	b := NewBreak("10:00", "12:00")
	if !b.Break {
		t.Error("NewBreak() must set Break")
	}
	if b.Duration != 120 {
		t.Errorf("Duration = %d, want 120", b.Duration)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("break does not validate: %v", err)
	}
}

func TestOverlapsRange(t *testing.T) {
	tk := &Task{StartTime: "09:00", EndTime: "10:00"}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{name: "touching end is not overlap", start: "10:00", end: "11:00", want: false},
		{name: "touching start is not overlap", start: "08:00", end: "09:00", want: false},
		{name: "partial", start: "09:30", end: "10:30", want: true},
		{name: "contained", start: "09:15", end: "09:45", want: true},
		{name: "covering", start: "08:00", end: "11:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tk.OverlapsRange(tt.start, tt.end); got != tt.want {
				t.Errorf("OverlapsRange(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Task{ID: "x", Name: "ok", StartTime: "09:00", EndTime: "10:00", Duration: 60, Color: ColorBlue}

	t.Run("valid", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("duration mismatch", func(t *testing.T) {
		tk := valid
		tk.Duration = 45
		if err := tk.Validate(); err == nil {
			t.Error("Validate() accepted mismatched duration")
		}
	})

	t.Run("zero duration", func(t *testing.T) {
		tk := valid
		tk.EndTime = "09:00"
		tk.Duration = 0
		if err := tk.Validate(); !errors.Is(err, ErrEndBeforeStart) {
			t.Errorf("Validate() = %v, want ErrEndBeforeStart", err)
		}
	})
}

func TestClone(t *testing.T) {
	orig, err := New("deep work", "focus", "09:00", "11:00", ColorPurple)
	if err != nil {
		t.Fatal(err)
	}
	c := orig.Clone()
	c.Name = "changed"
	if orig.Name != "deep work" {
		t.Error("Clone() shares state with the original")
	}
}
