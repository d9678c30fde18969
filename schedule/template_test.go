package schedule

import (
	"errors"
	"testing"
	"time"
)

func hm(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

func TestSlotsForDayWeekdaysWithHourlySlots(t *testing.T) {
	for _, weekday := range []int{0, 2, 4} {
		slots, err := SlotsForDay(DefaultTemplate, weekday, 60)
		if err != nil {
			t.Fatalf("weekday %d: unexpected error: %v", weekday, err)
		}
		if len(slots) != 12 {
			t.Fatalf("weekday %d: expected 12 slots, got %d", weekday, len(slots))
		}
		if slots[0].Start != hm(8, 0) {
			t.Fatalf("weekday %d: first slot starts at %s", weekday, slots[0])
		}
		for i, s := range slots {
			if s.End > hm(20, 0) {
				t.Fatalf("weekday %d: slot %s exceeds 20:00", weekday, s)
			}
			if s.End-s.Start != time.Hour {
				t.Fatalf("weekday %d: slot %s is not one hour", weekday, s)
			}
			if i > 0 && slots[i-1].End != s.Start {
				t.Fatalf("weekday %d: slots %s and %s are not contiguous", weekday, slots[i-1], s)
			}
		}
	}
}

func TestSlotsForDaySaturdayBlocks(t *testing.T) {
	slots, err := SlotsForDay(DefaultTemplate, 5, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00-10:00", "10:00-11:00", "16:00-17:00", "17:00-18:00", "18:00-19:00"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, s := range slots {
		if s.String() != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], s)
		}
	}
}

func TestSlotsForDaySundayIsClosed(t *testing.T) {
	for _, d := range []int{15, 45, 60, 90, 240} {
		slots, err := SlotsForDay(DefaultTemplate, 6, d)
		if err != nil {
			t.Fatalf("duration %d: unexpected error: %v", d, err)
		}
		if len(slots) != 0 {
			t.Fatalf("duration %d: expected no slots on Sunday, got %d", d, len(slots))
		}
	}
}

func TestSlotsForDayDiscardsOverflowingSlot(t *testing.T) {
	tests := []struct {
		name     string
		weekday  int
		duration int
		want     int
		lastEnd  time.Duration
	}{
		{"tuesday 90 minutes", 1, 90, 9, hm(19, 30)},
		{"monday 90 minutes", 0, 90, 8, hm(20, 0)},
		{"saturday 50 minutes", 5, 50, 5, hm(18, 30)},
		{"monday longer than block", 0, 13 * 60, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := SlotsForDay(DefaultTemplate, tt.weekday, tt.duration)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(slots) != tt.want {
				t.Fatalf("expected %d slots, got %d", tt.want, len(slots))
			}
			if tt.want > 0 && slots[len(slots)-1].End != tt.lastEnd {
				t.Fatalf("expected last slot to end at %s, got %s", clock(tt.lastEnd), slots[len(slots)-1])
			}
		})
	}
}

func TestSlotsForDayRejectsOutOfRangeDuration(t *testing.T) {
	for _, d := range []int{0, -30, MaxDurationMin + 1, 153722868} {
		if _, err := SlotsForDay(DefaultTemplate, 0, d); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("duration %d: expected ErrInvalidConfiguration, got %v", d, err)
		}
	}
}

func TestTemplateValidateRejectsMalformedWindows(t *testing.T) {
	bad := []Block{{StartHour: 10, EndHour: 10}, {StartHour: 20, EndHour: 8}, {StartHour: -1, EndHour: 5}, {StartHour: 22, EndHour: 25}}
	for _, b := range bad {
		var tpl Template
		tpl[3] = []Block{b}
		err := tpl.Validate()
		if !errors.Is(err, ErrInvalidWindow) || !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("block %+v: expected ErrInvalidWindow, got %v", b, err)
		}
	}
	if err := DefaultTemplate.Validate(); err != nil {
		t.Fatalf("default template should be valid: %v", err)
	}
}

func TestWeekdayIndexStartsOnMonday(t *testing.T) {
	monday := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := WeekdayIndex(monday.AddDate(0, 0, i)); got != i {
			t.Fatalf("day +%d: expected index %d, got %d", i, i, got)
		}
	}
}
