// Package schedule expands the weekly Personal-training template into concrete
// slots. It performs no I/O; persistence lives in services.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidConfiguration = errors.New("invalid schedule configuration")
	ErrInvalidWindow        = fmt.Errorf("%w: malformed time window", ErrInvalidConfiguration)
)

// MaxDurationMin is one day. No slot can be longer than a block.
const MaxDurationMin = 24 * 60

// Block is an open window [StartHour, EndHour) in local time.
type Block struct {
	StartHour int
	EndHour   int
}

// Template lists the open blocks per weekday, Monday = 0.
type Template [7][]Block

var DefaultTemplate = Template{
	0: {{StartHour: 8, EndHour: 20}},
	1: {{StartHour: 6, EndHour: 20}},
	2: {{StartHour: 8, EndHour: 20}},
	3: {{StartHour: 6, EndHour: 20}},
	4: {{StartHour: 8, EndHour: 20}},
	5: {{StartHour: 9, EndHour: 11}, {StartHour: 16, EndHour: 19}},
	6: nil,
}

type Slot struct {
	Start time.Duration
	End   time.Duration
}

func (s Slot) String() string {
	return clock(s.Start) + "-" + clock(s.End)
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// WeekdayIndex maps Go's Sunday-first weekday to the Monday-first index.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func (t Template) Validate() error {
	for day, blocks := range t {
		for _, b := range blocks {
			if b.StartHour < 0 || b.EndHour > 24 || b.StartHour >= b.EndHour {
				return fmt.Errorf("%w: weekday %d block %02d-%02d", ErrInvalidWindow, day, b.StartHour, b.EndHour)
			}
		}
	}
	return nil
}

// SlotsForDay cuts every block of the given weekday into back-to-back slots of
// durationMin minutes. A trailing slot that would cross the block end is dropped.
func SlotsForDay(t Template, weekday, durationMin int) ([]Slot, error) {
	if durationMin <= 0 {
		return nil, fmt.Errorf("%w: personal duration must be positive, got %d", ErrInvalidConfiguration, durationMin)
	}
	if durationMin > MaxDurationMin {
		return nil, fmt.Errorf("%w: personal duration must be at most %d minutes, got %d", ErrInvalidConfiguration, MaxDurationMin, durationMin)
	}
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: weekday index %d out of range", ErrInvalidConfiguration, weekday)
	}

	step := time.Duration(durationMin) * time.Minute
	var slots []Slot
	for _, b := range t[weekday] {
		if b.StartHour < 0 || b.EndHour > 24 || b.StartHour >= b.EndHour {
			return nil, fmt.Errorf("%w: weekday %d block %02d-%02d", ErrInvalidWindow, weekday, b.StartHour, b.EndHour)
		}
		end := time.Duration(b.EndHour) * time.Hour
		for cur := time.Duration(b.StartHour) * time.Hour; cur+step <= end; cur += step {
			slots = append(slots, Slot{Start: cur, End: cur + step})
		}
	}
	return slots, nil
}
