package schedule

import (
	"fmt"
	"time"
)

const PersonalTitle = "Personal"

const dateLayout = "2006-01-02"

const MaxWeeksAhead = 52

// Settings is the configuration snapshot a generation pass runs with.
type Settings struct {
	WeeksAhead          int
	PersonalCapacity    int
	PersonalDurationMin int
	PersonalCoach       string
	DefaultLocation     string
}

func (s Settings) Validate() error {
	if s.PersonalDurationMin <= 0 {
		return fmt.Errorf("%w: personal duration must be positive, got %d", ErrInvalidConfiguration, s.PersonalDurationMin)
	}
	if s.PersonalDurationMin > MaxDurationMin {
		return fmt.Errorf("%w: personal duration must be at most %d minutes, got %d", ErrInvalidConfiguration, MaxDurationMin, s.PersonalDurationMin)
	}
	if s.WeeksAhead < 0 || s.WeeksAhead > MaxWeeksAhead {
		return fmt.Errorf("%w: weeks ahead must be between 0 and %d, got %d", ErrInvalidConfiguration, MaxWeeksAhead, s.WeeksAhead)
	}
	if s.PersonalCapacity < 0 {
		return fmt.Errorf("%w: personal capacity must not be negative, got %d", ErrInvalidConfiguration, s.PersonalCapacity)
	}
	return nil
}

// Horizon returns every calendar day from today through today+weeks*7.
func Horizon(today time.Time, weeks int) []time.Time {
	y, m, d := today.Date()
	days := make([]time.Time, 0, weeks*7+1)
	for i := 0; i <= weeks*7; i++ {
		days = append(days, time.Date(y, m, d+i, 0, 0, 0, 0, today.Location()))
	}
	return days
}

// SlotKey identifies a generated session. Dates are compared as strings so
// values read back from the store in UTC still match local days.
type SlotKey struct {
	Date     string
	Start    time.Duration
	End      time.Duration
	Location string
}

func KeyFor(day time.Time, slot Slot, location string) SlotKey {
	return SlotKey{Date: day.Format(dateLayout), Start: slot.Start, End: slot.End, Location: location}
}

type ExistingSet map[SlotKey]struct{}

func (e ExistingSet) Add(k SlotKey) { e[k] = struct{}{} }

func (e ExistingSet) Has(k SlotKey) bool {
	_, ok := e[k]
	return ok
}

// DayPlan holds the slots still missing for one day.
type DayPlan struct {
	Date    time.Time
	Missing []Slot
	Skipped int
}

// Plan computes, for every day of the horizon, which template slots do not yet
// exist. It is a pure function of its inputs.
func Plan(today time.Time, s Settings, t Template, existing ExistingSet) ([]DayPlan, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	days := Horizon(today, s.WeeksAhead)
	plans := make([]DayPlan, 0, len(days))
	for _, day := range days {
		slots, err := SlotsForDay(t, WeekdayIndex(day), s.PersonalDurationMin)
		if err != nil {
			return nil, err
		}
		p := DayPlan{Date: day}
		for _, slot := range slots {
			if existing.Has(KeyFor(day, slot, s.DefaultLocation)) {
				p.Skipped++
				continue
			}
			p.Missing = append(p.Missing, slot)
		}
		plans = append(plans, p)
	}
	return plans, nil
}
