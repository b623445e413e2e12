package booking

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidGridBounds      = errors.New("invalid grid bounds")
	ErrEmptySelection         = errors.New("slot selection cannot be empty")
	ErrOffGridSlot            = errors.New("selected slot is not on the grid")
	ErrNonContiguousSelection = errors.New("selected slots must form one unbroken block")
)

// Grid is the fixed per-day booking grid: one-hour slots from openHour to
// closeHour. A slot is identified by its start time, so the last slot of a
// 06-24 grid starts at 23:00.
type Grid struct {
	openHour  int
	closeHour int
}

func NewGrid(openHour, closeHour int) (Grid, error) {
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return Grid{}, ErrInvalidGridBounds
	}
	return Grid{openHour: openHour, closeHour: closeHour}, nil
}

func (g Grid) OpenHour() int  { return g.openHour }
func (g Grid) CloseHour() int { return g.closeHour }

func (g Grid) SlotCount() int {
	return g.closeHour - g.openHour
}

// DateOf normalizes a time to the midnight (UTC) of its calendar day.
func DateOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SlotStarts returns the ascending slot-start times of the grid on the given
// date. Pure function of the grid and the date.
func (g Grid) SlotStarts(date time.Time) []time.Time {
	day := DateOf(date)
	starts := make([]time.Time, 0, g.SlotCount())
	for h := g.openHour; h < g.closeHour; h++ {
		starts = append(starts, day.Add(time.Duration(h)*time.Hour))
	}
	return starts
}

// Index maps a slot-start time to its position on that day's grid.
func (g Grid) Index(t time.Time) (int, bool) {
	if !isHourAligned(t) {
		return 0, false
	}
	day := DateOf(t)
	hour := int(t.Sub(day) / time.Hour)
	if hour < g.openHour || hour >= g.closeHour {
		return 0, false
	}
	return hour - g.openHour, true
}

func (g Grid) Contains(t time.Time) bool {
	_, ok := g.Index(t)
	return ok
}

// ContainsInterval reports whether the whole half-open interval lies on the
// grid of a single day.
func (g Grid) ContainsInterval(ts TimeSlot) bool {
	if !DateOf(ts.Start()).Equal(DateOf(ts.End().Add(-time.Hour))) {
		return false
	}
	for _, s := range ts.SlotStarts() {
		if !g.Contains(s) {
			return false
		}
	}
	return true
}

// IsContiguous reports whether the selected slot-start times form one
// unbroken ascending run on the grid. A single slot is trivially contiguous.
// An empty selection or a time off the grid is a validation error, never
// silently dropped.
func (g Grid) IsContiguous(selected []time.Time) (bool, error) {
	if len(selected) == 0 {
		return false, ErrEmptySelection
	}

	day := DateOf(selected[0])
	indices := make([]int, 0, len(selected))
	for _, t := range selected {
		idx, ok := g.Index(t)
		if !ok || !DateOf(t).Equal(day) {
			return false, ErrOffGridSlot
		}
		indices = append(indices, idx)
	}

	sort.Ints(indices)
	for i := 1; i < len(indices); i++ {
		if indices[i]-indices[i-1] != 1 {
			return false, nil
		}
	}
	return true, nil
}

// ToInterval converts a contiguous selection into its canonical half-open
// interval: [min(selected), max(selected) + 1h).
func (g Grid) ToInterval(selected []time.Time) (TimeSlot, error) {
	contiguous, err := g.IsContiguous(selected)
	if err != nil {
		return TimeSlot{}, err
	}
	if !contiguous {
		return TimeSlot{}, ErrNonContiguousSelection
	}

	min, max := selected[0], selected[0]
	for _, t := range selected[1:] {
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return NewTimeSlot(min, max.Add(time.Hour))
}
