package refresh

import (
	"context"
	"fmt"
	"sync"

	"zion-impact-fm/internal/page"
)

const noSchedule = "No programs scheduled for this day."

// ScheduleView holds the day tabs (Sunday first) and the schedule list.
type ScheduleView struct {
	Content *page.Region
	Tabs    []*page.Region
}

// Schedule shows the programme schedule of the selected weekday.
type Schedule struct {
	source Source
	view   ScheduleView
	seq    sequence

	mu  sync.Mutex
	day int
}

// NewSchedule creates the schedule target with day (0 = Sunday) selected.
func NewSchedule(source Source, view ScheduleView, day int) *Schedule {
	s := &Schedule{source: source, view: view, day: day}
	s.markTab(day)
	return s
}

func (s *Schedule) Name() string {
	return "schedule"
}

// Day returns the selected weekday.
func (s *Schedule) Day() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

// SelectDay marks the day's tab, switches to it and loads its schedule.
// Responses still in flight for the previous day are discarded.
func (s *Schedule) SelectDay(ctx context.Context, day int) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("day %d out of range 0-6", day)
	}
	s.mu.Lock()
	s.day = day
	s.mu.Unlock()

	s.markTab(day)
	s.Refresh(ctx)
	return nil
}

func (s *Schedule) markTab(day int) {
	for _, tab := range s.view.Tabs {
		tab.RemoveClass(activeClass)
	}
	if day >= 0 && day < len(s.view.Tabs) {
		s.view.Tabs[day].AddClass(activeClass)
	}
}

func (s *Schedule) Refresh(ctx context.Context) {
	n := s.seq.begin()
	items, ok := s.source.Schedule(ctx, s.Day())

	outcome := outcomeOK
	html := renderAll(scheduleRow, items)
	switch {
	case !ok:
		outcome = outcomeFailed
		html = placeholder(noSchedule)
	case len(items) == 0:
		outcome = outcomeEmpty
		html = placeholder(noSchedule)
	}

	if !s.seq.apply(n, func() { s.view.Content.SetHTML(html) }) {
		outcome = outcomeStale
	}
	record(s.Name(), outcome)
}
