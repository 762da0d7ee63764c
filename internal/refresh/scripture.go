package refresh

import (
	"context"
	"time"

	"zion-impact-fm/internal/model"
	"zion-impact-fm/internal/page"
)

const activeClass = "active"

// ScriptureView holds the daily verse regions.
type ScriptureView struct {
	Text      *page.Region
	Reference *page.Region
}

// Scripture rotates the daily verse by day of month. It never touches the
// network.
type Scripture struct {
	view ScriptureView
	now  func() time.Time
}

// NewScripture creates the scripture target. A nil now uses time.Now.
func NewScripture(view ScriptureView, now func() time.Time) *Scripture {
	if now == nil {
		now = time.Now
	}
	return &Scripture{view: view, now: now}
}

func (s *Scripture) Name() string {
	return "scripture"
}

func (s *Scripture) Refresh(context.Context) {
	verse := model.ScriptureForDay(s.now().Day())
	s.view.Text.SetText(verse.Text)
	s.view.Reference.SetText(verse.Reference)
	record(s.Name(), outcomeOK)
}
