package refresh

import (
	"context"
	"sync"

	"zion-impact-fm/internal/model"
	"zion-impact-fm/internal/page"
)

// TestimonyView holds the testimony carousel regions.
type TestimonyView struct {
	Text   *page.Region
	Author *page.Region
}

// Testimonies keeps the approved testimonies and shows one at a time. A
// successful non-empty fetch replaces the list and shows the first entry;
// anything else leaves the carousel as it was.
type Testimonies struct {
	source Source
	view   TestimonyView
	limit  int
	seq    sequence

	mu    sync.Mutex
	items []model.Testimony
	index int
}

func NewTestimonies(source Source, view TestimonyView, limit int) *Testimonies {
	return &Testimonies{source: source, view: view, limit: limit}
}

func (t *Testimonies) Name() string {
	return "testimonies"
}

func (t *Testimonies) Refresh(ctx context.Context) {
	n := t.seq.begin()
	items, ok := t.source.Testimonies(ctx, t.limit)
	switch {
	case !ok:
		record(t.Name(), outcomeFailed)
		return
	case len(items) == 0:
		record(t.Name(), outcomeEmpty)
		return
	}

	applied := t.seq.apply(n, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.items = items
		t.index = 0
		t.displayLocked()
	})
	if !applied {
		record(t.Name(), outcomeStale)
		return
	}
	record(t.Name(), outcomeOK)
}

// Next shows the following testimony, wrapping around.
func (t *Testimonies) Next() {
	t.step(1)
}

// Prev shows the preceding testimony, wrapping around.
func (t *Testimonies) Prev() {
	t.step(-1)
}

func (t *Testimonies) step(delta int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.items) == 0 {
		return
	}
	t.index = (t.index + delta + len(t.items)) % len(t.items)
	t.displayLocked()
}

// Current returns the testimony on display.
func (t *Testimonies) Current() (model.Testimony, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.items) == 0 {
		return model.Testimony{}, false
	}
	return t.items[t.index], true
}

// Index returns the position of the testimony on display.
func (t *Testimonies) Index() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index
}

// Len returns how many testimonies are loaded.
func (t *Testimonies) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

func (t *Testimonies) displayLocked() {
	current := t.items[t.index]
	t.view.Text.SetText(`"` + current.Content + `"`)
	t.view.Author.SetText("- " + current.Name)
}
