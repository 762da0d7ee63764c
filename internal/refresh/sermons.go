package refresh

import (
	"context"

	"zion-impact-fm/internal/page"
)

const noSermons = "No sermons available at this time."

// Sermons renders the latest sermons into the sermon grid.
type Sermons struct {
	source Source
	grid   *page.Region
	limit  int
	seq    sequence
}

func NewSermons(source Source, grid *page.Region, limit int) *Sermons {
	return &Sermons{source: source, grid: grid, limit: limit}
}

func (s *Sermons) Name() string {
	return "sermons"
}

func (s *Sermons) Refresh(ctx context.Context) {
	n := s.seq.begin()
	sermons, ok := s.source.Sermons(ctx, s.limit)

	outcome := outcomeOK
	html := renderAll(sermonCard, sermons)
	switch {
	case !ok:
		outcome = outcomeFailed
		html = placeholder(noSermons)
	case len(sermons) == 0:
		outcome = outcomeEmpty
		html = placeholder(noSermons)
	}

	if !s.seq.apply(n, func() { s.grid.SetHTML(html) }) {
		outcome = outcomeStale
	}
	record(s.Name(), outcome)
}
