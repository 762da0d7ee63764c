package refresh

import (
	"context"

	"zion-impact-fm/internal/page"
)

const noNews = "No news available at this time."

// News renders the latest posts into the news grid.
type News struct {
	source Source
	grid   *page.Region
	limit  int
	seq    sequence
}

func NewNews(source Source, grid *page.Region, limit int) *News {
	return &News{source: source, grid: grid, limit: limit}
}

func (n *News) Name() string {
	return "news"
}

func (n *News) Refresh(ctx context.Context) {
	id := n.seq.begin()
	items, ok := n.source.News(ctx, n.limit)

	outcome := outcomeOK
	html := renderAll(newsCard, items)
	switch {
	case !ok:
		outcome = outcomeFailed
		html = placeholder(noNews)
	case len(items) == 0:
		outcome = outcomeEmpty
		html = placeholder(noNews)
	}

	if !n.seq.apply(id, func() { n.grid.SetHTML(html) }) {
		outcome = outcomeStale
	}
	record(n.Name(), outcome)
}
