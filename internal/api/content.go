package api

import (
	"context"
	"fmt"

	"zion-impact-fm/internal/model"
)

// CurrentProgram returns the show on air.
func (c *Client) CurrentProgram(ctx context.Context) (*model.ProgramInfo, bool) {
	var p *model.ProgramInfo
	if !c.fetchJSON(ctx, "/programs/current", &p) || p == nil {
		return nil, false
	}
	return p, true
}

// Schedule returns the programme schedule for a weekday (0 = Sunday).
func (c *Client) Schedule(ctx context.Context, day int) ([]model.ScheduleItem, bool) {
	var items []model.ScheduleItem
	ok := c.fetchJSON(ctx, fmt.Sprintf("/schedule?day=%d", day), &items)
	return items, ok
}

// Sermons returns the latest sermons.
func (c *Client) Sermons(ctx context.Context, limit int) ([]model.Sermon, bool) {
	var sermons []model.Sermon
	ok := c.fetchJSON(ctx, fmt.Sprintf("/sermons?limit=%d", limit), &sermons)
	return sermons, ok
}

// Testimonies returns approved testimonies.
func (c *Client) Testimonies(ctx context.Context, limit int) ([]model.Testimony, bool) {
	var testimonies []model.Testimony
	ok := c.fetchJSON(ctx, fmt.Sprintf("/testimonies?approved=1&limit=%d", limit), &testimonies)
	return testimonies, ok
}

// News returns the latest news posts.
func (c *Client) News(ctx context.Context, limit int) ([]model.NewsItem, bool) {
	var news []model.NewsItem
	ok := c.fetchJSON(ctx, fmt.Sprintf("/news?limit=%d", limit), &news)
	return news, ok
}
