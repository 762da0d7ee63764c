// Package refresh keeps the page's content regions in step with the API.
// Each content area is a Target that fetches its data and re-renders its
// region; a Poller refreshes every target on its own timer.
package refresh

import (
	"context"
	"sync"

	"zion-impact-fm/internal/model"
)

// Source is the read side of the station API.
type Source interface {
	CurrentProgram(ctx context.Context) (*model.ProgramInfo, bool)
	Schedule(ctx context.Context, day int) ([]model.ScheduleItem, bool)
	Sermons(ctx context.Context, limit int) ([]model.Sermon, bool)
	Testimonies(ctx context.Context, limit int) ([]model.Testimony, bool)
	News(ctx context.Context, limit int) ([]model.NewsItem, bool)
}

// Target is one independently refreshed content area.
type Target interface {
	// Name identifies the target in logs and metrics.
	Name() string

	// Refresh fetches fresh data and re-renders the target's region.
	// Failures degrade to a placeholder or leave prior content; they are
	// never returned.
	Refresh(ctx context.Context)
}

// Registry holds the registered targets.
type Registry struct {
	targets []Target
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a target to the registry.
func (r *Registry) Register(t Target) {
	r.targets = append(r.targets, t)
}

// Targets returns the registered targets.
func (r *Registry) Targets() []Target {
	return r.targets
}

// Lookup returns the target with the given name.
func (r *Registry) Lookup(name string) (Target, bool) {
	for _, t := range r.targets {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// RefreshAll refreshes every target concurrently and waits for all of them.
func (r *Registry) RefreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, t := range r.targets {
		wg.Add(1)
		go func(t Target) {
			defer wg.Done()
			t.Refresh(ctx)
		}(t)
	}
	wg.Wait()
}
