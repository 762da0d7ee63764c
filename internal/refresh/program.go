package refresh

import (
	"context"
	"sync"

	"zion-impact-fm/internal/model"
	"zion-impact-fm/internal/page"
)

// ProgramView holds the regions showing the show on air.
type ProgramView struct {
	SongTitle   *page.Region
	SongArtist  *page.Region
	CurrentShow *page.Region
	Name        *page.Region
	Host        *page.Region
	Time        *page.Region
	Description *page.Region
}

// Program refreshes the "now playing" and current program regions. When the
// API has nothing, the previous content stays.
type Program struct {
	source Source
	view   ProgramView
	seq    sequence

	mu      sync.Mutex
	current *model.ProgramInfo
}

func NewProgram(source Source, view ProgramView) *Program {
	return &Program{source: source, view: view}
}

func (p *Program) Name() string {
	return "program"
}

func (p *Program) Refresh(ctx context.Context) {
	n := p.seq.begin()
	info, ok := p.source.CurrentProgram(ctx)
	if !ok {
		record(p.Name(), outcomeFailed)
		return
	}
	if !p.seq.apply(n, func() { p.render(info) }) {
		record(p.Name(), outcomeStale)
		return
	}
	record(p.Name(), outcomeOK)
}

// Current returns the last rendered program, or nil before the first success.
func (p *Program) Current() *model.ProgramInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Program) render(info *model.ProgramInfo) {
	p.view.SongTitle.SetText(or(info.SongName, "Zion Impact FM"))
	p.view.SongArtist.SetText(or(info.Presenter, "Live Broadcasting"))
	p.view.CurrentShow.SetText(or(info.ShowName, "Live Show"))
	p.view.Name.SetText(or(info.ShowName, "Loading..."))
	p.view.Host.SetText("Host: " + or(info.Presenter, "TBA"))
	p.view.Time.SetText("Time: " + or(info.StartTime, "00:00") + " - " + or(info.EndTime, "02:00"))
	p.view.Description.SetText(or(info.Description, "Currently broadcasting on Zion Impact FM."))

	p.mu.Lock()
	p.current = info
	p.mu.Unlock()
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
