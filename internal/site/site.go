// Package site assembles the page controllers. Every region is resolved
// once here and handed to the controller that owns it.
package site

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"zion-impact-fm/internal/config"
	"zion-impact-fm/internal/forms"
	"zion-impact-fm/internal/nav"
	"zion-impact-fm/internal/page"
	"zion-impact-fm/internal/player"
	"zion-impact-fm/internal/refresh"
)

// API is the station API as the site uses it.
type API interface {
	refresh.Source
	forms.Poster
}

// Site is the running page: its document and every controller bound to it.
type Site struct {
	Doc      *page.Document
	Nav      *nav.Controller
	Player   *player.Controller
	Registry *refresh.Registry

	Program     *refresh.Program
	Schedule    *refresh.Schedule
	Sermons     *refresh.Sermons
	Testimonies *refresh.Testimonies
	News        *refresh.News
	Scripture   *refresh.Scripture

	forms map[string]*forms.Form
	cfg   *config.Config
}

// formRegions are the form and message element of each form kind.
var formRegions = map[string][2]string{
	forms.Testimony: {"#testimonyForm", "#testimonyMessage"},
	forms.Booking:   {"#bookingForm", "#bookingMessageStatus"},
	forms.Contact:   {"#contactForm", "#contactMessageStatus"},
	forms.Partner:   {"#partnerForm", "#partnerMessageStatus"},
}

// resolver looks up regions and collects every miss.
type resolver struct {
	doc  *page.Document
	errs []error
}

func (r *resolver) one(selector string) *page.Region {
	region, err := r.doc.Region(selector)
	if err != nil {
		r.errs = append(r.errs, err)
	}
	return region
}

func (r *resolver) all(selector string, want int) []*page.Region {
	regions := r.doc.Regions(selector)
	if len(regions) < want {
		r.errs = append(r.errs, fmt.Errorf("%q matches %d elements, want %d", selector, len(regions), want))
	}
	return regions
}

// New builds the site on doc. A *player.StreamHandle without an error
// callback gets the player controller's.
func New(cfg *config.Config, doc *page.Document, client API, handle player.Handle) (*Site, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &resolver{doc: doc}

	navView := nav.View{
		Toggle:    r.one("#navToggle"),
		Menu:      r.one("#navMenu"),
		Dropdowns: r.all(".dropdown-toggle", 0),
		Filters:   r.all(".filter-btn", 0),
	}
	playerView := player.View{
		PlayPause:   r.one("#playPauseBtn"),
		Progress:    r.one("#progressBar"),
		CurrentTime: r.one("#currentTime"),
		Duration:    r.one("#duration"),
	}
	programView := refresh.ProgramView{
		SongTitle:   r.one("#songTitle"),
		SongArtist:  r.one("#songArtist"),
		CurrentShow: r.one("#currentShow"),
		Name:        r.one("#programName"),
		Host:        r.one("#programHost"),
		Time:        r.one("#programTime"),
		Description: r.one("#programDesc"),
	}
	scheduleView := refresh.ScheduleView{
		Content: r.one("#scheduleContent"),
		Tabs:    r.all(".schedule-tab", 7),
	}
	testimonyView := refresh.TestimonyView{
		Text:   r.one("#testimonyText"),
		Author: r.one("#testimonyAuthor"),
	}
	scriptureView := refresh.ScriptureView{
		Text:      r.one("#scriptureText"),
		Reference: r.one("#scriptureRef"),
	}
	sermonGrid := r.one("#sermonGrid")
	newsGrid := r.one("#newsGrid")

	formViews := make(map[string]forms.View, len(formRegions))
	for kind, ids := range formRegions {
		v := forms.View{Form: r.one(ids[0]), Message: r.one(ids[1])}
		if kind == forms.Testimony {
			v.AudioOptIn = r.one("#testifyAudio")
			v.AudioSection = r.one("#audioUploadSection")
		}
		formViews[kind] = v
	}

	if len(r.errs) > 0 {
		return nil, fmt.Errorf("resolving page regions: %w", errors.Join(r.errs...))
	}

	s := &Site{
		Doc:      doc,
		Nav:      nav.New(navView, cfg.MobileBreakpoint),
		Player:   player.New(handle, playerView),
		Registry: refresh.NewRegistry(),
		forms:    make(map[string]*forms.Form, len(formViews)),
		cfg:      cfg,
	}
	if sh, ok := handle.(*player.StreamHandle); ok && sh.OnError == nil {
		sh.OnError = s.Player.HandleError
	}

	s.Program = refresh.NewProgram(client, programView)
	s.Schedule = refresh.NewSchedule(client, scheduleView, int(time.Now().Weekday()))
	s.Sermons = refresh.NewSermons(client, sermonGrid, cfg.SermonLimit)
	s.Testimonies = refresh.NewTestimonies(client, testimonyView, cfg.TestimonyLimit)
	s.News = refresh.NewNews(client, newsGrid, cfg.NewsLimit)
	s.Scripture = refresh.NewScripture(scriptureView, time.Now)

	s.Registry.Register(s.Program)
	s.Registry.Register(s.Schedule)
	s.Registry.Register(s.Sermons)
	s.Registry.Register(s.Testimonies)
	s.Registry.Register(s.News)
	s.Registry.Register(s.Scripture)

	for _, spec := range forms.Specs() {
		f, err := forms.New(spec, client, formViews[spec.Kind], cfg.MessageTTL)
		if err != nil {
			return nil, err
		}
		s.forms[spec.Kind] = f
	}
	return s, nil
}

// Form returns the controller of the given form kind.
func (s *Site) Form(kind string) (*forms.Form, bool) {
	f, ok := s.forms[kind]
	return f, ok
}

// Run polls the API and updates the player readout until ctx is done.
func (s *Site) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		refresh.NewPoller(s.Registry, s.cfg.PollInterval).Run(ctx)
	}()
	go func() {
		defer wg.Done()
		s.Player.Watch(ctx, s.cfg.ProgressInterval)
	}()
	wg.Wait()
}
