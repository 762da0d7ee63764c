// Package player controls the live-audio player: play/pause state, the
// position readout and the seek and volume sliders.
package player

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"zion-impact-fm/internal/page"
)

// DefaultVolume is applied to the handle when the controller is created.
const DefaultVolume = 0.7

// DefaultProgressInterval is how often Watch refreshes the position readout.
const DefaultProgressInterval = 250 * time.Millisecond

const (
	pauseIcon = `<svg viewBox="0 0 24 24" fill="currentColor"><path d="M6 4h4v16H6V4zm8 0h4v16h-4V4z"/></svg>`
	playIcon  = `<svg viewBox="0 0 24 24" fill="currentColor"><path d="M8 5v14l11-7z"/></svg>`
)

// Handle is an audio output the controller drives.
type Handle interface {
	// Play starts playback and returns once it has actually started.
	Play(ctx context.Context) error
	Pause()
	// CurrentTime is the playback position in seconds.
	CurrentTime() float64
	// Duration is the media length in seconds, NaN when unknown.
	Duration() float64
	Seek(seconds float64)
	SetVolume(v float64)
	Volume() float64
}

// View holds the player regions the controller writes to.
type View struct {
	PlayPause   *page.Region
	Progress    *page.Region
	CurrentTime *page.Region
	Duration    *page.Region
}

// Controller owns the playing flag. TogglePlay is its only mutator.
type Controller struct {
	handle Handle
	view   View

	mu      sync.Mutex
	playing bool
}

// New creates a player controller, sets the default volume and renders the
// play icon.
func New(handle Handle, view View) *Controller {
	c := &Controller{handle: handle, view: view}
	handle.SetVolume(DefaultVolume)
	c.renderButton(false)
	return c
}

// IsPlaying reports the play/pause flag.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// TogglePlay pauses when playing and starts playback otherwise. The flag only
// becomes true once the handle confirms playback started; a failed start is
// logged and returned and leaves the flag false.
func (c *Controller) TogglePlay(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.playing {
		c.handle.Pause()
		c.playing = false
	} else if err = c.handle.Play(ctx); err != nil {
		log.Printf("player: play failed: %v", err)
		err = fmt.Errorf("starting playback: %w", err)
	} else {
		c.playing = true
	}
	c.renderButton(c.playing)
	return err
}

func (c *Controller) renderButton(playing bool) {
	if playing {
		c.view.PlayPause.SetHTML(pauseIcon)
	} else {
		c.view.PlayPause.SetHTML(playIcon)
	}
}

// UpdateProgress mirrors the handle's position and duration into the view.
func (c *Controller) UpdateProgress() {
	current := c.handle.CurrentTime()
	duration := c.handle.Duration()

	c.view.Progress.SetAttr("value", strconv.FormatFloat(Progress(current, duration), 'f', -1, 64))
	c.view.CurrentTime.SetText(FormatTime(current))
	c.view.Duration.SetText(FormatTime(duration))
}

// Seek moves playback to value percent (0-100) of the duration.
func (c *Controller) Seek(value float64) {
	c.handle.Seek(value / 100 * c.handle.Duration())
}

// SetVolume sets the volume from a 0-100 slider value.
func (c *Controller) SetVolume(value float64) {
	c.handle.SetVolume(value / 100)
}

// HandleError records a playback error. State is left alone and nothing is
// retried.
func (c *Controller) HandleError(err error) {
	log.Printf("player: stream connection error: %v", err)
}

// Watch emits position updates every interval while playing, until ctx ends.
// A non-positive interval selects DefaultProgressInterval.
func (c *Controller) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.IsPlaying() {
				c.UpdateProgress()
			}
		}
	}
}
