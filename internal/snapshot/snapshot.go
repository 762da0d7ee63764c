// Package snapshot captures the served site in headless Chrome, as a
// visitor's browser would render it, and archives the result.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"zion-impact-fm/internal/store"
)

// Options tune a capture.
type Options struct {
	// ChromePath overrides the Chrome binary.
	ChromePath string
	// WaitFor is the selector that must be visible before capturing.
	WaitFor string
	// Settle is extra time for scripts after WaitFor matched.
	Settle time.Duration
	// Quality is the screenshot quality; 100 gives PNG, lower values JPEG.
	Quality int
}

// Shot is one rendered capture of a page.
type Shot struct {
	URL        string
	HTML       string
	Screenshot []byte
	TakenAt    time.Time
}

// Capture loads url in headless Chrome and returns its rendered markup and
// a full-page screenshot.
func Capture(ctx context.Context, url string, o Options) (*Shot, error) {
	if o.WaitFor == "" {
		o.WaitFor = "body"
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = 100
	}

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if o.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(o.ChromePath))
	}
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.WindowSize(1280, 800),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	shot := &Shot{URL: url}
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(o.WaitFor, chromedp.ByQuery),
		chromedp.Sleep(o.Settle),
		chromedp.OuterHTML("html", &shot.HTML, chromedp.ByQuery),
		chromedp.FullScreenshot(&shot.Screenshot, o.Quality),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing %s: %w", url, err)
	}
	shot.TakenAt = time.Now().UTC()
	return shot, nil
}

// Manifest describes an archived shot.
type Manifest struct {
	URL        string    `json:"url"`
	TakenAt    time.Time `json:"taken_at"`
	HTML       string    `json:"html"`
	Screenshot string    `json:"screenshot"`
	Bytes      int       `json:"bytes"`
}

// Key names a shot by its capture time.
func Key(t time.Time) string {
	return t.UTC().Format("2006/01/02/150405")
}

// Save writes the shot's markup, screenshot and manifest under key.
func Save(ctx context.Context, st store.Store, key string, shot *Shot) (*Manifest, error) {
	ext := ".png"
	if len(shot.Screenshot) > 0 && shot.Screenshot[0] == 0xFF {
		ext = ".jpg"
	}

	if err := st.Put(ctx, key, ".html", []byte(shot.HTML)); err != nil {
		return nil, fmt.Errorf("storing %s.html: %w", key, err)
	}
	if err := st.Put(ctx, key, ext, shot.Screenshot); err != nil {
		return nil, fmt.Errorf("storing %s%s: %w", key, ext, err)
	}

	m := &Manifest{
		URL:        shot.URL,
		TakenAt:    shot.TakenAt,
		HTML:       key + ".html",
		Screenshot: key + ext,
		Bytes:      len(shot.HTML) + len(shot.Screenshot),
	}
	if err := st.PutJSON(ctx, key, m); err != nil {
		return nil, fmt.Errorf("storing %s.json: %w", key, err)
	}
	return m, nil
}
