package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"
)

// StreamHandle plays a live HTTP audio stream (Icecast/SHOUTcast). Audio
// bytes are copied to Sink; position is the time spent listening.
type StreamHandle struct {
	url    string
	client *http.Client
	sink   io.Writer

	// OnError receives stream failures that happen after Play returned.
	OnError func(error)

	mu      sync.Mutex
	volume  float64
	cancel  context.CancelFunc
	started time.Time
	elapsed time.Duration
	now     func() time.Time
}

// NewStreamHandle creates a handle for the stream at url. A nil client uses
// http.DefaultClient and a nil sink discards the audio.
func NewStreamHandle(url string, client *http.Client, sink io.Writer) *StreamHandle {
	if client == nil {
		client = http.DefaultClient
	}
	if sink == nil {
		sink = io.Discard
	}
	return &StreamHandle{
		url:    url,
		client: client,
		sink:   sink,
		volume: 1,
		now:    time.Now,
	}
}

// Play connects to the stream and returns once the server answered with a
// success status. ctx only bounds the connection attempt.
func (h *StreamHandle) Play(ctx context.Context) error {
	h.mu.Lock()
	if h.cancel != nil {
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(ctx, cancel)

	req, err := http.NewRequestWithContext(streamCtx, "GET", h.url, nil)
	if err != nil {
		stop()
		cancel()
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Icy-MetaData", "0")

	resp, err := h.client.Do(req)
	stop()
	if err != nil {
		cancel()
		return fmt.Errorf("connecting to stream: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	h.mu.Lock()
	h.cancel = cancel
	h.started = h.now()
	h.mu.Unlock()

	go h.drain(streamCtx, resp.Body)
	return nil
}

func (h *StreamHandle) drain(ctx context.Context, body io.ReadCloser) {
	defer body.Close()

	_, err := io.Copy(h.sink, body)
	if ctx.Err() != nil {
		// Paused.
		return
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}

	h.mu.Lock()
	h.stopLocked()
	onError := h.OnError
	h.mu.Unlock()

	if onError != nil && !errors.Is(err, context.Canceled) {
		onError(fmt.Errorf("stream ended: %w", err))
	}
}

// Pause disconnects from the stream and keeps the listened time.
func (h *StreamHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
}

func (h *StreamHandle) stopLocked() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	h.cancel = nil
	h.elapsed += h.now().Sub(h.started)
}

// Playing reports whether the stream is connected.
func (h *StreamHandle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancel != nil
}

func (h *StreamHandle) CurrentTime() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	d := h.elapsed
	if h.cancel != nil {
		d += h.now().Sub(h.started)
	}
	return d.Seconds()
}

// Duration is always NaN: a live stream has no length.
func (h *StreamHandle) Duration() float64 {
	return math.NaN()
}

// Seek is a no-op on a live stream.
func (h *StreamHandle) Seek(float64) {}

// SetVolume stores the volume, clamped to 0..1 like an audio element.
func (h *StreamHandle) SetVolume(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.volume = math.Max(0, math.Min(1, v))
}

func (h *StreamHandle) Volume() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.volume
}
