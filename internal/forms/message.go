package forms

import (
	"sync"
	"time"

	"zion-impact-fm/internal/page"
)

// DefaultMessageTTL is how long a form message stays up.
const DefaultMessageTTL = 5 * time.Second

const messageClass = "form-message"

// Message is a form's transient status line. Each Show replaces the text
// and restarts the dismissal timer, so a newer message is never cleared
// by an older one's timer.
type Message struct {
	region  *page.Region
	ttl     time.Duration
	onClear func()

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewMessage creates a message bound to region. onClear, if set, runs after
// the message is dismissed.
func NewMessage(region *page.Region, ttl time.Duration, onClear func()) *Message {
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	return &Message{region: region, ttl: ttl, onClear: onClear}
}

// Show displays text styled as kind ("success" or "error").
func (m *Message) Show(text, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	gen := m.gen
	if m.timer != nil {
		m.timer.Stop()
	}
	m.region.SetText(text)
	m.region.SetClass(messageClass, kind)
	m.timer = time.AfterFunc(m.ttl, func() { m.clear(gen) })
}

// Text returns the message on display.
func (m *Message) Text() string {
	return m.region.Text()
}

// Stop cancels a pending dismissal and leaves the message as it is.
func (m *Message) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Message) clear(gen uint64) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.region.SetText("")
	m.region.SetClass(messageClass)
	m.timer = nil
	m.mu.Unlock()

	if m.onClear != nil {
		m.onClear()
	}
}
