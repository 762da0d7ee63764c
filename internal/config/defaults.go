package config

import "time"

const (
	DefaultAPIBase   = "http://localhost:8000/api"
	DefaultStreamURL = "http://your-stream-url:8000/stream"
)

// DefaultConfig returns a Config with the values the site ships with.
func DefaultConfig() *Config {
	return &Config{
		APIBase:          DefaultAPIBase,
		StreamURL:        DefaultStreamURL,
		ListenAddr:       ":8080",
		PollInterval:     10 * time.Second,
		MessageTTL:       5 * time.Second,
		ProgressInterval: 250 * time.Millisecond,
		RequestTimeout:   15 * time.Second,
		MobileBreakpoint: 768,
		SermonLimit:      3,
		TestimonyLimit:   10,
		NewsLimit:        6,
		StoreDir:         "disk",
		SnapshotURL:      "http://localhost:8080/",
	}
}
