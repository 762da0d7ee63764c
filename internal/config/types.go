package config

import "time"

// Config is the site runtime configuration, corresponding to zion.yml.
type Config struct {
	APIBase          string        `yaml:"api_base" koanf:"api_base"`
	StreamURL        string        `yaml:"stream_url" koanf:"stream_url"`
	ListenAddr       string        `yaml:"listen_addr" koanf:"listen_addr"`
	PollInterval     time.Duration `yaml:"poll_interval" koanf:"poll_interval"`
	MessageTTL       time.Duration `yaml:"message_ttl" koanf:"message_ttl"`
	ProgressInterval time.Duration `yaml:"progress_interval" koanf:"progress_interval"`
	RequestTimeout   time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	MobileBreakpoint int           `yaml:"mobile_breakpoint" koanf:"mobile_breakpoint"`
	SermonLimit      int           `yaml:"sermon_limit" koanf:"sermon_limit"`
	TestimonyLimit   int           `yaml:"testimony_limit" koanf:"testimony_limit"`
	NewsLimit        int           `yaml:"news_limit" koanf:"news_limit"`
	StoreDir         string        `yaml:"store_dir" koanf:"store_dir"`
	GCSBucket        string        `yaml:"gcs_bucket" koanf:"gcs_bucket"`
	ChromePath       string        `yaml:"chrome_path" koanf:"chrome_path"`
	SnapshotURL      string        `yaml:"snapshot_url" koanf:"snapshot_url"`
}
