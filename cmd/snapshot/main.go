// Captures the running site in headless Chrome and archives the rendered
// markup, a full-page screenshot and a JSON manifest.
//
// Usage: CHROME_PATH=/path/to/chromium go run ./cmd/snapshot [url]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"zion-impact-fm/internal/config"
	"zion-impact-fm/internal/snapshot"
	"zion-impact-fm/internal/store"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load(os.Getenv("ZION_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	url := cfg.SnapshotURL
	if len(os.Args) > 1 {
		url = os.Args[1]
	}
	chromePath := cfg.ChromePath
	if p := os.Getenv("CHROME_PATH"); p != "" {
		chromePath = p
	}

	st, err := store.Open(ctx, cfg.GCSBucket, cfg.StoreDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	shot, err := snapshot.Capture(ctx, url, snapshot.Options{
		ChromePath: chromePath,
		WaitFor:    "#scheduleContent",
		Settle:     time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := snapshot.Save(ctx, st, snapshot.Key(shot.TakenAt), shot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s\n%s\n", m.HTML, m.Screenshot)
}
