package config

import (
	"context"
	"os"
	"time"

	"vanrent/internal/model"
)

// WatchOffices reloads offices.yaml on change and calls onUpdate with the
// latest catalogue. It performs an initial load before entering the watch
// loop.
func WatchOffices(ctx context.Context, path string, interval time.Duration, onUpdate func([]model.Office)) error {
	if path == "" {
		path = "configs/offices.yaml"
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	offices, err := LoadOffices(path)
	if err != nil {
		return err
	}
	if onUpdate != nil {
		onUpdate(offices)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	lastMod := info.ModTime()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				info, err := os.Stat(path)
				if err != nil {
					continue // transient errors
				}
				if !info.ModTime().After(lastMod) {
					continue
				}
				offices, err := LoadOffices(path)
				if err != nil {
					continue
				}
				lastMod = info.ModTime()
				if onUpdate != nil {
					onUpdate(offices)
				}
			}
		}
	}()

	return nil
}
