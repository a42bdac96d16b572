package config

import (
	"context"
	"os"
	"testing"
	"time"

	"vanrent/internal/model"
)

const watchOfficesV1 = `
offices:
  - id: leeds
    name: Leeds Central
`

const watchOfficesV2 = `
offices:
  - id: leeds
    name: Leeds Central
  - id: york
    name: York
`

func TestWatchOffices(t *testing.T) {
	path := writeFile(t, "offices.yaml", watchOfficesV1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan []model.Office, 4)
	err := WatchOffices(ctx, path, 10*time.Millisecond, func(offices []model.Office) {
		updates <- offices
	})
	if err != nil {
		t.Fatalf("WatchOffices: %v", err)
	}

	// The initial load fires before the watch loop starts.
	first := waitUpdate(t, updates)
	if len(first) != 1 || first[0].ID != "leeds" {
		t.Fatalf("initial load: expected leeds only, got %v", first)
	}

	if err := os.WriteFile(path, []byte(watchOfficesV2), 0o644); err != nil {
		t.Fatalf("rewrite offices file: %v", err)
	}
	// Force the mtime forward; coarse filesystem timestamps could otherwise
	// hide a rewrite inside the same tick.
	future := time.Now().Add(time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("bump mtime: %v", err)
	}

	second := waitUpdate(t, updates)
	if len(second) != 2 || second[1].ID != "york" {
		t.Fatalf("reload: expected leeds and york, got %v", second)
	}
}

func TestWatchOfficesMissingFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := WatchOffices(ctx, "testdata/does-not-exist.yaml", time.Second, nil)
	if err == nil {
		t.Fatal("expected error for missing offices file")
	}
}

func waitUpdate(t *testing.T, updates chan []model.Office) []model.Office {
	t.Helper()
	select {
	case offices := <-updates:
		return offices
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for catalogue update")
		return nil
	}
}
