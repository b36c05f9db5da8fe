package config

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPOIs = "pois:\n  - {id: a, radius: 2}\n  - {id: b, theta: 90, radius: 2}\n"

const threePOIs = twoPOIs + "  - {id: c, theta: 180, radius: 2}\n"

func TestWatcherDeliversReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoPOIs), 0o644))

	w, err := NewWatcher(path, WithWatcherLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(threePOIs), 0o644))

	var cfg *TourConfig
	require.Eventually(t, func() bool {
		select {
		case cfg = <-w.Updates():
			return len(cfg.POIs) == 3
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "c", cfg.POIs[2].ID)
}

func TestWatcherReportsInvalidReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoPOIs), 0o644))

	w, err := NewWatcher(path, WithWatcherLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("pois: []\n"), 0o644))

	require.Eventually(t, func() bool {
		select {
		case err := <-w.Errors():
			return errors.Is(err, ErrInvalidConfig)
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoPOIs), 0o644))

	w, err := NewWatcher(path, WithWatcherLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(threePOIs), 0o644))
	time.Sleep(100 * time.Millisecond)

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected reload with %d pois", len(cfg.POIs))
	default:
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestNewWatcherRejectsUnknownExtension(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "tour.json"))
	assert.Error(t, err)
}
