package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/seatchart/pkg/config"
	"github.com/matzehuels/seatchart/pkg/errors"
)

func TestCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir(config.CacheConfig{Backend: config.BackendFile})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, "seatchart"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirExplicit(t *testing.T) {
	dir, err := cacheDir(config.CacheConfig{Backend: config.BackendFile, Dir: "/tmp/charts"})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/charts" {
		t.Errorf("cacheDir() = %q, want /tmp/charts", dir)
	}
}

func TestCacheDirOtherBackend(t *testing.T) {
	_, err := cacheDir(config.CacheConfig{Backend: config.BackendRedis, RedisAddr: "localhost:6379"})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("cacheDir(redis) error = %v, want UNSUPPORTED", err)
	}
}
