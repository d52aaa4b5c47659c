package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// exercise runs the behavior every storing backend shares.
func exercise(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v2"), 0); err != nil {
		t.Fatalf("Set overwrite error: %v", err)
	}
	if data, _, _ := c.Get(ctx, "k"); string(data) != "v2" {
		t.Errorf("Get after overwrite = %q, want v2", data)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.(Clearer).Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	for _, k := range []string{"a", "b"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("Get(%s) after Clear should miss", k)
		}
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	exercise(t, c)
}

func TestFileCacheExpiryAndCorruption(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	if err := c.Set(ctx, "bad", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := os.WriteFile(c.path("bad"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v, want clean miss", hit, err)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "seatchart") {
		t.Errorf("DefaultDir() = %s", dir)
	}
}

func TestMemoryCache(t *testing.T) {
	exercise(t, NewMemoryCache())
}

func TestMemoryCacheExpiryAndCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, time.Minute)
	buf[0] = 'X'
	data, _, _ := c.Get(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("Get = %q, stored value should not alias the caller's slice", data)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, expired entry should be dropped", c.Len())
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	j1, err := HashJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("HashJSON error: %v", err)
	}
	if j1 != Hash([]byte(`{"a":1}`)) {
		t.Errorf("HashJSON should hash the JSON encoding")
	}
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Error("HashJSON(chan) should fail")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ChartKeyOpts{Layout: "side-by-side", PartOrder: []string{"S", "A"}}
	k1 := k.ChartKey("roster", base)
	if k1 != k.ChartKey("roster", base) {
		t.Error("ChartKey should be deterministic")
	}

	variants := []ChartKeyOpts{
		{Layout: "stacked", PartOrder: []string{"S", "A"}},
		{Layout: "side-by-side", PartOrder: []string{"A", "S"}},
		{Layout: "side-by-side", PartOrder: []string{"S", "A"}, Rows: 3},
		{Layout: "side-by-side", PartOrder: []string{"S", "A"}, RowSizes: []int{4, 5}},
		{Layout: "side-by-side", PartOrder: []string{"S", "A"}, Strict: true},
	}
	for _, v := range variants {
		if k.ChartKey("roster", v) == k1 {
			t.Errorf("ChartKey(%+v) should differ from the base key", v)
		}
	}
	if k.ChartKey("other", base) == k1 {
		t.Error("different rosters should produce different keys")
	}

	a1 := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "svg"})
	if a1 == k.ArtifactKey("doc", ArtifactKeyOpts{Format: "png"}) {
		t.Error("different formats should produce different keys")
	}
	if a1[:9] != "artifact:" || k1[:6] != "chart:" {
		t.Errorf("unexpected key prefixes: %s, %s", a1, k1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(inner, "v1:")
	opts := ChartKeyOpts{Layout: "stacked"}

	if got, want := k.ChartKey("h", opts), "v1:"+inner.ChartKey("h", opts); got != want {
		t.Errorf("ChartKey = %s, want %s", got, want)
	}
	art := ArtifactKeyOpts{Format: "svg"}
	if got, want := k.ArtifactKey("h", art), "v1:"+inner.ArtifactKey("h", art); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	k := NewScopedKeyer(nil, "p:")
	if got := k.ChartKey("h", ChartKeyOpts{}); got[:8] != "p:chart:" {
		t.Errorf("ChartKey = %s, want default keyer behind the prefix", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()
	permanent := errors.New("permanent")

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err %v, calls %d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return permanent })
	if err != permanent || calls != 1 {
		t.Errorf("permanent: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrNetwork) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err %v, calls %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestNewRedisCacheErrors(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	if _, err := NewRedisCache(context.Background(), RedisOptions{}); err == nil {
		t.Error("NewRedisCache without address should fail")
	}

	_, err := NewRedisCache(context.Background(), RedisOptions{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache(unreachable) error = %v, want ErrNetwork", err)
	}
}
