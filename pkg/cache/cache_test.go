package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/turkshead/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "synthesis:abc", []byte(`{"knots":[]}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "synthesis:abc")
	if err != nil || !hit || string(data) != `{"knots":[]}` {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "synthesis:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "synthesis:abc"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "synthesis:abc"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "turkshead") {
		t.Errorf("DefaultDir = %q", dir)
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
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	s1 := k.SynthesisKey("3@1,3@2", SynthesisKeyOpts{})
	s2 := k.SynthesisKey("3@1,3@2", SynthesisKeyOpts{SingleStrand: true})
	s3 := k.SynthesisKey("3@1,3@3", SynthesisKeyOpts{})
	if s1 == s2 || s1 == s3 {
		t.Error("different synthesis parameters should produce different keys")
	}
	if s1 != k.SynthesisKey("3@1,3@2", SynthesisKeyOpts{}) {
		t.Error("SynthesisKey should be deterministic")
	}
	if !strings.HasPrefix(s1, "synthesis:") {
		t.Errorf("SynthesisKey = %q", s1)
	}

	a1 := k.ArtifactKey("0,0;2,2", ArtifactKeyOpts{Format: "svg"})
	a2 := k.ArtifactKey("0,0;2,2", ArtifactKeyOpts{Format: "png"})
	if a1 == a2 {
		t.Error("different artifact formats should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "v1.2.0:")
	key := scoped.SynthesisKey("2@1", SynthesisKeyOpts{})
	if want := "v1.2.0:" + NewDefaultKeyer().SynthesisKey("2@1", SynthesisKeyOpts{}); key != want {
		t.Errorf("SynthesisKey = %q, want %q", key, want)
	}
	if KeyType(key) != "synthesis" {
		t.Errorf("KeyType(%q) = %q", key, KeyType(key))
	}
	if KeyType(scoped.ArtifactKey("k", ArtifactKeyOpts{})) != "artifact" {
		t.Error("scoped artifact key not recognized")
	}
	if KeyType("whatever") != "other" {
		t.Error("unknown key type should be other")
	}
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	hooks := &recordingHooks{}
	c := Instrument(fc, hooks)
	key := NewDefaultKeyer().SynthesisKey("3@3", SynthesisKeyOpts{})

	c.Get(ctx, key)
	c.Set(ctx, key, []byte("abc"), time.Hour)
	c.Get(ctx, key)

	want := []string{"miss:synthesis", "set:synthesis:3", "hit:synthesis"}
	if strings.Join(hooks.events, " ") != strings.Join(want, " ") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

type recordingHooks struct {
	observability.NoopCacheHooks
	events []string
}

func (h *recordingHooks) OnCacheHit(_ context.Context, kind string) {
	h.events = append(h.events, "hit:"+kind)
}

func (h *recordingHooks) OnCacheMiss(_ context.Context, kind string) {
	h.events = append(h.events, "miss:"+kind)
}

func (h *recordingHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.events = append(h.events, "set:"+kind+":"+strconv.Itoa(size))
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("Retryable should keep the cause in the chain")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := RetryDelay
	RetryDelay = time.Millisecond
	defer func() { RetryDelay = old }()
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("err = %v after %d calls, want success after 2", err, calls)
	}

	calls = 0
	plain := errors.New("bad request")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return plain
	})
	if err != plain || calls != 1 {
		t.Errorf("non-retryable: err = %v after %d calls", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) || calls != 3 {
		t.Errorf("exhausted: err = %v after %d calls", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
