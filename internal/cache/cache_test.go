package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/algo-pitch/internal/testutil"
	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/profile"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "db", "pitch.sqlite3"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	c := openTemp(t)
	k := Key{Name: "a.wav", Length: 100, SampleRate: 44100, Algorithm: "amdf", Params: "b=1", BlockSize: 50}

	if _, _, ok, err := c.Get(ctx, k); err != nil || ok {
		t.Fatalf("Get() on empty cache = ok %v, err %v", ok, err)
	}

	if err := c.Put(ctx, k, []float64{440, 441}, time.Second); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, elapsed, ok, err := c.Get(ctx, k)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{440, 441}, 0)
	if elapsed != time.Second {
		t.Fatalf("elapsed = %v, want 1s", elapsed)
	}

	// Same key replaces, other overlap is a different entry.
	if err := c.Put(ctx, k, []float64{220, 221}, 2*time.Second); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	other := k
	other.Overlap = 10
	if err := c.Put(ctx, other, []float64{1}, 0); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, _, _, err = c.Get(ctx, k)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{220, 221}, 0)

	n, err := c.Len(ctx)
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("Len() = %d, want 2", n)
	}
}

func TestStoreLoadProfile(t *testing.T) {
	ctx := context.Background()
	c := openTemp(t)
	signal := testutil.DeterministicSine(440, 44100, 0.5, 8192)

	newProfile := func() *profile.Profile {
		p, err := profile.New(signal, 44100, detect.NewZeroCrossing(), profile.WithName("sine"))
		if err != nil {
			t.Fatalf("profile.New() error = %v", err)
		}
		return p
	}

	p := newProfile()
	if ok, err := c.Load(ctx, p); err != nil || ok {
		t.Fatalf("Load() on empty cache = %v, %v", ok, err)
	}
	if err := c.Store(ctx, p); !errors.Is(err, profile.ErrNotAnalysed) {
		t.Fatalf("Store() error = %v, want %v", err, profile.ErrNotAnalysed)
	}
	if err := p.Analyse(ctx); err != nil {
		t.Fatalf("Analyse() error = %v", err)
	}
	if err := c.Store(ctx, p); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	q := newProfile()
	ok, err := c.Load(ctx, q)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	want, _ := p.Pitch()
	got, err := q.Pitch()
	if err != nil {
		t.Fatalf("Pitch() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestClosed(t *testing.T) {
	c := openTemp(t)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, _, _, err := c.Get(context.Background(), Key{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("Get() error = %v, want %v", err, ErrClosed)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
