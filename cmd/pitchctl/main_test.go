package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
	"github.com/cwbudde/algo-pitch/internal/wavio"
	"github.com/cwbudde/algo-pitch/pitch/detect"
)

func writeSine(t *testing.T, dir, name string, freq float64, n int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := wavio.WriteFile(path, testutil.DeterministicSine(freq, 44100, 0.5, n), 44100, 16); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func runArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func pitchOf(t *testing.T, path string, from, to int) (float64, int) {
	t.Helper()
	a, err := wavio.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	f, err := detect.NewZeroCrossing().Predict(a.Samples[from:to], float64(a.SampleRate))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	return f, len(a.Samples)
}

func TestRunUnknownCommand(t *testing.T) {
	if _, _, err := runArgs(t, "transmogrify"); err == nil {
		t.Fatal("expected error for unknown command, got nil")
	}
	if _, _, err := runArgs(t); err == nil {
		t.Fatal("expected error for missing command, got nil")
	}
}

func TestAlgorithms(t *testing.T) {
	out, _, err := runArgs(t, "algorithms")
	if err != nil {
		t.Fatalf("algorithms error = %v", err)
	}
	for _, want := range []string{"zerocross", "trimmedmean", "combiner", "guitar", "71.33", "blackman"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should mention %s, got:\n%s", want, out)
		}
	}
}

func TestAnalyse(t *testing.T) {
	dir := t.TempDir()
	a := writeSine(t, dir, "a4.wav", 440, 8192)
	e5 := writeSine(t, dir, "e5.wav", 659.26, 8192)
	db := filepath.Join(dir, "cache.sqlite3")

	out, _, err := runArgs(t, "analyse", "-algorithm", "zerocross", "-cache", db, a, e5)
	if err != nil {
		t.Fatalf("analyse error = %v", err)
	}
	for _, want := range []string{"Pitch Profile Log for 'a4.wav'", "Pitch Profile Log for 'e5.wav'", "A4", "E5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should mention %s, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "a4.wav") > strings.Index(out, "e5.wav") {
		t.Errorf("profiles printed out of argument order:\n%s", out)
	}

	again, logs, err := runArgs(t, "analyse", "-algorithm", "zerocross", "-cache", db, a)
	if err != nil {
		t.Fatalf("second analyse error = %v", err)
	}
	if !strings.Contains(logs, "loaded from cache") {
		t.Errorf("second run should hit the cache, logs:\n%s", logs)
	}
	if !strings.Contains(again, "A4") {
		t.Errorf("cached output should mention A4, got:\n%s", again)
	}
}

func TestShiftAndStretch(t *testing.T) {
	dir := t.TempDir()
	in := writeSine(t, dir, "in.wav", 440, 8192)

	shifted := filepath.Join(dir, "shifted.wav")
	if _, _, err := runArgs(t, "shift", "-factor", "1.5", in, shifted); err != nil {
		t.Fatalf("shift error = %v", err)
	}
	f, n := pitchOf(t, shifted, 2048, 6144)
	if n != 8192 {
		t.Fatalf("shifted length = %d, want 8192", n)
	}
	testutil.RequireWithinCents(t, f, 660, 50)

	stretched := filepath.Join(dir, "stretched.wav")
	if _, _, err := runArgs(t, "stretch", "-factor", "2", in, stretched); err != nil {
		t.Fatalf("stretch error = %v", err)
	}
	f, n = pitchOf(t, stretched, 4096, 8192)
	if n != 16384 {
		t.Fatalf("stretched length = %d, want 16384", n)
	}
	testutil.RequireWithinCents(t, f, 440, 50)
}

func TestCorrectAndMatch(t *testing.T) {
	dir := t.TempDir()
	sharp := writeSine(t, dir, "sharp.wav", 450, 16384)
	target := writeSine(t, dir, "target.wav", 660, 16384)

	corrected := filepath.Join(dir, "corrected.wav")
	if _, _, err := runArgs(t, "correct", "-algorithm", "zerocross", sharp, corrected); err != nil {
		t.Fatalf("correct error = %v", err)
	}
	f, n := pitchOf(t, corrected, 6000, 10096)
	if n != 16384 {
		t.Fatalf("corrected length = %d, want 16384", n)
	}
	testutil.RequireWithinCents(t, f, 440, 15)

	matched := filepath.Join(dir, "matched.wav")
	if _, _, err := runArgs(t, "match", "-algorithm", "zerocross", sharp, target, matched); err != nil {
		t.Fatalf("match error = %v", err)
	}
	f, _ = pitchOf(t, matched, 6000, 10096)
	testutil.RequireWithinCents(t, f, 660, 20)
}

func TestCommandArgumentErrors(t *testing.T) {
	for _, args := range [][]string{
		{"analyse"},
		{"correct", "only-one.wav"},
		{"match", "a.wav", "b.wav"},
		{"shift", "in.wav"},
		{"correct", "-notes", "H", "a.wav", "b.wav"},
		{"analyse", "-algorithm", "yin", "a.wav"},
	} {
		if _, _, err := runArgs(t, args...); err == nil {
			t.Errorf("run(%q) error = nil, want an error", args)
		}
	}
}
