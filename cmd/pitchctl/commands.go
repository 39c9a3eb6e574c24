package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/internal/wavio"
	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/match"
	"github.com/cwbudde/algo-pitch/pitch/note"
	"github.com/cwbudde/algo-pitch/vocoder"
)

func runAnalyse(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var c common
	fs := newFlagSet("analyse", "in.wav ...", stderr)
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("analyse: no input files")
	}

	a, err := c.open(stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	profiles, err := a.analyseAll(ctx, fs.Args())
	if err != nil {
		return err
	}
	for i, p := range profiles {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprint(stdout, p.Log())
	}
	return nil
}

func runCorrect(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var c common
	fs := newFlagSet("correct", "in.wav out.wav", stderr)
	c.register(fs)
	notes := fs.String("notes", "", "comma-separated allowed pitch classes, e.g. C,D,E,F#")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("correct: want 2 arguments, got %d", fs.NArg())
	}
	allowed, err := note.ParsePitchClasses(*notes)
	if err != nil {
		return err
	}

	a, err := c.open(stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.analyse(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	opts, err := a.cfg.Match.Options(a.cfg.Vocoder, a.logger)
	if err != nil {
		return err
	}
	out, err := match.Correct(p, allowed, opts...)
	if err != nil {
		return err
	}
	return wavio.WriteFile(fs.Arg(1), out, int(p.SampleRate()), 0)
}

func runMatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var c common
	fs := newFlagSet("match", "original.wav target.wav out.wav", stderr)
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return fmt.Errorf("match: want 3 arguments, got %d", fs.NArg())
	}

	a, err := c.open(stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	profiles, err := a.analyseAll(ctx, fs.Args()[:2])
	if err != nil {
		return err
	}
	opts, err := a.cfg.Match.Options(a.cfg.Vocoder, a.logger)
	if err != nil {
		return err
	}
	out, err := match.Match(profiles[0], profiles[1], opts...)
	if err != nil {
		return err
	}
	return wavio.WriteFile(fs.Arg(2), out, int(profiles[0].SampleRate()), 0)
}

// scaleCommand runs shift and stretch, which differ only in the vocoder
// call.
func scaleCommand(name string, args []string, stderr io.Writer,
	apply func(signal []float64, sampleRate, factor float64, windowLength, overlap int, env []float64, opts ...vocoder.Option) ([]float64, error),
) error {
	var c common
	fs := newFlagSet(name, "in.wav out.wav", stderr)
	c.register(fs)
	factor := fs.Float64("factor", 1, "scaling factor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("%s: want 2 arguments, got %d", name, fs.NArg())
	}

	a, err := c.open(stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := wavio.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	v := a.cfg.Vocoder
	env, err := v.Envelope()
	if err != nil {
		return err
	}
	opts, err := v.Options(a.logger)
	if err != nil {
		return err
	}
	out, err := apply(in.Samples, float64(in.SampleRate), *factor, v.WindowLength, v.Overlap, env, opts...)
	if err != nil {
		return err
	}
	a.logger.Info(name+" done", "in", len(in.Samples), "out", len(out), "factor", *factor)
	return wavio.WriteFile(fs.Arg(1), out, in.SampleRate, in.BitDepth)
}

func runShift(_ context.Context, args []string, _, stderr io.Writer) error {
	return scaleCommand("shift", args, stderr, vocoder.PitchShift)
}

func runStretch(_ context.Context, args []string, _, stderr io.Writer) error {
	return scaleCommand("stretch", args, stderr, vocoder.Stretch)
}

func runAlgorithms(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("algorithms", "", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tKIND")
	for _, alg := range detect.Algorithms() {
		kind := "detector"
		if alg.IsCombiner() {
			kind = "combiner"
		}
		fmt.Fprintf(w, "%s\t%s\n", alg, kind)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "INSTRUMENT\tMIN\tMAX")
	for _, name := range note.Instruments() {
		r, err := note.InstrumentRange(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", name, r.Min, r.Max)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "WINDOW")
	for _, t := range window.Types() {
		fmt.Fprintln(w, t)
	}
	return w.Flush()
}
