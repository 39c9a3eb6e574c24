package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-pitch/internal/cache"
	"github.com/cwbudde/algo-pitch/internal/config"
	"github.com/cwbudde/algo-pitch/internal/wavio"
	"github.com/cwbudde/algo-pitch/pitch/profile"
)

// common holds the flags every command shares.
type common struct {
	configPath string
	algorithm  string
	logLevel   string
	cachePath  string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.algorithm, "algorithm", "", "detector identifier (overrides the configuration)")
	fs.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides the configuration)")
	fs.StringVar(&c.cachePath, "cache", "", "SQLite cache of analysed profiles (overrides the configuration)")
}

func newFlagSet(name, args string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pitchctl %s [flags] %s\n\nFlags:\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// app is the state a command runs with.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  *cache.Cache
}

func (c *common) open(stderr io.Writer) (*app, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return nil, err
		}
	}
	if c.algorithm != "" {
		cfg.Detector.Algorithm = c.algorithm
	}
	if c.logLevel != "" {
		cfg.LogLevel = config.LogLevel(c.logLevel)
	}
	if c.cachePath != "" {
		cfg.Cache.Path = c.cachePath
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel.Level()})),
	}
	if cfg.Cache.Path != "" {
		ch, err := cache.Open(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		a.cache = ch
	}
	return a, nil
}

func (a *app) Close() error {
	return a.cache.Close()
}

// analyse decodes path and returns its analysed profile, from the cache
// when possible.
func (a *app) analyse(ctx context.Context, path string) (*profile.Profile, error) {
	audio, err := wavio.ReadFile(path)
	if err != nil {
		return nil, err
	}

	det, err := a.cfg.Detector.Detector()
	if err != nil {
		return nil, err
	}
	opts, err := a.cfg.Profile.Options(a.logger)
	if err != nil {
		return nil, err
	}
	opts = append(opts, profile.WithLocation(path))

	p, err := profile.New(audio.Samples, float64(audio.SampleRate), det, opts...)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		ok, err := a.cache.Load(ctx, p)
		if err != nil {
			return nil, err
		}
		if ok {
			a.logger.Info("profile loaded from cache", "file", path)
			return p, nil
		}
	}

	if err := p.Analyse(ctx); err != nil {
		return nil, err
	}
	a.logger.Info("profile analysed", "file", path, "blocks", p.Blocks(), "elapsed", p.Elapsed())

	if a.cache != nil {
		if err := a.cache.Store(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// analyseAll analyses every path concurrently and returns the profiles in
// argument order.
func (a *app) analyseAll(ctx context.Context, paths []string) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, path := range paths {
		eg.Go(func() error {
			p, err := a.analyse(egCtx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
