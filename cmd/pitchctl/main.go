// Command pitchctl analyses, corrects and re-pitches mono WAV recordings.
//
// Usage:
//
//	pitchctl <command> [flags] [args ...]
//
// Commands:
//
//	analyse     print the pitch profile log of one or more files
//	correct     snap a recording to the nearest (allowed) semitones
//	match       re-pitch a recording to follow another one
//	shift       transpose a recording by a factor
//	stretch     change the duration of a recording by a factor
//	algorithms  list detectors, instrument ranges and windows
//
// Examples:
//
//	pitchctl analyse -config pitch.yaml take1.wav take2.wav
//	pitchctl correct -notes C,D,E,G,A in.wav out.wav
//	pitchctl match sung.wav reference.wav out.wav
//	pitchctl shift -factor 1.5 in.wav out.wav
//	pitchctl stretch -factor 2 in.wav out.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

func commands() []command {
	return []command{
		{"analyse", "print the pitch profile log of one or more files", runAnalyse},
		{"correct", "snap a recording to the nearest (allowed) semitones", runCorrect},
		{"match", "re-pitch a recording to follow another one", runMatch},
		{"shift", "transpose a recording by a factor", runShift},
		{"stretch", "change the duration of a recording by a factor", runStretch},
		{"algorithms", "list detectors, instrument ranges and windows", runAlgorithms},
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: pitchctl <command> [flags] [args ...]\n\nCommands:\n")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-11s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nRun 'pitchctl <command> -h' for the flags of a command.\n")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("missing command")
	}

	name := args[0]
	if name == "analyze" {
		name = "analyse"
	}
	for _, c := range commands() {
		if c.name == name {
			return c.run(ctx, args[1:], stdout, stderr)
		}
	}
	if name == "-h" || name == "-help" || name == "help" {
		usage(stderr)
		return flag.ErrHelp
	}

	usage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}
