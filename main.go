/*
viewgeom evaluates a scene description: it builds the viewport, projection
and modelview it describes and prints the screen or world coordinates of
every query. With -watch it re-evaluates whenever the scene file changes.
*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/viewgeom/engine/core"
	"github.com/spaghettifunk/viewgeom/engine/scene"
	"github.com/spaghettifunk/viewgeom/testbed"
)

type options struct {
	scenePath string
	watch     bool
	logLevel  string
	format    string
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("viewgeom", flag.ContinueOnError)
	fs.StringVar(&opts.scenePath, "scene", "", "scene file (.toml, .yaml, .yml); defaults to the built-in testbed scene")
	fs.BoolVar(&opts.watch, "watch", false, "re-evaluate the scene whenever the file changes")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.format != "text" && opts.format != "json" {
		return nil, fmt.Errorf("unknown output format %q", opts.format)
	}
	if opts.watch && opts.scenePath == "" {
		return nil, fmt.Errorf("-watch needs -scene")
	}
	return opts, nil
}

func printReport(w io.Writer, format string, report *scene.Report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		return enc.Encode(report)
	}
	fmt.Fprintf(w, "scene %q (%s) run %s in %s\n", report.Scene, report.Mode, report.RunID, report.Elapsed)
	for i, r := range report.Results {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if r.Failed() {
			fmt.Fprintf(w, "  %-9s %-32s (%g, %g, %g): error: %s\n", r.Kind, name, r.Input.X, r.Input.Y, r.Input.Z, r.Error)
			continue
		}
		fmt.Fprintf(w, "  %-9s %-32s (%g, %g, %g) -> (%g, %g, %g)\n", r.Kind, name,
			r.Input.X, r.Input.Y, r.Input.Z, r.Output.X, r.Output.Y, r.Output.Z)
	}
	return nil
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return testbed.NewSampleScene()
	}
	return scene.Load(path)
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	level, err := core.ParseLogLevel(opts.logLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	if !opts.watch {
		sc, err := loadScene(opts.scenePath)
		if err != nil {
			return err
		}
		report, err := scene.Evaluate(ctx, sc)
		if err != nil {
			return err
		}
		return printReport(out, opts.format, report)
	}

	ev := scene.NewEvaluator()
	w, err := scene.NewWatcher(ctx, opts.scenePath, ev)
	if err != nil {
		return err
	}
	defer w.Close()
	core.LogInfo("watching %s", opts.scenePath)

	reports, errs := w.Reports(), w.Errors()
	for reports != nil || errs != nil {
		select {
		case report, ok := <-reports:
			if !ok {
				reports = nil
				continue
			}
			if err := printReport(out, opts.format, report); err != nil {
				return err
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			core.LogError("%s", err)
		}
	}
	m := ev.Metrics()
	core.LogInfo("stopped after %d evaluations (%d failed queries, %.3fms average)",
		m.Evaluations(), m.Failures(), m.AverageMS())
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		core.LogError("%s", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		cancel()
	}()

	if err := run(ctx, opts, os.Stdout); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
}
