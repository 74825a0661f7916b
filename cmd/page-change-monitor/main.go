package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dvdk01/page-change-monitor/internal/application"
	"github.com/dvdk01/page-change-monitor/internal/config"
	"github.com/dvdk01/page-change-monitor/internal/logging"
	"github.com/dvdk01/page-change-monitor/internal/monitor"
	"github.com/dvdk01/page-change-monitor/internal/processor"
	"github.com/dvdk01/page-change-monitor/internal/schema"
	"github.com/dvdk01/page-change-monitor/internal/validator"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitChanged = 2
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args, os.Stdout, os.Stderr, nil))
}

func parseOptions(args []string, stderr io.Writer) (config.Options, error) {
	opts := config.DefaultOptions()

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s -pages <pages.json|pages.yaml> [flags]\n", args[0])
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.PagesPath, "pages", "", "Path to the JSON or YAML page list, or - for stdin (required)")
	fs.StringVar(&opts.Format, "format", "", "Page list format: json or yaml (default: from the file extension)")
	fs.StringVar(&opts.Log.Level, "log-level", opts.Log.Level, "Log level: trace, debug, info, warn, error")
	fs.StringVar(&opts.Log.Format, "log-format", opts.Log.Format, "Log format: text or json")
	fs.StringVar(&opts.Log.File, "log-file", "", "Also write logs to this file, rotated by size")
	fs.DurationVar(&opts.Timeout, "timeout", 0, "HTTP timeout per page, 0 means no timeout")
	fs.IntVar(&opts.Workers, "workers", opts.Workers, "Number of pages checked at once, 1 keeps list order")
	fs.StringVar(&opts.Output, "output", opts.Output, "Output: notice or table")
	fs.BoolVar(&opts.ShowAll, "show-all", false, "List unchanged pages too (table output)")
	fs.BoolVar(&opts.FailOnChange, "fail-on-change", false, "Exit with status 2 when a page changed or could not be checked")

	if err := fs.Parse(args[1:]); err != nil {
		return opts, errUsage
	}
	if opts.PagesPath == "" {
		fs.Usage()
		return opts, errUsage
	}

	return opts, opts.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, transport http.RoundTripper) int {
	opts, err := parseOptions(args, stderr)
	if errors.Is(err, errUsage) {
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}

	logger, closer, err := logging.NewWithWriter(opts.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}
	defer closer.Close() //nolint

	var format config.Format
	if opts.Format != "" {
		if format, err = config.ParseFormat(opts.Format); err != nil {
			logger.WithError(err).Error("invalid page list format")
			return exitUsage
		}
	}

	records, err := config.LoadPagesFile(opts.PagesPath, format)
	if err != nil {
		logger.WithError(err).Error("failed to load pages")
		return exitUsage
	}
	if len(records) == 0 {
		logger.WithField("pages", opts.PagesPath).Error("no pages configured")
		return exitUsage
	}

	pages, err := config.BuildPages(records, validator.NewPageValidator())
	if err != nil {
		logger.WithError(err).Error("invalid page configuration")
		return exitUsage
	}

	client := &http.Client{Timeout: opts.Timeout, Transport: transport}
	monitors := make([]monitor.Monitor, len(pages))
	for i, p := range pages {
		monitors[i] = monitor.NewMonitor(client, p, logger)
	}

	var display application.Application
	switch opts.Output {
	case config.OutputTable:
		display = application.NewTableApplication(stdout, opts.ShowAll, isTerminal(stdout))
	default:
		display = application.NewCLIApplication(stdout)
	}

	results, err := processor.New(monitors, display, logger, processor.Options{Workers: opts.Workers}).Run(ctx)
	if err != nil {
		logger.WithError(err).Error("failed to render results")
		return exitUsage
	}

	if opts.FailOnChange && !schema.Summarize(results).Clean() {
		return exitChanged
	}
	return exitOK
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
