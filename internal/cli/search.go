package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aretw0/dateq/pkg/domain"
	"github.com/aretw0/dateq/pkg/export"
)

// ExecuteSearch runs a single search and writes the result in the
// requested format.
func ExecuteSearch(opts RunOptions, input string) error {
	logger := createLogger(opts.Debug)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	engine, err := createEngine(opts, cfg, logger)
	if err != nil {
		return err
	}

	sortPolicy := domain.SortValueAsc
	if opts.Sort != "" {
		sortPolicy, err = domain.ParseSortPolicy(opts.Sort)
		if err != nil {
			return err
		}
	}
	format, err := parseFormat(opts.Format)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	result, err := engine.Generate(sigCtx, input)
	if err != nil {
		if isInterrupted(err) && sigCtx.Signal() != nil {
			fmt.Println()
			printSystemMessage("Interrupted.")
		}
		return handleExecutionError(err)
	}

	out, closeOut, err := openOutput(opts.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	exportOpts := export.Options{
		Sort:        sortPolicy,
		Limit:       opts.Limit,
		GeneratedAt: time.Now(),
	}
	return format(out, result, exportOpts)
}

type exportFunc func(io.Writer, *domain.Result, export.Options) error

func parseFormat(name string) (exportFunc, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return export.Text, nil
	case "csv":
		return export.CSV, nil
	case "json":
		return export.JSON, nil
	}
	return nil, fmt.Errorf("unknown format %q (want text, csv or json)", name)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
