package cli

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/dateq"
	"github.com/aretw0/dateq/internal/presentation/tui"
	"github.com/aretw0/dateq/pkg/domain"
)

// RunInteractive starts the read-search-print loop on the terminal.
func RunInteractive(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	engine, err := createEngine(opts, cfg, logger)
	if err != nil {
		return err
	}

	// Piped stdin or redirected stdout drops the banner and rendering.
	headless := opts.Headless ||
		!term.IsTerminal(int(os.Stdin.Fd())) ||
		!term.IsTerminal(int(os.Stdout.Fd()))

	if !headless {
		tui.PrintBanner(dateq.Version)
	}

	sortPolicy := domain.SortValueAsc
	if opts.Sort != "" {
		sortPolicy, err = domain.ParseSortPolicy(opts.Sort)
		if err != nil {
			return err
		}
	}
	limit := opts.Limit
	if limit == 0 {
		limit = dateq.DefaultDisplayLimit
	}

	// Setup signal handling
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	r := dateq.NewRunner()
	r.Input = NewInterruptibleReader(os.Stdin, sigCtx.Done())
	r.Output = os.Stdout
	r.Headless = headless
	r.Sort = sortPolicy
	r.Limit = limit
	if !headless {
		r.Renderer = tui.NewRenderer()
	}

	runErr := r.Run(sigCtx, engine)

	// If context was canceled (signal received), ensure runErr reflects it
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	logCompletion(runErr, opts.Debug, headless, sigCtx.Signal())

	return handleExecutionError(runErr)
}
