package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/dateq/internal/logging"
	"github.com/aretw0/dateq/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout result output).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearchStart: func(ctx context.Context, e *domain.SearchEvent) {
			logger.Debug("Search Start", "input", e.Input, "digits", e.Digits)
		},
		OnPartition: func(ctx context.Context, e *domain.PartitionEvent) {
			logger.Debug("Partition", "partition", e.Partition.String(), "index", e.Index, "total", e.Total)
		},
		OnEquation: func(ctx context.Context, e *domain.EquationEvent) {
			logger.Debug("Equation", "left", e.Equation.Left, "right", e.Equation.Right, "value", e.Equation.Value)
		},
		OnSearchEnd: func(ctx context.Context, e *domain.SearchEndEvent) {
			if e.Err != nil {
				logger.Debug("Search End (Error)", "err", e.Err, "evaluations", e.Stats.Evaluations)
			} else {
				logger.Debug("Search End", "matches", e.Stats.Matches, "evaluations", e.Stats.Evaluations, "duration", e.Stats.Duration)
			}
		},
	}
}

// InterruptibleReader wraps an io.Reader (like os.Stdin) and checks for a cancellation signal.
type InterruptibleReader struct {
	base   io.Reader
	cancel <-chan struct{}
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{
		base:   base,
		cancel: cancel,
	}
}

func (r *InterruptibleReader) Read(p []byte) (n int, err error) {
	// Check before blocking
	select {
	case <-r.cancel:
		return 0, errors.New("interrupted")
	default:
	}

	// Read (This blocks!)
	n, err = r.base.Read(p)

	// Check after returning
	select {
	case <-r.cancel:
		return 0, errors.New("interrupted")
	default:
	}
	return n, err
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		err.Error() == "interrupted" ||
		errors.Is(err, io.EOF) ||
		(errors.Unwrap(err) != nil && isInterrupted(errors.Unwrap(err)))
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

func logCompletion(err error, debug bool, quiet bool, sig os.Signal) {
	if quiet {
		return
	}
	if err == nil || !isInterrupted(err) {
		return
	}

	if sig == os.Interrupt {
		if debug {
			// Debug mode: Logs likely interrupted the prompt line. Restore context.
			fmt.Printf("date> [CTRL+C]\n")
		} else {
			// Input active: Clean UI, append to existing prompt.
			fmt.Printf("[CTRL+C]\n")
		}
		printSystemMessage("Interrupted.")
	} else if sig != nil {
		fmt.Printf("\n")
		printSystemMessage("Terminated.")
	}
}
