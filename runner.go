package dateq

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/dateq/pkg/domain"
)

// DefaultDisplayLimit caps how many equations a Runner prints per
// result when no limit is configured.
const DefaultDisplayLimit = 20

const timeRounding = time.Millisecond

// Runner handles the interactive loop of the dateq engine using
// provided IO. This allows for easy testing and integration with
// different frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
	Sort     domain.SortPolicy
	Limit    int
}

// ContentRenderer is a function that transforms the formatted result
// before outputting it. This allows for TUI rendering (markdown to
// ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. The caller must set Input and Output
// (use os.Stdin / os.Stdout for a terminal session).
func NewRunner() *Runner {
	return &Runner{
		Headless: false,
		Sort:     domain.SortNone,
		Limit:    DefaultDisplayLimit,
	}
}

// Run reads date strings line by line and prints the equations found
// in each, until EOF, "exit"/"quit", or context cancellation. Session
// commands ("set", "show", "help") adjust search settings for the rest
// of the session. Inputs with too few digits are reported and skipped
// rather than ending the loop.
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	opts := engine.Options()

	if !r.Headless {
		fmt.Fprintln(r.Output, "Type a date (e.g. 09/05/2005), \"help\" for commands, or \"exit\" to leave.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, "date> ")
		}

		line, readErr := lineReader.ReadString('\n')
		input := strings.TrimSpace(line)

		if input == "exit" || input == "quit" {
			return nil
		}
		if input != "" && !r.handleCommand(input, &opts) {
			if err := r.runOnce(ctx, engine, input, opts); err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

// handleCommand intercepts session commands. It reports whether the
// line was a command; anything else is treated as a search input.
func (r *Runner) handleCommand(line string, opts *domain.SearchOptions) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "help":
		r.printHelp()
	case "show":
		r.printSettings(*opts)
	case "set":
		if len(fields) != 3 {
			fmt.Fprintln(r.Output, "usage: set <setting> <value> (try \"help\")")
			return true
		}
		if err := r.applySetting(opts, fields[1], fields[2]); err != nil {
			fmt.Fprintf(r.Output, "error: %v\n", err)
		}
	default:
		return false
	}
	return true
}

func (r *Runner) applySetting(opts *domain.SearchOptions, name, value string) error {
	switch name {
	case "operators":
		set, err := domain.ParseOperatorSet(value)
		if err != nil {
			return err
		}
		opts.Operators = set
	case "factorial":
		switch value {
		case "on", "true":
			opts.Factorial = true
		case "off", "false":
			opts.Factorial = false
		default:
			return fmt.Errorf("factorial must be on or off, got %q", value)
		}
	case "groups":
		n, err := strconv.Atoi(value)
		if err != nil || n < 2 || n > domain.MaxGroupLimit {
			return fmt.Errorf("groups must be 2 to %d, got %q", domain.MaxGroupLimit, value)
		}
		opts.MaxGroups = n
	case "sort":
		policy, err := domain.ParseSortPolicy(value)
		if err != nil {
			return err
		}
		r.Sort = policy
	case "limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("limit must be a positive number, got %q", value)
		}
		r.Limit = n
	default:
		return fmt.Errorf("unknown setting %q (try \"help\")", name)
	}
	return nil
}

func (r *Runner) printHelp() {
	fmt.Fprint(r.Output, `Commands:
  <date>                        search the date's digits for equations
  set operators basic|extended  operator palette (extended adds ^ and root)
  set factorial on|off          allow fact(d) variants for single digits
  set groups N                  digit groups to try per partition (2-6)
  set sort POLICY               none, value, value-desc, length, length-desc, alpha
  set limit N                   equations shown per result
  show                          print current settings
  help                          this text
  exit                          leave
`)
}

func (r *Runner) printSettings(opts domain.SearchOptions) {
	n := opts.Normalized()
	fmt.Fprintf(r.Output, "operators: %s  factorial: %t  groups: %d  sort: %s  limit: %d\n",
		n.Operators, n.Factorial, n.MaxGroups, r.Sort, r.Limit)
}

func (r *Runner) runOnce(ctx context.Context, engine *Engine, input string, opts domain.SearchOptions) error {
	result, err := engine.GenerateWith(ctx, input, opts)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientDigits) {
			fmt.Fprintf(r.Output, "error: %v\n", err)
			return nil
		}
		return err
	}

	content := r.formatResult(result)
	if r.Renderer != nil {
		rendered, err := r.Renderer(content)
		if err == nil {
			content = rendered
		}
	}
	fmt.Fprint(r.Output, content)
	return nil
}

// formatResult renders one result as markdown: readable raw, and ready
// for an ANSI renderer when one is attached.
func (r *Runner) formatResult(result *domain.Result) string {
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}

	equations := append([]domain.Equation(nil), result.Equations...)
	domain.SortEquations(equations, r.Sort)

	var b strings.Builder
	fmt.Fprintf(&b, "\n## %s\n\n", result.Digits)
	if len(equations) == 0 {
		b.WriteString("No equations found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d equation(s) in %s (%d evaluations):\n\n",
		len(equations), result.Stats.Duration.Round(timeRounding), result.Stats.Evaluations)

	shown := equations
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for i, eq := range shown {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, eq)
	}
	if omitted := len(equations) - len(shown); omitted > 0 {
		fmt.Fprintf(&b, "\n...and %d more.\n", omitted)
	}
	return b.String()
}
