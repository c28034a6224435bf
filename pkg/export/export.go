package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aretw0/dateq/pkg/domain"
)

// Options shape every export: equations are sorted, then cut to Limit.
type Options struct {
	// Sort orders equations before export. Default: insertion order.
	Sort domain.SortPolicy
	// Limit caps exported equations. Zero exports everything.
	Limit int
	// GeneratedAt stamps the export. Zero means time.Now(); tests
	// inject a fixed time for byte-stable output.
	GeneratedAt time.Time
}

func (o Options) generatedAt() time.Time {
	if o.GeneratedAt.IsZero() {
		return time.Now()
	}
	return o.GeneratedAt
}

// prepare returns the equations to export, sorted and limited, without
// mutating the result.
func prepare(result *domain.Result, opts Options) []domain.Equation {
	equations := append([]domain.Equation(nil), result.Equations...)
	domain.SortEquations(equations, opts.Sort)
	if opts.Limit > 0 && len(equations) > opts.Limit {
		equations = equations[:opts.Limit]
	}
	return equations
}

// Text writes a human-readable listing: a commented header followed by
// numbered equations.
func Text(w io.Writer, result *domain.Result, opts Options) error {
	equations := prepare(result, opts)

	if _, err := fmt.Fprintf(w, "# Equations for %s (%d digits)\n", result.Digits, len(result.Digits)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# Input: %s\n", result.Input); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# Found: %d of %d shown\n", len(equations), len(result.Equations)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# Generated: %s\n\n", opts.generatedAt().Format(time.RFC3339)); err != nil {
		return err
	}
	for i, eq := range equations {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, eq); err != nil {
			return err
		}
	}
	return nil
}

// CSV writes a spreadsheet-friendly table with a fixed header row.
func CSV(w io.Writer, result *domain.Result, opts Options) error {
	equations := prepare(result, opts)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Number", "Left Side", "Right Side", "Value"}); err != nil {
		return err
	}
	for i, eq := range equations {
		record := []string{
			strconv.Itoa(i + 1),
			eq.Left,
			eq.Right,
			strconv.FormatFloat(eq.Value, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonEquation struct {
	Number    int     `json:"number"`
	LeftSide  string  `json:"left_side"`
	RightSide string  `json:"right_side"`
	Value     float64 `json:"value"`
}

type jsonDocument struct {
	Input       string             `json:"input"`
	Digits      string             `json:"digits"`
	Count       int                `json:"count"`
	Total       int                `json:"total"`
	Sort        string             `json:"sort,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Equations   []jsonEquation     `json:"equations"`
	Stats       domain.SearchStats `json:"stats"`
}

// JSON writes an indented document with export metadata, the equation
// list, and the search stats.
func JSON(w io.Writer, result *domain.Result, opts Options) error {
	equations := prepare(result, opts)

	doc := jsonDocument{
		Input:       result.Input,
		Digits:      result.Digits.String(),
		Count:       len(equations),
		Total:       len(result.Equations),
		Sort:        string(opts.Sort),
		GeneratedAt: opts.generatedAt(),
		Equations:   make([]jsonEquation, 0, len(equations)),
		Stats:       result.Stats,
	}
	for i, eq := range equations {
		doc.Equations = append(doc.Equations, jsonEquation{
			Number:    i + 1,
			LeftSide:  eq.Left,
			RightSide: eq.Right,
			Value:     eq.Value,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
