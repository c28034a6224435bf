package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/aretw0/dateq/pkg/domain"
)

func lits(values ...int) []domain.Expr {
	out := make([]domain.Expr, len(values))
	for i, v := range values {
		out[i] = domain.Literal{Value: v}
	}
	return out
}

func TestBuildNatural(t *testing.T) {
	cases := []struct {
		name   string
		tokens []int
		ops    []domain.Operator
		text   string
		value  float64
	}{
		{"precedence", []int{1, 2, 3}, []domain.Operator{domain.OpAdd, domain.OpMul}, "1 + 2 * 3", 7},
		{"power right assoc", []int{2, 3, 2}, []domain.Operator{domain.OpPow, domain.OpPow}, "2 ^ 3 ^ 2", 512},
		{"division left assoc", []int{8, 2, 2}, []domain.Operator{domain.OpDiv, domain.OpDiv}, "8 / 2 / 2", 2},
		{"subtraction left assoc", []int{5, 2, 1}, []domain.Operator{domain.OpSub, domain.OpSub}, "5 - 2 - 1", 2},
		{"root folds accumulated", []int{1, 2, 3}, []domain.Operator{domain.OpAdd, domain.OpRoot}, "root(1 + 2,3)", math.Cbrt(3)},
		{"root then chain", []int{4, 2, 1}, []domain.Operator{domain.OpRoot, domain.OpAdd}, "root(4,2) + 1", 3},
		{"mixed", []int{2, 3, 4, 1}, []domain.Operator{domain.OpMul, domain.OpAdd, domain.OpMul}, "2 * 3 + 4 * 1", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr := buildNatural(lits(tc.tokens...), tc.ops)
			if got := expr.String(); got != tc.text {
				t.Errorf("text = %q, want %q", got, tc.text)
			}
			v, err := expr.Eval()
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if math.Abs(v-tc.value) > 1e-9 {
				t.Errorf("value = %v, want %v", v, tc.value)
			}
		})
	}
}

func TestBuildLeftFold(t *testing.T) {
	expr := buildLeftFold(lits(1, 2, 3), []domain.Operator{domain.OpAdd, domain.OpMul})
	if got := expr.String(); got != "(1 + 2) * 3" {
		t.Errorf("text = %q, want %q", got, "(1 + 2) * 3")
	}
	if v, _ := expr.Eval(); v != 9 {
		t.Errorf("value = %v, want 9", v)
	}

	expr = buildLeftFold(lits(2, 3, 2), []domain.Operator{domain.OpPow, domain.OpPow})
	if got := expr.String(); got != "(2 ^ 3) ^ 2" {
		t.Errorf("text = %q, want %q", got, "(2 ^ 3) ^ 2")
	}
	if v, _ := expr.Eval(); v != 64 {
		t.Errorf("value = %v, want 64", v)
	}

	expr = buildLeftFold(lits(4, 2, 3), []domain.Operator{domain.OpRoot, domain.OpAdd})
	if got := expr.String(); got != "root(4,2) + 3" {
		t.Errorf("text = %q, want %q", got, "root(4,2) + 3")
	}
	if v, _ := expr.Eval(); v != 5 {
		t.Errorf("value = %v, want 5", v)
	}
}

func TestBuildHeadGroup(t *testing.T) {
	expr := buildHeadGroup(lits(1, 2, 3, 4), []domain.Operator{domain.OpAdd, domain.OpMul, domain.OpAdd})
	if got := expr.String(); got != "(1 + 2) * 3 + 4" {
		t.Errorf("text = %q, want %q", got, "(1 + 2) * 3 + 4")
	}
	if v, _ := expr.Eval(); v != 13 {
		t.Errorf("value = %v, want 13", v)
	}
}

func TestBuildTailGroup(t *testing.T) {
	expr := buildTailGroup(lits(1, 2, 3), []domain.Operator{domain.OpMul, domain.OpAdd})
	if got := expr.String(); got != "1 * (2 + 3)" {
		t.Errorf("text = %q, want %q", got, "1 * (2 + 3)")
	}
	if v, _ := expr.Eval(); v != 5 {
		t.Errorf("value = %v, want 5", v)
	}

	expr = buildTailGroup(lits(1, 2, 3, 4), []domain.Operator{domain.OpMul, domain.OpSub, domain.OpAdd})
	if got := expr.String(); got != "1 * 2 - (3 + 4)" {
		t.Errorf("text = %q, want %q", got, "1 * 2 - (3 + 4)")
	}
	if v, _ := expr.Eval(); v != -5 {
		t.Errorf("value = %v, want -5", v)
	}
}

func newTestSearcher(opts domain.SearchOptions) *Searcher {
	return New(opts, nil, domain.LifecycleHooks{})
}

func candidateTexts(cands []candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.text
	}
	return out
}

func TestExpressionsForBasicPair(t *testing.T) {
	s := newTestSearcher(domain.DefaultSearchOptions())
	cands, tl, err := s.expressionsFor(context.Background(), []int{1, 2})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{
		"1 + 2": 3,
		"1 - 2": -1,
		"1 * 2": 2,
		"1 / 2": 0.5,
	}
	if len(cands) != len(want) {
		t.Fatalf("got %d candidates %v, want %d", len(cands), candidateTexts(cands), len(want))
	}
	for _, c := range cands {
		v, ok := want[c.text]
		if !ok {
			t.Errorf("unexpected candidate %q", c.text)
			continue
		}
		if c.value != v {
			t.Errorf("%q = %v, want %v", c.text, c.value, v)
		}
	}
	if tl.expressions != 4 {
		t.Errorf("expressions = %d, want 4", tl.expressions)
	}
	// Natural and left-fold build the same tree over a single operator,
	// so each of the 4 operators is evaluated twice.
	if tl.evaluations != 8 {
		t.Errorf("evaluations = %d, want 8", tl.evaluations)
	}
}

func TestExpressionsForSingleToken(t *testing.T) {
	opts := domain.DefaultSearchOptions()
	opts.Factorial = true
	s := newTestSearcher(opts)

	cands, _, err := s.expressionsFor(context.Background(), []int{3})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"3": 3, "fact(3)": 6}
	if len(cands) != len(want) {
		t.Fatalf("got candidates %v, want %v", candidateTexts(cands), want)
	}
	for _, c := range cands {
		if want[c.text] != c.value {
			t.Errorf("%q = %v, want %v", c.text, c.value, want[c.text])
		}
	}
}

func TestExpressionsForExtendedOperators(t *testing.T) {
	opts := domain.DefaultSearchOptions()
	opts.Operators = domain.OperatorsExtended
	s := newTestSearcher(opts)

	cands, _, err := s.expressionsFor(context.Background(), []int{5, 2})
	if err != nil {
		t.Fatal(err)
	}
	texts := candidateTexts(cands)
	for _, want := range []string{"5 ^ 2", "root(5,2)"} {
		found := false
		for _, got := range texts {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing %q in %v", want, texts)
		}
	}
}

func TestExpressionsForDivisionByZeroDiscarded(t *testing.T) {
	s := newTestSearcher(domain.DefaultSearchOptions())
	cands, tl, err := s.expressionsFor(context.Background(), []int{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cands {
		if c.text == "1 / 0" {
			t.Error("division by zero candidate retained")
		}
	}
	if tl.failures.DivisionByZero != 2 {
		t.Errorf("division-by-zero tally = %d, want 2", tl.failures.DivisionByZero)
	}
}

func TestExpressionsForFactorialVariants(t *testing.T) {
	opts := domain.SearchOptions{Operators: domain.OperatorsBasic, Factorial: true}
	s := newTestSearcher(opts)

	cands, _, err := s.expressionsFor(context.Background(), []int{7, 2})
	if err != nil {
		t.Fatal(err)
	}
	wantText := "fact(7) * 2"
	found := false
	for _, c := range cands {
		if c.text == wantText {
			found = true
			if c.value != 10080 {
				t.Errorf("%q = %v, want 10080", wantText, c.value)
			}
		}
	}
	if !found {
		t.Errorf("missing %q in %v", wantText, candidateTexts(cands))
	}
}

func TestExpressionsForCancelled(t *testing.T) {
	s := newTestSearcher(domain.DefaultSearchOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.expressionsFor(ctx, []int{1, 2, 3})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTokenVariants(t *testing.T) {
	if got := tokenVariants(7, false); len(got) != 1 || got[0].String() != "7" {
		t.Errorf("tokenVariants(7, false) = %v", got)
	}
	got := tokenVariants(7, true)
	if len(got) != 2 || got[1].String() != "fact(7)" {
		t.Errorf("tokenVariants(7, true) = %v", got)
	}
	// Multi-digit groups never grow a factorial variant.
	if got := tokenVariants(12, true); len(got) != 1 {
		t.Errorf("tokenVariants(12, true) = %v", got)
	}
}
