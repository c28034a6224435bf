package engine

import (
	"context"
	"errors"

	"github.com/aretw0/dateq/pkg/domain"
)

// candidate is one retained expression for a side: its canonical text
// and its evaluated value.
type candidate struct {
	text  string
	value float64
}

// tally counts the work done while generating and matching candidates.
type tally struct {
	evaluations int
	expressions int
	matches     int
	failures    domain.EvalFailures
}

func (t *tally) add(other tally) {
	t.evaluations += other.evaluations
	t.expressions += other.expressions
	t.matches += other.matches
	t.failures.Add(other.failures)
}

func classify(f *domain.EvalFailures, err error) {
	switch {
	case errors.Is(err, domain.ErrDivisionByZero):
		f.DivisionByZero++
	case errors.Is(err, domain.ErrFactorialDomain):
		f.FactorialDomain++
	case errors.Is(err, domain.ErrOverflow):
		f.Overflow++
	default:
		f.InvalidResult++
	}
}

// pairNode joins two atoms with op. OpRoot builds a Root node; every
// other operator builds a BinaryOp.
func pairNode(op domain.Operator, left, right domain.Expr) domain.Expr {
	if op == domain.OpRoot {
		return domain.Root{Radicand: left, Degree: right}
	}
	return domain.BinaryOp{Op: op, Left: left, Right: right}
}

// buildNatural folds tokens under infix precedence (+ - below * / below
// ^, with ^ grouping from the right). OpRoot is not infix: it collapses
// everything accumulated so far into root(acc, next) and continues from
// that atom.
func buildNatural(tokens []domain.Expr, ops []domain.Operator) domain.Expr {
	operands := make([]domain.Expr, 1, len(tokens))
	operands[0] = tokens[0]
	pending := make([]domain.Operator, 0, len(ops))

	reduce := func() {
		op := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		right := operands[len(operands)-1]
		left := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, domain.BinaryOp{Op: op, Left: left, Right: right})
	}

	for i, op := range ops {
		next := tokens[i+1]
		if op == domain.OpRoot {
			for len(pending) > 0 {
				reduce()
			}
			operands[0] = domain.Root{Radicand: operands[0], Degree: next}
			continue
		}
		for len(pending) > 0 {
			top := pending[len(pending)-1]
			if top.Precedence() < op.Precedence() {
				break
			}
			if top.Precedence() == op.Precedence() && op.RightAssociative() {
				break
			}
			reduce()
		}
		pending = append(pending, op)
		operands = append(operands, next)
	}
	for len(pending) > 0 {
		reduce()
	}
	return operands[0]
}

// buildLeftFold groups strictly left to right, one pair at a time.
func buildLeftFold(tokens []domain.Expr, ops []domain.Operator) domain.Expr {
	acc := tokens[0]
	for i, op := range ops {
		acc = pairNode(op, acc, tokens[i+1])
	}
	return acc
}

// buildHeadGroup makes the first two tokens a unit, then chains the rest
// naturally. Requires len(tokens) >= 3.
func buildHeadGroup(tokens []domain.Expr, ops []domain.Operator) domain.Expr {
	head := pairNode(ops[0], tokens[0], tokens[1])
	rest := make([]domain.Expr, 0, len(tokens)-1)
	rest = append(rest, head)
	rest = append(rest, tokens[2:]...)
	return buildNatural(rest, ops[1:])
}

// buildTailGroup makes the last two tokens a unit; the prefix chains
// naturally and the joining operator binds the unit by precedence.
// Requires len(tokens) >= 3.
func buildTailGroup(tokens []domain.Expr, ops []domain.Operator) domain.Expr {
	n := len(tokens)
	tail := pairNode(ops[n-2], tokens[n-2], tokens[n-1])
	seq := make([]domain.Expr, 0, n-1)
	seq = append(seq, tokens[:n-2]...)
	seq = append(seq, tail)
	return buildNatural(seq, ops[:n-2])
}

// expressionsFor enumerates every retained candidate for one side: all
// token-variant choices, all operator sequences over the active set, all
// grouping strategies, deduplicated by rendered text keeping the first
// value seen. Output order is generation order and therefore
// deterministic.
func (s *Searcher) expressionsFor(ctx context.Context, nums []int) ([]candidate, tally, error) {
	var t tally
	n := len(nums)

	tokenSets := make([][]domain.Expr, n)
	for i, v := range nums {
		tokenSets[i] = tokenVariants(v, s.opts.Factorial)
	}

	seen := make(map[string]struct{})
	var out []candidate
	tokens := make([]domain.Expr, n)
	tokenIdx := make([]int, n)
	opSeq := make([]domain.Operator, n-1)
	opIdx := make([]int, n-1)

	for {
		for i, idx := range tokenIdx {
			tokens[i] = tokenSets[i][idx]
		}

		if n == 1 {
			s.consider(tokens[0], seen, &out, &t)
		} else {
			for i := range opIdx {
				opIdx[i] = 0
			}
			for {
				if err := ctx.Err(); err != nil {
					return nil, t, err
				}
				for i, idx := range opIdx {
					opSeq[i] = s.operators[idx]
				}
				s.consider(buildNatural(tokens, opSeq), seen, &out, &t)
				s.consider(buildLeftFold(tokens, opSeq), seen, &out, &t)
				if n >= 3 {
					s.consider(buildHeadGroup(tokens, opSeq), seen, &out, &t)
					s.consider(buildTailGroup(tokens, opSeq), seen, &out, &t)
				}
				if !advance(opIdx, len(s.operators)) {
					break
				}
			}
		}

		if !advanceMixed(tokenIdx, tokenSets) {
			break
		}
	}
	return out, t, nil
}

// consider evaluates expr and retains it unless evaluation fails or the
// text was already seen.
func (s *Searcher) consider(expr domain.Expr, seen map[string]struct{}, out *[]candidate, t *tally) {
	t.evaluations++
	v, err := expr.Eval()
	if err != nil {
		classify(&t.failures, err)
		return
	}
	text := expr.String()
	if _, ok := seen[text]; ok {
		return
	}
	seen[text] = struct{}{}
	t.expressions++
	*out = append(*out, candidate{text: text, value: v})
}

// advance steps a fixed-radix odometer; false means it wrapped around.
func advance(idx []int, radix int) bool {
	for k := len(idx) - 1; k >= 0; k-- {
		idx[k]++
		if idx[k] < radix {
			return true
		}
		idx[k] = 0
	}
	return false
}

// advanceMixed steps an odometer whose digit i counts to len(sets[i]).
func advanceMixed(idx []int, sets [][]domain.Expr) bool {
	for k := len(idx) - 1; k >= 0; k-- {
		idx[k]++
		if idx[k] < len(sets[k]) {
			return true
		}
		idx[k] = 0
	}
	return false
}
