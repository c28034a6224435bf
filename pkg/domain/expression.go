package domain

import (
	"math"
	"strconv"
)

// Operator is an arithmetic operator drawn from an OperatorSet.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	// OpRoot is not an infix operator: in an operator sequence it folds the
	// accumulated expression into a Root node, root(acc, next).
	OpRoot
)

// String returns the operator symbol as it appears in expression text.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpRoot:
		return "root"
	}
	return "?"
}

// Precedence orders infix binding strength: + - below * / below ^.
func (op Operator) Precedence() int {
	switch op {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv:
		return 2
	case OpPow:
		return 3
	}
	return 4
}

// RightAssociative reports whether chains of op group from the right.
// Only power does: 2 ^ 3 ^ 2 means 2 ^ (3 ^ 2).
func (op Operator) RightAssociative() bool {
	return op == OpPow
}

// Expr is a node in a typed arithmetic expression tree. Candidates are
// built as trees and evaluated by structural recursion; expression text
// is rendered from the tree, never the other way around.
type Expr interface {
	// Eval computes the value of the expression. Failures are classified
	// by the sentinel errors ErrDivisionByZero, ErrFactorialDomain,
	// ErrInvalidResult and ErrOverflow.
	Eval() (float64, error)
	// String renders canonical infix text with minimal parentheses.
	String() string
}

// Literal is an integer leaf (a group value, 0..MaxGroupValue in practice).
type Literal struct {
	Value int
}

// BinaryOp applies an infix operator to two subtrees.
type BinaryOp struct {
	Op    Operator
	Left  Expr
	Right Expr
}

// UnaryFactorial is the factorial of its operand, displayed fact(x).
type UnaryFactorial struct {
	Operand Expr
}

// Root is the Degree-th root of Radicand, displayed root(a,b).
type Root struct {
	Radicand Expr
	Degree   Expr
}

// factorials holds n! for n in 0..MaxFactorial.
var factorials = [MaxFactorial + 1]float64{
	1, 1, 2, 6, 24, 120, 720, 5040, 40320, 362880, 3628800, 39916800, 479001600,
}

func (l Literal) Eval() (float64, error) {
	return float64(l.Value), nil
}

func (b BinaryOp) Eval() (float64, error) {
	left, err := b.Left.Eval()
	if err != nil {
		return 0, err
	}
	right, err := b.Right.Eval()
	if err != nil {
		return 0, err
	}
	var v float64
	switch b.Op {
	case OpAdd:
		v = left + right
	case OpSub:
		v = left - right
	case OpMul:
		v = left * right
	case OpDiv:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		v = left / right
	case OpPow:
		if left == 0 && right < 0 {
			return 0, ErrDivisionByZero
		}
		v = math.Pow(left, right)
	default:
		return 0, ErrInvalidResult
	}
	return checkReal(v)
}

func (f UnaryFactorial) Eval() (float64, error) {
	v, err := f.Operand.Eval()
	if err != nil {
		return 0, err
	}
	if v < 0 || v != math.Trunc(v) || v > MaxFactorial {
		return 0, ErrFactorialDomain
	}
	return factorials[int(v)], nil
}

func (r Root) Eval() (float64, error) {
	radicand, err := r.Radicand.Eval()
	if err != nil {
		return 0, err
	}
	degree, err := r.Degree.Eval()
	if err != nil {
		return 0, err
	}
	if degree == 0 {
		return 0, ErrDivisionByZero
	}
	// Even roots (and any fractional power) of negatives go complex;
	// math.Pow yields NaN and checkReal rejects it.
	return checkReal(math.Pow(radicand, 1/degree))
}

// checkReal rejects values outside the real float64 range.
func checkReal(v float64) (float64, error) {
	if math.IsNaN(v) {
		return 0, ErrInvalidResult
	}
	if math.IsInf(v, 0) {
		return 0, ErrOverflow
	}
	return v, nil
}

func (l Literal) String() string {
	return strconv.Itoa(l.Value)
}

func (f UnaryFactorial) String() string {
	return "fact(" + f.Operand.String() + ")"
}

func (r Root) String() string {
	return "root(" + r.Radicand.String() + "," + r.Degree.String() + ")"
}

func (b BinaryOp) String() string {
	left := b.Left.String()
	if parenthesize(b.Left, b.Op, false) {
		left = "(" + left + ")"
	}
	right := b.Right.String()
	if parenthesize(b.Right, b.Op, true) {
		right = "(" + right + ")"
	}
	return left + " " + b.Op.String() + " " + right
}

// parenthesize decides whether a child subtree needs parentheses under
// parent. Literals, fact() and root() are atoms. Equal precedence needs
// parentheses on the side the operator does not associate toward.
func parenthesize(child Expr, parent Operator, rightSide bool) bool {
	c, ok := child.(BinaryOp)
	if !ok {
		return false
	}
	switch {
	case c.Op.Precedence() < parent.Precedence():
		return true
	case c.Op.Precedence() > parent.Precedence():
		return false
	case parent.RightAssociative():
		return !rightSide
	default:
		return rightSide
	}
}
