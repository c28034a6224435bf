package engine

import "github.com/aretw0/dateq/pkg/domain"

// tokenVariants returns the expression atoms one group value can stand
// for: always the plain literal, plus the factorial variant for single
// digits when factorials are enabled. Multi-digit values never get a
// factorial variant; the evaluator's domain cap covers the general case.
func tokenVariants(value int, factorial bool) []domain.Expr {
	variants := make([]domain.Expr, 1, 2)
	variants[0] = domain.Literal{Value: value}
	if factorial && value <= 9 {
		variants = append(variants, domain.UnaryFactorial{Operand: domain.Literal{Value: value}})
	}
	return variants
}
