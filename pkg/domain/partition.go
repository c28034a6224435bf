package domain

import "strings"

// Group is a run of consecutive digits taken from a DigitSequence.
// Leading zeros are preserved in the digit form ("09") and collapse in
// the numeric form (9), matching how groups appear in expressions.
type Group []int

// Value returns the numeric value of the group.
func (g Group) Value() int {
	v := 0
	for _, d := range g {
		v = v*10 + d
	}
	return v
}

// String returns the group's digit string, leading zeros preserved.
func (g Group) String() string {
	return DigitSequence(g).String()
}

// Partition is an ordered split of a digit sequence into consecutive groups.
type Partition []Group

// Values returns the numeric value of each group in order.
func (p Partition) Values() []int {
	vals := make([]int, len(p))
	for i, g := range p {
		vals[i] = g.Value()
	}
	return vals
}

// Concat joins the groups back into the digit string they were cut from.
func (p Partition) Concat() string {
	var b strings.Builder
	for _, g := range p {
		b.WriteString(g.String())
	}
	return b.String()
}

// String renders the partition with group boundaries, e.g. "09|05|2005".
func (p Partition) String() string {
	parts := make([]string, len(p))
	for i, g := range p {
		parts[i] = g.String()
	}
	return strings.Join(parts, "|")
}

// MultiDigitGroups counts groups whose value exceeds 9. Partition ordering
// prefers mixes of multi-digit groups within the same group count.
func (p Partition) MultiDigitGroups() int {
	n := 0
	for _, g := range p {
		if g.Value() > 9 {
			n++
		}
	}
	return n
}
