package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/dateq/pkg/domain"
)

// partitions enumerates the searchable splits of digits into consecutive
// groups of 1..MaxGroupDigits digits. The recursive walk is bounded by
// maxGroups; the trivial all-single-digit partition is always included
// even beyond that bound, and 8-digit inputs get three hand-authored
// date-shaped splits (DD|MM|YYYY and friends). Duplicates (by group
// values) keep their first occurrence.
//
// Order is deterministic: fewest groups first, and within a group count
// partitions with more multi-digit groups first; the stable sort keeps
// first-seen order for ties.
func partitions(digits domain.DigitSequence, maxGroups int) []domain.Partition {
	var collected []domain.Partition
	var cur domain.Partition

	var walk func(start int)
	walk = func(start int) {
		if len(cur) > maxGroups {
			return
		}
		if start == len(digits) {
			if len(cur) >= 2 {
				collected = append(collected, append(domain.Partition(nil), cur...))
			}
			return
		}
		if len(digits)-start > (maxGroups-len(cur))*domain.MaxGroupDigits {
			return
		}
		for size := 1; size <= domain.MaxGroupDigits && start+size <= len(digits); size++ {
			group := domain.Group(digits[start : start+size])
			if group.Value() > domain.MaxGroupValue {
				continue
			}
			cur = append(cur, group)
			walk(start + size)
			cur = cur[:len(cur)-1]
		}
	}
	walk(0)

	collected = append(collected, cut(digits, splitAllSingles(len(digits))...))
	if len(digits) == 8 {
		collected = append(collected,
			cut(digits, 2, 2, 4),
			cut(digits, 1, 2, 2, 3),
			cut(digits, 1, 3, 4),
		)
	}

	seen := make(map[string]struct{}, len(collected))
	uniq := make([]domain.Partition, 0, len(collected))
	for _, p := range collected {
		key := partitionKey(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, p)
	}

	sort.SliceStable(uniq, func(i, j int) bool {
		if len(uniq[i]) != len(uniq[j]) {
			return len(uniq[i]) < len(uniq[j])
		}
		return uniq[i].MultiDigitGroups() > uniq[j].MultiDigitGroups()
	})
	return uniq
}

// cut slices digits into groups of the given sizes. Sizes must sum to
// len(digits).
func cut(digits domain.DigitSequence, sizes ...int) domain.Partition {
	p := make(domain.Partition, 0, len(sizes))
	start := 0
	for _, size := range sizes {
		p = append(p, domain.Group(digits[start:start+size]))
		start += size
	}
	return p
}

func splitAllSingles(n int) []int {
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = 1
	}
	return sizes
}

// partitionKey identifies a partition by its group values, matching how
// duplicates are folded: "0|00" and "00|0" name the same search.
func partitionKey(p domain.Partition) string {
	var b strings.Builder
	for i, g := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(g.Value()))
	}
	return b.String()
}
