package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHostCounts parses a comma separated list of host counts such as "50, 20,10".
// Values are not range checked, a non-positive count is left for the allocator to reject.
func ParseHostCounts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty host count list")
	}

	fields := strings.Split(s, ",")
	counts := make([]int, 0, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid host count %q at position %d: %w", field, i+1, err)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

// JoinInts is the inverse of ParseHostCounts
func JoinInts(values []int) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = strconv.Itoa(v)
	}
	return strings.Join(strs, ",")
}
