package analysis

import (
	"math"
	"sort"

	"github.com/nurpe/checkbook-insights/internal/model"
)

// Cap bounds v at limit. Cap(Cap(v)) == Cap(v).
func Cap(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

// eligible reports whether the record carries a positive commitment.
func eligible(r model.VendorRecord) bool {
	return r.SDOCommitment != nil && *r.SDOCommitment > 0
}

// quantile interpolates linearly between closest ranks of an ascending slice,
// the same estimator spreadsheet PERCENTILE.INC uses.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return quantile(sorted, 0.5)
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	s[v] = struct{}{}
}
