package energy

import "sort"

// TopN returns the n largest aggregates by Total, descending. Ties keep
// their input order. n <= 0 returns every aggregate sorted.
func TopN(aggs []AggregatedValue, n int) []AggregatedValue {
	out := append([]AggregatedValue(nil), aggs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
