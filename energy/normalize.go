package energy

// PercentageRow is an aggregate expressed as a share of its parent group.
type PercentageRow struct {
	Key         Key
	Total       float64
	ParentTotal float64
	Percentage  float64
}

// ParentKey maps a key to the key of its parent group.
type ParentKey func(Key) Key

// Prefix returns a ParentKey that keeps the first n parts of a key.
// Prefix(0) makes the grand total the parent of every row.
func Prefix(n int) ParentKey {
	return func(k Key) Key {
		if n >= len(k) {
			return k
		}
		return k[:n]
	}
}

// PercentageOfParent computes each aggregate's share of the sum of all
// aggregates with the same parent key.
func PercentageOfParent(aggs []AggregatedValue, parent ParentKey) []PercentageRow {
	totals := make(map[string]float64)
	for _, a := range aggs {
		totals[parent(a.Key).id()] += a.Total
	}
	return percentages(aggs, parent, totals)
}

// PercentageOfTotals is like PercentageOfParent but reads parent totals from
// a separate aggregation keyed by the parent key. Parents missing from
// totals have a zero total.
func PercentageOfTotals(aggs []AggregatedValue, parent ParentKey, totals []AggregatedValue) []PercentageRow {
	m := make(map[string]float64, len(totals))
	for _, t := range totals {
		m[t.Key.id()] += t.Total
	}
	return percentages(aggs, parent, m)
}

func percentages(aggs []AggregatedValue, parent ParentKey, totals map[string]float64) []PercentageRow {
	out := make([]PercentageRow, 0, len(aggs))
	for _, a := range aggs {
		pt := totals[parent(a.Key).id()]
		row := PercentageRow{Key: a.Key, Total: a.Total, ParentTotal: pt}
		if pt != 0 {
			row.Percentage = a.Total / pt * 100
		}
		out = append(out, row)
	}
	return out
}
