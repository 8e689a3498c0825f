package energy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Dimension selects one grouping value from a record.
type Dimension struct {
	Name string
	Of   func(Record) string
}

var (
	ByYear    = Dimension{Name: "Year", Of: func(r Record) string { return strconv.Itoa(r.Year) }}
	ByMonth   = Dimension{Name: "YearMonth", Of: func(r Record) string { return fmt.Sprintf("%04d-%02d", r.Year, r.Month) }}
	ByCountry = Dimension{Name: "Country", Of: func(r Record) string { return r.Country }}
	ByProduct = Dimension{Name: "Product", Of: func(r Record) string { return r.Product }}
	ByBalance = Dimension{Name: "Balance", Of: func(r Record) string { return r.Balance }}

	// ByMonthOfYear groups the months of one year ("01".."12").
	ByMonthOfYear = Dimension{Name: "Month", Of: func(r Record) string { return fmt.Sprintf("%02d", r.Month) }}
)

// ByCategory groups by the classifier's category.
func ByCategory(c *Classifier) Dimension {
	return Dimension{Name: "Energy_Type", Of: func(r Record) string { return string(c.Classify(r.Product)) }}
}

// Key is an ordered tuple of dimension values.
type Key []string

func (k Key) String() string { return strings.Join(k, " / ") }

// Last returns the final part of the key, or "" for an empty key.
func (k Key) Last() string {
	if len(k) == 0 {
		return ""
	}
	return k[len(k)-1]
}

// separador interno para usar a clave como índice de mapa
const keySep = "\x1f"

func (k Key) id() string { return strings.Join(k, keySep) }

// AggregatedValue is the sum of Value over every record sharing Key.
type AggregatedValue struct {
	Key   Key
	Total float64
	Count int
}

// Aggregate sums Value grouped by the tuple of dimension values. Groups
// without records do not appear. Output is sorted by natural key order.
//
// Values are summed in ascending order inside each group so that the totals
// do not depend on the order of the input.
func Aggregate(records []Record, dims ...Dimension) []AggregatedValue {
	groups := make(map[string][]float64)
	keys := make(map[string]Key)
	for _, r := range records {
		k := make(Key, len(dims))
		for i, d := range dims {
			k[i] = d.Of(r)
		}
		id := k.id()
		if _, ok := keys[id]; !ok {
			keys[id] = k
		}
		groups[id] = append(groups[id], r.Value)
	}

	out := make([]AggregatedValue, 0, len(groups))
	for id, vals := range groups {
		sort.Float64s(vals)
		var total float64
		for _, v := range vals {
			total += v
		}
		out = append(out, AggregatedValue{Key: keys[id], Total: total, Count: len(vals)})
	}
	sort.Slice(out, func(i, j int) bool { return keyLess(out[i].Key, out[j].Key) })
	return out
}

// Sum adds the totals of aggs.
func Sum(aggs []AggregatedValue) float64 {
	var total float64
	for _, a := range aggs {
		total += a.Total
	}
	return total
}

func keyLess(a, b Key) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return naturalLess(a[i], b[i])
		}
	}
	return len(a) < len(b)
}

// naturalLess compara numericamente se ambos son enteiros (anos), senón como texto.
func naturalLess(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}
