// Package energy classifies IEA electricity rows as renewable or not, groups
// them by year, country, product or sector, computes percentage shares and
// reshapes the result into tables ready to chart.
//
// Every function is a pure transformation over in-memory slices: nothing is
// cached or mutated between calls, so callers may run them concurrently.
package energy

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Record is one observation of the source table.
type Record struct {
	Country    string
	Product    string // produto ou sector, segundo a táboa
	TimePeriod string
	Year       int
	Month      int // 0 cando a fonte só ten resolución anual
	Value      float64
	Balance    string
}

// ErrBadPeriod is returned by ParsePeriod when no year can be found.
var ErrBadPeriod = errors.New("energy: unparseable time period")

var yearRe = regexp.MustCompile(`\b(\d{4})\b`)

// formatos aceptados para Time, en orde
var periodLayouts = []string{"January 2006", "Jan 2006", "2006-01", "01/2006"}

// ParsePeriod extracts year and month from a Time value such as
// "January 2024". Strings carrying only a year return month 0.
func ParsePeriod(s string) (year, month int, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), int(t.Month()), nil
		}
	}
	m := yearRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPeriod, s)
	}
	year, _ = strconv.Atoi(m[1])
	return year, 0, nil
}

// Years returns the distinct years present, ascending.
func Years(records []Record) []int {
	ys := lo.Uniq(lo.Map(records, func(r Record, _ int) int { return r.Year }))
	sort.Ints(ys)
	return ys
}

// LatestYear returns the most recent year, or 0 for an empty slice.
func LatestYear(records []Record) int {
	ys := Years(records)
	if len(ys) == 0 {
		return 0
	}
	return ys[len(ys)-1]
}

// Countries returns the distinct non-empty countries, sorted.
func Countries(records []Record) []string {
	return distinct(records, func(r Record) string { return r.Country })
}

// Products returns the distinct non-empty products or sectors, sorted.
func Products(records []Record) []string {
	return distinct(records, func(r Record) string { return r.Product })
}

func distinct(records []Record, f func(Record) string) []string {
	out := lo.Uniq(lo.FilterMap(records, func(r Record, _ int) (string, bool) {
		v := f(r)
		return v, v != ""
	}))
	sort.Strings(out)
	return out
}
