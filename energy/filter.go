package energy

import "strings"

// Mode restricts records by energy type.
type Mode string

const (
	ModeBoth         Mode = "ambas"
	ModeRenewable    Mode = "renovables"
	ModeNonRenewable Mode = "no_renovables"
)

// Modes lists the accepted modes in selector order.
var Modes = []Mode{ModeBoth, ModeRenewable, ModeNonRenewable}

// ParseMode accepts the mode names, returning ModeBoth for anything else.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRenewable:
		return ModeRenewable
	case ModeNonRenewable:
		return ModeNonRenewable
	}
	return ModeBoth
}

// sentinelas de "sen filtro de país"
var allCountries = map[string]bool{"": true, "all": true, "todos": true, "todas": true}

// IsAllCountries reports whether a country selector means "no restriction".
func IsAllCountries(country string) bool {
	return allCountries[strings.ToLower(strings.TrimSpace(country))]
}

// FilterOptions restricts a record set. Zero values mean "no restriction".
type FilterOptions struct {
	Country   string
	Countries []string // quedan os que estean na lista
	Year      int
	Month     int
	Balance   string
	Products  []string
	Mode      Mode

	// KeepExcluded retains aggregate labels. Only used to compute parent
	// totals over every row of the table.
	KeepExcluded bool
}

// FilterRecords returns the records that pass every restriction in opts.
// The result is never nil; an empty slice is a valid outcome.
func FilterRecords(records []Record, c *Classifier, opts FilterOptions) []Record {
	countries := toSet(opts.Countries)
	products := toSet(opts.Products)
	anyCountry := IsAllCountries(opts.Country)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		cat := c.Classify(r.Product)
		if cat == Excluded && !opts.KeepExcluded {
			continue
		}
		if !anyCountry && r.Country != opts.Country {
			continue
		}
		if len(countries) > 0 {
			if _, ok := countries[r.Country]; !ok {
				continue
			}
		}
		if opts.Year != 0 && r.Year != opts.Year {
			continue
		}
		if opts.Month != 0 && r.Month != opts.Month {
			continue
		}
		if opts.Balance != "" && r.Balance != opts.Balance {
			continue
		}
		if len(products) > 0 {
			if _, ok := products[r.Product]; !ok {
				continue
			}
		}
		switch opts.Mode {
		case ModeRenewable:
			if cat != Renewable {
				continue
			}
		case ModeNonRenewable:
			if cat != NonRenewable {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
