package energy

import "github.com/samber/lo"

// Category is the classification of an energy product.
type Category string

const (
	Renewable    Category = "Renewable"
	NonRenewable Category = "Non-Renewable"
	Excluded     Category = "Excluded"
)

// DefaultExcluded are aggregate or meta labels that would double count
// production if summed with the individual products.
var DefaultExcluded = []string{
	"Electricity",
	"Total Combustible Fuels",
	"Total Renewables (Hydro, Geo, Solar, Wind, Other)",
	"Not Specified",
	"Data is estimated for this month",
}

// DefaultRenewable are the renewable sources reported by the IEA table.
var DefaultRenewable = []string{
	"Hydro",
	"Wind",
	"Geothermal",
	"Combustible Renewables",
	"Solar",
	"Other Renewables",
}

// ClassifierConfig holds the two label sets shared by every view.
type ClassifierConfig struct {
	Excluded  []string `yaml:"excluded"`
	Renewable []string `yaml:"renewable"`
}

// Classifier maps product labels to a Category. It is safe for concurrent
// use once built.
type Classifier struct {
	excluded  map[string]struct{}
	renewable map[string]struct{}
}

// NewClassifier builds a classifier from the two label sets. A label present
// in both sets is Excluded.
func NewClassifier(excluded, renewable []string) *Classifier {
	return &Classifier{
		excluded:  toSet(excluded),
		renewable: toSet(renewable),
	}
}

// DefaultClassifier uses DefaultExcluded and DefaultRenewable.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultExcluded, DefaultRenewable)
}

// Classifier builds a classifier, falling back to the defaults for empty sets.
func (c ClassifierConfig) Classifier() *Classifier {
	ex, ren := c.Excluded, c.Renewable
	if len(ex) == 0 {
		ex = DefaultExcluded
	}
	if len(ren) == 0 {
		ren = DefaultRenewable
	}
	return NewClassifier(ex, ren)
}

// Classify returns the category of a product label. Every string maps to
// exactly one category.
func (c *Classifier) Classify(product string) Category {
	if _, ok := c.excluded[product]; ok {
		return Excluded
	}
	if _, ok := c.renewable[product]; ok {
		return Renewable
	}
	return NonRenewable
}

func toSet(items []string) map[string]struct{} {
	return lo.SliceToMap(items, func(s string) (string, struct{}) { return s, struct{}{} })
}
