package energy

import (
	"fmt"

	"github.com/samber/lo"
)

// Source names one of the tables a view reads from.
type Source string

const (
	SourceElectricity Source = "electricity"
	SourceConsumption Source = "consumption"
	SourceEmissions   Source = "emissions"
)

// Sources lists every table a view can read from.
var Sources = []Source{SourceElectricity, SourceConsumption, SourceEmissions}

// ChartKind is a hint for the rendering layer.
type ChartKind string

const (
	ChartBar        ChartKind = "bar"
	ChartStackedBar ChartKind = "stacked-bar"
	ChartLine       ChartKind = "line"
	ChartArea       ChartKind = "area"
	ChartPie        ChartKind = "pie"
	ChartTreemap    ChartKind = "treemap"
)

// DimensionID names a grouping dimension in a ViewSpec.
type DimensionID string

const (
	DimYear        DimensionID = "year"
	DimMonth       DimensionID = "month"
	DimMonthOfYear DimensionID = "month-of-year"
	DimCountry     DimensionID = "country"
	DimProduct     DimensionID = "product"
	DimBalance     DimensionID = "balance"
	DimCategory    DimensionID = "category"
)

// NetProduction is the balance kind used before comparing sources.
const NetProduction = "Net Electricity Production"

// ViewSpec is a declarative pipeline invocation behind one dashboard chart.
type ViewSpec struct {
	ID      string
	Section string
	Title   string
	Source  Source
	Chart   ChartKind
	Unit    string

	// restricións fixas
	Balance  string
	Mode     Mode
	Products []string

	// selectores que aplican
	UseCountry bool
	UseYear    bool
	UseMode    bool
	UseSector  bool

	GroupBy     []DimensionID
	Percent     bool
	ParentDepth int

	// Rank keeps only the top Options.TopN groups, largest first.
	Rank bool
	// TopCountries restricts records to the top Options.TopN countries of
	// the selected year.
	TopCountries bool

	Columns []string
}

// Section groups the views of one dashboard menu entry.
type Section struct {
	ID    string
	Title string
	Views []ViewSpec
}

// Selection carries the user's selector values. Zero values mean "any",
// except Year: 0 resolves to the latest year in the data for views that
// filter by year.
type Selection struct {
	Country string
	Year    int
	Mode    Mode
	Sector  string
}

// PercentScope decides which rows make up a percentage's parent total.
type PercentScope string

const (
	// ScopeClassified computes parents over the non-excluded rows only.
	ScopeClassified PercentScope = "classified"
	// ScopeAll also counts rows whose product is Excluded.
	ScopeAll PercentScope = "all"
)

// ParsePercentScope returns ScopeClassified for unknown names.
func ParsePercentScope(s string) PercentScope {
	if PercentScope(s) == ScopeAll {
		return ScopeAll
	}
	return ScopeClassified
}

// Options tunes a Runner.
type Options struct {
	Scope       PercentScope
	ColumnOrder ColumnOrder
	TopN        int
}

// DefaultOptions match the behaviour of the original dashboards.
func DefaultOptions() Options {
	return Options{Scope: ScopeClassified, ColumnOrder: Canonical, TopN: 10}
}

// Result is the output of one view run.
type Result struct {
	View        ViewSpec
	Selection   Selection // coa selección xa resolta (ano por defecto)
	Records     int
	Aggregates  []AggregatedValue
	Percentages []PercentageRow
	Table       *PivotTable
}

// Empty reports whether nothing matched the selection.
func (r *Result) Empty() bool { return r == nil || r.Table.Empty() }

// ValueLabel is the header used when the table has a single value column.
func (v ViewSpec) ValueLabel() string {
	if v.Percent {
		return "Percentage"
	}
	return "Value"
}

// Runner executes views with a shared classifier.
type Runner struct {
	Classifier *Classifier
	Options    Options
}

// NewRunner returns a runner with defaults filled in.
func NewRunner(c *Classifier, opts Options) *Runner {
	if c == nil {
		c = DefaultClassifier()
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.Scope == "" {
		opts.Scope = ScopeClassified
	}
	if opts.ColumnOrder == "" {
		opts.ColumnOrder = Canonical
	}
	return &Runner{Classifier: c, Options: opts}
}

// Run filters, aggregates, normalizes and pivots records for view v.
// An empty Result is returned, without error, when no record matches.
func (rn *Runner) Run(v ViewSpec, records []Record, sel Selection) (*Result, error) {
	dims, err := rn.dimensions(v.GroupBy)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", v.ID, err)
	}
	if v.Percent && (v.ParentDepth < 0 || v.ParentDepth >= len(dims)) {
		return nil, fmt.Errorf("view %s: parent depth %d out of range", v.ID, v.ParentDepth)
	}

	if (v.UseYear || v.TopCountries) && sel.Year == 0 {
		sel.Year = LatestYear(records)
	}
	opts := rn.filterOptions(v, sel)
	res := &Result{View: v, Selection: sel}

	if v.TopCountries {
		ranked := TopN(Aggregate(FilterRecords(records, rn.Classifier, FilterOptions{Year: sel.Year, Balance: v.Balance}), ByCountry), rn.Options.TopN)
		if len(ranked) == 0 {
			res.Table = &PivotTable{RowHeader: dims[0].Name}
			return res, nil
		}
		opts.Countries = lo.Map(ranked, func(a AggregatedValue, _ int) string { return a.Key.Last() })
	}

	filtered := FilterRecords(records, rn.Classifier, opts)
	res.Records = len(filtered)
	res.Aggregates = Aggregate(filtered, dims...)
	if v.Rank {
		res.Aggregates = TopN(res.Aggregates, rn.Options.TopN)
	}

	if v.Percent {
		parent := Prefix(v.ParentDepth)
		if rn.Options.Scope == ScopeAll {
			all := opts
			all.KeepExcluded = true
			totals := Aggregate(FilterRecords(records, rn.Classifier, all), dims[:v.ParentDepth]...)
			res.Percentages = PercentageOfTotals(res.Aggregates, parent, totals)
		} else {
			res.Percentages = PercentageOfParent(res.Aggregates, parent)
		}
	}

	res.Table, err = rn.pivot(v, dims, res)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", v.ID, err)
	}
	return res, nil
}

func (rn *Runner) filterOptions(v ViewSpec, sel Selection) FilterOptions {
	opts := FilterOptions{Balance: v.Balance, Products: v.Products, Mode: v.Mode}
	if v.UseCountry {
		opts.Country = sel.Country
	}
	if v.UseYear {
		opts.Year = sel.Year
	}
	if v.UseMode && v.Mode == "" {
		opts.Mode = sel.Mode
	}
	if v.UseSector && sel.Sector != "" {
		opts.Products = []string{sel.Sector}
	}
	return opts
}

func (rn *Runner) pivot(v ViewSpec, dims []Dimension, res *Result) (*PivotTable, error) {
	type cell struct {
		key   Key
		value float64
	}
	var cells []cell
	if v.Percent {
		cells = lo.Map(res.Percentages, func(p PercentageRow, _ int) cell { return cell{p.Key, p.Percentage} })
	} else {
		cells = lo.Map(res.Aggregates, func(a AggregatedValue, _ int) cell { return cell{a.Key, a.Total} })
	}

	colKey := func(c cell) string { return c.key.Last() }
	if len(dims) == 1 {
		label := v.ValueLabel()
		colKey = func(cell) string { return label }
	}
	return Pivot(cells,
		func(c cell) string { return c.key[0] },
		colKey,
		func(c cell) float64 { return c.value },
		PivotOptions{
			Columns:      v.Columns,
			ColumnOrder:  rn.Options.ColumnOrder,
			KeepRowOrder: v.Rank,
			RowHeader:    dims[0].Name,
		})
}

func (rn *Runner) dimensions(ids []DimensionID) ([]Dimension, error) {
	if len(ids) == 0 || len(ids) > 2 {
		return nil, fmt.Errorf("need one or two dimensions, got %d", len(ids))
	}
	out := make([]Dimension, 0, len(ids))
	for _, id := range ids {
		switch id {
		case DimYear:
			out = append(out, ByYear)
		case DimMonth:
			out = append(out, ByMonth)
		case DimMonthOfYear:
			out = append(out, ByMonthOfYear)
		case DimCountry:
			out = append(out, ByCountry)
		case DimProduct:
			out = append(out, ByProduct)
		case DimBalance:
			out = append(out, ByBalance)
		case DimCategory:
			out = append(out, ByCategory(rn.Classifier))
		default:
			return nil, fmt.Errorf("unknown dimension %q", id)
		}
	}
	return out, nil
}
