package main

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"tereborace.com/enerxia/energy"
)

// ==== Gráficas PNG (gonum/plot) ====
//
// Torta e treemap non existen en gonum: debúxanse como barras de cota
// (apiladas se a vista ten máis dunha columna).

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
	maxXLabels  = 24
)

// cores fixas para as categorías, o resto da paleta de plotutil
var categoryColors = map[string]color.Color{
	string(energy.Renewable):    color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	string(energy.NonRenewable): color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
}

func seriesColor(col string, j int) color.Color {
	if c, ok := categoryColors[col]; ok {
		return c
	}
	return plotutil.Color(j)
}

// renderChart debuxa o resultado e escribe o PNG en w
func renderChart(w io.Writer, res *energy.Result) error {
	p, err := buildPlot(res)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func buildPlot(res *energy.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = res.View.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = res.View.Unit
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if res.Empty() {
		p.Title.Text = res.View.Title + " (sen datos)"
		return p, nil
	}
	tbl := res.Table

	var err error
	switch res.View.Chart {
	case energy.ChartLine:
		err = addLines(p, tbl)
	case energy.ChartArea:
		err = addAreas(p, tbl)
	case energy.ChartStackedBar:
		err = addBars(p, tbl, true)
	case energy.ChartPie, energy.ChartTreemap:
		err = addBars(p, tbl, len(tbl.Columns) > 1)
	default:
		err = addBars(p, tbl, false)
	}
	if err != nil {
		return nil, err
	}
	setNominalX(p, tbl.Rows)
	return p, nil
}

// etiquetas do eixo X, saltando algunhas se hai demasiadas filas
func setNominalX(p *plot.Plot, labels []string) {
	step := int(math.Ceil(float64(len(labels)) / maxXLabels))
	if step < 1 {
		step = 1
	}
	ticks := make([]plot.Tick, 0, len(labels))
	for i, l := range labels {
		if i%step != 0 {
			l = ""
		}
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: l})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = -0.5
	p.X.Max = float64(len(labels)) - 0.5
	if len(labels) > 6 {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
}

// ancho de barra en función do número de filas
func barWidth(rows, groups int) vg.Length {
	w := float64(chartWidth) * 0.7 / float64(max(rows, 1)) / float64(max(groups, 1))
	return vg.Length(math.Max(2, math.Min(w, 30)))
}

func addBars(p *plot.Plot, tbl *energy.PivotTable, stacked bool) error {
	groups := len(tbl.Columns)
	if stacked {
		groups = 1
	}
	width := barWidth(len(tbl.Rows), groups)

	var below *plotter.BarChart
	for j, col := range tbl.Columns {
		bars, err := plotter.NewBarChart(plotter.Values(tbl.Column(col)), width)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = seriesColor(col, j)
		if stacked {
			if below != nil {
				bars.StackOn(below)
			}
			below = bars
		} else {
			// barras agrupadas arredor do centro de cada fila
			bars.Offset = width * vg.Length(float64(j)-float64(groups-1)/2)
		}
		p.Add(bars)
		if len(tbl.Columns) > 1 {
			p.Legend.Add(col, bars)
		}
	}
	return nil
}

func addLines(p *plot.Plot, tbl *energy.PivotTable) error {
	for j, col := range tbl.Columns {
		vals := tbl.Column(col)
		pts := make(plotter.XYs, len(vals))
		for i, v := range vals {
			pts[i] = plotter.XY{X: float64(i), Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = seriesColor(col, j)
		line.Width = vg.Points(2)
		p.Add(line)
		if len(tbl.Columns) > 1 {
			p.Legend.Add(col, line)
		}
	}
	return nil
}

// áreas apiladas: acumulado por columna, debuxado de arriba abaixo
func addAreas(p *plot.Plot, tbl *energy.PivotTable) error {
	n := len(tbl.Rows)
	cum := make([]plotter.XYs, len(tbl.Columns))
	acc := make([]float64, n)
	for j, col := range tbl.Columns {
		vals := tbl.Column(col)
		pts := make(plotter.XYs, n)
		for i := 0; i < n; i++ {
			acc[i] += vals[i]
			pts[i] = plotter.XY{X: float64(i), Y: acc[i]}
		}
		cum[j] = pts
	}
	for j := len(cum) - 1; j >= 0; j-- {
		line, err := plotter.NewLine(cum[j])
		if err != nil {
			return err
		}
		c := seriesColor(tbl.Columns[j], j)
		line.Color = c
		line.FillColor = c
		p.Add(line)
		p.Legend.Add(tbl.Columns[j], line)
	}
	p.Y.Min = 0
	return nil
}
