package report

import (
	"errors"
	"fmt"
	"image/color"

	"fintrack/internal/core"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when there is nothing to plot or export.
var ErrNoData = errors.New("no data available")

var (
	incomeRGB  = color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff}
	expenseRGB = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// splitSeries separates rows into income and expense points, x being the
// unix time of the date and y the amount.
func splitSeries(rows []core.Transaction) (income, expense plotter.XYs) {
	for _, r := range rows {
		pt := plotter.XY{X: float64(r.Date.Unix()), Y: r.Amount.InexactFloat64()}
		switch r.Category {
		case core.Income:
			income = append(income, pt)
		case core.Expense:
			expense = append(expense, pt)
		}
	}
	return income, expense
}

// Scatter renders amount over date, one colored series per category, and
// saves the chart to path. The image format follows the file extension.
func Scatter(rows []core.Transaction, path string) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Income and Expenses Over Time"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Amount"
	p.X.Tick.Marker = plot.TimeTicks{Format: core.DateLayout}
	p.Add(plotter.NewGrid())

	income, expense := splitSeries(rows)
	series := []struct {
		name string
		pts  plotter.XYs
		rgb  color.RGBA
	}{
		{core.Income.String(), income, incomeRGB},
		{core.Expense.String(), expense, expenseRGB},
	}
	for _, s := range series {
		if len(s.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(s.pts)
		if err != nil {
			return fmt.Errorf("build %s series: %w", s.name, err)
		}
		sc.GlyphStyle.Color = s.rgb
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
		p.Legend.Add(s.name, sc)
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
