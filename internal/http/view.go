package http

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"txdash/internal/core"
	"txdash/internal/dataset"
)

const (
	previewRows   = 5
	histogramBins = 30
	topMCCCount   = 10
)

// Chart payloads are marshaled into the page for the client-side renderers.

type histChart struct {
	Labels  []string  `json:"labels"`
	Counts  []int     `json:"counts"`
	Density []float64 `json:"density"`
}

type spreadBox struct {
	Group  string  `json:"group"`
	Low    float64 `json:"low"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	High   float64 `json:"high"`
}

type spreadChart struct {
	Groups []spreadBox `json:"groups"`
}

type barChart struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

type scatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type scatterChart struct {
	Points []scatterPoint `json:"points"`
}

type lineChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type describeRow struct {
	Name   string
	Count  int
	Mean   string
	Std    string
	Min    string
	Q1     string
	Median string
	Q3     string
	Max    string
}

type currencyView struct {
	Unique []string
	Counts []core.ValueCount
}

type balanceRow struct {
	Raw     string
	Derived string
}

// dashboardView is everything one page render needs, computed in a single
// pass over one dataset snapshot and cached by source fingerprint.
type dashboardView struct {
	GeneratedAt time.Time
	LoadError   string

	RowCount    int
	ColumnCount int
	Columns     []string
	Preview     [][]string
	Schema      []core.ColumnInfo
	Describe    []describeRow

	Currency        *currencyView
	CurrencyWarning string

	BalancePreview []balanceRow
	BalanceWarning string

	Distribution        *histChart
	DistributionWarning string

	Spread        *spreadChart
	SpreadWarning string

	TopMCC        *barChart
	TopMCCWarning string

	Scatter        *scatterChart
	ScatterWarning string

	Series        *lineChart
	SeriesWarning string
}

// buildDashboardView runs the full load → derive → aggregate pass. A load
// failure yields a view carrying only LoadError; every later failure stays
// local to its panel.
func buildDashboardView(ctx context.Context, src dataset.Source) dashboardView {
	view := dashboardView{GeneratedAt: time.Now()}

	d, err := src.Load(ctx)
	if err != nil {
		view.LoadError = fmt.Sprintf("No data loaded: %v", err)
		return view
	}

	// One-time derived column; a missing balances column only disables the
	// panels that need it.
	if derived, err := core.DeriveTotalBalance(d); err != nil {
		view.BalanceWarning = columnWarning(core.ColBalances)
	} else {
		d = derived
		n := previewRows
		if n > d.RowCount() {
			n = d.RowCount()
		}
		for i := 0; i < n; i++ {
			view.BalancePreview = append(view.BalancePreview, balanceRow{
				Raw:     d.Cell(i, core.ColBalances),
				Derived: d.Cell(i, core.ColTotalBalance),
			})
		}
	}

	view.RowCount = d.RowCount()
	view.ColumnCount = d.ColumnCount()
	view.Columns = d.Columns()
	view.Preview = d.Head(previewRows)
	view.Schema = core.SchemaSummary(d)
	for _, desc := range core.DescribeNumeric(d) {
		view.Describe = append(view.Describe, describeRow{
			Name:   desc.Name,
			Count:  desc.Stats.Count,
			Mean:   formatStat(desc.Stats.Mean),
			Std:    formatStat(desc.Stats.Std),
			Min:    formatStat(desc.Stats.Min),
			Q1:     formatStat(desc.Stats.Q1),
			Median: formatStat(desc.Stats.Median),
			Q3:     formatStat(desc.Stats.Q3),
			Max:    formatStat(desc.Stats.Max),
		})
	}

	if breakdown, err := core.BuildCurrencyBreakdown(d); err != nil {
		view.CurrencyWarning = columnWarning(core.ColCurrency)
	} else {
		view.Currency = &currencyView{Unique: breakdown.Unique, Counts: breakdown.Counts}
	}

	if hist, err := core.BuildDistribution(d, histogramBins); err != nil {
		view.DistributionWarning = columnWarning(core.ColAmount)
	} else {
		view.Distribution = toHistChart(hist, d)
	}

	if spreads, err := core.BuildGroupSpread(d); err != nil {
		view.SpreadWarning = columnWarning(core.ColAmount, core.ColCurrency)
	} else {
		chart := &spreadChart{}
		for _, s := range spreads {
			chart.Groups = append(chart.Groups, spreadBox{
				Group: s.Group, Low: s.WhiskerLow, Q1: s.Q1,
				Median: s.Median, Q3: s.Q3, High: s.WhiskerHigh,
			})
		}
		view.Spread = chart
	}

	if top, err := core.BuildTopMCC(d, topMCCCount); err != nil {
		view.TopMCCWarning = columnWarning(core.ColMCC)
	} else {
		chart := &barChart{}
		for _, vc := range top {
			chart.Labels = append(chart.Labels, vc.Value)
			chart.Counts = append(chart.Counts, vc.Count)
		}
		view.TopMCC = chart
	}

	if points, err := core.BuildCorrelation(d); err != nil {
		view.ScatterWarning = columnWarning(core.ColAmount, core.ColTotalBalance)
	} else {
		chart := &scatterChart{}
		for _, p := range points {
			chart.Points = append(chart.Points, scatterPoint{X: p.X, Y: p.Y})
		}
		view.Scatter = chart
	}

	if series, err := core.BuildDailySeries(d); err != nil {
		if d.HasColumn(core.ColAmount) && d.HasColumn(core.ColTimestamp) {
			view.SeriesWarning = fmt.Sprintf("Error processing %s column: %v", core.ColTimestamp, err)
		} else {
			view.SeriesWarning = columnWarning(core.ColAmount, core.ColTimestamp)
		}
	} else {
		chart := &lineChart{}
		for _, p := range series {
			chart.Labels = append(chart.Labels, p.Day.Format("2006-01-02"))
			chart.Values = append(chart.Values, p.Sum)
		}
		view.Series = chart
	}

	return view
}

func toHistChart(h *core.Histogram, d *core.Dataset) *histChart {
	chart := &histChart{}
	// Scale the density to count space so the overlay sits on the bars.
	n := 0
	if values, ok := d.NumericColumn(core.ColAmount); ok {
		n = len(values)
	}
	for i, bin := range h.Bins {
		chart.Labels = append(chart.Labels, formatBinLabel(bin.Low, bin.High))
		chart.Counts = append(chart.Counts, bin.Count)
		width := bin.High - bin.Low
		chart.Density = append(chart.Density, h.Density[i]*float64(n)*width)
	}
	return chart
}

func columnWarning(names ...string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Column '%s' not found.", names[0])
	}
	return fmt.Sprintf("Columns '%s' and/or '%s' not found.", names[0], names[1])
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBinLabel(low, high float64) string {
	return strconv.FormatFloat(low, 'f', 1, 64) + "–" + strconv.FormatFloat(high, 'f', 1, 64)
}
