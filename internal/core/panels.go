package core

import (
	"fmt"
	"math"
)

func columnMissing(names ...string) error {
	if len(names) == 1 {
		return fmt.Errorf("%w: %s", ErrColumnMissing, names[0])
	}
	return fmt.Errorf("%w: %s and %s", ErrColumnMissing, names[0], names[1])
}

// ColumnInfo is one line of the schema summary panel.
type ColumnInfo struct {
	Name     string
	Kind     string // "numeric" or "text"
	NonEmpty int
}

// ColumnDescription pairs a numeric column with its describe() block.
type ColumnDescription struct {
	Name  string
	Stats ColumnStats
}

// CategoryBreakdown backs the currency-code panel: distinct values plus
// their frequency table.
type CategoryBreakdown struct {
	Unique []string
	Counts []ValueCount
}

// HistogramBin is one bar of the distribution panel.
type HistogramBin struct {
	Low   float64
	High  float64
	Count int
}

// Histogram carries the binned distribution and a density overlay sampled
// at bin centers.
type Histogram struct {
	Bins    []HistogramBin
	Density []float64
}

// GroupSpread is the box-plot summary of one group.
type GroupSpread struct {
	Group       string
	Count       int
	Min         float64
	Q1          float64
	Median      float64
	Q3          float64
	Max         float64
	WhiskerLow  float64
	WhiskerHigh float64
}

// XYPoint is one marker of the correlation scatter.
type XYPoint struct {
	X float64
	Y float64
}

// SchemaSummary reports, per column, the inferred kind and the non-empty
// cell count. A column counts as numeric when more than half of its
// non-empty cells parse as float64.
func SchemaSummary(d *Dataset) []ColumnInfo {
	out := make([]ColumnInfo, 0, d.ColumnCount())
	for _, name := range d.Columns() {
		cells, _ := d.Column(name)
		nonEmpty, numeric := 0, 0
		for _, cell := range cells {
			if cell == "" {
				continue
			}
			nonEmpty++
			if _, ok := parseFloat(cell); ok {
				numeric++
			}
		}
		kind := "text"
		if nonEmpty > 0 && numeric*2 > nonEmpty {
			kind = "numeric"
		}
		out = append(out, ColumnInfo{Name: name, Kind: kind, NonEmpty: nonEmpty})
	}
	return out
}

// DescribeNumeric runs Describe over every column the schema summary calls
// numeric, in column order.
func DescribeNumeric(d *Dataset) []ColumnDescription {
	var out []ColumnDescription
	for _, info := range SchemaSummary(d) {
		if info.Kind != "numeric" {
			continue
		}
		values, _ := d.NumericColumn(info.Name)
		if len(values) == 0 {
			continue
		}
		out = append(out, ColumnDescription{Name: info.Name, Stats: Describe(values)})
	}
	return out
}

// BuildCurrencyBreakdown gathers unique currency codes and their counts.
func BuildCurrencyBreakdown(d *Dataset) (*CategoryBreakdown, error) {
	cells, ok := d.Column(ColCurrency)
	if !ok {
		return nil, columnMissing(ColCurrency)
	}
	return &CategoryBreakdown{
		Unique: UniqueValues(cells),
		Counts: CountValues(cells),
	}, nil
}

// BuildDistribution bins the transaction amounts into the requested number
// of equal-width buckets and overlays a Gaussian kernel density estimate
// (Silverman bandwidth) sampled at each bin center.
func BuildDistribution(d *Dataset, bins int) (*Histogram, error) {
	values, ok := d.NumericColumn(ColAmount)
	if !ok {
		return nil, columnMissing(ColAmount)
	}
	if len(values) == 0 {
		return &Histogram{}, nil
	}
	if bins < 1 {
		bins = 1
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	width := (max - min) / float64(bins)
	if width == 0 {
		// All values identical; a single bucket holds everything.
		return &Histogram{
			Bins:    []HistogramBin{{Low: min, High: max, Count: len(values)}},
			Density: []float64{1},
		}, nil
	}
	h := &Histogram{Bins: make([]HistogramBin, bins), Density: make([]float64, bins)}
	for i := range h.Bins {
		h.Bins[i].Low = min + float64(i)*width
		h.Bins[i].High = h.Bins[i].Low + width
	}
	for _, v := range values {
		i := int((v - min) / width)
		if i >= bins {
			i = bins - 1
		}
		h.Bins[i].Count++
	}
	bw := silvermanBandwidth(values)
	for i := range h.Bins {
		center := (h.Bins[i].Low + h.Bins[i].High) / 2
		h.Density[i] = gaussianKDE(values, center, bw)
	}
	return h, nil
}

func silvermanBandwidth(values []float64) float64 {
	std := Describe(values).Std
	if std == 0 {
		return 1
	}
	return 1.06 * std * math.Pow(float64(len(values)), -0.2)
}

func gaussianKDE(values []float64, x, bw float64) float64 {
	var sum float64
	for _, v := range values {
		z := (x - v) / bw
		sum += math.Exp(-0.5 * z * z)
	}
	return sum / (float64(len(values)) * bw * math.Sqrt(2*math.Pi))
}

// BuildGroupSpread summarises transaction amounts per currency code as
// box-plot statistics with 1.5×IQR whiskers clamped to the observed range.
// Groups appear in order of first appearance.
func BuildGroupSpread(d *Dataset) ([]GroupSpread, error) {
	if !d.HasColumn(ColAmount) || !d.HasColumn(ColCurrency) {
		return nil, columnMissing(ColAmount, ColCurrency)
	}
	amounts, _ := d.Column(ColAmount)
	groups, _ := d.Column(ColCurrency)

	byGroup := map[string][]float64{}
	var order []string
	for i := range amounts {
		g := groups[i]
		if g == "" {
			continue
		}
		v, ok := parseFloat(amounts[i])
		if !ok {
			continue
		}
		if _, seen := byGroup[g]; !seen {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], v)
	}

	out := make([]GroupSpread, 0, len(order))
	for _, g := range order {
		s := Describe(byGroup[g])
		iqr := s.Q3 - s.Q1
		lo := s.Q1 - 1.5*iqr
		hi := s.Q3 + 1.5*iqr
		if lo < s.Min {
			lo = s.Min
		}
		if hi > s.Max {
			hi = s.Max
		}
		out = append(out, GroupSpread{
			Group: g, Count: s.Count,
			Min: s.Min, Q1: s.Q1, Median: s.Median, Q3: s.Q3, Max: s.Max,
			WhiskerLow: lo, WhiskerHigh: hi,
		})
	}
	return out, nil
}

// BuildTopMCC returns the n most frequent merchant category codes.
func BuildTopMCC(d *Dataset, n int) ([]ValueCount, error) {
	cells, ok := d.Column(ColMCC)
	if !ok {
		return nil, columnMissing(ColMCC)
	}
	counts := CountValues(cells)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts, nil
}

// BuildCorrelation pairs transaction amounts with the derived total
// balance, keeping rows where both sides parse.
func BuildCorrelation(d *Dataset) ([]XYPoint, error) {
	if !d.HasColumn(ColAmount) || !d.HasColumn(ColTotalBalance) {
		return nil, columnMissing(ColAmount, ColTotalBalance)
	}
	amounts, _ := d.Column(ColAmount)
	balances, _ := d.Column(ColTotalBalance)
	var out []XYPoint
	for i := range amounts {
		x, okX := parseFloat(amounts[i])
		y, okY := parseFloat(balances[i])
		if okX && okY {
			out = append(out, XYPoint{X: x, Y: y})
		}
	}
	return out, nil
}
