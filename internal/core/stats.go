package core

import (
	"math"
	"sort"
)

// ColumnStats mirrors a describe() row for one numeric column.
type ColumnStats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Value string
	Count int
}

// Describe computes count, mean, sample standard deviation and the five
// quartile points for a slice of values. Zero-length input yields a zero
// stats block.
func Describe(values []float64) ColumnStats {
	n := len(values)
	if n == 0 {
		return ColumnStats{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var std float64
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	return ColumnStats{
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// quantile interpolates linearly between the two nearest order statistics.
// Input must be sorted and non-empty.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// CountValues builds a frequency table over non-empty cells, most frequent
// first. Ties keep order of first appearance so the Top-N panel stays
// deterministic.
func CountValues(cells []string) []ValueCount {
	counts := map[string]int{}
	first := map[string]int{}
	order := 0
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if _, seen := counts[cell]; !seen {
			first[cell] = order
			order++
		}
		counts[cell]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return first[out[i].Value] < first[out[j].Value]
	})
	return out
}

// UniqueValues lists distinct non-empty cells in order of first appearance.
func UniqueValues(cells []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if _, ok := seen[cell]; ok {
			continue
		}
		seen[cell] = struct{}{}
		out = append(out, cell)
	}
	return out
}
