package core

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Timestamp layouts accepted by the time-series panel, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses one timestamp cell. Empty cells are not an error;
// they report ok=false so callers can drop the row.
func ParseTimestamp(cell string) (time.Time, bool, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unparseable timestamp %q", cell)
}

// DailyPoint is one bucket of the time-series panel.
type DailyPoint struct {
	Day time.Time
	Sum float64
}

// SortedByTimestamp returns a new dataset ordered by the timestamp column.
// Rows with empty timestamps sort last; any non-empty cell that fails to
// parse aborts with an error. The receiver is not modified.
func (d *Dataset) SortedByTimestamp(name string) (*Dataset, error) {
	cells, ok := d.Column(name)
	if !ok {
		return nil, columnMissing(name)
	}
	type keyed struct {
		t     time.Time
		valid bool
		row   int
	}
	keys := make([]keyed, len(cells))
	for i, cell := range cells {
		t, valid, err := ParseTimestamp(cell)
		if err != nil {
			return nil, fmt.Errorf("sort by %s: %w", name, err)
		}
		keys[i] = keyed{t: t, valid: valid, row: i}
	}
	sort.SliceStable(keys, func(a, b int) bool {
		if keys[a].valid != keys[b].valid {
			return keys[a].valid
		}
		return keys[a].t.Before(keys[b].t)
	})
	rows := make([][]string, len(keys))
	for i, k := range keys {
		rows[i] = append([]string(nil), d.rows[k.row]...)
	}
	return NewDataset(d.Columns(), rows)
}

// BuildDailySeries orders the dataset by timestamp and sums transaction
// amounts into one bucket per UTC day. Rows missing either value are
// dropped; a malformed timestamp surfaces as an error the panel reports
// without taking down the page.
func BuildDailySeries(d *Dataset) ([]DailyPoint, error) {
	if !d.HasColumn(ColAmount) || !d.HasColumn(ColTimestamp) {
		return nil, columnMissing(ColAmount, ColTimestamp)
	}
	ordered, err := d.SortedByTimestamp(ColTimestamp)
	if err != nil {
		return nil, err
	}
	stamps, _ := ordered.Column(ColTimestamp)
	amounts, _ := ordered.Column(ColAmount)

	var out []DailyPoint
	for i := range stamps {
		t, valid, err := ParseTimestamp(stamps[i])
		if err != nil {
			return nil, err
		}
		if !valid {
			continue
		}
		v, ok := parseFloat(amounts[i])
		if !ok {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if n := len(out); n > 0 && out[n-1].Day.Equal(day) {
			out[n-1].Sum += v
			continue
		}
		out = append(out, DailyPoint{Day: day, Sum: v})
	}
	return out, nil
}
