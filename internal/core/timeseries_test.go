package core

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		err   bool
	}{
		{"2024-03-01", true, false},
		{"2024-03-01 15:04:05", true, false},
		{"2024-03-01T15:04:05Z", true, false},
		{"", false, false},
		{"  ", false, false},
		{"yesterday", false, true},
	}
	for i, tc := range cases {
		_, valid, err := ParseTimestamp(tc.in)
		if valid != tc.valid || (err != nil) != tc.err {
			t.Fatalf("case %d (%q): valid=%v err=%v", i, tc.in, valid, err)
		}
	}
}

func TestSortedByTimestamp(t *testing.T) {
	d, _ := NewDataset(
		[]string{ColAmount, ColTimestamp},
		[][]string{
			{"3", "2024-03-03"},
			{"1", "2024-03-01"},
			{"9", ""},
			{"2", "2024-03-02"},
		},
	)
	sorted, err := d.SortedByTimestamp(ColTimestamp)
	if err != nil {
		t.Fatalf("SortedByTimestamp: %v", err)
	}
	got, _ := sorted.Column(ColAmount)
	want := []string{"1", "2", "3", "9"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
	// Receiver untouched.
	orig, _ := d.Column(ColAmount)
	if orig[0] != "3" {
		t.Fatalf("receiver was reordered")
	}
}

func TestSortedByTimestampBadCell(t *testing.T) {
	d, _ := NewDataset(
		[]string{ColTimestamp},
		[][]string{{"2024-03-01"}, {"not a date"}},
	)
	if _, err := d.SortedByTimestamp(ColTimestamp); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestBuildDailySeriesAggregatesSameDay(t *testing.T) {
	d, _ := NewDataset(
		[]string{ColAmount, ColTimestamp},
		[][]string{
			{"10", "2024-03-01 10:00:00"},
			{"5", "2024-03-01 22:00:00"},
		},
	)
	series, err := BuildDailySeries(d)
	if err != nil {
		t.Fatalf("BuildDailySeries: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected one daily bucket, got %d", len(series))
	}
	if series[0].Sum != 15 {
		t.Fatalf("bucket sum = %v, want 15", series[0].Sum)
	}
	wantDay := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !series[0].Day.Equal(wantDay) {
		t.Fatalf("bucket day = %v, want %v", series[0].Day, wantDay)
	}
}

func TestBuildDailySeriesOrderingAndDrops(t *testing.T) {
	d, _ := NewDataset(
		[]string{ColAmount, ColTimestamp},
		[][]string{
			{"4", "2024-03-02"},
			{"1", "2024-03-01"},
			{"", "2024-03-01"},  // no amount: dropped
			{"7", ""},           // no timestamp: dropped
			{"2", "2024-03-01"},
		},
	)
	series, err := BuildDailySeries(d)
	if err != nil {
		t.Fatalf("BuildDailySeries: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 buckets, got %v", series)
	}
	if series[0].Sum != 3 || series[1].Sum != 4 {
		t.Fatalf("unexpected sums %v", series)
	}
	if !series[0].Day.Before(series[1].Day) {
		t.Fatalf("buckets must be time-ordered")
	}
}

func TestBuildDailySeriesBadTimestampSurfacesError(t *testing.T) {
	d, _ := NewDataset(
		[]string{ColAmount, ColTimestamp},
		[][]string{{"1", "garbage"}},
	)
	if _, err := BuildDailySeries(d); err == nil {
		t.Fatalf("expected timestamp error")
	}
}
