package core

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4})
	if s.Count != 4 || !almost(s.Mean, 2.5) {
		t.Fatalf("count/mean wrong: %+v", s)
	}
	// Sample std of 1..4 is sqrt(5/3).
	if !almost(s.Std, math.Sqrt(5.0/3.0)) {
		t.Fatalf("std wrong: %v", s.Std)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Fatalf("min/max wrong: %+v", s)
	}
	if !almost(s.Q1, 1.75) || !almost(s.Median, 2.5) || !almost(s.Q3, 3.25) {
		t.Fatalf("quartiles wrong: %+v", s)
	}
}

func TestDescribeEdgeCases(t *testing.T) {
	if s := Describe(nil); s.Count != 0 {
		t.Fatalf("empty input should be zero block: %+v", s)
	}
	s := Describe([]float64{7})
	if s.Count != 1 || s.Std != 0 || s.Median != 7 || s.Min != 7 || s.Max != 7 {
		t.Fatalf("single value block wrong: %+v", s)
	}
}

func TestCountValues(t *testing.T) {
	got := CountValues([]string{"EUR", "USD", "EUR", "", "GBP", "USD", "EUR"})
	want := []ValueCount{{"EUR", 3}, {"USD", 2}, {"GBP", 1}}
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCountValuesTieOrder(t *testing.T) {
	got := CountValues([]string{"B", "A", "B", "A"})
	if got[0].Value != "B" || got[1].Value != "A" {
		t.Fatalf("ties must keep first-appearance order, got %v", got)
	}
}

func TestUniqueValues(t *testing.T) {
	got := UniqueValues([]string{"EUR", "", "USD", "EUR"})
	if len(got) != 2 || got[0] != "EUR" || got[1] != "USD" {
		t.Fatalf("unexpected uniques %v", got)
	}
}
