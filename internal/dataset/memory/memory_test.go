package memory

import (
	"context"
	"testing"

	"txdash/internal/core"
)

func TestSampleLoads(t *testing.T) {
	d, err := NewSample().Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.RowCount() == 0 {
		t.Fatalf("sample must not be empty")
	}
	for _, name := range []string{core.ColAmount, core.ColCurrency, core.ColMCC, core.ColTimestamp, core.ColBalances} {
		if !d.HasColumn(name) {
			t.Fatalf("sample missing column %s", name)
		}
	}
}

func TestLoadReturnsFreshCopies(t *testing.T) {
	s := New([]string{"A"}, [][]string{{"1"}})
	d1, _ := s.Load(context.Background())
	d2, _ := s.Load(context.Background())
	if d1 == d2 {
		t.Fatalf("loads must not share a Dataset value")
	}
}

func TestFailing(t *testing.T) {
	if _, err := Failing("boom").Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
}
