package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"txdash/internal/core"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadWellFormed(t *testing.T) {
	path := writeFile(t, "TRANSACTION_AMOUNT,CURRENCY_CODE\n10.5,EUR\n3,USD\n")
	d, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.RowCount() != 2 || d.ColumnCount() != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", d.RowCount(), d.ColumnCount())
	}
	if !d.HasColumn(core.ColAmount) || !d.HasColumn(core.ColCurrency) {
		t.Fatalf("columns missing: %v", d.Columns())
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	// Second data row has an extra field, third is short.
	path := writeFile(t, "A,B\n1,2\n1,2,3\nonly\n4,5\n")
	d, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.RowCount() != 2 {
		t.Fatalf("expected 2 valid rows, got %d", d.RowCount())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "")
	_, err := New(path).Load(context.Background())
	if err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestLoadQuotedFields(t *testing.T) {
	path := writeFile(t, "A,B\n\"x,y\",2\n")
	d, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Cell(0, "A") != "x,y" {
		t.Fatalf("quoted field mangled: %q", d.Cell(0, "A"))
	}
}

func TestFingerprintChangesWithFile(t *testing.T) {
	path := writeFile(t, "A\n1\n")
	src := New(path)
	fp1, err := src.Fingerprint(context.Background())
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if err := os.WriteFile(path, []byte("A\n1\n2\n"), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	fp2, err := src.Fingerprint(context.Background())
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp1 == fp2 {
		t.Fatalf("fingerprint should change when the file changes")
	}
}
