// Package core holds the dataset model and the aggregations behind every
// dashboard panel.
//
// This file extracts the total_balance figure from the JSON-encoded
// account-balances column.
package core

import (
	"encoding/json"
	"strconv"
)

// ExtractTotalBalance decodes a cell that may contain a JSON object and
// returns its numeric "total_balance" field. Malformed JSON, JSON null,
// empty cells and non-numeric fields all yield (0, false); extraction never
// produces an error.
func ExtractTotalBalance(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return 0, false
	}
	field, ok := obj["total_balance"]
	if !ok {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(field, &v); err != nil {
		return 0, false
	}
	return v, true
}

// DeriveTotalBalance returns a new dataset with the derived total_balance
// column appended, extracted row-by-row from the balances column. Cells
// that fail extraction come out empty.
func DeriveTotalBalance(d *Dataset) (*Dataset, error) {
	if !d.HasColumn(ColBalances) {
		return nil, columnMissing(ColBalances)
	}
	cells, _ := d.Column(ColBalances)
	values := make([]string, len(cells))
	for i, cell := range cells {
		if v, ok := ExtractTotalBalance(cell); ok {
			values[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return d.WithColumn(ColTotalBalance, values)
}
