// Package csvfile loads the transaction dataset from a local delimited
// file, tolerating structurally malformed rows.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"txdash/internal/core"
)

var ErrEmptyFile = errors.New("dataset file has no header row")

type Source struct {
	path string
}

func New(path string) *Source {
	return &Source{path: path}
}

// Load reads the whole file into a Dataset. Rows whose field count differs
// from the header are skipped, not fatal; a missing or unreadable file is
// the only way the load as a whole fails.
func (s *Source) Load(ctx context.Context) (*core.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // width is checked against the header below
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if len(record) != len(header) {
			skipped++
			continue
		}
		rows = append(rows, record)
	}

	if skipped > 0 {
		slog.Warn("Skipped malformed rows during load",
			"path", s.path, "skipped", skipped, "kept", len(rows))
	}
	return core.NewDataset(header, rows)
}

// Fingerprint identifies the file by path, size and mtime so the view
// cache invalidates when the file changes.
func (s *Source) Fingerprint(_ context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("stat dataset file: %w", err)
	}
	return s.path + ":" + strconv.FormatInt(info.Size(), 10) + ":" +
		strconv.FormatInt(info.ModTime().UnixNano(), 10), nil
}
