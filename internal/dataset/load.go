package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotFound reports a missing source file. It is terminal for the
// invocation: callers must not attempt any downstream computation.
var ErrNotFound = errors.New("dataset file not found")

// ErrUnrepairable reports a file that still parses to a single column after
// the quote-strip repair. There is no second repair attempt.
var ErrUnrepairable = errors.New("unable to recover columnar structure")

// Load reads and parses the CSV at path.
func Load(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(content)
}

// Parse builds a Table from raw CSV content. A parse that collapses every
// row into a single column is a known export misconfiguration (each line
// wrapped in one pair of double quotes); in that case the content is
// repaired once and re-parsed on plain commas, with no quote-char
// special-casing. Header normalization is always applied.
func Parse(content []byte) (*Table, error) {
	t, err := parseCSV(content)
	if err != nil {
		return nil, err
	}
	if t != nil && len(t.Headers) == 1 {
		t = parsePlain(tryRepair(content))
		if t != nil && len(t.Headers) == 1 {
			return nil, ErrUnrepairable
		}
	}
	if t == nil {
		t = New(nil)
	}
	return t, nil
}

// tryRepair strips exactly one wrapping double-quote pair from each line.
//
// Precondition: the primary parse yielded exactly one column. A genuinely
// single-column file will fail the subsequent re-parse check rather than be
// silently accepted, which is the intended hard-failure behavior.
func tryRepair(content []byte) []byte {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) && len(line) >= 2 {
			line = line[1 : len(line)-1]
		}
		lines[i] = line
	}
	return []byte(strings.Join(lines, "\n"))
}

func parseCSV(content []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := New(header)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", t.Len()+1, err)
		}
		t.Append(rec)
	}
	return t, nil
}

// parsePlain splits repaired content on commas only. Quote characters left
// inside fields after the wrapping-quote strip are kept literally.
func parsePlain(content []byte) *Table {
	var t *Table
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimLeft(fields[i], " ")
		}
		if t == nil {
			t = New(fields)
			continue
		}
		t.Append(fields)
	}
	return t
}
