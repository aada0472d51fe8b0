// Package configio reads and writes populations of configurations. Three
// text formats are supported: a True/False matrix in CSV, one list literal
// of selected features per line, and a CSV of configurations annotated with
// attributes.
package configio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rmohr/plstats/pkg/api"
)

// ReadOptions tweak how configurations are materialized.
type ReadOptions struct {
	// OnlySelected drops elements with a false value, which makes a CSV
	// population compare equal to the same population read from a list.
	OnlySelected bool
}

// ReadCSV parses a header of element names followed by one row per
// configuration. A cell is true when it reads "true" in any case; every
// other value is false.
func ReadCSV(r io.Reader, opts ReadOptions) ([]api.Configuration, error) {
	reader := newCSVReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var configurations []api.Configuration
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to read configuration %d: %w", len(configurations)+1, err)
		}
		elements := make(map[string]bool, len(header))
		for i, cell := range row {
			if strings.EqualFold(strings.TrimSpace(cell), "true") {
				elements[header[i]] = true
			} else if !opts.OnlySelected {
				elements[header[i]] = false
			}
		}
		configurations = append(configurations, api.NewConfiguration(elements))
	}
	return configurations, nil
}

// WriteCSV writes elements as header and one True/False row per
// configuration, in the given order.
func WriteCSV(w io.Writer, elements []string, configurations []api.Configuration) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(elements); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	row := make([]string, len(elements))
	for _, c := range configurations {
		for i, e := range elements {
			row[i] = pyBool(c.IsSelected(e))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write configuration %v: %w", c, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	return reader
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
