package configio

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rmohr/plstats/pkg/api"
)

// ConfigurationColumn names the column holding the list literal of selected
// elements in an attribute CSV. It may appear at any position.
const ConfigurationColumn = "Configuration"

// ReadAttributes parses a CSV where every row is a configuration plus typed
// attributes taken from the remaining columns.
func ReadAttributes(r io.Reader) ([]api.Record, error) {
	reader := newCSVReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	column := -1
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		if header[i] == ConfigurationColumn {
			column = i
		}
	}
	if column < 0 {
		return nil, fmt.Errorf("no %s column in header %v", ConfigurationColumn, header)
	}

	var records []api.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", len(records)+1, err)
		}
		names, err := ParseListLiteral(row[column])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		attributes := make(api.Attributes, len(row)-1)
		for i, cell := range row {
			if i == column {
				continue
			}
			attributes[header[i]] = api.ParseAttribute(cell)
		}
		records = append(records, api.Record{Configuration: api.Selecting(names...), Attributes: attributes})
	}
	return records, nil
}
