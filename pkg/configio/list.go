package configio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rmohr/plstats/pkg/api"
	"sigs.k8s.io/yaml"
)

// ReadList parses one list literal of selected element names per line, for
// example ['Pizza', 'Topping', 'Salami']. Blank lines are skipped.
func ReadList(r io.Reader) ([]api.Configuration, error) {
	var configurations []api.Configuration
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		names, err := ParseListLiteral(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		configurations = append(configurations, api.Selecting(names...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read configuration list: %w", err)
	}
	return configurations, nil
}

// ParseListLiteral parses a single bracketed, quoted list of names. The
// literal is a YAML flow sequence, so both quote styles are accepted.
func ParseListLiteral(literal string) ([]string, error) {
	literal = strings.TrimSpace(literal)
	if !strings.HasPrefix(literal, "[") || !strings.HasSuffix(literal, "]") {
		return nil, fmt.Errorf("expected a list literal, got %q", literal)
	}
	var names []string
	if err := yaml.Unmarshal([]byte(literal), &names); err != nil {
		return nil, fmt.Errorf("invalid list literal %q: %w", literal, err)
	}
	return names, nil
}

// FormatListLiteral renders the names the way ReadList expects them.
func FormatListLiteral(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + strings.ReplaceAll(n, "'", "''") + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// WriteList writes the sorted selected elements of every configuration, one
// configuration per line.
func WriteList(w io.Writer, configurations []api.Configuration) error {
	bw := bufio.NewWriter(w)
	for _, c := range configurations {
		if _, err := fmt.Fprintln(bw, FormatListLiteral(c.Selected())); err != nil {
			return err
		}
	}
	return bw.Flush()
}
