package graphio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// OutputFormat identifies a coordinate encoding.
type OutputFormat string

const (
	OutputCSV  OutputFormat = "csv"
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputCSV, OutputJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Position is one laid out node.
type Position struct {
	Node string  `json:"node"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Positions pairs the rows of an n x 2 matrix with their labels. Missing
// labels fall back to the row index.
func Positions(labels []string, pos *mat.Dense) []Position {
	n, _ := pos.Dims()
	out := make([]Position, n)
	for i := range out {
		label := strconv.Itoa(i)
		if i < len(labels) {
			label = labels[i]
		}
		out[i] = Position{Node: label, X: pos.At(i, 0), Y: pos.At(i, 1)}
	}
	return out
}

// WritePositions encodes the coordinates in pos to w.
func WritePositions(w io.Writer, format OutputFormat, labels []string, pos *mat.Dense) error {
	rows := Positions(labels, pos)
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case OutputCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"node", "x", "y"}); err != nil {
			return err
		}
		for _, p := range rows {
			record := []string{
				p.Node,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}
	return fmt.Errorf("unknown output format %q", format)
}
