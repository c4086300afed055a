// Package graphio reads adjacency matrices for the layout engine and writes
// the resulting coordinates.
//
// Three input formats are understood:
//   - edgelist: one "u v [weight]" edge per line; a lone "u" declares an
//     isolated node; blank lines and lines starting with '#' are skipped
//   - graph6: a single graph6 encoded string
//   - matrix: a JSON array of rows, e.g. [[0,1],[1,0]]
//
// Node labels are returned in row order so positions can be written back
// with their names.
package graphio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph/encoding/graph6"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"

	"github.com/lytics/graphlayout"
)

// Format identifies an input encoding.
type Format string

const (
	FormatEdgeList Format = "edgelist"
	FormatGraph6   Format = "graph6"
	FormatMatrix   Format = "matrix"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatEdgeList, FormatGraph6, FormatMatrix:
		return f, nil
	}
	return "", fmt.Errorf("unknown input format %q", s)
}

// FormatFromPath guesses the input format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".g6", ".graph6":
		return FormatGraph6
	case ".json":
		return FormatMatrix
	default:
		return FormatEdgeList
	}
}

// ReadFile opens path and decodes it with format.
func ReadFile(path string, format Format) (*mat.Dense, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Read decodes an adjacency matrix and its node labels from r.
func Read(r io.Reader, format Format) (*mat.Dense, []string, error) {
	switch format {
	case FormatEdgeList:
		return readEdgeList(r)
	case FormatGraph6:
		return readGraph6(r)
	case FormatMatrix:
		return readMatrix(r)
	}
	return nil, nil, fmt.Errorf("unknown input format %q", format)
}

func readEdgeList(r io.Reader) (*mat.Dense, []string, error) {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	var labels []string
	ids := make(map[string]int64)
	node := func(label string) simple.Node {
		id, ok := ids[label]
		if !ok {
			id = int64(len(labels))
			ids[label] = id
			labels = append(labels, label)
			g.AddNode(simple.Node(id))
		}
		return simple.Node(id)
	}

	sc := bufio.NewScanner(r)
	var line int
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		switch len(fields) {
		case 1:
			node(fields[0])
			continue
		case 2, 3:
		default:
			return nil, nil, fmt.Errorf("line %d: want \"u v [weight]\", got %d fields", line, len(fields))
		}

		w := 1.
		if len(fields) == 3 {
			var err error
			if w, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return nil, nil, fmt.Errorf("line %d: weight: %w", line, err)
			}
		}
		u, v := node(fields[0]), node(fields[1])
		// the undirected graph cannot hold self loops
		if u == v || w == 0 {
			continue
		}
		// repeated edges accumulate
		if prev, ok := g.Weight(u.ID(), v.ID()); ok {
			w += prev
		}
		g.SetWeightedEdge(g.NewWeightedEdge(u, v, w))
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read edge list: %w", err)
	}

	m, _ := graphlayout.FromGraph(g)
	return m, labels, nil
}

func readGraph6(r io.Reader) (*mat.Dense, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read graph6: %w", err)
	}
	g := graph6.Graph(strings.TrimSpace(string(data)))
	if !graph6.IsValid(g) {
		return nil, nil, fmt.Errorf("invalid graph6 string %q", string(g))
	}

	m, ids := graphlayout.FromGraph(g)
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = strconv.FormatInt(id, 10)
	}
	return m, labels, nil
}

func readMatrix(r io.Reader) (*mat.Dense, []string, error) {
	var rows [][]float64
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, nil, fmt.Errorf("decode matrix: %w", err)
	}
	if len(rows) == 0 {
		return &mat.Dense{}, nil, nil
	}

	cols := len(rows[0])
	if cols == 0 {
		return nil, nil, fmt.Errorf("matrix row 0 is empty")
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, nil, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}

	labels := make([]string, len(rows))
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return mat.NewDense(len(rows), cols, data), labels, nil
}
