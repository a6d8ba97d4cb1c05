package adjacency

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"
)

var (
	ErrParse      = errors.New("parse error")
	ErrRaggedRows = errors.New("rows have different lengths")
	ErrEmptyInput = errors.New("empty input")
)

// maxLineBytes bounds a single matrix row. A dense row for 100k nodes at two
// bytes per entry fits comfortably.
const maxLineBytes = 16 << 20

// Dimacs is a graph read from a DIMACS-like adjacency list.
type Dimacs struct {
	Matrix *Matrix
	// IDs maps a matrix index back to the id used in the file.
	IDs []int
	// Coords holds the coordinates declared for each node, indexed like the
	// matrix. Nodes that only appear as neighbours have a nil entry.
	Coords [][]float64
}

// ReadMatrix memory-maps path and parses it with ParseMatrix.
func ReadMatrix(path string) (*Matrix, error) {
	r, err := openMapped(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	m, err := ParseMatrix(io.NewSectionReader(r, 0, int64(r.Len())))
	if err != nil {
		return nil, fmt.Errorf("read matrix %s: %w", path, err)
	}
	return m, nil
}

// ReadDimacs memory-maps path and parses it with ParseDimacs.
func ReadDimacs(path string) (*Dimacs, error) {
	r, err := openMapped(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	d, err := ParseDimacs(io.NewSectionReader(r, 0, int64(r.Len())))
	if err != nil {
		return nil, fmt.Errorf("read dimacs %s: %w", path, err)
	}
	return d, nil
}

func openMapped(path string) (*mmap.ReaderAt, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return r, nil
}

// ParseMatrix reads a whitespace separated adjacency matrix, one row per
// line. Blank lines are skipped and every non-zero value is stored as 1.
func ParseMatrix(r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var rows [][]float64
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrParse, line, j+1, f)
			}
			row[j] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrRaggedRows, line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	if len(rows) != len(rows[0]) {
		return nil, fmt.Errorf("%w: %d rows, %d columns", ErrNotSquare, len(rows), len(rows[0]))
	}
	return FromRows(rows)
}

// ParseDimacs reads lines of the form
//
//	id (x, y[, z]) count n1[:w] n2[:w] ...
//
// The coordinate block is optional. Weights are discarded, edges are made
// symmetric, self-loops are dropped and ids are renumbered 0..N-1 in
// ascending order of the original id.
func ParseDimacs(r io.Reader) (*Dimacs, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	adjacency := make(map[int][]int)
	coords := make(map[int][]float64)
	seen := make(map[int]bool)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		id, pos, neighbors, err := parseDimacsLine(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		seen[id] = true
		if pos != nil {
			coords[id] = pos
		}
		for _, n := range neighbors {
			seen[n] = true
		}
		adjacency[id] = append(adjacency[id], neighbors...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(seen) == 0 {
		return nil, ErrEmptyInput
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	index := make(map[int]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	m := New(len(ids))
	for from, neighbors := range adjacency {
		for _, to := range neighbors {
			if from == to {
				continue
			}
			// indices come from the same id set, SetEdge cannot fail
			_ = m.SetEdge(index[from], index[to])
		}
	}

	out := &Dimacs{Matrix: m, IDs: ids, Coords: make([][]float64, len(ids))}
	for id, pos := range coords {
		out.Coords[index[id]] = pos
	}
	return out, nil
}

func parseDimacsLine(text string) (int, []float64, []int, error) {
	head, rest := splitFirst(text)
	id, err := strconv.Atoi(head)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("node id %q", head)
	}

	var pos []float64
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return 0, nil, nil, errors.New("unterminated coordinate block")
		}
		for _, part := range strings.Split(rest[1:end], ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return 0, nil, nil, fmt.Errorf("coordinate %q", strings.TrimSpace(part))
			}
			pos = append(pos, v)
		}
		if len(pos) < 2 || len(pos) > 3 {
			return 0, nil, nil, fmt.Errorf("expected 2 or 3 coordinates, got %d", len(pos))
		}
		rest = rest[end+1:]
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return id, pos, nil, nil
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return 0, nil, nil, fmt.Errorf("neighbour count %q", fields[0])
	}
	if len(fields)-1 < count {
		return 0, nil, nil, fmt.Errorf("declared %d neighbours, found %d", count, len(fields)-1)
	}

	neighbors := make([]int, 0, count)
	for _, f := range fields[1 : count+1] {
		target, _, _ := strings.Cut(f, ":")
		n, err := strconv.Atoi(target)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("neighbour %q", f)
		}
		neighbors = append(neighbors, n)
	}
	return id, pos, neighbors, nil
}

func splitFirst(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t(")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
