package visualization

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrBadCoordinates is returned for rows that are not 2 or 3 numbers.
	ErrBadCoordinates = errors.New("malformed coordinate row")

	// ErrCoordinateCount is returned when the coordinate count does not match
	// the node count.
	ErrCoordinateCount = errors.New("coordinate count does not match node count")
)

// ParseCoordinates reads one "x y [z]" row per node. Blank lines are
// skipped and z is ignored.
func ParseCoordinates(r io.Reader) ([]Position, error) {
	var positions []Position
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d has %d values", ErrBadCoordinates, line, len(fields))
		}
		var xy [2]float64
		for i := range xy {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrBadCoordinates, line, fields[i])
			}
			xy[i] = v
		}
		positions = append(positions, Position{X: xy[0], Y: xy[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return positions, nil
}

// LoadCoordinates reads a coordinate file and checks it has one row for each
// of n nodes.
func LoadCoordinates(path string, n int) ([]Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open coordinates: %w", err)
	}
	defer f.Close()

	positions, err := ParseCoordinates(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(positions) != n {
		return nil, fmt.Errorf("%s: %w: %d rows, %d nodes", path, ErrCoordinateCount, len(positions), n)
	}
	return positions, nil
}

// FromCoords converts coordinates declared in a DIMACS file. Every node must
// have at least two values.
func FromCoords(coords [][]float64) ([]Position, error) {
	positions := make([]Position, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("%w: node %d has no coordinates", ErrBadCoordinates, i)
		}
		positions[i] = Position{X: c[0], Y: c[1]}
	}
	return positions, nil
}
