package visualization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/partition"
)

// Visualization is a laid out graph coloured by a partition.
type Visualization struct {
	Matrix     *adjacency.Matrix
	Positions  []Position
	Membership partition.Membership // nodes without an entry get cluster -1
}

type nodeViz struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Cluster int     `json:"cluster"`
}

type edgeViz struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type vizData struct {
	Nodes []nodeViz `json:"nodes"`
	Edges []edgeViz `json:"edges"`
}

// ExportJSON exports the visualization to JSON
func (v *Visualization) ExportJSON() ([]byte, error) {
	if len(v.Positions) != v.Matrix.N() {
		return nil, fmt.Errorf("%w: %d positions, %d nodes", ErrCoordinateCount, len(v.Positions), v.Matrix.N())
	}

	edges := v.Matrix.Edges()
	data := vizData{
		Nodes: make([]nodeViz, 0, len(v.Positions)),
		Edges: make([]edgeViz, 0, len(edges)),
	}

	for node, pos := range v.Positions {
		cluster, ok := v.Membership[node]
		if !ok {
			cluster = -1
		}
		data.Nodes = append(data.Nodes, nodeViz{ID: node, X: pos.X, Y: pos.Y, Cluster: cluster})
	}
	for _, e := range edges {
		data.Edges = append(data.Edges, edgeViz{From: e[0], To: e[1]})
	}

	return json.Marshal(data)
}

// WriteTo writes the JSON export to w.
func (v *Visualization) WriteTo(w io.Writer) (int64, error) {
	data, err := v.ExportJSON()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Save writes the JSON export to path.
func (v *Visualization) Save(path string) error {
	data, err := v.ExportJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}
