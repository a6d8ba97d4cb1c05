package partition

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"
)

// Report file suffixes appended to the caller's base name.
const (
	MembershipSuffix = ".memb"
	GroupSuffix      = ".group"
	CompressedSuffix = ".sz"
)

// ErrMalformedMembership is returned when a membership file cannot be parsed.
var ErrMalformedMembership = errors.New("malformed membership line")

// SaveOptions controls how Save writes the report files.
type SaveOptions struct {
	// Compress wraps both files in a snappy framed stream and appends
	// CompressedSuffix to their names.
	Compress bool
}

// ReportPaths returns the membership and group file paths Save writes for base.
func ReportPaths(base string, opts SaveOptions) (membership, groups string) {
	membership = base + MembershipSuffix
	groups = base + GroupSuffix
	if opts.Compress {
		membership += CompressedSuffix
		groups += CompressedSuffix
	}
	return membership, groups
}

// WriteMembership writes one "<node>: <cluster-id>" line per node, ascending.
func (ds *DisjointSet) WriteMembership(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, node := range ds.membership.Nodes() {
		if _, err := fmt.Fprintf(bw, "%d: %d\n", node, ds.membership[node]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteGroups writes one "<cluster-id>: [<member> <member> ]" line per
// cluster, ascending by id, members ascending.
func (ds *DisjointSet) WriteGroups(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, id := range ds.clustering.IDs() {
		bw.WriteString(strconv.Itoa(id))
		bw.WriteString(": [")
		for _, node := range ds.clustering[id].Sorted() {
			bw.WriteString(strconv.Itoa(node))
			bw.WriteByte(' ')
		}
		if _, err := bw.WriteString("]\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Print writes a human readable dump of both views.
func (ds *DisjointSet) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("==== Memberships ====\n{")
	for _, node := range ds.membership.Nodes() {
		fmt.Fprintf(bw, "%d: %d, ", node, ds.membership[node])
	}
	bw.WriteString("}\n=== Groups ===\n{")
	for _, id := range ds.clustering.IDs() {
		fmt.Fprintf(bw, "%d: [", id)
		for _, node := range ds.clustering[id].Sorted() {
			fmt.Fprintf(bw, "%d, ", node)
		}
		bw.WriteString("],")
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

// Save writes the membership and group reports next to each other, named by
// ReportPaths. Both files are opened before either is written. Existing files
// are truncated. Failures are returned as *SaveError naming the path; nothing
// is cleaned up.
func (ds *DisjointSet) Save(base string, opts SaveOptions) error {
	membPath, groupPath := ReportPaths(base, opts)

	membFile, err := os.Create(membPath)
	if err != nil {
		return &SaveError{Path: membPath, Cause: err}
	}
	defer membFile.Close()

	groupFile, err := os.Create(groupPath)
	if err != nil {
		return &SaveError{Path: groupPath, Cause: err}
	}
	defer groupFile.Close()

	if err := writeReport(membFile, opts, ds.WriteMembership); err != nil {
		return &SaveError{Path: membPath, Cause: err}
	}
	if err := writeReport(groupFile, opts, ds.WriteGroups); err != nil {
		return &SaveError{Path: groupPath, Cause: err}
	}

	if err := membFile.Close(); err != nil {
		return &SaveError{Path: membPath, Cause: err}
	}
	if err := groupFile.Close(); err != nil {
		return &SaveError{Path: groupPath, Cause: err}
	}
	return nil
}

func writeReport(f *os.File, opts SaveOptions, write func(io.Writer) error) error {
	if !opts.Compress {
		return write(f)
	}
	sw := snappy.NewBufferedWriter(f)
	if err := write(sw); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

// ReadMembership parses lines written by WriteMembership. Blank lines are
// ignored.
func ReadMembership(r io.Reader) (Membership, error) {
	m := make(Membership)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		nodeStr, clusterStr, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedMembership, line, text)
		}
		node, err := strconv.Atoi(strings.TrimSpace(nodeStr))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: node %q", ErrMalformedMembership, line, nodeStr)
		}
		cluster, err := strconv.Atoi(strings.TrimSpace(clusterStr))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: cluster %q", ErrMalformedMembership, line, clusterStr)
		}
		m[node] = cluster
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadMembership reads a membership file from disk. Files ending in
// CompressedSuffix are decoded as snappy framed streams.
func LoadMembership(path string) (Membership, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load membership: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		r = snappy.NewReader(f)
	}
	m, err := ReadMembership(r)
	if err != nil {
		return nil, fmt.Errorf("load membership %s: %w", path, err)
	}
	return m, nil
}
