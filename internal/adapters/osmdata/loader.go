package osmdata

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"room-finder-service/internal/platform/obs"
)

// extract collects the raw OSM elements of a PBF scan before geometry
// assembly. Node order follows the file so downstream query results stay
// deterministic across restarts.
type extract struct {
	nodes     []*osm.Node
	nodeIdx   map[osm.NodeID]*osm.Node
	ways      []*osm.Way
	relations []*osm.Relation
}

func newExtract() *extract {
	return &extract{nodeIdx: make(map[osm.NodeID]*osm.Node, 1<<16)}
}

func (e *extract) addNode(n *osm.Node) {
	e.nodes = append(e.nodes, n)
	e.nodeIdx[n.ID] = n
}

// LoadSnapshot streams the PBF extract at path and assembles it into an
// immutable, queryable Snapshot. It runs once at startup; untagged nodes
// are kept only long enough to resolve way geometry.
func LoadSnapshot(ctx context.Context, path string) (_ *Snapshot, err error) {
	defer obs.Time(ctx, "osmdata.LoadSnapshot")(&err)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: open extract: %w", err)
	}
	defer f.Close()

	ex := newExtract()

	scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(0))
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			ex.addNode(o)
		case *osm.Way:
			ex.ways = append(ex.ways, o)
		case *osm.Relation:
			ex.relations = append(ex.relations, o)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: scan extract: %w", err)
	}

	return buildSnapshot(ex), nil
}
