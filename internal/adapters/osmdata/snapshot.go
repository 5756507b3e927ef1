package osmdata

import (
	"context"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"room-finder-service/internal/domain"
)

// Snapshot is the in-memory, read-only view of the map extract. Every
// query walks the feature list without mutating it, so a single Snapshot
// is shared by all request handlers.
type Snapshot struct {
	features []*domain.Feature
}

// Stats summarizes the snapshot contents for logging and operator tooling.
type Stats struct {
	Features  int
	Buildings int
	Rooms     int
}

// buildSnapshot assembles raw elements into tagged features with geometry.
// Untagged elements only contribute coordinates to the ways and relations
// that reference them. Closed ways become polygons; open ways carry no
// area and are dropped. Relations are kept when tagged type=multipolygon,
// assembled from the exterior rings of their outer way members.
func buildSnapshot(ex *extract) *Snapshot {
	s := &Snapshot{}

	for _, n := range ex.nodes {
		if len(n.Tags) == 0 {
			continue
		}
		s.features = append(s.features, &domain.Feature{
			OSMID:    int64(n.ID),
			Kind:     domain.KindNode,
			Tags:     n.Tags.Map(),
			Geometry: orb.Point{n.Lon, n.Lat},
		})
	}

	wayRings := make(map[osm.WayID]orb.Ring, len(ex.ways))
	for _, w := range ex.ways {
		ring := assembleRing(w, ex.nodeIdx)
		if ring != nil {
			wayRings[w.ID] = ring
		}
		if len(w.Tags) == 0 || ring == nil {
			continue
		}
		s.features = append(s.features, &domain.Feature{
			OSMID:    int64(w.ID),
			Kind:     domain.KindWay,
			Tags:     w.Tags.Map(),
			Geometry: orb.Polygon{ring},
		})
	}

	for _, r := range ex.relations {
		tags := r.Tags.Map()
		if tags["type"] != "multipolygon" {
			continue
		}
		var mp orb.MultiPolygon
		for _, m := range r.Members {
			if m.Type != osm.TypeWay || m.Role == "inner" {
				continue
			}
			if ring, ok := wayRings[osm.WayID(m.Ref)]; ok {
				mp = append(mp, orb.Polygon{ring})
			}
		}
		if len(mp) == 0 {
			continue
		}
		s.features = append(s.features, &domain.Feature{
			OSMID:    int64(r.ID),
			Kind:     domain.KindRelation,
			Tags:     tags,
			Geometry: mp,
		})
	}

	return s
}

// assembleRing resolves a way's node references into a closed ring.
// Open ways, degenerate ways and ways referencing missing nodes yield nil.
func assembleRing(w *osm.Way, nodes map[osm.NodeID]*osm.Node) orb.Ring {
	if len(w.Nodes) < 4 {
		return nil
	}
	ring := make(orb.Ring, 0, len(w.Nodes))
	for _, wn := range w.Nodes {
		n, ok := nodes[wn.ID]
		if !ok {
			return nil
		}
		ring = append(ring, orb.Point{n.Lon, n.Lat})
	}
	if !ring.Closed() {
		return nil
	}
	return ring
}

// BuildingsByName returns building features whose name tag matches name
// exactly. Case and whitespace are significant.
func (s *Snapshot) BuildingsByName(_ context.Context, name string) ([]*domain.Feature, error) {
	var out []*domain.Feature
	for _, f := range s.features {
		if _, ok := f.Tags["building"]; !ok {
			continue
		}
		if f.Tags["name"] == name {
			out = append(out, f)
		}
	}
	return out, nil
}

// RoomCandidates returns indoor rooms whose ref or name tag matches the
// normalized identifier, compared case-insensitively. Both point and area
// features are kept; the resolution pipeline narrows the set afterwards.
func (s *Snapshot) RoomCandidates(_ context.Context, identifier string) ([]*domain.Feature, error) {
	var out []*domain.Feature
	for _, f := range s.features {
		if f.Tags["indoor"] != "room" {
			continue
		}
		ref, hasRef := f.Tags["ref"]
		name, hasName := f.Tags["name"]
		if (hasRef && strings.EqualFold(ref, identifier)) ||
			(hasName && strings.EqualFold(name, identifier)) {
			out = append(out, f)
		}
	}
	return out, nil
}

// BuildingsByCategory returns all features whose building tag equals the
// given category value.
func (s *Snapshot) BuildingsByCategory(_ context.Context, category string) ([]*domain.Feature, error) {
	var out []*domain.Feature
	for _, f := range s.features {
		if f.Tags["building"] == category {
			out = append(out, f)
		}
	}
	return out, nil
}

// Stats counts features, buildings and indoor rooms in the snapshot.
func (s *Snapshot) Stats() Stats {
	st := Stats{Features: len(s.features)}
	for _, f := range s.features {
		if _, ok := f.Tags["building"]; ok {
			st.Buildings++
		}
		if f.Tags["indoor"] == "room" {
			st.Rooms++
		}
	}
	return st
}
