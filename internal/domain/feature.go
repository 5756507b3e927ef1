package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ElementKind identifies which OSM element type a feature came from.
type ElementKind string

const (
	KindNode     ElementKind = "node"
	KindWay      ElementKind = "way"
	KindRelation ElementKind = "relation"
)

// Feature is one tagged element from the map extract together with its
// assembled geometry (Point, Polygon or MultiPolygon). Features are
// read-only once the snapshot is built.
type Feature struct {
	OSMID    int64
	Kind     ElementKind
	Tags     map[string]string
	Geometry orb.Geometry
}

// Tag returns the value for key and whether the tag is present.
func (f *Feature) Tag(key string) (string, bool) {
	v, ok := f.Tags[key]
	return v, ok
}

// RepresentativePoint returns the feature's own location for point
// geometries and the area centroid otherwise. The second return value is
// false for geometries that carry neither.
func (f *Feature) RepresentativePoint() (orb.Point, bool) {
	switch g := f.Geometry.(type) {
	case orb.Point:
		return g, true
	case orb.Polygon, orb.MultiPolygon:
		c, _ := planar.CentroidArea(f.Geometry)
		return c, true
	default:
		return orb.Point{}, false
	}
}
