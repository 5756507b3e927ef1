package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"room-finder-service/internal/domain"
	"room-finder-service/internal/platform/obs"
	"room-finder-service/internal/ports"
)

// candidate pairs a room feature with its representative point.
type candidate struct {
	feature *domain.Feature
	point   orb.Point
}

// ResolveRoom locates exactly one room inside the named building.
//
// The pipeline runs building lookup, a dataset-wide candidate search, a
// spatial containment join against the merged building region, and an
// exact tag re-validation. Every stage that finds nothing returns its own
// *domain.NotFoundError; any other error is a collaborator failure.
//
// The room identifier is matched case-insensitively (normalized to
// uppercase); the building name must match its name tag exactly.
func ResolveRoom(
	ctx context.Context,
	source ports.MapSource,
	buildingName string,
	roomIdentifier string,
) (_ *domain.RoomMatch, err error) {
	defer obs.Time(ctx, "services.ResolveRoom")(&err)

	identifier := strings.ToUpper(strings.TrimSpace(roomIdentifier))

	buildings, err := source.BuildingsByName(ctx, buildingName)
	if err != nil {
		return nil, fmt.Errorf("resolve room: look up building: %w", err)
	}
	if len(buildings) == 0 {
		return nil, &domain.NotFoundError{
			Reason:  domain.ReasonBuildingNotFound,
			Message: fmt.Sprintf("Building '%s' not found", buildingName),
		}
	}

	// A building mapped as several parts merges into one region; testing
	// containment against the collection carries the union semantics.
	region := buildingRegion(buildings)

	rooms, err := source.RoomCandidates(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("resolve room: search candidates: %w", err)
	}
	if len(rooms) == 0 {
		return nil, &domain.NotFoundError{
			Reason:  domain.ReasonRoomNotFound,
			Message: fmt.Sprintf("Room '%s' not found in dataset", identifier),
		}
	}

	// Containment join: candidates whose representative point falls outside
	// the building region are dropped silently.
	var contained []candidate
	for _, f := range rooms {
		pt, ok := f.RepresentativePoint()
		if !ok {
			continue
		}
		if planar.MultiPolygonContains(region, pt) {
			contained = append(contained, candidate{feature: f, point: pt})
		}
	}
	if len(contained) == 0 {
		return nil, &domain.NotFoundError{
			Reason:  domain.ReasonRoomNotFoundInBuilding,
			Message: fmt.Sprintf("Room '%s' not found in %s", identifier, buildingName),
		}
	}

	// Re-validate the looser candidate query with an exact, case-normalized
	// tag comparison.
	var exact []candidate
	for _, c := range contained {
		if strings.ToUpper(c.feature.Tags["ref"]) == identifier ||
			strings.ToUpper(c.feature.Tags["name"]) == identifier {
			exact = append(exact, c)
		}
	}
	if len(exact) == 0 {
		return nil, &domain.NotFoundError{
			Reason:  domain.ReasonExactMatchNotFound,
			Message: fmt.Sprintf("Exact match for '%s' not found", identifier),
		}
	}

	// The same room number can appear on several levels. Lowest level wins;
	// join order breaks any remaining tie (stable sort).
	sort.SliceStable(exact, func(i, j int) bool {
		return levelOrder(exact[i].feature) < levelOrder(exact[j].feature)
	})

	return buildMatch(exact[0]), nil
}

// buildingRegion merges all areal geometries of a building's parts into a
// single region. Point features carry no area and are skipped.
func buildingRegion(buildings []*domain.Feature) orb.MultiPolygon {
	var region orb.MultiPolygon
	for _, b := range buildings {
		switch g := b.Geometry.(type) {
		case orb.Polygon:
			region = append(region, g)
		case orb.MultiPolygon:
			region = append(region, g...)
		}
	}
	return region
}

// levelOrder maps a feature's level tag onto a sortable value. Missing or
// unparseable levels sort after every numeric level; ranges like "0;1"
// order by their first value.
func levelOrder(f *domain.Feature) float64 {
	lvl, ok := f.Tags["level"]
	if !ok {
		return math.Inf(1)
	}
	if i := strings.IndexAny(lvl, ";,"); i >= 0 {
		lvl = lvl[:i]
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(lvl), 64)
	if err != nil {
		return math.Inf(1)
	}
	return n
}

// buildMatch projects the selected candidate into the resolved result.
// Boundary nodes are the exterior ring for polygons and the concatenation
// of exterior rings, in part order, for multipolygons. Holes are never
// emitted; point features yield an empty node list.
func buildMatch(c candidate) *domain.RoomMatch {
	m := &domain.RoomMatch{
		Centroid: domain.Coordinates{Lat: c.point[1], Lon: c.point[0]},
		OSMID:    c.feature.OSMID,
		Tags: domain.RoomTags{
			Name:  tagPtr(c.feature, "name"),
			Ref:   tagPtr(c.feature, "ref"),
			Level: tagPtr(c.feature, "level"),
		},
		Nodes: []domain.Coordinates{},
	}

	switch g := c.feature.Geometry.(type) {
	case orb.Polygon:
		m.Nodes = appendExterior(m.Nodes, g)
	case orb.MultiPolygon:
		for _, p := range g {
			m.Nodes = appendExterior(m.Nodes, p)
		}
	}
	return m
}

func appendExterior(dst []domain.Coordinates, p orb.Polygon) []domain.Coordinates {
	if len(p) == 0 {
		return dst
	}
	for _, pt := range p[0] {
		dst = append(dst, domain.Coordinates{Lat: pt[1], Lon: pt[0]})
	}
	return dst
}

func tagPtr(f *domain.Feature, key string) *string {
	if v, ok := f.Tags[key]; ok {
		return &v
	}
	return nil
}
