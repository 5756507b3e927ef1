package services

import (
	"context"
	"fmt"

	"room-finder-service/internal/platform/obs"
	"room-finder-service/internal/ports"
)

// BuildingSummary projects a building feature to its stable identifier and
// name. Name is nil when the feature carries no name tag.
type BuildingSummary struct {
	OSMID int64
	Name  *string
}

// ListBuildings returns every feature tagged with the given building
// category. No spatial computation is involved and an empty extract yields
// an empty list, not an error.
func ListBuildings(ctx context.Context, source ports.MapSource, category string) (_ []BuildingSummary, err error) {
	defer obs.Time(ctx, "services.ListBuildings")(&err)

	features, err := source.BuildingsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list buildings: query category %q: %w", category, err)
	}

	out := make([]BuildingSummary, 0, len(features))
	for _, f := range features {
		out = append(out, BuildingSummary{OSMID: f.OSMID, Name: tagPtr(f, "name")})
	}
	return out, nil
}
