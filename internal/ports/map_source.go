package ports

import (
	"context"

	"room-finder-service/internal/domain"
)

// Port: a boundary for querying features from the loaded map extract.
// Implementations are loaded once at startup, never mutated afterwards,
// and must be safe for concurrent use by all request handlers.
type MapSource interface {
	// Return all building features whose name tag equals name exactly.
	BuildingsByName(ctx context.Context, name string) ([]*domain.Feature, error)

	// Return every feature tagged indoor=room whose ref or name tag equals
	// the already-normalized identifier, compared case-insensitively. Both
	// point and area features are kept.
	RoomCandidates(ctx context.Context, identifier string) ([]*domain.Feature, error)

	// Return all features tagged building=<category>.
	BuildingsByCategory(ctx context.Context, category string) ([]*domain.Feature, error)
}
