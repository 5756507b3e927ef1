package osmdata

import (
	"context"

	"room-finder-service/internal/domain"
)

// MockSource is an in-memory MapSource built from hand-made features, with
// invocation counters so tests can observe whether the resolution pipeline
// actually ran or was short-circuited by the response cache.
type MockSource struct {
	snap *Snapshot

	BuildingCalls int
	RoomCalls     int
	CategoryCalls int
}

func NewMockSource(features ...*domain.Feature) *MockSource {
	return &MockSource{snap: &Snapshot{features: features}}
}

func (m *MockSource) BuildingsByName(ctx context.Context, name string) ([]*domain.Feature, error) {
	m.BuildingCalls++
	return m.snap.BuildingsByName(ctx, name)
}

func (m *MockSource) RoomCandidates(ctx context.Context, identifier string) ([]*domain.Feature, error) {
	m.RoomCalls++
	return m.snap.RoomCandidates(ctx, identifier)
}

func (m *MockSource) BuildingsByCategory(ctx context.Context, category string) ([]*domain.Feature, error) {
	m.CategoryCalls++
	return m.snap.BuildingsByCategory(ctx, category)
}
