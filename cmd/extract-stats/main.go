package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"room-finder-service/internal/adapters/osmdata"
	"room-finder-service/internal/config"
)

// extract-stats loads a PBF extract and reports what the server would see:
// feature, building and room counts plus the buildings of the configured
// category. Useful for validating a new extract before deploying it.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	path := os.Getenv("OSM_DATA_PATH")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if strings.TrimSpace(path) == "" {
		log.Fatal("usage: extract-stats <extract.osm.pbf> (or set OSM_DATA_PATH)")
	}

	category := config.Get("BUILDING_CATEGORY", "university")

	ctx := context.Background()
	snapshot, err := osmdata.LoadSnapshot(ctx, path)
	if err != nil {
		log.Fatal(err)
	}

	stats := snapshot.Stats()
	log.Printf("features=%d buildings=%d rooms=%d", stats.Features, stats.Buildings, stats.Rooms)

	buildings, err := snapshot.BuildingsByCategory(ctx, category)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("category=%q count=%d", category, len(buildings))
	for _, b := range buildings {
		name := "(unnamed)"
		if v, ok := b.Tag("name"); ok {
			name = v
		}
		log.Printf("osm_id=%d name=%s", b.OSMID, name)
	}
}
