package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"room-finder-service/internal/adapters/cache"
	"room-finder-service/internal/adapters/osmdata"
	"room-finder-service/internal/api"
	"room-finder-service/internal/config"
)

// main is the application composition root.
// It wires concrete adapters (PBF snapshot, Redis) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	pbfPath := os.Getenv("OSM_DATA_PATH")
	if strings.TrimSpace(pbfPath) == "" {
		log.Fatal("OSM_DATA_PATH is required")
	}

	port := config.Get("PORT", "8080")
	redisAddr := config.Get("REDIS_ADDR", "127.0.0.1:6379")
	redisDB := config.GetInt("REDIS_DB", 0)
	cacheTTL := time.Duration(config.GetInt("CACHE_TTL_SECONDS", 2592000)) * time.Second // 30 days
	category := config.Get("BUILDING_CATEGORY", "university")

	// The extract is parsed exactly once here; every request afterwards
	// shares the read-only snapshot.
	log.Printf("Loading extract path=%s", pbfPath)
	snapshot, err := osmdata.LoadSnapshot(context.Background(), pbfPath)
	if err != nil {
		log.Fatal(err)
	}
	stats := snapshot.Stats()
	log.Printf("Extract loaded features=%d buildings=%d rooms=%d",
		stats.Features, stats.Buildings, stats.Rooms)

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("verify redis connection addr=%s: %v", redisAddr, err)
	}

	store := cache.NewRedisResponseCache(rdb)

	router := api.NewRouter(snapshot, store, api.RouterConfig{
		BuildingCategory: category,
		CacheTTL:         cacheTTL,
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
