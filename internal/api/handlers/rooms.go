package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"room-finder-service/internal/api/dto"
	"room-finder-service/internal/domain"
	"room-finder-service/internal/platform/metrics"
	"room-finder-service/internal/ports"
	"room-finder-service/internal/services"
)

// RoomHandler exposes the room resolution and building listing endpoints.
type RoomHandler struct {
	Source           ports.MapSource
	BuildingCategory string
}

// FindRoom resolves a room inside a building. Every pipeline failure maps
// to 404 with the failure's message text; only the message distinguishes
// the stages for the caller.
func (h *RoomHandler) FindRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.FindRoomRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	// An absent or malformed body counts as missing parameters.
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Missing required parameters")
		return
	}
	if strings.TrimSpace(req.Building) == "" || strings.TrimSpace(req.Room) == "" {
		writeError(w, r, http.StatusBadRequest, "Missing required parameters")
		return
	}

	match, err := services.ResolveRoom(r.Context(), h.Source, req.Building, req.Room)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			metrics.ResolveFailuresTotal.WithLabelValues(string(nf.Reason)).Inc()
			writeError(w, r, http.StatusNotFound, nf.Message)
			return
		}

		log.Printf("find room failed: building=%q room=%q err=%v", req.Building, req.Room, err)
		writeError(w, r, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	res := dto.RoomMatchResponse{
		Latitude:  match.Centroid.Lat,
		Longitude: match.Centroid.Lon,
		OSMID:     match.OSMID,
		Tags: dto.RoomTagsResponse{
			Name:  match.Tags.Name,
			Ref:   match.Tags.Ref,
			Level: match.Tags.Level,
		},
		Nodes: make([]dto.NodeResponse, 0, len(match.Nodes)),
	}
	for _, n := range match.Nodes {
		res.Nodes = append(res.Nodes, dto.NodeResponse{Latitude: n.Lat, Longitude: n.Lon})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// List returns every building of the configured category as a bare array.
// The query string plays no role here; it only differentiates cache keys.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	buildings, err := services.ListBuildings(r.Context(), h.Source, h.BuildingCategory)
	if err != nil {
		log.Printf("list buildings failed: category=%q err=%v", h.BuildingCategory, err)
		writeError(w, r, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	res := make([]dto.BuildingResponse, 0, len(buildings))
	for _, b := range buildings {
		res = append(res, dto.BuildingResponse{OSMID: b.OSMID, Name: b.Name})
	}

	writeJSON(w, r, http.StatusOK, res)
}
