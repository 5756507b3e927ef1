package dto

// BuildingResponse is one entry of the building listing. The listing
// itself serializes as a bare JSON array.
type BuildingResponse struct {
	OSMID int64   `json:"osm_id"`
	Name  *string `json:"name"`
}
