package dto

type FindRoomRequest struct {
	Building string `json:"building"`
	Room     string `json:"room"`
}

type RoomTagsResponse struct {
	Name  *string `json:"name"`
	Ref   *string `json:"ref"`
	Level *string `json:"level"`
}

type NodeResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RoomMatchResponse struct {
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	OSMID     int64            `json:"osm_id"`
	Tags      RoomTagsResponse `json:"tags"`
	Nodes     []NodeResponse   `json:"nodes"`
}
