package domain

// RoomTags is the tag subset reported for a resolved room. Nil pointers
// mark tags absent in the source data and serialize as null.
type RoomTags struct {
	Name  *string
	Ref   *string
	Level *string
}

// RoomMatch is the resolved location of a room inside a building: its
// centroid, its stable identifier in the source dataset, the reported tag
// subset and the ordered boundary node list. Nodes is empty for pure point
// features; for multipolygons it is the concatenation of every part's
// exterior ring, with holes never included.
type RoomMatch struct {
	Centroid Coordinates
	OSMID    int64
	Tags     RoomTags
	Nodes    []Coordinates
}
