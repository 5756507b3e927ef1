package domain

// NotFoundReason distinguishes which resolution stage produced no result.
type NotFoundReason string

const (
	ReasonBuildingNotFound       NotFoundReason = "building_not_found"
	ReasonRoomNotFound           NotFoundReason = "room_not_found"
	ReasonRoomNotFoundInBuilding NotFoundReason = "room_not_found_in_building"
	ReasonExactMatchNotFound     NotFoundReason = "exact_match_not_found"
)

// NotFoundError reports that the room resolution pipeline produced no
// match. Message is human-readable and safe to expose to API callers; the
// HTTP layer maps every reason to the same status code.
type NotFoundError struct {
	Reason  NotFoundReason
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
