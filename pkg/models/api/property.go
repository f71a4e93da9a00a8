package api

// Property is one search hit or selection member.
type Property struct {
	ID                int64  `json:"id"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	HasRecentActivity bool   `json:"has_recent_activity"`
}

// SelectionCreated returns the id of a freshly allocated selection session.
type SelectionCreated struct {
	SessionID string `json:"session_id"`
}

// Selection is the current state of one session's property selection.
type Selection struct {
	Properties []Property `json:"properties"`
	Capacity   int        `json:"capacity"`
	AtCapacity bool       `json:"at_capacity"`
}

// AddPropertyRequest identifies the property to add to a selection.
type AddPropertyRequest struct {
	PropertyID int64 `json:"property_id"`
}
