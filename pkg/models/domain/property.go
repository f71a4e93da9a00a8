package domain

// Property is an immutable reference entity sourced from the booking
// store. HasRecentActivity is derived at query time, not stored.
type Property struct {
	ID                int64
	Code              string
	Name              string
	HasRecentActivity bool
}
