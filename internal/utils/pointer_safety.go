package utils

// Value dereferences v, returning the zero value for nil pointers. Used
// for nullable wire fields like team_id and lead_id.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
