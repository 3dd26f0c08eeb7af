// Package utils holds small generic helpers for the optional pointer fields
// used by wire structs, where absent and zero must be told apart on the wire
// but not by the caller.
package utils

// Value dereferences v, yielding the zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v, for building wire structs from literals.
func Ptr[T any](v T) *T {
	return &v
}
