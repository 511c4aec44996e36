package utils

// Ptr returns a pointer to v, for the pointer-typed optional fields in the
// discord payload structs.
func Ptr[T any](v T) *T {
	return &v
}
