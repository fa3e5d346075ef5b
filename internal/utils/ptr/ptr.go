// Package ptr has helpers for optional fields of API payloads.
package ptr

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

