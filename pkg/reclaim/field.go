package reclaim

// fieldState distinguishes an omitted update field from one being cleared.
type fieldState int

const (
	fieldUnspecified fieldState = iota
	fieldClear
	fieldSet
)

// Field is a tri-state update value: unspecified (the zero value), clear,
// or set to a value. Unspecified fields are left out of the request, clear
// fields are sent as JSON null.
type Field[T any] struct {
	state fieldState
	value T
}

// Set returns a Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// Clear returns a Field that removes the server-side value.
func Clear[T any]() Field[T] {
	return Field[T]{state: fieldClear}
}

// IsSpecified reports whether the field was set or cleared.
func (f Field[T]) IsSpecified() bool {
	return f.state != fieldUnspecified
}

// IsClear reports whether the field clears the server-side value.
func (f Field[T]) IsClear() bool {
	return f.state == fieldClear
}

// Value returns the held value and whether the field is set.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == fieldSet
}
