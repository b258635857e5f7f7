package jsonld

import "fmt"

// This error type is returned when a record field has no entry in the
// context document, indicating a version skew between the record schema and
// the vocabulary. Expansion aborts rather than silently dropping data.
type SchemaMismatchError struct {
	Field string
}

func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("field '%s' has no entry in the context document", e.Field)
}
