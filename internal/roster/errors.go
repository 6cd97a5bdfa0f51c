package roster

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// CascadeError reports a cascading delete that stopped before removing its parent.
type CascadeError struct {
	Kind     string
	ParentID string
	nested   error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("failed to delete %s %s: %v", e.Kind, e.ParentID, e.nested)
}

func (e *CascadeError) Unwrap() error {
	return e.nested
}
