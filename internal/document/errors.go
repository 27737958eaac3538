package document

import "fmt"

// SnapshotError represents a failure to obtain or parse a document snapshot.
type SnapshotError struct {
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot error: %s", e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}
