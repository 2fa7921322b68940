package buffered

// SharedError fans one chunk-scoped failure out to every pending call in the
// affected chunk. All duplicates reference the same root cause, so recipients
// observe identical diagnostics without the cause being copied.
//
// Duplication is an explicit, deliberate operation rather than implicit copy
// semantics: failure causes are not meant to be freely duplicated elsewhere.
type SharedError struct {
	cause error
}

func newSharedError(cause error) *SharedError {
	return &SharedError{cause: cause}
}

// Duplicate returns a new SharedError referencing the same root cause.
func (e *SharedError) Duplicate() *SharedError {
	return &SharedError{cause: e.cause}
}

// Error implements the error interface
func (e *SharedError) Error() string {
	return e.cause.Error()
}

// Unwrap exposes the shared root cause to errors.Is and errors.As.
func (e *SharedError) Unwrap() error {
	return e.cause
}
