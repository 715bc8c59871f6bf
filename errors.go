package pangraph

import "fmt"

// LoadError is the fatal construction failure: the persisted graph is
// missing, malformed or structurally inconsistent. A Graph is never
// returned alongside a LoadError.
//
// Query-time absence (unknown node, unknown path, out-of-range
// coordinate) is deliberately NOT an error anywhere in this package:
// it is encoded in the return value — empty string, zero length, nil
// slice, ok=false — keeping the hot query path free of error control
// flow. The underlying cause can be accessed via errors.Unwrap.
type LoadError struct {
	// Source names the input that failed to load (file path, blob
	// name, or "reader").
	Source string
	cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("pangraph: load %q failed: %v", e.Source, e.cause)
}

func (e *LoadError) Unwrap() error { return e.cause }

func loadErr(source string, err error) error {
	return &LoadError{Source: source, cause: err}
}
