package engine

import "fmt"

// ConfigurationError reports an invalid wiring request: an unknown raw input
// type, a link anchor with no producer, or a compiler with no channels to
// compile. It aborts the whole compilation.
type ConfigurationError struct {
	Stage  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("configuration error: %s", e.Detail)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Stage, e.Detail)
}

// TypeMismatchError reports two connected stages whose declared output/input
// types differ and neither ignores type checking.
type TypeMismatchError struct {
	From     string
	To       string
	FromType string
	ToType   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s emits %q but %s expects %q",
		e.From, e.FromType, e.To, e.ToType)
}

// InvariantError reports a caller programming defect, such as forking a
// stage whose channels were never assigned or re-assigning a conflicting
// position. Not recoverable.
type InvariantError struct {
	Stage  string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Stage, e.Detail)
}
