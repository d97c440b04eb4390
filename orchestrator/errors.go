package orchestrator

import "fmt"

const (
	ErrMsgMissingTopic = "Missing required field: topic"
	HintMissingTopic   = "Please provide a topic for the post"

	ErrMsgUnexpected = "Failed to generate post"
	HintUnexpected   = "Check your API keys in the service configuration"
)

// ValidationError rejects the request before any processing. It maps to 400.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e *ValidationError) Error() string { return e.Message }

// GenerationError wraps a failed call to the generation service. It never
// leaves the orchestrator: the template is used instead.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generation failed: %v", e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed call to the record store. It never leaves
// the orchestrator: the response reports the post as not saved.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persistence failed: %v", e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// UnexpectedError is anything escaping the isolated downstream calls. It maps to 500.
type UnexpectedError struct {
	Err  error
	Hint string
}

func (e *UnexpectedError) Error() string { return e.Err.Error() }
func (e *UnexpectedError) Unwrap() error { return e.Err }

func unexpected(err error) *UnexpectedError {
	return &UnexpectedError{Err: err, Hint: HintUnexpected}
}
