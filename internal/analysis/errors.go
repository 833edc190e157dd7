package analysis

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrMissingInput  = errors.New("resume and job description are required")
	ErrEmptyDocument = errors.New("no text recognized in document")
)

// LLMError marks a hosted-model call failure so handlers can map it to a
// gateway error instead of a generic internal one.
type LLMError struct {
	Op  string
	Err error
}

func (e *LLMError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *LLMError) Unwrap() error {
	return e.Err
}
