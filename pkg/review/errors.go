package review

import "fmt"

// FetchError reports a failed read against the hosting API
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// GenerationError reports a failed language-model call
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate review: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PublishError reports a failed comment creation
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish review: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
