package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for transport mapping and retry policy.
type Kind int

const (
	// KindConfiguration: invalid parameters or missing credentials. Fatal,
	// never retried.
	KindConfiguration Kind = iota + 1
	// KindStoreUnavailable: pool exhausted or store unreachable.
	KindStoreUnavailable
	// KindCacheDegraded: cache layer failed; callers fall through to direct
	// computation and must never surface this.
	KindCacheDegraded
	// KindEmbeddingCapability: the embedding model call failed.
	KindEmbeddingCapability
	// KindGenerationCapability: the text-generation model call failed.
	KindGenerationCapability
	// KindMalformedFilter: the metadata filter is not structurally usable.
	KindMalformedFilter
)

// AppError carries the operation name alongside the cause so failures can be
// diagnosed upstream without leaking store credentials into responses.
type AppError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, op string, err error) *AppError {
	return &AppError{Kind: kind, Op: op, Err: err}
}

// KindOf reports the classification of err, or 0 when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}
