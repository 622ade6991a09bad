package domain

import (
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the pipeline
type ErrorCode string

const (
	// Common errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrParse      ErrorCode = "PARSE_ERROR"
	ErrValidation ErrorCode = "VALIDATION_FAILED"

	// Store errors
	ErrDuplicateID ErrorCode = "DUPLICATE_ID"

	// Assembly errors
	ErrUnresolvedReference ErrorCode = "UNRESOLVED_REFERENCE"
	ErrEmptyWildcardMatch  ErrorCode = "EMPTY_WILDCARD_MATCH"
	ErrPickExceedsPool     ErrorCode = "PICK_EXCEEDS_POOL"

	// Export errors
	ErrEncodingConsistency ErrorCode = "ENCODING_CONSISTENCY"
	ErrExternalTool        ErrorCode = "EXTERNAL_TOOL"
)

// DomainError represents a pipeline-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper constructors for common errors

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewParseError(source string, err error) *DomainError {
	return NewError(ErrParse, fmt.Sprintf("cannot parse %s", source), err)
}

func NewDuplicateIDError(id, first, second string) *DomainError {
	return NewError(ErrDuplicateID,
		fmt.Sprintf("duplicate item id %q: defined in %s and %s", id, first, second), nil)
}

func NewUnresolvedReferenceError(ref string) *DomainError {
	return NewError(ErrUnresolvedReference,
		fmt.Sprintf("quiz references unknown item id: %s", ref), nil)
}

func NewEmptyWildcardMatchError(pattern string) *DomainError {
	return NewError(ErrEmptyWildcardMatch,
		fmt.Sprintf("wildcard pattern matched no items: %s", pattern), nil)
}

func NewPickExceedsPoolError(pick, pool int) *DomainError {
	return NewError(ErrPickExceedsPool,
		fmt.Sprintf("pick %d exceeds resolved pool size %d", pick, pool), nil)
}

func NewEncodingConsistencyError(qtype QuestionType) *DomainError {
	return NewError(ErrEncodingConsistency,
		fmt.Sprintf("no target encoding defined for validated variant %q", qtype), nil)
}

func NewExternalToolError(tool string, err error) *DomainError {
	return NewError(ErrExternalTool, fmt.Sprintf("external tool %s failed", tool), err)
}

// ValidationError is a single schema violation in one question record.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every violation found in one record, so the
// author sees all problems in a single pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "required field is missing"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("invalid format: %q", value)}
}

func NewFieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
