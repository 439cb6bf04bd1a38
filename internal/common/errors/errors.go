// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCorpusUnavailable      ErrorCode = "CORPUS_UNAVAILABLE"
	ErrCodeProjectNotFound        ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeInvalidMatchRequest    ErrorCode = "INVALID_MATCH_REQUEST"
	ErrCodeMatchComputationFailed ErrorCode = "MATCH_COMPUTATION_FAILED"
	ErrCodeParseError             ErrorCode = "PARSE_ERROR"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches any StandardError carrying the same code, so errors.Is works
// against the sentinels below.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrCorpusUnavailable      = &StandardError{Code: ErrCodeCorpusUnavailable}
	ErrProjectNotFound        = &StandardError{Code: ErrCodeProjectNotFound}
	ErrInvalidMatchRequest    = &StandardError{Code: ErrCodeInvalidMatchRequest}
	ErrMatchComputationFailed = &StandardError{Code: ErrCodeMatchComputationFailed}
)

// AsStandardError unwraps err to the first StandardError in its chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewCorpusUnavailableError wraps a failure to load users or projects.
func NewCorpusUnavailableError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusUnavailable,
		Message:   "Corpus snapshot could not be loaded",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
	}
}

func NewProjectNotFoundError(projectID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProjectNotFound,
		Message:   "Project not found",
		Details:   fmt.Sprintf("projectId: %s", projectID),
		Retryable: false,
		Metadata:  map[string]interface{}{"projectId": projectID},
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidMatchRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMatchRequest,
		Message:   "Invalid match request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatchComputationFailedError covers batch-level scoring failures,
// including cancellation of the request context.
func NewMatchComputationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchComputationFailed,
		Message:   "Error while computing matches",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeCorpusUnavailable:      "CORPUS_UNAVAILABLE",
	ErrCodeProjectNotFound:        "PROJECT_NOT_FOUND",
	ErrCodeInvalidMatchRequest:    "INVALID_MATCH_REQUEST",
	ErrCodeMatchComputationFailed: "MATCH_COMPUTATION_FAILED",
	ErrCodeParseError:             "PARSE_ERROR",
	ErrCodeInternal:               "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCorpusUnavailable:
		return 3
	case ErrCodeMatchComputationFailed:
		return 1
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CORPUS"):
		return "DATA"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "MATCH"):
		return "COMPUTATION"
	default:
		return "OTHER"
	}
}
