package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_IsMatchesByCode(t *testing.T) {
	err := NewProjectNotFoundError("p-1")
	wrapped := fmt.Errorf("explain: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrProjectNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrCorpusUnavailable))
	assert.False(t, stderrors.Is(context.Canceled, ErrProjectNotFound))
}

func TestAsStandardError(t *testing.T) {
	cause := stderrors.New("connection refused")
	wrapped := fmt.Errorf("load: %w", NewCorpusUnavailableError("postgres", cause))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeCorpusUnavailable, stdErr.Code)
	assert.Contains(t, stdErr.Details, "connection refused")
	assert.Equal(t, "postgres", stdErr.Metadata["source"])

	_, ok = AsStandardError(cause)
	assert.False(t, ok)
}

func TestNormalize_WrapsUnknownErrors(t *testing.T) {
	stdErr := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Equal(t, "boom", stdErr.Details)
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name          string
		err           *StandardError
		expectedCode  string
		expectedRetry int
	}{
		{"corpus unavailable retries", NewCorpusUnavailableError("redis", stderrors.New("x")), "CORPUS_UNAVAILABLE", 3},
		{"computation failure retries once", NewMatchComputationFailedError(context.DeadlineExceeded), "MATCH_COMPUTATION_FAILED", 1},
		{"not found never retries", NewProjectNotFoundError("p"), "PROJECT_NOT_FOUND", 0},
		{"invalid request never retries", NewInvalidMatchRequestError("limit"), "INVALID_MATCH_REQUEST", 0},
		{"parse error never retries", NewParseError(stderrors.New("eof")), "PARSE_ERROR", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectedCode, bpmnErr.Code)
			assert.Equal(t, tt.expectedRetry, bpmnErr.Retries)

			vars := bpmnErr.ToErrorVariables()
			assert.Equal(t, tt.expectedCode, vars["errorCode"])
			assert.Equal(t, tt.expectedCode, vars["originalErrorCode"])
			assert.Contains(t, vars, "timestamp")
		})
	}
}

func TestConvertToBPMNError_NonRetryableOverride(t *testing.T) {
	err := NewCorpusUnavailableError("postgres", stderrors.New("x"))
	err.Retryable = false
	assert.Equal(t, 0, ConvertToBPMNError(err).Retries)
}

func TestRetriesLeft(t *testing.T) {
	assert.Equal(t, int32(2), RetriesLeft(3, 3))
	assert.Equal(t, int32(3), RetriesLeft(10, 3))
	assert.Equal(t, int32(0), RetriesLeft(1, 3))
	assert.Equal(t, int32(0), RetriesLeft(0, 1))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DATA", GetErrorCategory(ErrCodeCorpusUnavailable))
	assert.Equal(t, "NOT_FOUND", GetErrorCategory(ErrCodeProjectNotFound))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidMatchRequest))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "COMPUTATION", GetErrorCategory(ErrCodeMatchComputationFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestDecide(t *testing.T) {
	corpus := ConvertToBPMNError(NewCorpusUnavailableError("postgres", stderrors.New("x")))
	notFound := ConvertToBPMNError(NewProjectNotFoundError("p"))

	assert.Equal(t, OutcomeRetry, Decide(corpus, 3))
	assert.Equal(t, OutcomeThrow, Decide(corpus, 1), "last attempt is thrown")
	assert.Equal(t, OutcomeThrow, Decide(notFound, 3))
}
