package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchFailureError(t *testing.T) {
	err := &BatchFailureError{
		Message: "analysis completed with 2 of 5 export(s) failed",
	}

	assert.Equal(t, "analysis completed with 2 of 5 export(s) failed", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
	}{
		{
			name:     "BatchFailureError",
			err:      &BatchFailureError{Message: "batch failure"},
			wantType: "BatchFailureError",
		},
		{
			name:     "regular error",
			err:      errors.New("config error"),
			wantType: "other",
		},
		{
			name:     "wrapped BatchFailureError",
			err:      errors.Join(&BatchFailureError{Message: "batch failure"}, errors.New("additional context")),
			wantType: "BatchFailureError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var batchErr *BatchFailureError
			isBatchFailure := errors.As(tt.err, &batchErr)

			if tt.wantType == "BatchFailureError" {
				assert.True(t, isBatchFailure, "expected error to be detected as BatchFailureError")
			} else {
				assert.False(t, isBatchFailure, "expected error NOT to be detected as BatchFailureError")
			}
		})
	}
}
