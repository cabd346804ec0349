package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Every report was written or skipped
	ExitBatchFailed = 1 // One or more exports could not be analyzed
	ExitError       = 2 // Configuration or runtime error
)

// BatchFailureError indicates that the batch itself ran, but one or
// more export files could not be turned into a report.
type BatchFailureError struct {
	Message string
}

func (e *BatchFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var batchErr *BatchFailureError
		if errors.As(err, &batchErr) {
			os.Exit(ExitBatchFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
