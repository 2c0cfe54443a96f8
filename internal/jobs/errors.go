// ABOUTME: Typed errors returned by the job rebuild-info client
// ABOUTME: NetworkError carries the job id and HTTP status of a failed lookup
package jobs

import (
	"context"
	"errors"
	"fmt"
)

// NetworkError reports a failed rebuild-info lookup: transport failure,
// timeout, non-success status, or an undecodable body.
type NetworkError struct {
	JobID      string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("job %s rebuild info: http %d: %v", e.JobID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("job %s rebuild info: %v", e.JobID, e.Err)
}

func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Timeout reports whether the lookup ran out of time
func (e *NetworkError) Timeout() bool {
	if e == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}
