package survey

import (
	"errors"
	"fmt"

	"github.com/sells-group/csat-sync/pkg/sheets"
)

// ValidationError reports a request that was rejected before any I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("survey: invalid %s: %s", e.Field, e.Message)
}

// SinkError reports a failed spreadsheet write. It always fails the request.
type SinkError struct {
	// StatusCode is the sink's HTTP status, or 0 when no response arrived.
	StatusCode int
	// Detail is the sink's raw response body, or the transport error text.
	Detail string
	Err    error
}

func newSinkError(err error) *SinkError {
	se := &SinkError{Detail: err.Error(), Err: err}
	var apiErr *sheets.APIError
	if errors.As(err, &apiErr) {
		se.StatusCode = apiErr.StatusCode
		se.Detail = apiErr.Body
	}
	return se
}

func (e *SinkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("survey: sink write failed with status %d", e.StatusCode)
	}
	return "survey: sink write failed: " + e.Detail
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
