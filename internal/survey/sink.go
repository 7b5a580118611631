package survey

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/csat-sync/pkg/sheets"
)

// SinkRecord is the row mirrored to the survey spreadsheet.
type SinkRecord struct {
	FirstName string
	// Phone is the number in sink format.
	Phone    string
	Status   Status
	Feedback string
}

// SinkWriter forwards submissions to the spreadsheet.
type SinkWriter struct {
	client sheets.Client
}

// NewSinkWriter returns a SinkWriter backed by client. A nil client means
// no sink is deployed and every write succeeds without I/O.
func NewSinkWriter(client sheets.Client) *SinkWriter {
	return &SinkWriter{client: client}
}

// Write appends rec. A non-nil error is always a *SinkError.
func (w *SinkWriter) Write(ctx context.Context, rec SinkRecord) error {
	if w.client == nil {
		zap.L().Debug("survey: sheets not configured, skipping sink write")
		return nil
	}

	resp, err := w.client.Append(ctx, sheets.Row{
		FirstName: rec.FirstName,
		Phone:     rec.Phone,
		Status:    rec.Status.String(),
		Feedback:  rec.Feedback,
	})
	if err != nil {
		return newSinkError(err)
	}

	zap.L().Debug("survey: sink write succeeded", zap.String("response", resp))
	return nil
}
