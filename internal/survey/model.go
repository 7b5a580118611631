// Package survey reconciles customer satisfaction responses with LeadSquared
// leads and mirrors each submission to the survey spreadsheet.
package survey

import "strings"

// PlaceholderName is recorded on the sheet when no lead name is known. It is
// never sent to the CRM.
const PlaceholderName = "Unknown"

// ActionRetrieve selects retrieval mode on an inbound request.
const ActionRetrieve = "retrieve"

// Status is the customer's answer to the satisfaction question.
type Status string

// Known statuses. Other non-empty values are passed through untouched so the
// CRM dropdown can grow without a deploy.
const (
	StatusSatisfied   Status = "Satisfied"
	StatusUnsatisfied Status = "Unsatisfied"
)

var knownStatuses = []Status{StatusSatisfied, StatusUnsatisfied}

// ParseStatus trims s and canonicalizes the casing of known statuses.
func ParseStatus(s string) Status {
	s = strings.TrimSpace(s)
	for _, k := range knownStatuses {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return Status(s)
}

func (s Status) String() string {
	return string(s)
}

// Response is one survey answer as received from the caller.
type Response struct {
	Phone    string
	Status   Status
	Feedback string

	// FirstName is an optional hint from the caller. When set, the CRM
	// lookup is skipped.
	FirstName string
}

// LeadRecord is the part of a CRM lead the survey flow needs.
type LeadRecord struct {
	Exists        bool
	FirstName     string
	ProspectStage string
}

// Outcome is the result of a full submission.
type Outcome struct {
	Success      bool   `json:"success"`
	FirstName    string `json:"firstName"`
	IsExisting   bool   `json:"isExisting"`
	SubmissionID string `json:"-"`
}

// Retrieval is the result of a retrieve-only request.
type Retrieval struct {
	Success   bool   `json:"success"`
	FirstName string `json:"firstName"`
	Exists    bool   `json:"exists"`
}

// isPlaceholder reports whether name carries no real information.
func isPlaceholder(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || strings.EqualFold(name, PlaceholderName)
}
