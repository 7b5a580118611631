package survey

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/csat-sync/internal/resilience"
	"github.com/sells-group/csat-sync/pkg/leadsquared"
)

// LeadSquared attribute names written by the survey.
const (
	AttrPhone         = "Phone"
	AttrSearchBy      = "SearchBy"
	AttrSatisfaction  = "mx_Customer_Satisfaction_Survey"
	AttrFeedback      = "mx_feedback"
	AttrProspectStage = "ProspectStage"
	AttrFirstName     = "FirstName"
)

// UpsertInput is everything the CRM update needs.
type UpsertInput struct {
	// Phone is the number in CRM format.
	Phone         string
	Status        Status
	Feedback      string
	FirstName     string
	ProspectStage string
}

// CRMOutcome reports how a best-effort CRM call went. Callers log it and
// move on; it never decides the request's result.
type CRMOutcome struct {
	Op      string
	Skipped bool
	Err     error
}

// OK reports whether the call was made and succeeded.
func (o CRMOutcome) OK() bool {
	return !o.Skipped && o.Err == nil
}

// Log writes the outcome to logger.
func (o CRMOutcome) Log(logger *zap.Logger) {
	switch {
	case o.Skipped:
		logger.Warn("survey: leadsquared not configured, skipping "+o.Op)
	case o.Err != nil:
		logger.Warn("survey: "+o.Op+" failed",
			zap.Error(o.Err),
			zap.String("class", string(resilience.Classify(o.Err))),
		)
	default:
		logger.Debug("survey: " + o.Op + " succeeded")
	}
}

// BuildAttributes returns the Lead.CreateOrUpdate payload for in.
//
// Feedback is always sent so an answer without feedback clears any earlier
// text. ProspectStage is sent back unchanged because LeadSquared resets it on
// any update that omits it.
func BuildAttributes(in UpsertInput) []leadsquared.Attribute {
	attrs := []leadsquared.Attribute{
		{Attribute: AttrPhone, Value: in.Phone},
		{Attribute: AttrSearchBy, Value: AttrPhone},
		{Attribute: AttrSatisfaction, Value: in.Status.String()},
		{Attribute: AttrFeedback, Value: in.Feedback},
	}
	if in.ProspectStage != "" {
		attrs = append(attrs, leadsquared.Attribute{Attribute: AttrProspectStage, Value: in.ProspectStage})
	}
	if !isPlaceholder(in.FirstName) {
		attrs = append(attrs, leadsquared.Attribute{Attribute: AttrFirstName, Value: in.FirstName})
	}
	return attrs
}

// Upserter writes survey answers onto CRM leads.
type Upserter struct {
	crm leadsquared.Client
}

// NewUpserter returns an Upserter backed by crm. A nil crm skips every call.
func NewUpserter(crm leadsquared.Client) *Upserter {
	return &Upserter{crm: crm}
}

// Upsert creates or updates the lead keyed by in.Phone. It makes one attempt.
func (u *Upserter) Upsert(ctx context.Context, in UpsertInput) CRMOutcome {
	out := CRMOutcome{Op: "lead upsert"}
	if u.crm == nil {
		out.Skipped = true
		return out
	}
	out.Err = u.crm.CreateOrUpdate(ctx, BuildAttributes(in))
	return out
}
