package survey

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/csat-sync/internal/resilience"
	"github.com/sells-group/csat-sync/internal/resolve"
	"github.com/sells-group/csat-sync/pkg/leadsquared"
)

// Resolver finds an existing lead by trying phone formats in order.
type Resolver struct {
	crm      leadsquared.Client
	parallel bool
}

// NewResolver returns a Resolver backed by crm. A nil crm means the CRM is
// not configured and every lookup resolves to "not found".
func NewResolver(crm leadsquared.Client, parallel bool) *Resolver {
	return &Resolver{crm: crm, parallel: parallel}
}

// Resolve returns the first lead matching any of searchFormats. Lookup
// failures are logged and count as no match; they never fail the request.
func (r *Resolver) Resolve(ctx context.Context, searchFormats []string) LeadRecord {
	if r.crm == nil {
		zap.L().Debug("survey: leadsquared not configured, skipping lead lookup")
		return LeadRecord{}
	}

	first := resolve.FirstMatch[string, leadsquared.Lead]
	if r.parallel {
		first = resolve.FirstMatchParallel[string, leadsquared.Lead]
	}

	res := first(ctx, searchFormats, r.lookup)
	for _, err := range res.Errs {
		zap.L().Warn("survey: lead lookup failed",
			zap.Error(err),
			zap.String("class", string(resilience.Classify(err))),
		)
	}

	if !res.Found {
		zap.L().Debug("survey: no lead found", zap.Int("tried", res.Tried))
		return LeadRecord{}
	}

	zap.L().Debug("survey: lead found",
		zap.String("matched_format", res.Key),
		zap.String("prospect_id", res.Value.ProspectID),
	)
	return LeadRecord{
		Exists:        true,
		FirstName:     res.Value.FirstName,
		ProspectStage: res.Value.ProspectStage,
	}
}

func (r *Resolver) lookup(ctx context.Context, phone string) (leadsquared.Lead, bool, error) {
	leads, err := r.crm.LeadsByPhone(ctx, phone)
	if err != nil {
		return leadsquared.Lead{}, false, eris.Wrapf(err, "survey: lookup %s", phone)
	}
	if len(leads) == 0 {
		return leadsquared.Lead{}, false, nil
	}
	return leads[0], true, nil
}
