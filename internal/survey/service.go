package survey

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/csat-sync/internal/config"
	"github.com/sells-group/csat-sync/internal/phone"
	"github.com/sells-group/csat-sync/internal/resilience"
	"github.com/sells-group/csat-sync/pkg/leadsquared"
	"github.com/sells-group/csat-sync/pkg/sheets"
)

// Service runs retrieve and submit requests end to end.
type Service struct {
	resolver *Resolver
	upserter *Upserter
	sink     *SinkWriter
	newID    func() string
}

// NewService wires the pipeline from cfg. CRM calls are disabled unless both
// LeadSquared keys are set, and the sink write is skipped unless a web app
// URL is set, whatever clients are passed in.
func NewService(cfg *config.Config, crm leadsquared.Client, sink sheets.Client) *Service {
	if !cfg.LeadSquared.Enabled() {
		crm = nil
	}
	if !cfg.Sheets.Enabled() {
		sink = nil
	}
	return &Service{
		resolver: NewResolver(crm, cfg.LeadSquared.ParallelLookup),
		upserter: NewUpserter(crm),
		sink:     NewSinkWriter(sink),
		newID:    uuid.NewString,
	}
}

func parsePhone(raw string) (phone.Number, error) {
	if strings.TrimSpace(raw) == "" {
		return phone.Number{}, &ValidationError{Field: "phone", Message: "Missing phone"}
	}
	n := phone.Parse(raw)
	if !n.Valid() {
		return phone.Number{}, &ValidationError{Field: "phone", Message: "Invalid phone"}
	}
	return n, nil
}

// Retrieve looks up the lead for rawPhone so the survey page can greet the
// customer by name. It never writes anywhere.
func (s *Service) Retrieve(ctx context.Context, rawPhone string) (Retrieval, error) {
	n, err := parsePhone(rawPhone)
	if err != nil {
		return Retrieval{}, err
	}

	lead := s.resolver.Resolve(ctx, n.SearchFormats())
	zap.L().Info("survey: lead retrieved",
		zap.String("phone", n.CRMFormat()),
		zap.Bool("exists", lead.Exists),
	)
	return Retrieval{Success: true, FirstName: lead.FirstName, Exists: lead.Exists}, nil
}

// Submit records a survey answer. The CRM update is best-effort; the sink
// write is not, and its failure is returned as a *SinkError.
func (s *Service) Submit(ctx context.Context, resp Response) (Outcome, error) {
	n, err := parsePhone(resp.Phone)
	if err != nil {
		return Outcome{}, err
	}
	status := ParseStatus(resp.Status.String())
	if status == "" {
		return Outcome{}, &ValidationError{Field: "status", Message: "Missing status"}
	}
	feedback := strings.TrimSpace(resp.Feedback)

	id := s.newID()
	logger := zap.L().With(
		zap.String("submission_id", id),
		zap.String("phone", n.CRMFormat()),
		zap.String("status", status.String()),
	)

	var lead LeadRecord
	if hint := strings.TrimSpace(resp.FirstName); !isPlaceholder(hint) {
		lead = LeadRecord{Exists: true, FirstName: hint}
		logger.Debug("survey: using caller-supplied name, skipping lead lookup")
	} else {
		lead = s.resolver.Resolve(ctx, n.SearchFormats())
	}

	isExisting := !isPlaceholder(lead.FirstName)
	name := strings.TrimSpace(lead.FirstName)
	if !isExisting {
		name = PlaceholderName
	}

	s.upserter.Upsert(ctx, UpsertInput{
		Phone:         n.CRMFormat(),
		Status:        status,
		Feedback:      feedback,
		FirstName:     name,
		ProspectStage: lead.ProspectStage,
	}).Log(logger)

	if err := s.sink.Write(ctx, SinkRecord{
		FirstName: name,
		Phone:     n.SinkFormat(),
		Status:    status,
		Feedback:  feedback,
	}); err != nil {
		logger.Error("survey: sink write failed",
			zap.Error(err),
			zap.String("class", string(resilience.Classify(err))),
		)
		return Outcome{SubmissionID: id}, err
	}

	logger.Info("survey: submission recorded", zap.Bool("is_existing", isExisting))
	return Outcome{
		Success:      true,
		FirstName:    name,
		IsExisting:   isExisting,
		SubmissionID: id,
	}, nil
}
