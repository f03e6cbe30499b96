// Package dashboard serves the metrics, insights and commands of the project dashboard.
package dashboard

import (
	"context"
	"time"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/format"
	"github.com/de-tools/project-atlas/pkg/services/insights"
	"github.com/de-tools/project-atlas/pkg/services/lifecycle"
	"github.com/de-tools/project-atlas/pkg/services/metrics"
	"github.com/de-tools/project-atlas/pkg/services/staffing"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Service struct {
	source     Source
	writer     Writer
	aggregator *metrics.Aggregator
	engine     *insights.Engine
	formatter  *format.Formatter
	now        func() time.Time
}

type Option func(*Service)

// WithWriter makes commands persist the records they change.
func WithWriter(w Writer) Option {
	return func(s *Service) { s.writer = w }
}

func WithFormatter(f *format.Formatter) Option {
	return func(s *Service) { s.formatter = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(source Source, aggregator *metrics.Aggregator, engine *insights.Engine, opts ...Option) *Service {
	s := &Service{
		source:     source,
		aggregator: aggregator,
		engine:     engine,
		formatter:  format.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Formatter() *format.Formatter {
	return s.formatter
}

func (s *Service) Records(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.Record, error) {
	return s.source.ListRecords(ctx, projectID, kind)
}

// Classify returns the risk level of each record keyed by record id.
func (s *Service) Classify(records []domain.Record) map[string]domain.RiskLevel {
	return s.aggregator.ClassifyAll(records)
}

func (s *Service) Summary(ctx context.Context, projectID string, kind domain.RecordKind) (domain.SummaryMetrics, error) {
	recs, err := s.Records(ctx, projectID, kind)
	if err != nil {
		return domain.SummaryMetrics{}, err
	}
	return s.aggregator.Aggregate(recs), nil
}

func (s *Service) Insights(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.Insight, error) {
	d, err := s.Dashboard(ctx, projectID, kind)
	if err != nil {
		return nil, err
	}
	return d.Insights, nil
}

func (s *Service) Dashboard(ctx context.Context, projectID string, kind domain.RecordKind) (domain.Dashboard, error) {
	recs, err := s.Records(ctx, projectID, kind)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return s.dashboard(projectID, kind, recs), nil
}

func (s *Service) dashboard(projectID string, kind domain.RecordKind, recs []domain.Record) domain.Dashboard {
	m := s.aggregator.Aggregate(recs)
	return domain.Dashboard{
		ProjectID: projectID,
		Kind:      kind,
		Metrics:   m,
		Insights:  s.engine.DeriveInsights(m, recs),
	}
}

// Report builds the report of projectID and returns it with the records it was built from.
func (s *Service) Report(ctx context.Context, projectID string, kind domain.RecordKind) (*domain.Report, []domain.Record, error) {
	recs, err := s.Records(ctx, projectID, kind)
	if err != nil {
		return nil, nil, err
	}
	return BuildReport(s.dashboard(projectID, kind, recs), recs, s.aggregator.Settings(), s.formatter, s.now()), recs, nil
}

// Record returns one record of projectID. Sources implementing RecordGetter are queried by id.
func (s *Service) Record(ctx context.Context, projectID string, kind domain.RecordKind, id string) (domain.Record, error) {
	if getter, ok := s.source.(RecordGetter); ok {
		rec, err := getter.Record(ctx, kind, id)
		if err != nil {
			return domain.Record{}, err
		}
		if rec.ProjectID != projectID {
			return domain.Record{}, eris.Wrapf(domain.ErrNotFound, "%s %s in project %s", kind, id, projectID)
		}
		return rec, nil
	}

	recs, err := s.Records(ctx, projectID, kind)
	if err != nil {
		return domain.Record{}, err
	}
	rec, ok := find(recs, id)
	if !ok {
		return domain.Record{}, eris.Wrapf(domain.ErrNotFound, "%s %s in project %s", kind, id, projectID)
	}
	return rec, nil
}

func (s *Service) Allocation(ctx context.Context, projectID string) ([]domain.Allocation, error) {
	recs, err := s.Records(ctx, projectID, domain.RecordKindEmployee)
	if err != nil {
		return nil, err
	}
	return staffing.Allocation(recs), nil
}

// Reassign moves an employee of projectID to cmd.ToProjectID and returns the updated record.
func (s *Service) Reassign(ctx context.Context, projectID string, cmd domain.ReassignCommand) (domain.Record, error) {
	recs, err := s.Records(ctx, projectID, domain.RecordKindEmployee)
	if err != nil {
		return domain.Record{}, err
	}

	updated, err := staffing.Reassign(recs, cmd)
	if err != nil {
		return domain.Record{}, eris.Wrapf(err, "reassign in project %s", projectID)
	}

	employee, ok := find(updated, cmd.EmployeeID)
	if !ok {
		return domain.Record{}, eris.Wrapf(domain.ErrNotFound, "employee %s", cmd.EmployeeID)
	}
	if err := s.save(ctx, employee, CommandWriter.UpdateProject); err != nil {
		return domain.Record{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("command", cmd.ID).
		Str("employee", cmd.EmployeeID).
		Str("from", projectID).
		Str("to", cmd.ToProjectID).
		Msg("employee reassigned")
	return employee, nil
}

// Transition applies a lifecycle event to a buyout of projectID.
func (s *Service) Transition(ctx context.Context, projectID, buyoutID, event string) (domain.Record, error) {
	rec, err := s.Record(ctx, projectID, domain.RecordKindBuyout, buyoutID)
	if err != nil {
		return domain.Record{}, err
	}

	from := rec.Status
	rec, err = lifecycle.Apply(rec, event)
	if err != nil {
		return domain.Record{}, err
	}
	if err := s.save(ctx, rec, CommandWriter.UpdateStatus); err != nil {
		return domain.Record{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("buyout", buyoutID).
		Str("event", event).
		Str("from", string(from)).
		Str("to", string(rec.Status)).
		Msg("buyout transitioned")
	return rec, nil
}

// save persists rec with update when the writer is a CommandWriter and as a whole record otherwise.
func (s *Service) save(
	ctx context.Context,
	rec domain.Record,
	update func(CommandWriter, context.Context, domain.Record) error,
) error {
	if s.writer == nil {
		zerolog.Ctx(ctx).Warn().Str("record", rec.ID).Msg("source is read-only, change not persisted")
		return nil
	}
	if cw, ok := s.writer.(CommandWriter); ok {
		return eris.Wrapf(update(cw, ctx, rec), "save record %s", rec.ID)
	}
	return eris.Wrapf(s.writer.SaveRecords(ctx, []domain.Record{rec}), "save record %s", rec.ID)
}

func find(recs []domain.Record, id string) (domain.Record, bool) {
	for _, r := range recs {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Record{}, false
}
