package dashboard

import (
	"context"
	"time"

	"github.com/de-tools/project-atlas/pkg/adapters"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/models/store"
	"github.com/de-tools/project-atlas/pkg/services/normalize"
	"github.com/de-tools/project-atlas/pkg/store/duckdb/records"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Source is the data-access boundary of the dashboard: it returns canonical records for a project.
type Source interface {
	ListRecords(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.Record, error)
}

// Writer persists records changed by commands. Sources that cannot be written to omit it.
type Writer interface {
	SaveRecords(ctx context.Context, records []domain.Record) error
}

// Refresher saves pulled records without overwriting those changed after since.
type Refresher interface {
	RefreshRecords(ctx context.Context, records []domain.Record, since time.Time) error
}

// RecordGetter looks a record up by id without listing its project.
type RecordGetter interface {
	Record(ctx context.Context, kind domain.RecordKind, id string) (domain.Record, error)
}

// CommandWriter persists only the fields a command changed. Writers without it save whole records.
type CommandWriter interface {
	UpdateProject(ctx context.Context, rec domain.Record) error
	UpdateStatus(ctx context.Context, rec domain.Record) error
}

// RawSource yields records as exported by an upstream system, before normalization.
type RawSource interface {
	FetchRaw(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.RawRecord, error)
}

// NormalizingSource turns a RawSource into a Source.
type NormalizingSource struct {
	raw RawSource
}

func NewNormalizingSource(raw RawSource) *NormalizingSource {
	return &NormalizingSource{raw: raw}
}

func (s *NormalizingSource) ListRecords(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.Record, error) {
	raws, err := s.raw.FetchRaw(ctx, projectID, kind)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch %s records of %s", kind, projectID)
	}
	return ForProject(normalize.NormalizeAll(ctx, kind, raws), projectID), nil
}

// ForProject fills the project of records exported under projectID without one.
func ForProject(recs []domain.Record, projectID string) []domain.Record {
	for i := range recs {
		if recs[i].ProjectID == "" {
			recs[i].ProjectID = projectID
		}
	}
	return recs
}

// StoreRepository reads and writes records kept in the embedded store.
type StoreRepository struct {
	store records.Store
}

func NewStoreRepository(s records.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) ListRecords(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.Record, error) {
	rows, err := r.store.List(ctx, projectID, string(kind))
	if err != nil {
		return nil, err
	}

	res := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := adapters.MapRecordStoreToDomain(row)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, nil
}

func (r *StoreRepository) Record(ctx context.Context, kind domain.RecordKind, id string) (domain.Record, error) {
	row, err := r.store.Get(ctx, string(kind), id)
	if err != nil {
		return domain.Record{}, err
	}
	return adapters.MapRecordStoreToDomain(*row)
}

func (r *StoreRepository) UpdateProject(ctx context.Context, rec domain.Record) error {
	return r.store.UpdateProject(ctx, string(rec.Kind), rec.ID, rec.ProjectID, string(rec.Status))
}

func (r *StoreRepository) UpdateStatus(ctx context.Context, rec domain.Record) error {
	return r.store.UpdateStatus(ctx, string(rec.Kind), rec.ID, string(rec.Status))
}

func (r *StoreRepository) SaveRecords(ctx context.Context, recs []domain.Record) error {
	rows, err := toRows(recs)
	if err != nil {
		return err
	}
	return r.store.Upsert(ctx, rows)
}

func (r *StoreRepository) RefreshRecords(ctx context.Context, recs []domain.Record, since time.Time) error {
	rows, err := toRows(recs)
	if err != nil {
		return err
	}
	skipped, err := r.store.Refresh(ctx, rows, since)
	if err != nil {
		return err
	}
	if skipped > 0 {
		zerolog.Ctx(ctx).Debug().Int("skipped", skipped).Msg("kept records changed since the last pull")
	}
	return nil
}

func toRows(recs []domain.Record) ([]store.RecordRow, error) {
	rows := make([]store.RecordRow, 0, len(recs))
	for _, rec := range recs {
		row, err := adapters.MapRecordDomainToStore(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
