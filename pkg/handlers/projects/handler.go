package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/de-tools/project-atlas/pkg/adapters"
	"github.com/de-tools/project-atlas/pkg/handlers/respond"
	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/export"
	"github.com/de-tools/project-atlas/pkg/services/format"
	"github.com/de-tools/project-atlas/pkg/services/staffing"
	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type DashboardService interface {
	Records(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.Record, error)
	Classify(records []domain.Record) map[string]domain.RiskLevel
	Summary(ctx context.Context, projectID string, kind domain.RecordKind) (domain.SummaryMetrics, error)
	Dashboard(ctx context.Context, projectID string, kind domain.RecordKind) (domain.Dashboard, error)
	Record(ctx context.Context, projectID string, kind domain.RecordKind, id string) (domain.Record, error)
	Report(ctx context.Context, projectID string, kind domain.RecordKind) (*domain.Report, []domain.Record, error)
	Allocation(ctx context.Context, projectID string) ([]domain.Allocation, error)
	Reassign(ctx context.Context, projectID string, cmd domain.ReassignCommand) (domain.Record, error)
	Transition(ctx context.Context, projectID, buyoutID, event string) (domain.Record, error)
}

type Handler struct {
	service   DashboardService
	formatter *format.Formatter
}

func NewHandler(service DashboardService, formatter *format.Formatter) *Handler {
	if formatter == nil {
		formatter = format.Default()
	}
	return &Handler{
		service:   service,
		formatter: formatter,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/projects/{project}", func(r chi.Router) {
		r.Get("/staffing/allocation", h.GetAllocation)
		r.Post("/staffing/reassign", h.Reassign)
		r.Post("/buyouts/{id}/transitions", h.Transition)

		r.Get("/{kind}/records", h.ListRecords)
		r.Get("/{kind}/records/{id}", h.GetRecord)
		r.Get("/{kind}/summary", h.GetSummary)
		r.Get("/{kind}/insights", h.GetInsights)
		r.Get("/{kind}/dashboard", h.GetDashboard)
		r.Get("/{kind}/report.xlsx", h.GetReport)
	})
}

func scope(w http.ResponseWriter, r *http.Request) (string, domain.RecordKind, bool) {
	project := chi.URLParam(r, "project")
	kind, ok := domain.ParseRecordKind(chi.URLParam(r, "kind"))
	if !ok {
		respond.Error(w, r, eris.Wrapf(domain.ErrInvalidCommand, "unknown record kind %q", chi.URLParam(r, "kind")))
		return "", "", false
	}
	return project, kind, true
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	project, kind, ok := scope(w, r)
	if !ok {
		return
	}

	recs, err := h.service.Records(r.Context(), project, kind)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapRecordsDomainToApi(recs, h.service.Classify(recs)))
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	project, kind, ok := scope(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Record(r.Context(), project, kind, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	risk := h.service.Classify([]domain.Record{rec})
	respond.JSON(w, r, http.StatusOK, adapters.MapRecordDomainToApi(rec, risk[rec.ID]))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	project, kind, ok := scope(w, r)
	if !ok {
		return
	}

	m, err := h.service.Summary(r.Context(), project, kind)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapSummaryMetricsDomainToApi(m, h.formatter))
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	project, kind, ok := scope(w, r)
	if !ok {
		return
	}

	d, err := h.service.Dashboard(r.Context(), project, kind)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapInsightsDomainToApi(d.Insights))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	project, kind, ok := scope(w, r)
	if !ok {
		return
	}

	d, err := h.service.Dashboard(r.Context(), project, kind)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapDashboardDomainToApi(d, h.formatter))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	project, kind, ok := scope(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	report, recs, err := h.service.Report(ctx, project, kind)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-%s.xlsx", project, kind)))
	if err := export.Write(w, report, recs, h.formatter); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("project", project).Msg("failed to write report")
	}
}

func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.service.Allocation(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapAllocationsDomainToApi(allocation))
}

func (h *Handler) Reassign(w http.ResponseWriter, r *http.Request) {
	var req api.ReassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, eris.Wrapf(domain.ErrInvalidCommand, "decode request: %v", err))
		return
	}

	cmd := staffing.NewReassignCommand(req.EmployeeID, req.ToProject)
	rec, err := h.service.Reassign(r.Context(), chi.URLParam(r, "project"), cmd)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	risk := h.service.Classify([]domain.Record{rec})
	respond.JSON(w, r, http.StatusOK, api.ReassignResponse{
		CommandID: cmd.ID,
		Employee:  adapters.MapRecordDomainToApi(rec, risk[rec.ID]),
	})
}

func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	var req api.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, eris.Wrapf(domain.ErrInvalidCommand, "decode request: %v", err))
		return
	}

	rec, err := h.service.Transition(r.Context(), chi.URLParam(r, "project"), chi.URLParam(r, "id"), req.Event)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	risk := h.service.Classify([]domain.Record{rec})
	respond.JSON(w, r, http.StatusOK, adapters.MapRecordDomainToApi(rec, risk[rec.ID]))
}
