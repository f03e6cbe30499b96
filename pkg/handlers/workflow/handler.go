package workflow

import (
	"net/http"

	"github.com/de-tools/project-atlas/pkg/adapters"
	"github.com/de-tools/project-atlas/pkg/handlers/respond"
	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/services/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	controller workflow.Controller
}

func NewHandler(controller workflow.Controller) *Handler {
	return &Handler{controller: controller}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/sync", h.ListSyncs)
	r.Post("/sync/{profile}/{project}", h.StartSync)
	r.Delete("/sync/{profile}/{project}", h.CancelSync)
}

func (h *Handler) ListSyncs(w http.ResponseWriter, r *http.Request) {
	syncs, err := h.controller.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	res := make([]api.Sync, 0, len(syncs))
	for _, s := range syncs {
		res = append(res, adapters.MapDomainSyncToApi(s))
	}
	respond.JSON(w, r, http.StatusOK, res)
}

func (h *Handler) StartSync(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")
	project := chi.URLParam(r, "project")

	s, err := h.controller.Start(r.Context(), profile, project)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("sync", s.ID).Str("profile", profile).Str("project", project).Msg("sync started")
	respond.JSON(w, r, http.StatusAccepted, adapters.MapDomainSyncToApi(*s))
}

func (h *Handler) CancelSync(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Cancel(r.Context(), chi.URLParam(r, "profile"), chi.URLParam(r, "project")); err != nil {
		respond.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
