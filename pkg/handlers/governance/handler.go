package governance

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/aims/pkg/client"
	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/registry"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	records client.Backend
}

func NewHandler(records client.Backend) *Handler {
	return &Handler{records: records}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.records.Dashboard(r.Context())
	respond(w, r, http.StatusOK, snapshot, err)
}

func (h *Handler) ListAiSystems(w http.ResponseWriter, r *http.Request) {
	systems, err := h.records.ListAiSystems(r.Context())
	respond(w, r, http.StatusOK, systems, err)
}

func (h *Handler) CreateAiSystem(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[domain.AiSystemInput](w, r)
	if !ok {
		return
	}
	created, err := h.records.CreateAiSystem(r.Context(), in)
	respond(w, r, http.StatusCreated, created, err)
}

func (h *Handler) UpdateAiSystem(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[domain.AiSystemInput](w, r)
	if !ok {
		return
	}
	updated, err := h.records.UpdateAiSystem(r.Context(), chi.URLParam(r, "id"), in)
	respond(w, r, http.StatusOK, updated, err)
}

func (h *Handler) DeleteAiSystem(w http.ResponseWriter, r *http.Request) {
	res, err := h.records.DeleteAiSystem(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, res, err)
}

func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.records.ListPolicies(r.Context())
	respond(w, r, http.StatusOK, policies, err)
}

func (h *Handler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[domain.PolicyInput](w, r)
	if !ok {
		return
	}
	created, err := h.records.CreatePolicy(r.Context(), in)
	respond(w, r, http.StatusCreated, created, err)
}

func (h *Handler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[domain.PolicyInput](w, r)
	if !ok {
		return
	}
	updated, err := h.records.UpdatePolicy(r.Context(), chi.URLParam(r, "id"), in)
	respond(w, r, http.StatusOK, updated, err)
}

func (h *Handler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	res, err := h.records.DeletePolicy(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, res, err)
}

func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.records.ListIncidents(r.Context())
	respond(w, r, http.StatusOK, incidents, err)
}

func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[domain.IncidentInput](w, r)
	if !ok {
		return
	}
	created, err := h.records.CreateIncident(r.Context(), in)
	respond(w, r, http.StatusCreated, created, err)
}

func (h *Handler) UpdateIncident(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[domain.IncidentInput](w, r)
	if !ok {
		return
	}
	updated, err := h.records.UpdateIncident(r.Context(), chi.URLParam(r, "id"), in)
	respond(w, r, http.StatusOK, updated, err)
}

func (h *Handler) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	res, err := h.records.DeleteIncident(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, res, err)
}

func (h *Handler) GetRiskAssessments(w http.ResponseWriter, r *http.Request) {
	risk, err := h.records.RiskAssessments(r.Context())
	respond(w, r, http.StatusOK, risk, err)
}

func (h *Handler) CreateRiskAssessment(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[domain.RiskAssessmentInput](w, r)
	if !ok {
		return
	}
	created, err := h.records.CreateRiskAssessment(r.Context(), in)
	respond(w, r, http.StatusCreated, created, err)
}

func (h *Handler) UpdateRiskAssessment(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[domain.RiskAssessmentInput](w, r)
	if !ok {
		return
	}
	updated, err := h.records.UpdateRiskAssessment(r.Context(), chi.URLParam(r, "id"), in)
	respond(w, r, http.StatusOK, updated, err)
}

func (h *Handler) DeleteRiskAssessment(w http.ResponseWriter, r *http.Request) {
	res, err := h.records.DeleteRiskAssessment(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, res, err)
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var in T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return in, false
	}
	return in, true
}

func respond(w http.ResponseWriter, r *http.Request, status int, body any, err error) {
	logger := zerolog.Ctx(r.Context())

	if err != nil {
		switch {
		case errors.Is(err, registry.ErrNotFound):
			http.Error(w, "record not found", http.StatusNotFound)
		case errors.Is(err, registry.ErrInvalid):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			logger.Error().Err(err).Msg("request failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
