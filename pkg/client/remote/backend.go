// Package remote serves governance resources from the HTTP API.
package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/de-tools/aims/pkg/client/transport"
	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/config"
)

// Doer is satisfied by *transport.Transport.
type Doer interface {
	Do(ctx context.Context, req transport.Request, out any) error
}

type Backend struct {
	doer      Doer
	endpoints config.Endpoints
}

func New(doer Doer, endpoints config.Endpoints) *Backend {
	return &Backend{doer: doer, endpoints: endpoints}
}

func (b *Backend) Dashboard(ctx context.Context) (domain.DashboardSnapshot, error) {
	return call[domain.DashboardSnapshot](ctx, b.doer, http.MethodGet, b.endpoints.Dashboard, nil)
}

func (b *Backend) ListAiSystems(ctx context.Context) ([]domain.AiSystem, error) {
	return call[[]domain.AiSystem](ctx, b.doer, http.MethodGet, b.endpoints.AiSystems, nil)
}

func (b *Backend) CreateAiSystem(ctx context.Context, in domain.AiSystemInput) (domain.AiSystem, error) {
	return call[domain.AiSystem](ctx, b.doer, http.MethodPost, b.endpoints.AiSystems, in)
}

func (b *Backend) UpdateAiSystem(ctx context.Context, id string, in domain.AiSystemInput) (domain.AiSystem, error) {
	return call[domain.AiSystem](ctx, b.doer, http.MethodPut, itemPath(b.endpoints.AiSystems, id), in)
}

func (b *Backend) DeleteAiSystem(ctx context.Context, id string) (domain.DeleteResult, error) {
	return remove(ctx, b.doer, itemPath(b.endpoints.AiSystems, id))
}

func (b *Backend) ListPolicies(ctx context.Context) ([]domain.Policy, error) {
	return call[[]domain.Policy](ctx, b.doer, http.MethodGet, b.endpoints.Policies, nil)
}

func (b *Backend) CreatePolicy(ctx context.Context, in domain.PolicyInput) (domain.Policy, error) {
	return call[domain.Policy](ctx, b.doer, http.MethodPost, b.endpoints.Policies, in)
}

func (b *Backend) UpdatePolicy(ctx context.Context, id string, in domain.PolicyInput) (domain.Policy, error) {
	return call[domain.Policy](ctx, b.doer, http.MethodPut, itemPath(b.endpoints.Policies, id), in)
}

func (b *Backend) DeletePolicy(ctx context.Context, id string) (domain.DeleteResult, error) {
	return remove(ctx, b.doer, itemPath(b.endpoints.Policies, id))
}

func (b *Backend) ListIncidents(ctx context.Context) ([]domain.Incident, error) {
	return call[[]domain.Incident](ctx, b.doer, http.MethodGet, b.endpoints.Incidents, nil)
}

func (b *Backend) CreateIncident(ctx context.Context, in domain.IncidentInput) (domain.Incident, error) {
	return call[domain.Incident](ctx, b.doer, http.MethodPost, b.endpoints.Incidents, in)
}

func (b *Backend) UpdateIncident(ctx context.Context, id string, in domain.IncidentInput) (domain.Incident, error) {
	return call[domain.Incident](ctx, b.doer, http.MethodPut, itemPath(b.endpoints.Incidents, id), in)
}

func (b *Backend) DeleteIncident(ctx context.Context, id string) (domain.DeleteResult, error) {
	return remove(ctx, b.doer, itemPath(b.endpoints.Incidents, id))
}

func (b *Backend) RiskAssessments(ctx context.Context) (domain.RiskAssessments, error) {
	return call[domain.RiskAssessments](ctx, b.doer, http.MethodGet, b.endpoints.RiskAssessments, nil)
}

func (b *Backend) CreateRiskAssessment(ctx context.Context, in domain.RiskAssessmentInput) (domain.RiskAssessment, error) {
	return call[domain.RiskAssessment](ctx, b.doer, http.MethodPost, b.endpoints.RiskAssessments, in)
}

func (b *Backend) UpdateRiskAssessment(
	ctx context.Context,
	id string,
	in domain.RiskAssessmentInput,
) (domain.RiskAssessment, error) {
	return call[domain.RiskAssessment](ctx, b.doer, http.MethodPut, itemPath(b.endpoints.RiskAssessments, id), in)
}

func (b *Backend) DeleteRiskAssessment(ctx context.Context, id string) (domain.DeleteResult, error) {
	return remove(ctx, b.doer, itemPath(b.endpoints.RiskAssessments, id))
}

func call[T any](ctx context.Context, doer Doer, method, path string, body any) (T, error) {
	var out T
	err := doer.Do(ctx, transport.Request{Method: method, Path: path, Body: body}, &out)
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// remove treats an empty 2xx response as a successful deletion.
func remove(ctx context.Context, doer Doer, path string) (domain.DeleteResult, error) {
	out := domain.DeleteResult{Success: true}
	if err := doer.Do(ctx, transport.Request{Method: http.MethodDelete, Path: path}, &out); err != nil {
		return domain.DeleteResult{}, err
	}
	return out, nil
}

func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}
