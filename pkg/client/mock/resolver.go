// Package mock resolves governance resources from static fixtures.
// Writes are acknowledged but never change the fixtures.
package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/aims/pkg/models/domain"
)

// IDGenerator yields identities for created records. It must be safe for concurrent use.
type IDGenerator func() string

// NewUUID is the identity strategy shared by every resource.
func NewUUID() string {
	return uuid.NewString()
}

type Resolver struct {
	fixtures Fixtures
	newID    IDGenerator
}

type Option func(*Resolver)

func WithFixtures(f Fixtures) Option {
	return func(r *Resolver) { r.fixtures = f }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(r *Resolver) { r.newID = g }
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		fixtures: DefaultFixtures(),
		newID:    NewUUID,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Resolver) Dashboard(ctx context.Context) (domain.DashboardSnapshot, error) {
	trace(ctx, "dashboard")
	return cloneDashboard(r.fixtures.Dashboard), nil
}

func (r *Resolver) ListAiSystems(ctx context.Context) ([]domain.AiSystem, error) {
	trace(ctx, "ai systems")
	return cloneSystems(r.fixtures.AiSystems), nil
}

func (r *Resolver) CreateAiSystem(ctx context.Context, in domain.AiSystemInput) (domain.AiSystem, error) {
	return r.UpdateAiSystem(ctx, r.newID(), in)
}

func (r *Resolver) UpdateAiSystem(_ context.Context, id string, in domain.AiSystemInput) (domain.AiSystem, error) {
	in.DataSources = cloneStrings(in.DataSources)
	return in.WithID(id), nil
}

func (r *Resolver) DeleteAiSystem(_ context.Context, _ string) (domain.DeleteResult, error) {
	return domain.DeleteResult{Success: true}, nil
}

func (r *Resolver) ListPolicies(ctx context.Context) ([]domain.Policy, error) {
	trace(ctx, "policies")
	return append([]domain.Policy(nil), r.fixtures.Policies...), nil
}

func (r *Resolver) CreatePolicy(ctx context.Context, in domain.PolicyInput) (domain.Policy, error) {
	return r.UpdatePolicy(ctx, r.newID(), in)
}

func (r *Resolver) UpdatePolicy(_ context.Context, id string, in domain.PolicyInput) (domain.Policy, error) {
	return in.WithID(id), nil
}

func (r *Resolver) DeletePolicy(_ context.Context, _ string) (domain.DeleteResult, error) {
	return domain.DeleteResult{Success: true}, nil
}

func (r *Resolver) ListIncidents(ctx context.Context) ([]domain.Incident, error) {
	trace(ctx, "incidents")
	return append([]domain.Incident(nil), r.fixtures.Incidents...), nil
}

func (r *Resolver) CreateIncident(ctx context.Context, in domain.IncidentInput) (domain.Incident, error) {
	return r.UpdateIncident(ctx, r.newID(), in)
}

func (r *Resolver) UpdateIncident(_ context.Context, id string, in domain.IncidentInput) (domain.Incident, error) {
	return in.WithID(id), nil
}

func (r *Resolver) DeleteIncident(_ context.Context, _ string) (domain.DeleteResult, error) {
	return domain.DeleteResult{Success: true}, nil
}

func (r *Resolver) RiskAssessments(ctx context.Context) (domain.RiskAssessments, error) {
	trace(ctx, "risk assessments")
	return cloneRiskAssessments(r.fixtures.RiskAssessments), nil
}

func (r *Resolver) CreateRiskAssessment(ctx context.Context, in domain.RiskAssessmentInput) (domain.RiskAssessment, error) {
	return r.UpdateRiskAssessment(ctx, r.newID(), in)
}

func (r *Resolver) UpdateRiskAssessment(_ context.Context, id string, in domain.RiskAssessmentInput) (domain.RiskAssessment, error) {
	return in.WithID(id), nil
}

func (r *Resolver) DeleteRiskAssessment(_ context.Context, _ string) (domain.DeleteResult, error) {
	return domain.DeleteResult{Success: true}, nil
}

func trace(ctx context.Context, resource string) {
	zerolog.Ctx(ctx).Debug().Str("resource", resource).Msg("serving mock fixtures")
}
