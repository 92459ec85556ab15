// Package registry is the server side record keeper of the governance API.
// It stores records through sqlstore and derives the dashboard and risk
// overview from them.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/aims/pkg/client/mock"
	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/models/store"
	"github.com/de-tools/aims/pkg/store/sqlstore"
)

const complianceID = "compliance"

var (
	ErrNotFound = sqlstore.ErrNotFound
	ErrInvalid  = errors.New("invalid record")
)

type Registry struct {
	systems   collection[domain.AiSystem]
	policies  collection[domain.Policy]
	incidents collection[domain.Incident]
	risks     collection[domain.RiskAssessment]
	settings  collection[store.ComplianceSettings]
	validate  *validator.Validate
	newID     func() string
}

type Option func(*Registry)

func WithIDGenerator(g func() string) Option {
	return func(r *Registry) { r.newID = g }
}

func New(st sqlstore.Store, opts ...Option) (*Registry, error) {
	if st == nil {
		return nil, fmt.Errorf("store is nil")
	}
	r := &Registry{
		systems:   collection[domain.AiSystem]{store: st, kind: store.KindAiSystem},
		policies:  collection[domain.Policy]{store: st, kind: store.KindPolicy},
		incidents: collection[domain.Incident]{store: st, kind: store.KindIncident},
		risks:     collection[domain.RiskAssessment]{store: st, kind: store.KindRiskAssessment},
		settings:  collection[store.ComplianceSettings]{store: st, kind: store.KindSetting},
		validate:  validator.New(),
		newID:     uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Seed loads fixtures into an empty registry. A registry that already holds
// compliance settings is left untouched.
func (r *Registry) Seed(ctx context.Context, f mock.Fixtures) error {
	logger := zerolog.Ctx(ctx)

	_, err := r.settings.get(ctx, complianceID)
	switch {
	case err == nil:
		logger.Debug().Msg("registry already seeded")
		return nil
	case !errors.Is(err, ErrNotFound):
		return err
	}

	settings := store.ComplianceSettings{
		ComplianceProgress: f.Dashboard.ComplianceProgress,
		IsoSections:        f.Dashboard.IsoSections,
	}
	if err := r.settings.insert(ctx, complianceID, settings); err != nil {
		return err
	}
	for _, s := range f.AiSystems {
		if err := r.systems.insert(ctx, s.ID, s); err != nil {
			return err
		}
	}
	for _, p := range f.Policies {
		if err := r.policies.insert(ctx, p.ID, p); err != nil {
			return err
		}
	}
	for _, i := range f.Incidents {
		if err := r.incidents.insert(ctx, i.ID, i); err != nil {
			return err
		}
	}
	for _, ra := range f.RiskAssessments.Reports {
		if err := r.risks.insert(ctx, ra.ID, ra); err != nil {
			return err
		}
	}

	logger.Info().
		Int("systems", len(f.AiSystems)).
		Int("policies", len(f.Policies)).
		Int("incidents", len(f.Incidents)).
		Int("risk_assessments", len(f.RiskAssessments.Reports)).
		Msg("registry seeded")
	return nil
}

func (r *Registry) Dashboard(ctx context.Context) (domain.DashboardSnapshot, error) {
	settings, err := r.settings.get(ctx, complianceID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return domain.DashboardSnapshot{}, err
	}
	systems, err := r.systems.list(ctx)
	if err != nil {
		return domain.DashboardSnapshot{}, err
	}
	policies, err := r.policies.list(ctx)
	if err != nil {
		return domain.DashboardSnapshot{}, err
	}
	risks, err := r.risks.list(ctx)
	if err != nil {
		return domain.DashboardSnapshot{}, err
	}

	summaries := make([]domain.SystemSummary, 0, len(systems))
	for _, s := range systems {
		summaries = append(summaries, s.Summary())
	}
	categories := make([]string, 0, len(policies))
	seen := make(map[domain.PolicyCategory]bool, len(policies))
	for _, p := range policies {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, string(p.Category))
	}
	sections := settings.IsoSections
	if sections == nil {
		sections = []string{}
	}

	return domain.DashboardSnapshot{
		ComplianceProgress: settings.ComplianceProgress,
		IsoSections:        sections,
		AiSystems:          summaries,
		PolicyCategories:   categories,
		RiskDistribution:   domain.Distribution(risks),
	}, nil
}

func (r *Registry) ListAiSystems(ctx context.Context) ([]domain.AiSystem, error) {
	return r.systems.list(ctx)
}

func (r *Registry) CreateAiSystem(ctx context.Context, in domain.AiSystemInput) (domain.AiSystem, error) {
	return create(ctx, r, r.systems, in.WithID(r.newID()), func(s domain.AiSystem) string { return s.ID })
}

func (r *Registry) UpdateAiSystem(ctx context.Context, id string, in domain.AiSystemInput) (domain.AiSystem, error) {
	return update(ctx, r, r.systems, id, in.WithID(id))
}

func (r *Registry) DeleteAiSystem(ctx context.Context, id string) (domain.DeleteResult, error) {
	return remove(ctx, r.systems, id)
}

func (r *Registry) ListPolicies(ctx context.Context) ([]domain.Policy, error) {
	return r.policies.list(ctx)
}

func (r *Registry) CreatePolicy(ctx context.Context, in domain.PolicyInput) (domain.Policy, error) {
	return create(ctx, r, r.policies, in.WithID(r.newID()), func(p domain.Policy) string { return p.ID })
}

func (r *Registry) UpdatePolicy(ctx context.Context, id string, in domain.PolicyInput) (domain.Policy, error) {
	return update(ctx, r, r.policies, id, in.WithID(id))
}

func (r *Registry) DeletePolicy(ctx context.Context, id string) (domain.DeleteResult, error) {
	return remove(ctx, r.policies, id)
}

func (r *Registry) ListIncidents(ctx context.Context) ([]domain.Incident, error) {
	return r.incidents.list(ctx)
}

func (r *Registry) CreateIncident(ctx context.Context, in domain.IncidentInput) (domain.Incident, error) {
	return create(ctx, r, r.incidents, in.WithID(r.newID()), func(i domain.Incident) string { return i.ID })
}

func (r *Registry) UpdateIncident(ctx context.Context, id string, in domain.IncidentInput) (domain.Incident, error) {
	return update(ctx, r, r.incidents, id, in.WithID(id))
}

func (r *Registry) DeleteIncident(ctx context.Context, id string) (domain.DeleteResult, error) {
	return remove(ctx, r.incidents, id)
}

// RiskAssessments offers every registered system as an assessment target.
func (r *Registry) RiskAssessments(ctx context.Context) (domain.RiskAssessments, error) {
	systems, err := r.systems.list(ctx)
	if err != nil {
		return domain.RiskAssessments{}, err
	}
	reports, err := r.risks.list(ctx)
	if err != nil {
		return domain.RiskAssessments{}, err
	}

	options := make([]domain.SystemOption, 0, len(systems))
	for _, s := range systems {
		options = append(options, domain.SystemOption{Value: s.ID, Label: s.Name})
	}
	return domain.RiskAssessments{
		Systems:          options,
		Reports:          reports,
		RiskDistribution: domain.Distribution(reports),
	}, nil
}

func (r *Registry) CreateRiskAssessment(ctx context.Context, in domain.RiskAssessmentInput) (domain.RiskAssessment, error) {
	return create(ctx, r, r.risks, in.WithID(r.newID()), func(ra domain.RiskAssessment) string { return ra.ID })
}

func (r *Registry) UpdateRiskAssessment(
	ctx context.Context,
	id string,
	in domain.RiskAssessmentInput,
) (domain.RiskAssessment, error) {
	return update(ctx, r, r.risks, id, in.WithID(id))
}

func (r *Registry) DeleteRiskAssessment(ctx context.Context, id string) (domain.DeleteResult, error) {
	return remove(ctx, r.risks, id)
}

func (r *Registry) check(v any) error {
	if err := r.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	return nil
}

func create[T any](ctx context.Context, r *Registry, c collection[T], v T, id func(T) string) (T, error) {
	var zero T
	if err := r.check(v); err != nil {
		return zero, err
	}
	if err := c.insert(ctx, id(v), v); err != nil {
		return zero, err
	}
	return v, nil
}

func update[T any](ctx context.Context, r *Registry, c collection[T], id string, v T) (T, error) {
	var zero T
	if err := r.check(v); err != nil {
		return zero, err
	}
	if err := c.update(ctx, id, v); err != nil {
		return zero, err
	}
	return v, nil
}

func remove[T any](ctx context.Context, c collection[T], id string) (domain.DeleteResult, error) {
	if err := c.delete(ctx, id); err != nil {
		return domain.DeleteResult{}, err
	}
	return domain.DeleteResult{Success: true}, nil
}
