// Package client is the single data-access entry point for governance
// records. It delegates every call to a Backend chosen at construction.
package client

import (
	"context"
	"net/http"

	"github.com/de-tools/aims/pkg/client/mock"
	"github.com/de-tools/aims/pkg/client/remote"
	"github.com/de-tools/aims/pkg/client/transport"
	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/config"
)

// Backend is a source of governance records. The mock resolver and the
// remote backend both satisfy it.
type Backend interface {
	Dashboard(ctx context.Context) (domain.DashboardSnapshot, error)

	ListAiSystems(ctx context.Context) ([]domain.AiSystem, error)
	CreateAiSystem(ctx context.Context, in domain.AiSystemInput) (domain.AiSystem, error)
	UpdateAiSystem(ctx context.Context, id string, in domain.AiSystemInput) (domain.AiSystem, error)
	DeleteAiSystem(ctx context.Context, id string) (domain.DeleteResult, error)

	ListPolicies(ctx context.Context) ([]domain.Policy, error)
	CreatePolicy(ctx context.Context, in domain.PolicyInput) (domain.Policy, error)
	UpdatePolicy(ctx context.Context, id string, in domain.PolicyInput) (domain.Policy, error)
	DeletePolicy(ctx context.Context, id string) (domain.DeleteResult, error)

	ListIncidents(ctx context.Context) ([]domain.Incident, error)
	CreateIncident(ctx context.Context, in domain.IncidentInput) (domain.Incident, error)
	UpdateIncident(ctx context.Context, id string, in domain.IncidentInput) (domain.Incident, error)
	DeleteIncident(ctx context.Context, id string) (domain.DeleteResult, error)

	RiskAssessments(ctx context.Context) (domain.RiskAssessments, error)
	CreateRiskAssessment(ctx context.Context, in domain.RiskAssessmentInput) (domain.RiskAssessment, error)
	UpdateRiskAssessment(ctx context.Context, id string, in domain.RiskAssessmentInput) (domain.RiskAssessment, error)
	DeleteRiskAssessment(ctx context.Context, id string) (domain.DeleteResult, error)
}

var (
	_ Backend = (*mock.Resolver)(nil)
	_ Backend = (*remote.Backend)(nil)
)

type Client struct {
	backend Backend
}

type options struct {
	backend    Backend
	creds      config.Credentials
	httpClient *http.Client
	newID      mock.IDGenerator
}

type Option func(*options)

// WithBackend bypasses backend selection.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithCredentials sets the token source used in remote mode.
func WithCredentials(c config.Credentials) Option {
	return func(o *options) { o.creds = c }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithIDGenerator replaces the id source used for creates in mock mode.
func WithIDGenerator(g mock.IDGenerator) Option {
	return func(o *options) { o.newID = g }
}

// New builds a client over the mock resolver when cfg.API.UseMockData is set,
// and over the remote API otherwise.
func New(cfg config.Config, opts ...Option) *Client {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend != nil {
		return &Client{backend: o.backend}
	}

	if cfg.API.UseMockData {
		var mockOpts []mock.Option
		if o.newID != nil {
			mockOpts = append(mockOpts, mock.WithIDGenerator(o.newID))
		}
		return &Client{backend: mock.NewResolver(mockOpts...)}
	}

	trOpts := []transport.Option{transport.WithTimeout(cfg.API.Timeout())}
	if o.httpClient != nil {
		trOpts = append(trOpts, transport.WithHTTPClient(o.httpClient))
	}
	if o.creds != nil {
		trOpts = append(trOpts, transport.WithCredentials(o.creds, cfg.API.Auth.TokenKey))
	}
	tr := transport.New(cfg.API.BaseURL, trOpts...)
	return &Client{backend: remote.New(tr, cfg.API.Endpoints)}
}

func (c *Client) GetDashboardData(ctx context.Context) (domain.DashboardSnapshot, error) {
	return c.backend.Dashboard(ctx)
}

func (c *Client) GetAiSystems(ctx context.Context) ([]domain.AiSystem, error) {
	return c.backend.ListAiSystems(ctx)
}

func (c *Client) CreateAiSystem(ctx context.Context, in domain.AiSystemInput) (domain.AiSystem, error) {
	return c.backend.CreateAiSystem(ctx, in)
}

func (c *Client) UpdateAiSystem(ctx context.Context, id string, in domain.AiSystemInput) (domain.AiSystem, error) {
	return c.backend.UpdateAiSystem(ctx, id, in)
}

func (c *Client) DeleteAiSystem(ctx context.Context, id string) (domain.DeleteResult, error) {
	return c.backend.DeleteAiSystem(ctx, id)
}

func (c *Client) GetPolicies(ctx context.Context) ([]domain.Policy, error) {
	return c.backend.ListPolicies(ctx)
}

func (c *Client) CreatePolicy(ctx context.Context, in domain.PolicyInput) (domain.Policy, error) {
	return c.backend.CreatePolicy(ctx, in)
}

func (c *Client) UpdatePolicy(ctx context.Context, id string, in domain.PolicyInput) (domain.Policy, error) {
	return c.backend.UpdatePolicy(ctx, id, in)
}

func (c *Client) DeletePolicy(ctx context.Context, id string) (domain.DeleteResult, error) {
	return c.backend.DeletePolicy(ctx, id)
}

func (c *Client) GetIncidents(ctx context.Context) ([]domain.Incident, error) {
	return c.backend.ListIncidents(ctx)
}

func (c *Client) CreateIncident(ctx context.Context, in domain.IncidentInput) (domain.Incident, error) {
	return c.backend.CreateIncident(ctx, in)
}

func (c *Client) UpdateIncident(ctx context.Context, id string, in domain.IncidentInput) (domain.Incident, error) {
	return c.backend.UpdateIncident(ctx, id, in)
}

func (c *Client) DeleteIncident(ctx context.Context, id string) (domain.DeleteResult, error) {
	return c.backend.DeleteIncident(ctx, id)
}

func (c *Client) GetRiskAssessments(ctx context.Context) (domain.RiskAssessments, error) {
	return c.backend.RiskAssessments(ctx)
}

func (c *Client) CreateRiskAssessment(ctx context.Context, in domain.RiskAssessmentInput) (domain.RiskAssessment, error) {
	return c.backend.CreateRiskAssessment(ctx, in)
}

func (c *Client) UpdateRiskAssessment(
	ctx context.Context,
	id string,
	in domain.RiskAssessmentInput,
) (domain.RiskAssessment, error) {
	return c.backend.UpdateRiskAssessment(ctx, id, in)
}

func (c *Client) DeleteRiskAssessment(ctx context.Context, id string) (domain.DeleteResult, error) {
	return c.backend.DeleteRiskAssessment(ctx, id)
}
