package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/aims/pkg/client/mock"
	"github.com/de-tools/aims/pkg/client/transport"
	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/config"
)

// fakeBackend answers ListAiSystems and DeletePolicy; any other call panics.
type fakeBackend struct {
	Backend
	systems []domain.AiSystem
	err     error
	deleted []string
}

func (f *fakeBackend) ListAiSystems(context.Context) ([]domain.AiSystem, error) {
	return f.systems, f.err
}

func (f *fakeBackend) DeletePolicy(_ context.Context, id string) (domain.DeleteResult, error) {
	f.deleted = append(f.deleted, id)
	return domain.DeleteResult{Success: f.err == nil}, f.err
}

func mockConfig() config.Config {
	cfg := config.Default()
	cfg.API.UseMockData = true
	return cfg
}

func remoteConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.API.UseMockData = false
	cfg.API.BaseURL = baseURL
	return cfg
}

func TestClient_WithBackend(t *testing.T) {
	fake := &fakeBackend{systems: []domain.AiSystem{{ID: "a", Name: "A"}}}
	c := New(mockConfig(), WithBackend(fake))

	systems, err := c.GetAiSystems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.systems, systems)

	res, err := c.DeletePolicy(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"p-1"}, fake.deleted)
}

func TestClient_ErrorsPassThrough(t *testing.T) {
	apiErr := &transport.Error{Kind: transport.KindHTTP, Status: http.StatusBadGateway, Message: "API error: Bad Gateway"}
	c := New(mockConfig(), WithBackend(&fakeBackend{err: apiErr}))

	_, err := c.GetAiSystems(context.Background())

	assert.Same(t, apiErr, err)
}

func TestClient_MockMode(t *testing.T) {
	c := New(mockConfig(), WithIDGenerator(func() string { return "fixed" }))
	ctx := context.Background()

	dashboard, err := c.GetDashboardData(ctx)
	require.NoError(t, err)
	assert.Equal(t, mock.DefaultFixtures().Dashboard, dashboard)

	in := domain.AiSystemInput{
		Name:       "X",
		Purpose:    "Y",
		Owner:      "Z",
		Department: "Sales",
		RiskLevel:  domain.RiskLevelLow,
		Status:     domain.SystemStatusDeployed,
	}
	created, err := c.CreateAiSystem(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, domain.AiSystem{
		ID:         "fixed",
		Name:       "X",
		Purpose:    "Y",
		Owner:      "Z",
		Department: "Sales",
		RiskLevel:  domain.RiskLevelLow,
		Status:     domain.SystemStatusDeployed,
	}, created)

	risk, err := c.GetRiskAssessments(ctx)
	require.NoError(t, err)
	assert.Len(t, risk.Reports, 3)

	res, err := c.DeleteIncident(ctx, "1")
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestClient_RemoteMode(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/policies":
			_ = json.NewEncoder(w).Encode([]domain.Policy{{ID: "1", Name: "Remote policy"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name         string
		creds        config.Credentials
		expectedAuth string
	}{
		{name: "with token", creds: config.StaticCredentials{config.DefaultTokenKey: "tok"}, expectedAuth: "Bearer tok"},
		{name: "without token", creds: config.StaticCredentials{}, expectedAuth: ""},
		{name: "without store", expectedAuth: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.creds != nil {
				opts = append(opts, WithCredentials(tt.creds))
			}
			c := New(remoteConfig(srv.URL), opts...)

			policies, err := c.GetPolicies(context.Background())

			require.NoError(t, err)
			assert.Equal(t, []domain.Policy{{ID: "1", Name: "Remote policy"}}, policies)
			assert.Equal(t, tt.expectedAuth, auth)
		})
	}
}

func TestClient_RemoteModeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(remoteConfig(srv.URL)).GetIncidents(context.Background())

	var apiErr *transport.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "API error: Not Found", apiErr.Message)
}

func TestClient_RemoteModeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := remoteConfig(srv.URL)
	cfg.API.TimeoutMs = 20

	_, err := New(cfg).GetDashboardData(context.Background())

	apiErr, ok := transport.AsError(err)
	require.True(t, ok)
	assert.Equal(t, transport.KindTimeout, apiErr.Kind)
	assert.Equal(t, http.StatusRequestTimeout, apiErr.Status)
	assert.Equal(t, "request timeout", apiErr.Message)
}
