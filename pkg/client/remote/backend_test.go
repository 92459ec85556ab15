package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/aims/pkg/client/transport"
	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/config"
)

type mockDoer struct {
	mock.Mock
}

func (m *mockDoer) Do(ctx context.Context, req transport.Request, out any) error {
	args := m.Called(ctx, req, out)
	if fill, ok := args.Get(0).(func(any)); ok && fill != nil {
		fill(out)
	}
	return args.Error(1)
}

func errOnly[T any](_ T, err error) error {
	return err
}

func endpoints() config.Endpoints {
	return config.Default().API.Endpoints
}

func TestBackend_Requests(t *testing.T) {
	systemIn := domain.AiSystemInput{Name: "X", Department: "Sales"}
	policyIn := domain.PolicyInput{Name: "P", Category: domain.PolicyCategoryBias}
	incidentIn := domain.IncidentInput{Title: "I", Severity: domain.SeverityHigh}
	riskIn := domain.RiskAssessmentInput{System: "Model B", RiskLevel: domain.RiskLevelMedium}

	tests := []struct {
		name     string
		call     func(b *Backend) error
		expected transport.Request
	}{
		{
			name:     "dashboard",
			call:     func(b *Backend) error { return errOnly(b.Dashboard(context.Background())) },
			expected: transport.Request{Method: http.MethodGet, Path: "/dashboard"},
		},
		{
			name:     "list systems",
			call:     func(b *Backend) error { return errOnly(b.ListAiSystems(context.Background())) },
			expected: transport.Request{Method: http.MethodGet, Path: "/ai-systems"},
		},
		{
			name:     "create system",
			call:     func(b *Backend) error { return errOnly(b.CreateAiSystem(context.Background(), systemIn)) },
			expected: transport.Request{Method: http.MethodPost, Path: "/ai-systems", Body: systemIn},
		},
		{
			name:     "update system",
			call:     func(b *Backend) error { return errOnly(b.UpdateAiSystem(context.Background(), "4", systemIn)) },
			expected: transport.Request{Method: http.MethodPut, Path: "/ai-systems/4", Body: systemIn},
		},
		{
			name:     "delete system escapes id",
			call:     func(b *Backend) error { return errOnly(b.DeleteAiSystem(context.Background(), "a/b c")) },
			expected: transport.Request{Method: http.MethodDelete, Path: "/ai-systems/a%2Fb%20c"},
		},
		{
			name:     "list policies",
			call:     func(b *Backend) error { return errOnly(b.ListPolicies(context.Background())) },
			expected: transport.Request{Method: http.MethodGet, Path: "/policies"},
		},
		{
			name:     "create policy",
			call:     func(b *Backend) error { return errOnly(b.CreatePolicy(context.Background(), policyIn)) },
			expected: transport.Request{Method: http.MethodPost, Path: "/policies", Body: policyIn},
		},
		{
			name:     "update policy",
			call:     func(b *Backend) error { return errOnly(b.UpdatePolicy(context.Background(), "2", policyIn)) },
			expected: transport.Request{Method: http.MethodPut, Path: "/policies/2", Body: policyIn},
		},
		{
			name:     "delete policy",
			call:     func(b *Backend) error { return errOnly(b.DeletePolicy(context.Background(), "2")) },
			expected: transport.Request{Method: http.MethodDelete, Path: "/policies/2"},
		},
		{
			name:     "list incidents",
			call:     func(b *Backend) error { return errOnly(b.ListIncidents(context.Background())) },
			expected: transport.Request{Method: http.MethodGet, Path: "/incidents"},
		},
		{
			name:     "create incident",
			call:     func(b *Backend) error { return errOnly(b.CreateIncident(context.Background(), incidentIn)) },
			expected: transport.Request{Method: http.MethodPost, Path: "/incidents", Body: incidentIn},
		},
		{
			name:     "update incident",
			call:     func(b *Backend) error { return errOnly(b.UpdateIncident(context.Background(), "9", incidentIn)) },
			expected: transport.Request{Method: http.MethodPut, Path: "/incidents/9", Body: incidentIn},
		},
		{
			name:     "delete incident",
			call:     func(b *Backend) error { return errOnly(b.DeleteIncident(context.Background(), "9")) },
			expected: transport.Request{Method: http.MethodDelete, Path: "/incidents/9"},
		},
		{
			name:     "risk assessments",
			call:     func(b *Backend) error { return errOnly(b.RiskAssessments(context.Background())) },
			expected: transport.Request{Method: http.MethodGet, Path: "/risk-assessments"},
		},
		{
			name:     "create risk assessment",
			call:     func(b *Backend) error { return errOnly(b.CreateRiskAssessment(context.Background(), riskIn)) },
			expected: transport.Request{Method: http.MethodPost, Path: "/risk-assessments", Body: riskIn},
		},
		{
			name:     "update risk assessment",
			call:     func(b *Backend) error { return errOnly(b.UpdateRiskAssessment(context.Background(), "1", riskIn)) },
			expected: transport.Request{Method: http.MethodPut, Path: "/risk-assessments/1", Body: riskIn},
		},
		{
			name:     "delete risk assessment",
			call:     func(b *Backend) error { return errOnly(b.DeleteRiskAssessment(context.Background(), "1")) },
			expected: transport.Request{Method: http.MethodDelete, Path: "/risk-assessments/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := new(mockDoer)
			doer.On("Do", mock.Anything, tt.expected, mock.Anything).Return(nil, nil)

			err := tt.call(New(doer, endpoints()))

			require.NoError(t, err)
			doer.AssertExpectations(t)
		})
	}
}

func TestBackend_PropagatesTransportError(t *testing.T) {
	apiErr := &transport.Error{Kind: transport.KindHTTP, Status: http.StatusNotFound, Message: "API error: Not Found"}
	doer := new(mockDoer)
	doer.On("Do", mock.Anything, mock.Anything, mock.Anything).Return(nil, apiErr)
	b := New(doer, endpoints())

	systems, err := b.ListAiSystems(context.Background())
	assert.Nil(t, systems)
	assert.Same(t, apiErr, err)

	res, err := b.DeletePolicy(context.Background(), "1")
	assert.False(t, res.Success)
	assert.Same(t, apiErr, err)
}

func TestBackend_DeleteDefaultsToSuccess(t *testing.T) {
	doer := new(mockDoer)
	doer.On("Do", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	res, err := New(doer, endpoints()).DeleteIncident(context.Background(), "3")

	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestBackend_DecodesResponses(t *testing.T) {
	doer := new(mockDoer)
	fill := func(out any) {
		*(out.(*[]domain.Policy)) = []domain.Policy{{ID: "1", Name: "AI Ethics Guidelines"}}
	}
	doer.On("Do", mock.Anything, mock.Anything, mock.Anything).Return(fill, nil)

	policies, err := New(doer, endpoints()).ListPolicies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Policy{{ID: "1", Name: "AI Ethics Guidelines"}}, policies)
}

func TestBackend_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/ai-systems":
			var in domain.AiSystemInput
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_ = json.NewEncoder(w).Encode(in.WithID("100"))
		case r.Method == http.MethodDelete && r.URL.Path == "/ai-systems/100":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	b := New(transport.New(srv.URL), endpoints())
	ctx := context.Background()

	created, err := b.CreateAiSystem(ctx, domain.AiSystemInput{Name: "X", RiskLevel: domain.RiskLevelLow})
	require.NoError(t, err)
	assert.Equal(t, "100", created.ID)
	assert.Equal(t, "X", created.Name)

	res, err := b.DeleteAiSystem(ctx, "100")
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = b.ListIncidents(ctx)
	apiErr, ok := transport.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Message, "Not Found")
}
