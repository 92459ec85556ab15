package governance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/aims/pkg/client"
	fixtures "github.com/de-tools/aims/pkg/client/mock"
	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/registry"
	"github.com/de-tools/aims/pkg/store/sqlstore"
)

// mockRecords stubs ListPolicies and DeletePolicy.
type mockRecords struct {
	client.Backend
	mock.Mock
}

func (m *mockRecords) ListPolicies(ctx context.Context) ([]domain.Policy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}

func (m *mockRecords) DeletePolicy(ctx context.Context, id string) (domain.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DeleteResult), args.Error(1)
}

func seededHandler(t *testing.T) *Handler {
	db, err := sqlstore.NewDB(sqlstore.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st, err := sqlstore.NewStore(db)
	require.NoError(t, err)
	reg, err := registry.New(st, registry.WithIDGenerator(func() string { return "new-id" }))
	require.NoError(t, err)
	require.NoError(t, reg.Seed(context.Background(), fixtures.DefaultFixtures()))
	return NewHandler(reg)
}

func withID(req *http.Request, id string) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestListAiSystems(t *testing.T) {
	h := seededHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/ai-systems", nil)
	rec := httptest.NewRecorder()

	h.ListAiSystems(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var response []domain.AiSystem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, fixtures.DefaultFixtures().AiSystems, response)
}

func TestCreateAiSystem(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   *domain.AiSystem
	}{
		{
			name:           "created",
			body:           `{"name":"X","purpose":"Y","owner":"Z","department":"Sales","riskLevel":"Low","status":"Deployed"}`,
			expectedStatus: http.StatusCreated,
			expectedBody: &domain.AiSystem{
				ID: "new-id", Name: "X", Purpose: "Y", Owner: "Z", Department: "Sales",
				RiskLevel: domain.RiskLevelLow, Status: domain.SystemStatusDeployed,
			},
		},
		{
			name:           "malformed body",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           `{"purpose":"Y"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown risk level",
			body:           `{"name":"X","riskLevel":"Extreme"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := seededHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/ai-systems", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.CreateAiSystem(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != nil {
				var response domain.AiSystem
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, *tt.expectedBody, response)
			}
		})
	}
}

func TestUpdateIncident(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{name: "existing", id: "2", expectedStatus: http.StatusOK},
		{name: "unknown id", id: "404", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := seededHandler(t)
			body := `{"title":"Data Privacy Breach","severity":"Critical","status":"Resolved"}`
			req := withID(httptest.NewRequest(http.MethodPut, "/incidents/"+tt.id, strings.NewReader(body)), tt.id)
			rec := httptest.NewRecorder()

			h.UpdateIncident(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response domain.Incident
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, tt.id, response.ID)
				assert.Equal(t, domain.IncidentStatusResolved, response.Status)
			}
		})
	}
}

func TestDeleteRiskAssessment(t *testing.T) {
	h := seededHandler(t)

	rec := httptest.NewRecorder()
	h.DeleteRiskAssessment(rec, withID(httptest.NewRequest(http.MethodDelete, "/risk-assessments/1", nil), "1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.DeleteRiskAssessment(rec, withID(httptest.NewRequest(http.MethodDelete, "/risk-assessments/1", nil), "1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.GetRiskAssessments(rec, httptest.NewRequest(http.MethodGet, "/risk-assessments", nil))
	var risk domain.RiskAssessments
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&risk))
	assert.Len(t, risk.Reports, 2)
}

func TestGetDashboard(t *testing.T) {
	h := seededHandler(t)
	rec := httptest.NewRecorder()

	h.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var snapshot domain.DashboardSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snapshot))
	assert.Equal(t, 40, snapshot.ComplianceProgress)
	assert.Len(t, snapshot.AiSystems, 5)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "not found", err: registry.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "invalid", err: registry.ErrInvalid, expectedStatus: http.StatusBadRequest},
		{name: "store failure", err: errors.New("database is locked"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := new(mockRecords)
			records.On("ListPolicies", mock.Anything).Return(nil, tt.err)
			records.On("DeletePolicy", mock.Anything, "7").Return(domain.DeleteResult{}, tt.err)
			h := NewHandler(records)

			rec := httptest.NewRecorder()
			h.ListPolicies(rec, httptest.NewRequest(http.MethodGet, "/policies", nil))
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "database is locked")

			rec = httptest.NewRecorder()
			h.DeletePolicy(rec, withID(httptest.NewRequest(http.MethodDelete, "/policies/7", nil), "7"))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			records.AssertExpectations(t)
		})
	}
}
