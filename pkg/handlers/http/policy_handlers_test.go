package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	appPolicy "github.com/NeuralTrust/TrustChat/pkg/app/policy"
	policyMocks "github.com/NeuralTrust/TrustChat/pkg/app/policy/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/domain"
	"github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	metricsMocks "github.com/NeuralTrust/TrustChat/pkg/infra/metrics/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPolicyCheckHandler(t *testing.T) {
	checker := policyMocks.NewChecker(t)
	checker.EXPECT().
		Check(mock.Anything, "社外秘の資料です", "u1", []string{"confidentiality_v1"}).
		Return(&appPolicy.Result{
			Compliant: false,
			Violations: []appPolicy.Violation{{
				PolicyID:      "confidentiality_v1",
				ViolationType: "confidentiality",
				Severity:      "high",
			}},
			Warnings:             []appPolicy.Warning{},
			TotalPoliciesChecked: 1,
			CheckTimestamp:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		}).Once()

	var audited *metric_events.Event
	auditor := metricsMocks.NewWorker(t)
	auditor.EXPECT().Process(mock.Anything).Run(func(evt *metric_events.Event) {
		audited = evt
	}).Once()
	app := fiber.New()
	app.Post("/api/policy-check", NewPolicyCheckHandler(logrus.New(), checker, auditor).Handle)

	status, body := postJSON(t, app, "/api/policy-check", map[string]interface{}{
		"message":  "社外秘の資料です",
		"user_id":  "u1",
		"policies": []string{"confidentiality_v1"},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["compliant"])
	assert.Equal(t, float64(1), body["total_policies_checked"])

	require.NotNil(t, audited)
	assert.Equal(t, metric_events.PolicyCheckType, audited.Type)
	assert.Equal(t, "danger", audited.RiskLevel)
	assert.Equal(t, []string{"confidentiality"}, audited.DetectedIssues)
}

func TestPolicyCheckHandler_EmptyMessage(t *testing.T) {
	checker := policyMocks.NewChecker(t)
	app := fiber.New()
	app.Post("/api/policy-check", NewPolicyCheckHandler(logrus.New(), checker, nil).Handle)

	status, _ := postJSON(t, app, "/api/policy-check", map[string]string{"user_id": "u1"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestListPoliciesHandler(t *testing.T) {
	manager := policyMocks.NewManager(t)
	manager.EXPECT().List(mock.Anything).Return([]*policy.Policy{
		{ID: "p1", Name: "Harassment", Type: policy.TypeHarassmentPrevention, Active: true},
	}, nil).Once()

	app := fiber.New()
	app.Get("/api/policies", NewListPoliciesHandler(logrus.New(), manager).Handle)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/policies", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Policies []policy.Policy `json:"policies"`
		Count    int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "p1", body.Policies[0].ID)
}

func TestListPoliciesHandler_StorageError(t *testing.T) {
	manager := policyMocks.NewManager(t)
	manager.EXPECT().List(mock.Anything).Return(nil, errors.New("db down")).Once()

	app := fiber.New()
	app.Get("/api/policies", NewListPoliciesHandler(logrus.New(), manager).Handle)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/policies", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestUpsertPolicyHandler(t *testing.T) {
	tests := []struct {
		name       string
		saveErr    error
		wantStatus int
	}{
		{"saved", nil, fiber.StatusOK},
		{"invalid", domain.NewValidationError("policy name is required"), fiber.StatusBadRequest},
		{"storage failure", errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := policyMocks.NewManager(t)
			manager.EXPECT().
				Upsert(mock.Anything, mock.MatchedBy(func(p *policy.Policy) bool {
					return p.ID == "greeting_v1" &&
						p.Active &&
						p.Scope == policy.ScopeCompanyWide &&
						p.Rules["require_greeting"] == true
				})).
				Return(tt.saveErr).Once()

			app := fiber.New()
			app.Put("/api/policies/:policy_id", NewUpsertPolicyHandler(logrus.New(), manager).Handle)

			body, err := json.Marshal(map[string]interface{}{
				"name":  "Greeting",
				"type":  policy.TypeCommunicationStandards,
				"rules": map[string]interface{}{"require_greeting": true},
			})
			require.NoError(t, err)
			req := httptest.NewRequest("PUT", "/api/policies/greeting_v1", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestUpsertPolicyHandler_InactiveFlag(t *testing.T) {
	manager := policyMocks.NewManager(t)
	manager.EXPECT().
		Upsert(mock.Anything, mock.MatchedBy(func(p *policy.Policy) bool { return !p.Active })).
		Return(nil).Once()

	app := fiber.New()
	app.Put("/api/policies/:policy_id", NewUpsertPolicyHandler(logrus.New(), manager).Handle)

	req := httptest.NewRequest("PUT", "/api/policies/p1", bytes.NewBufferString(`{"name":"x","type":"custom","active":false}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeletePolicyHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, fiber.StatusNoContent},
		{"missing", domain.NewNotFoundError("policy", "p1"), fiber.StatusNotFound},
		{"storage failure", errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := policyMocks.NewManager(t)
			manager.EXPECT().Delete(mock.Anything, "p1").Return(tt.err).Once()

			app := fiber.New()
			app.Delete("/api/policies/:policy_id", NewDeletePolicyHandler(logrus.New(), manager).Handle)

			resp, err := app.Test(httptest.NewRequest("DELETE", "/api/policies/p1", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
