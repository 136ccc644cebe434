package jira_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Classification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		sentinel   error
	}{
		{"unauthorized", http.StatusUnauthorized, jira.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, jira.ErrLoginDenied},
		{"not found", http.StatusNotFound, jira.ErrNotFound},
		{"bad request", http.StatusBadRequest, jira.ErrClientError},
		{"conflict", http.StatusConflict, jira.ErrClientError},
		{"internal error", http.StatusInternalServerError, jira.ErrServerError},
		{"bad gateway", http.StatusBadGateway, jira.ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := jira.NewAPIError(tt.statusCode, nil)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.statusCode, jira.StatusCode(err))
		})
	}
}

func TestNewAPIError_ParsesBody(t *testing.T) {
	body := []byte(`{"errorMessages":["Issue does not exist"],"errors":{"summary":"required"}}`)

	err := jira.NewAPIError(http.StatusNotFound, body)
	assert.Contains(t, err.Error(), "Issue does not exist")
	assert.Contains(t, err.Error(), "summary: required")
	assert.Contains(t, err.Error(), "404")
}

func TestNewAPIError_NonJSONBody(t *testing.T) {
	err := jira.NewAPIError(http.StatusBadGateway, []byte("<html>gateway error</html>"))
	assert.Equal(t, "Bad Gateway 502", err.Error())
	assert.Equal(t, []byte("<html>gateway error</html>"), err.Body)
}

func TestAPIError_ClassificationSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("getting issue: %w", jira.NewAPIError(http.StatusNotFound, nil))

	assert.True(t, jira.IsNotFound(err))
	assert.False(t, jira.IsServerError(err))
	assert.Equal(t, http.StatusNotFound, jira.StatusCode(err))

	var apiErr *jira.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestHelpers(t *testing.T) {
	unreachable := fmt.Errorf("%w: dial tcp: connection refused", jira.ErrUnreachable)
	assert.True(t, jira.IsUnreachable(unreachable))
	assert.Equal(t, 0, jira.StatusCode(unreachable))

	login := fmt.Errorf("%w: Unauthorized", jira.ErrInvalidCredentials)
	assert.True(t, jira.IsInvalidCredentials(login))
	assert.False(t, jira.IsUnauthorized(login))

	assert.True(t, jira.IsClientError(jira.NewAPIError(http.StatusConflict, nil)))
	assert.False(t, jira.IsClientError(jira.NewAPIError(http.StatusInternalServerError, nil)))
	assert.False(t, jira.IsClientError(errors.New("client error")))
}

func TestLoginVersusDispatch401(t *testing.T) {
	// A rejected login and a rejected authenticated call are distinct
	// conditions even though both are 401s on the wire.
	loginErr := fmt.Errorf("%w: Unauthorized", jira.ErrInvalidCredentials)
	dispatchErr := jira.NewAPIError(http.StatusUnauthorized, nil)

	assert.True(t, jira.IsInvalidCredentials(loginErr))
	assert.False(t, jira.IsInvalidCredentials(dispatchErr))
	assert.True(t, jira.IsUnauthorized(dispatchErr))
	assert.False(t, jira.IsUnauthorized(loginErr))
}
