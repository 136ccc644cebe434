package jira_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterceptorChain_Order(t *testing.T) {
	ctx := context.Background()
	chain := jira.NewInterceptorChain()

	var order []string

	chain.AddRequestInterceptor(func(_ context.Context, _ *jira.InterceptedRequest) error {
		order = append(order, "first")

		return nil
	})
	chain.AddRequestInterceptor(func(_ context.Context, _ *jira.InterceptedRequest) error {
		order = append(order, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(ctx, &jira.InterceptedRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestInterceptorChain_RequestError(t *testing.T) {
	ctx := context.Background()
	chain := jira.NewInterceptorChain()
	boom := errors.New("boom")

	chain.AddRequestInterceptor(func(_ context.Context, _ *jira.InterceptedRequest) error {
		return boom
	})
	chain.AddRequestInterceptor(func(_ context.Context, _ *jira.InterceptedRequest) error {
		t.Fatal("interceptor after a failure must not run")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(ctx, &jira.InterceptedRequest{})
	assert.ErrorIs(t, err, boom)
}

func TestHeaderInterceptor(t *testing.T) {
	ctx := context.Background()
	interceptor := jira.HeaderInterceptor(map[string]string{
		"X-Request-Source": "batch-sync",
	})

	req := &jira.InterceptedRequest{Method: http.MethodGet, Path: "/rest/api/2/myself"}
	require.NoError(t, interceptor(ctx, req))
	assert.Equal(t, "batch-sync", req.Headers.Get("X-Request-Source"))
}

func TestMetricsInterceptors(t *testing.T) {
	ctx := context.Background()
	collector := jira.NewMetricsCollector()

	reqInterceptor := jira.MetricsRequestInterceptor(collector)
	respInterceptor := jira.MetricsResponseInterceptor(collector)

	req := &jira.InterceptedRequest{Method: http.MethodGet, Path: "/rest/api/2/issue/PROJ-1"}

	require.NoError(t, reqInterceptor(ctx, req))
	require.NoError(t, respInterceptor(ctx, req, &jira.InterceptedResponse{StatusCode: http.StatusOK}))

	require.NoError(t, reqInterceptor(ctx, req))
	require.NoError(t, respInterceptor(ctx, req, &jira.InterceptedResponse{StatusCode: http.StatusNotFound}))

	metrics := collector.GetMetrics("GET /rest/api/2/issue/PROJ-1")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.False(t, metrics.LastRequestTime.IsZero())

	assert.Nil(t, collector.GetMetrics("GET /rest/api/2/project"))
}
