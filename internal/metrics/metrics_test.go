package metrics_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/transposer/internal/metrics"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_RecordEvents(t *testing.T) {
	m := metrics.New()
	hooks := m.Hooks()
	ctx := context.Background()
	d := domain.NewDestination(domain.Key{Tonic: "C", Mode: domain.Major})

	hooks.OnTranspose(ctx, &domain.TransposeEvent{Destination: d, Annotations: 3, Duration: time.Millisecond})
	hooks.OnFailure(ctx, &domain.TransposeEvent{Destination: d})
	hooks.OnTruncated(ctx, &domain.TruncatedEvent{UnmatchedAt: 4})

	count, err := testutil.GatherAndCount(m.Registry(), "transposer_transpositions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `transposer_transpositions_total{destination="c_maj",status="ok"} 1`)
	assert.Contains(t, body, `transposer_transpositions_total{destination="c_maj",status="error"} 1`)
	assert.Contains(t, body, "transposer_annotations_rewritten_total 3")
	assert.Contains(t, body, "transposer_truncated_scans_total 1")
}

func TestChain(t *testing.T) {
	var calls []string
	h := metrics.Chain(
		domain.LifecycleHooks{OnTranspose: func(context.Context, *domain.TransposeEvent) { calls = append(calls, "a") }},
		domain.LifecycleHooks{},
		domain.LifecycleHooks{OnTranspose: func(context.Context, *domain.TransposeEvent) { calls = append(calls, "b") }},
	)
	h.OnTranspose(context.Background(), &domain.TransposeEvent{})
	h.OnFailure(context.Background(), &domain.TransposeEvent{})
	assert.Equal(t, []string{"a", "b"}, calls)
}
