package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/menutrail/pkg/domain"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnSelect(ctx, &domain.SelectionEvent{Menu: "main", Relation: domain.RelationNext, Reason: domain.ReasonFound, Duration: time.Millisecond})
	hooks.OnSelect(ctx, &domain.SelectionEvent{Menu: "main", Relation: domain.RelationNext, Reason: domain.ReasonFound})
	hooks.OnSelect(ctx, &domain.SelectionEvent{Menu: "main", Relation: domain.RelationParent, Err: errors.New("boom")})
	hooks.OnLoad(ctx, &domain.LoadEvent{Menu: "main"})
	hooks.OnLoad(ctx, &domain.LoadEvent{Menu: "main", Err: errors.New("boom")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Selections.WithLabelValues("main", "next", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections.WithLabelValues("main", "parent", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("main", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("main", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := LogHooks(logger)
	ctx := context.Background()

	hooks.OnSelect(ctx, &domain.SelectionEvent{Menu: "main", Relation: domain.RelationSiblings, Reason: domain.ReasonFound, Size: 3})
	assert.Contains(t, buf.String(), "relation=siblings")
	assert.Contains(t, buf.String(), "size=3")

	buf.Reset()
	hooks.OnLoad(ctx, &domain.LoadEvent{Menu: "main"})
	assert.Empty(t, buf.String(), "successful loads are not logged")

	hooks.OnLoad(ctx, &domain.LoadEvent{Menu: "main", Root: "about", Err: errors.New("disk")})
	assert.Contains(t, buf.String(), "tree load failed")
	assert.Contains(t, buf.String(), "root=about")
}

func TestMerge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnSelect: func(context.Context, *domain.SelectionEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnSelect: func(context.Context, *domain.SelectionEvent) { calls = append(calls, "b") },
		OnLoad:   func(context.Context, *domain.LoadEvent) { calls = append(calls, "load") },
	}

	merged := Merge(a, b)
	merged.OnSelect(context.Background(), &domain.SelectionEvent{})
	merged.OnLoad(context.Background(), &domain.LoadEvent{})
	assert.Equal(t, []string{"a", "b", "load"}, calls)

	assert.Nil(t, Merge().OnSelect)
}
