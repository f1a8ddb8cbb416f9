package observability

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/menutrail/pkg/domain"
)

// Metrics holds the navigator collectors.
type Metrics struct {
	Selections *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Loads      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menutrail_selections_total",
				Help: "Total number of selections by menu, relation and reason",
			},
			[]string{"menu", "relation", "reason"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "menutrail_selection_duration_seconds",
				Help:    "Duration of selections",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"relation"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menutrail_tree_loads_total",
				Help: "Total number of tree loads by menu and outcome",
			},
			[]string{"menu", "outcome"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Selections, m.Duration, m.Loads} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks records every event into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSelect: func(_ context.Context, e *domain.SelectionEvent) {
			reason := string(e.Reason)
			if e.Err != nil {
				reason = "error"
			}
			m.Selections.WithLabelValues(e.Menu, e.Relation.String(), reason).Inc()
			m.Duration.WithLabelValues(e.Relation.String()).Observe(e.Duration.Seconds())
		},
		OnLoad: func(_ context.Context, e *domain.LoadEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.Loads.WithLabelValues(e.Menu, outcome).Inc()
		},
	}
}

// LogHooks writes every event to logger: selections at Info, failures at Error.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSelect: func(ctx context.Context, e *domain.SelectionEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "selection failed",
					"menu", e.Menu,
					"relation", e.Relation,
					"error", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "selection",
				"menu", e.Menu,
				"relation", e.Relation,
				"reason", e.Reason,
				"size", e.Size,
				"duration", e.Duration,
			)
		},
		OnLoad: func(ctx context.Context, e *domain.LoadEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "tree load failed",
					"menu", e.Menu,
					"root", e.Root,
					"error", e.Err,
				)
			}
		},
	}
}

// Merge combines hooks; callbacks run in argument order.
func Merge(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var onSelect []func(context.Context, *domain.SelectionEvent)
	var onLoad []func(context.Context, *domain.LoadEvent)
	for _, h := range hooks {
		if h.OnSelect != nil {
			onSelect = append(onSelect, h.OnSelect)
		}
		if h.OnLoad != nil {
			onLoad = append(onLoad, h.OnLoad)
		}
	}

	var merged domain.LifecycleHooks
	if len(onSelect) > 0 {
		merged.OnSelect = func(ctx context.Context, e *domain.SelectionEvent) {
			for _, f := range onSelect {
				f(ctx, e)
			}
		}
	}
	if len(onLoad) > 0 {
		merged.OnLoad = func(ctx context.Context, e *domain.LoadEvent) {
			for _, f := range onLoad {
				f(ctx, e)
			}
		}
	}
	return merged
}
