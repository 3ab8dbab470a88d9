// Package metrics exposes Prometheus instrumentation for the recommendation engine.
//
// Usage:
//
//	start := time.Now()
//	// ... regenerate ...
//	metrics.RecordGeneration(persisted, excluded, time.Since(start), err)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationsTotal counts full regenerations by result (success, error).
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_generations_total",
			Help: "Total number of recommendation regenerations",
		},
		[]string{"result"},
	)

	// GenerationDuration tracks end-to-end regeneration latency.
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_generation_duration_seconds",
			Help:    "Duration of recommendation regeneration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PersistedTotal counts recommendation rows written.
	PersistedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_persisted_total",
			Help: "Total number of recommendation rows persisted",
		},
	)

	// AllergyExclusionsTotal counts recipes dropped because of a user allergy.
	AllergyExclusionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_allergy_exclusions_total",
			Help: "Total number of recipes excluded by allergy checks",
		},
	)

	// LazyFillsTotal counts reads that found no stored rows and triggered generation.
	LazyFillsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_lazy_fills_total",
			Help: "Total number of empty reads that triggered a generation",
		},
	)

	// MissingRecipesTotal counts stored recommendations whose recipe no longer exists.
	MissingRecipesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_missing_recipes_total",
			Help: "Total number of recommendations rendered with placeholder recipe data",
		},
	)
)

// RecordGeneration records the outcome of one regeneration.
func RecordGeneration(persisted, excluded int, duration time.Duration, err error) {
	GenerationDuration.Observe(duration.Seconds())
	if err != nil {
		GenerationsTotal.WithLabelValues("error").Inc()
		return
	}
	GenerationsTotal.WithLabelValues("success").Inc()
	PersistedTotal.Add(float64(persisted))
	AllergyExclusionsTotal.Add(float64(excluded))
}

// RecordLazyFill records an empty read that triggered generation.
func RecordLazyFill() {
	LazyFillsTotal.Inc()
}

// RecordMissingRecipes records n recommendations rendered with placeholder data.
func RecordMissingRecipes(n int) {
	if n > 0 {
		MissingRecipesTotal.Add(float64(n))
	}
}
