package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 指標
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 庫存指標
	InventoryItemsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_inventory_items_added_total",
			Help: "Total number of inventory items created, by inferred category",
		},
		[]string{"category"},
	)

	// 菜單指標
	MealplanGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_mealplan_generations_total",
			Help: "Total number of mealplan generations by outcome",
		},
		[]string{"outcome"}, // success, provider_error, storage_error
	)

	MealplanCandidatePoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantry_mealplan_candidate_pool_size",
			Help:    "Number of recipes returned by the provider per generation",
			Buckets: prometheus.LinearBuckets(0, 5, 6),
		},
	)

	MealplanIneligibleRecipes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantry_mealplan_ineligible_recipes",
			Help:    "Number of recipes removed because they use expired inventory",
			Buckets: prometheus.LinearBuckets(0, 5, 6),
		},
	)

	MealplanVisibleCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantry_mealplan_visible_candidates",
			Help:    "Number of ranked recipes returned to the caller",
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		},
	)

	// 食譜來源指標
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_recipe_provider_requests_total",
			Help: "Total number of recipe provider searches by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pantry_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
