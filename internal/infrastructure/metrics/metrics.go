// Package metrics exposes the Prometheus instruments for the chat API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "voxchat"
	subsystem = "chat_api"
)

var (
	// RequestsTotal counts HTTP requests by route, method and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Total number of HTTP requests processed.",
	}, []string{"path", "method", "status"})

	// RequestDuration observes HTTP request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "method"})

	// ModelCallsTotal counts chat completion calls by model and outcome.
	ModelCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "model_calls_total",
		Help:      "Total number of chat completion calls.",
	}, []string{"model", "status"})

	// ModelCallDuration observes chat completion latency by model.
	ModelCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "model_call_duration_seconds",
		Help:      "Chat completion latency in seconds.",
		Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 75},
	}, []string{"model"})

	// TranscriptionsTotal counts speech-to-text calls by outcome.
	TranscriptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "transcriptions_total",
		Help:      "Total number of audio transcription calls.",
	}, []string{"status"})

	// SynthesisTotal counts text-to-speech calls by outcome.
	SynthesisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "synthesis_total",
		Help:      "Total number of speech synthesis calls.",
	}, []string{"status"})

	// TurnsPersistedTotal counts history turns written to storage.
	TurnsPersistedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "turns_persisted_total",
		Help:      "Total number of conversation turns persisted.",
	})
)
