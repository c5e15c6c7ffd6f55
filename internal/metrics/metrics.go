// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesAppended counts accepted messages by kind.
	MessagesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ovara",
		Name:      "messages_appended_total",
		Help:      "Number of messages accepted into conversations.",
	}, []string{"kind"})

	// ConversationsCreated counts created conversations by kind.
	ConversationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ovara",
		Name:      "conversations_created_total",
		Help:      "Number of conversations created.",
	}, []string{"kind"})

	// ContactsAdded counts created contact relationships.
	ContactsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ovara",
		Name:      "contacts_added_total",
		Help:      "Number of contact relationships created.",
	})

	// RequestDuration observes HTTP request latency by method and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ovara",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)
