// Package observability exposes Prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal counts successful account creations.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_signups_total",
		Help: "Total number of successful signups",
	})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// MessagesCreatedTotal counts warbles posted.
	MessagesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_messages_created_total",
		Help: "Total number of warbles posted",
	})

	// MessagesDeletedTotal counts warbles removed by their owners.
	MessagesDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_messages_deleted_total",
		Help: "Total number of warbles deleted",
	})

	// FollowEdgesTotal counts follow/unfollow operations.
	FollowEdgesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_follow_edges_total",
		Help: "Total number of follow edge changes by action",
	}, []string{"action"})

	// LikesTotal counts like/unlike operations.
	LikesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_likes_total",
		Help: "Total number of like changes by action",
	}, []string{"action"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
