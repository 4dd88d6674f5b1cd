package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitnest_rpc_requests_total",
			Help: "Total RPC requests by procedure and result code.",
		},
		[]string{"procedure", "code"},
	)

	rpcDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "splitnest_rpc_duration_seconds",
			Help:    "RPC handling duration by procedure.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)
)

// MetricsInterceptor returns a Connect interceptor that records a request
// counter and a duration histogram for every RPC.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			rpcRequests.WithLabelValues(procedure, resultCode(err)).Inc()
			rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
