package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// the same result code label the metrics interceptor records, so log lines
// and the splitnest_rpc_requests_total series correlate directly.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"code", resultCode(err),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			// Present only when an auth interceptor ran before this one.
			if userID := GetUserID(ctx); userID != "" {
				attrs = append(attrs, "user_id", userID)
			}

			switch {
			case err == nil:
				slog.Info("RPC completed", attrs...)
			case connect.CodeOf(err) == connect.CodeInternal:
				slog.Error("RPC failed", append(attrs, "error", err)...)
			default:
				slog.Warn("RPC rejected", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}

// resultCode is the outcome label shared by logging and metrics: "ok", a
// Connect code string, or "unknown" for a non-Connect error.
func resultCode(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return "unknown"
}
