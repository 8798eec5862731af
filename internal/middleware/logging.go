package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every bills API
// call with the caller's email and role. Install it inside RequireAuth so
// the identity is in the context.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			caller := []any{
				"procedure", req.Spec().Procedure,
				"email", GetEmail(ctx),
				"type", GetUserType(ctx),
			}

			resp, err := next(ctx, req)

			attrs := append(caller, "duration_ms", time.Since(start).Milliseconds())
			var connectErr *connect.Error
			switch {
			case errors.As(err, &connectErr):
				slog.Warn("RPC error", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			case err != nil:
				slog.Error("RPC error", append(attrs, "error", err)...)
			default:
				slog.Info("RPC ok", attrs...)
			}
			return resp, err
		}
	}
}
