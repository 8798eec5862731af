package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/billed/internal/auth"
	"github.com/mmynk/billed/internal/models"
)

// captureLogs routes the default logger to a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingInterceptorLogsCaller(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "a@a", Type: models.UserEmployee})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name    string
		result  error
		wantMsg string
	}{
		{name: "ok", wantMsg: `"msg":"RPC ok"`},
		{name: "connect error", result: connect.NewError(connect.CodeNotFound, errors.New("bill not found")), wantMsg: `"code":"not_found"`},
		{name: "plain error", result: errors.New("disk full"), wantMsg: `"error":"disk full"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				if tt.result != nil {
					return nil, tt.result
				}
				return connect.NewResponse(&struct{}{}), nil
			}
			call := RequireAuth(jwtManager)(LoggingInterceptor()(next))

			req := connect.NewRequest(&struct{}{})
			req.Header().Set("Authorization", "Bearer "+token)
			if _, err := call(context.Background(), req); !errors.Is(err, tt.result) {
				t.Fatalf("call error = %v, want %v", err, tt.result)
			}

			out := buf.String()
			for _, want := range []string{`"email":"a@a"`, `"type":"Employee"`, tt.wantMsg} {
				if !strings.Contains(out, want) {
					t.Errorf("log output missing %s: %s", want, out)
				}
			}
		})
	}
}

func TestRequireAuthLogsRejection(t *testing.T) {
	buf := captureLogs(t)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	called := false
	next := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		called = true
		return nil, nil
	}
	call := RequireAuth(jwtManager)(LoggingInterceptor()(next))

	_, err := call(context.Background(), connect.NewRequest(&struct{}{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("expected CodeUnauthenticated, got %v", err)
	}
	if called {
		t.Error("handler ran without a token")
	}
	if !strings.Contains(buf.String(), `"msg":"RPC rejected"`) {
		t.Errorf("rejection not logged: %s", buf.String())
	}
}
