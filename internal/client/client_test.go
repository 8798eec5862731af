package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billed/internal/api"
	"github.com/mmynk/billed/internal/auth"
	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/middleware"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/receipts"
	"github.com/mmynk/billed/internal/service"
	"github.com/mmynk/billed/internal/storage/sqlite"
)

func setupAPI(t *testing.T) (baseURL string, jwtManager *auth.JWTManager) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	files, err := receipts.NewFileStore(t.TempDir())
	require.NoError(t, err)

	jwtManager = auth.NewJWTManager("test-secret", time.Hour)
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	path, handler := api.NewBillServiceHandler(
		service.NewBillService(store, files, server.URL, nil),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)),
	)
	mux.Handle(path, handler)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server.URL, jwtManager
}

func TestHTTPStore(t *testing.T) {
	baseURL, jwtManager := setupAPI(t)
	ctx := context.Background()

	token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "a@a", Type: models.UserEmployee})
	require.NoError(t, err)
	bills := client.New(nil, baseURL, token).Bills()

	list, err := bills.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := bills.Create(ctx, client.Receipt{
		FileName: "receipt.png",
		Content:  []byte("\x89PNG\r\n\x1a\n"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Key)
	assert.Contains(t, created.FileURL, created.Key)

	updated, err := bills.Update(ctx, created.Key, models.Bill{
		Type:   models.ExpenseTransports,
		Name:   "taxi",
		Amount: 42,
		Date:   "2024-02-03",
		Pct:    20,
	})
	require.NoError(t, err)
	assert.Equal(t, created.Key, updated.ID)
	assert.Equal(t, "a@a", updated.Email)
	assert.Equal(t, created.FileURL, updated.FileURL)

	list, err = bills.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "taxi", list[0].Name)
}

func TestHTTPStoreErrors(t *testing.T) {
	baseURL, _ := setupAPI(t)
	ctx := context.Background()

	_, err := client.New(nil, baseURL, "").Bills().List(ctx)
	require.Error(t, err)

	var remote *client.Error
	require.True(t, errors.As(err, &remote), "expected *client.Error, got %T", err)
	assert.Equal(t, connect.CodeUnauthenticated, remote.Code)
	assert.Equal(t, auth.ErrMissingToken.Error(), err.Error())
}
