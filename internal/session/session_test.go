package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billed/internal/models"
)

func TestSessionUser(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(storage)

	_, ok := s.User()
	assert.False(t, ok, "empty storage has no user")

	storage.SetItem(UserKey, `{"type":"Employee"}`)
	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, models.UserEmployee, user.Type)
	assert.True(t, user.IsEmployee())
	assert.Empty(t, user.Email)

	require.NoError(t, s.SetUser(models.SessionUser{Type: models.UserEmployee, Email: "a@a"}))
	raw, _ := storage.GetItem(UserKey)
	assert.JSONEq(t, `{"type":"Employee","email":"a@a"}`, raw)

	storage.SetItem(UserKey, "{not json")
	_, ok = s.User()
	assert.False(t, ok, "malformed user is ignored")

	s.SetToken("token")
	assert.Equal(t, "token", s.Token())

	s.Clear()
	_, ok = s.User()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
}

func TestCookieStorageRoundTrip(t *testing.T) {
	codec := NewCookieCodec("secret", time.Hour, false)

	// First request: no cookie, sign in.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	storage := codec.Load(req)
	_, ok := storage.GetItem(UserKey)
	assert.False(t, ok)

	require.NoError(t, New(storage).SetUser(models.SessionUser{Type: models.UserEmployee, Email: "a@a"}))
	rec := httptest.NewRecorder()
	require.NoError(t, storage.Save(rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// Second request carries the cookie.
	req = httptest.NewRequest(http.MethodGet, "/employee/bills", nil)
	req.AddCookie(cookies[0])
	storage = codec.Load(req)
	user, ok := New(storage).User()
	require.True(t, ok)
	assert.Equal(t, "a@a", user.Email)

	// Unchanged storage does not rewrite the cookie.
	rec = httptest.NewRecorder()
	require.NoError(t, storage.Save(rec))
	assert.Empty(t, rec.Result().Cookies())

	// Clearing expires it.
	New(storage).Clear()
	rec = httptest.NewRecorder()
	require.NoError(t, storage.Save(rec))
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestCookieStorageRejectsTampering(t *testing.T) {
	codec := NewCookieCodec("secret", time.Hour, false)
	other := NewCookieCodec("other", time.Hour, false)

	forged := other.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	forged.SetItem(UserKey, `{"type":"Admin","email":"boss@test.tld"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, forged.Save(rec))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	storage := codec.Load(req)

	assert.Empty(t, storage.Items())
	_, ok := New(storage).User()
	assert.False(t, ok)
}
