package session

import (
	"log/slog"

	"github.com/goccy/go-json"

	"github.com/mmynk/billed/internal/models"
)

// Keys used in Storage.
const (
	UserKey  = "user"
	TokenKey = "jwt"
)

// Session reads and writes the typed entries of a Storage.
type Session struct {
	storage Storage
}

// New wraps storage.
func New(storage Storage) *Session {
	return &Session{storage: storage}
}

// User returns the signed-in user. ok is false when the entry is missing or
// not valid JSON.
func (s *Session) User() (user models.SessionUser, ok bool) {
	raw, found := s.storage.GetItem(UserKey)
	if !found || raw == "" {
		return models.SessionUser{}, false
	}
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Warn("Discarding malformed session user", "error", err)
		return models.SessionUser{}, false
	}
	return user, true
}

// SetUser replaces the signed-in user.
func (s *Session) SetUser(user models.SessionUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.storage.SetItem(UserKey, string(raw))
	return nil
}

// Token returns the API bearer token, or "" when signed out.
func (s *Session) Token() string {
	token, _ := s.storage.GetItem(TokenKey)
	return token
}

// SetToken stores the API bearer token.
func (s *Session) SetToken(token string) {
	s.storage.SetItem(TokenKey, token)
}

// Clear signs the user out.
func (s *Session) Clear() {
	s.storage.RemoveItem(UserKey)
	s.storage.RemoveItem(TokenKey)
}
