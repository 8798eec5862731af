package session

import (
	"fmt"
	"maps"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "billed_session"

type cookieClaims struct {
	Items map[string]string `json:"items"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies session cookies.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieCodec creates a codec. secure sets the cookie Secure flag.
func NewCookieCodec(secret string, ttl time.Duration, secure bool) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), ttl: ttl, secure: secure}
}

// CookieStorage is a Storage loaded from a request cookie. Changes are
// written back with Save.
type CookieStorage struct {
	codec *CookieCodec
	items map[string]string
	dirty bool
}

// Load reads the session cookie from r. A missing, tampered or expired
// cookie yields an empty storage.
func (c *CookieCodec) Load(r *http.Request) *CookieStorage {
	s := &CookieStorage{codec: c, items: make(map[string]string)}

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return s
	}
	items, err := c.decode(cookie.Value)
	if err != nil {
		// Drop the bad cookie on the next Save.
		s.dirty = true
		return s
	}
	s.items = items
	return s
}

func (c *CookieCodec) encode(items map[string]string) (string, error) {
	now := time.Now()
	claims := &cookieClaims{
		Items: items,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func (c *CookieCodec) decode(value string) (map[string]string, error) {
	claims := &cookieClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid session cookie: %w", err)
	}
	if claims.Items == nil {
		claims.Items = make(map[string]string)
	}
	return claims.Items, nil
}

func (s *CookieStorage) GetItem(key string) (string, bool) {
	v, ok := s.items[key]
	return v, ok
}

func (s *CookieStorage) SetItem(key, value string) {
	s.items[key] = value
	s.dirty = true
}

func (s *CookieStorage) RemoveItem(key string) {
	if _, ok := s.items[key]; ok {
		delete(s.items, key)
		s.dirty = true
	}
}

// Items returns a copy of the stored items.
func (s *CookieStorage) Items() map[string]string {
	return maps.Clone(s.items)
}

// Save writes the cookie to w if anything changed. It must run before the
// response header is written. An empty storage expires the cookie.
func (s *CookieStorage) Save(w http.ResponseWriter) error {
	if !s.dirty {
		return nil
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.codec.secure,
		SameSite: http.SameSiteLaxMode,
	}

	if len(s.items) == 0 {
		cookie.MaxAge = -1
	} else {
		value, err := s.codec.encode(s.items)
		if err != nil {
			return err
		}
		cookie.Value = value
		cookie.MaxAge = int(s.codec.ttl.Seconds())
	}

	http.SetCookie(w, cookie)
	s.dirty = false
	return nil
}
