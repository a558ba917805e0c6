// Package session holds the seller's cookie set: the auth token pair plus the
// small cookies the dashboard keeps (cart, currency, OTP correlation).
//
// A Session is an explicit object handed to every component that talks to the
// network. There is no package-level state.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"negromart_seller/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieAccess        = "vendor_access"
	CookieRefresh       = "vendor_refresh"
	CookieGuestCart     = "guest_cart"
	CookieCurrency      = "currency"
	CookieOTPIdentifier = "otp_identifier"

	// storageKey is where the cookie set is persisted.
	storageKey = "cookies"
)

// otpTTL mirrors the short lifetime of the OTP correlation cookie.
const otpTTL = 10 * time.Minute

type cookie struct {
	Value   string     `json:"value"`
	Expires *time.Time `json:"expires,omitempty"`
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	cookies map[string]cookie
	store   storage.Storage
	now     func() time.Time
}

// New creates a session persisted through store. A nil store keeps it in memory only.
func New(store storage.Storage) *Session {
	return &Session{
		cookies: make(map[string]cookie),
		store:   store,
		now:     time.Now,
	}
}

// Load restores a session saved by an earlier process. Expired cookies are dropped.
func Load(ctx context.Context, store storage.Storage) (*Session, error) {
	s := New(store)
	if store == nil {
		return s, nil
	}

	data, err := storage.ReadAll(ctx, store, storageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var saved map[string]cookie
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	now := s.now()
	for name, c := range saved {
		if c.Expires != nil && now.After(*c.Expires) {
			continue
		}
		s.cookies[name] = c
	}
	return s, nil
}

// Get returns the cookie value or "" when unset or expired.
func (s *Session) Get(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cookies[name]
	if !ok {
		return ""
	}
	if c.Expires != nil && s.now().After(*c.Expires) {
		return ""
	}
	return c.Value
}

// Set stores a cookie; ttl <= 0 means a session cookie without expiry.
func (s *Session) Set(ctx context.Context, name, value string, ttl time.Duration) error {
	s.mu.Lock()
	c := cookie{Value: value}
	if ttl > 0 {
		exp := s.now().Add(ttl)
		c.Expires = &exp
	}
	s.cookies[name] = c
	s.mu.Unlock()

	return s.persist(ctx)
}

// Remove deletes cookies by name.
func (s *Session) Remove(ctx context.Context, names ...string) error {
	s.mu.Lock()
	for _, name := range names {
		delete(s.cookies, name)
	}
	s.mu.Unlock()

	return s.persist(ctx)
}

// Clear drops every cookie, like logging out and closing the browser.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.cookies = make(map[string]cookie)
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, storageKey)
}

func (s *Session) AccessToken() string  { return s.Get(CookieAccess) }
func (s *Session) RefreshToken() string { return s.Get(CookieRefresh) }
func (s *Session) OTPIdentifier() string {
	return s.Get(CookieOTPIdentifier)
}
func (s *Session) Currency() string  { return s.Get(CookieCurrency) }
func (s *Session) GuestCart() string { return s.Get(CookieGuestCart) }

// SetTokens stores a token pair. An empty refresh keeps the current one
// (the refresh endpoint does not always rotate it).
func (s *Session) SetTokens(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	s.cookies[CookieAccess] = cookie{Value: access, Expires: tokenExpiry(access)}
	if refresh != "" {
		s.cookies[CookieRefresh] = cookie{Value: refresh, Expires: tokenExpiry(refresh)}
	}
	s.mu.Unlock()

	return s.persist(ctx)
}

// ClearAccess drops only the access token, leaving refresh for the next attempt.
func (s *Session) ClearAccess(ctx context.Context) error {
	return s.Remove(ctx, CookieAccess)
}

// ClearTokens drops both auth cookies.
func (s *Session) ClearTokens(ctx context.Context) error {
	return s.Remove(ctx, CookieAccess, CookieRefresh)
}

// SetOTPIdentifier stores the short-lived OTP correlation id.
func (s *Session) SetOTPIdentifier(ctx context.Context, identifier string) error {
	return s.Set(ctx, CookieOTPIdentifier, identifier, otpTTL)
}

func (s *Session) SetCurrency(ctx context.Context, currency string) error {
	return s.Set(ctx, CookieCurrency, currency, 0)
}

// IsAuthenticated reports whether any usable token is present.
func (s *Session) IsAuthenticated() bool {
	return s.AccessToken() != "" || s.RefreshToken() != ""
}

// AccessExpired reads the exp claim of the access token without verifying the
// signature: the client cannot verify it, it only wants to avoid a wasted round trip.
func (s *Session) AccessExpired(now time.Time) bool {
	exp := tokenExpiry(s.AccessToken())
	if exp == nil {
		return s.AccessToken() == ""
	}
	return !now.Before(*exp)
}

// VendorID returns the user_id claim from the access token, if any.
func (s *Session) VendorID() string {
	claims := parseClaims(s.AccessToken())
	if claims == nil {
		return ""
	}
	for _, key := range []string{"user_id", "vendor_id", "sub"} {
		if v, ok := claims[key]; ok {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// HTTPCookies renders the set as cookies, e.g. for a cookie-authenticated endpoint.
func (s *Session) HTTPCookies() []*http.Cookie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*http.Cookie, 0, len(s.cookies))
	for name, c := range s.cookies {
		hc := &http.Cookie{Name: name, Value: c.Value, Path: "/"}
		if c.Expires != nil {
			hc.Expires = *c.Expires
		}
		out = append(out, hc)
	}
	return out
}

func (s *Session) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	s.mu.RLock()
	data, err := json.Marshal(s.cookies)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.store.Save(ctx, storageKey, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func parseClaims(token string) jwt.MapClaims {
	if token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

func tokenExpiry(token string) *time.Time {
	claims := parseClaims(token)
	if claims == nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time
	return &t
}
