// Package api is the REST client every seller-center component goes through.
//
// It attaches the bearer token from the session, and on a 401 performs one
// token refresh (shared by all concurrent callers) and retries the request once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"negromart_seller/internal/logger"
	"negromart_seller/internal/session"
	"negromart_seller/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	RefreshPath = "/auth/jwt/refresh/"

	headerRequestID = "X-Request-ID"
	maxBody         = 10 << 20
	defaultTimeout  = 30 * time.Second
)

// Request describes one call. Body is kept as bytes so the request can be
// replayed after a token refresh.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string

	// NoAuth skips the bearer header and the refresh-on-401 path (login, OTP, refresh itself).
	NoAuth bool
}

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session

	refreshGroup singleflight.Group
	newRequestID func() string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a client for baseURL (e.g. http://host/api/v1) bound to sess.
func New(baseURL string, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: defaultTimeout},
		session:      sess,
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *session.Session { return c.session }

func (c *Client) BaseURL() string { return c.baseURL }

// Do executes r and decodes a JSON response into out (when out is non-nil).
func (c *Client) Do(ctx context.Context, r *Request, out interface{}) error {
	requestID := c.newRequestID()
	ctx = logger.WithRequestID(ctx, requestID)

	sentToken := ""
	if !r.NoAuth {
		sentToken = c.session.AccessToken()
	}

	res, body, err := c.send(ctx, r, sentToken, requestID, 1)
	if err != nil {
		return err
	}

	if res.StatusCode == http.StatusUnauthorized && !r.NoAuth {
		if err := c.refreshIfStale(ctx, sentToken); err != nil {
			logger.CtxWarn(ctx, "token refresh failed", "error", err.Error())
			// The session stays as is when the refresh never reached the server.
			if apperrors.IsTransport(err) {
				return err
			}
			if ctx.Err() != nil {
				return apperrors.TransportError(err, domainOf(r.Path))
			}
			_ = c.session.ClearAccess(ctx)
			return apperrors.ErrUnauthorized.WithError(err)
		}

		res, body, err = c.send(ctx, r, c.session.AccessToken(), requestID, 2)
		if err != nil {
			return err
		}
		if res.StatusCode == http.StatusUnauthorized {
			_ = c.session.ClearAccess(ctx)
			return apperrors.ErrUnauthorized.WithError(apperrors.FromResponse(res.StatusCode, body, domainOf(r.Path)))
		}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return apperrors.FromResponse(res.StatusCode, body, domainOf(r.Path))
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnknownError, domainOf(r.Path), "Unexpected response body", res.StatusCode)
	}
	return nil
}

func (c *Client) send(ctx context.Context, r *Request, token, requestID string, attempt int) (*http.Response, []byte, error) {
	u := c.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var reqBody io.Reader
	if r.Body != nil {
		reqBody = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, reqBody)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if currency := c.session.Currency(); currency != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieCurrency, Value: currency})
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		logger.CtxDebug(ctx, "http request failed", "method", r.Method, "path", r.Path, "error", err.Error())
		return nil, nil, apperrors.TransportError(err, domainOf(r.Path))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, nil, apperrors.TransportError(err, domainOf(r.Path))
	}
	logger.HTTPLog(r.Method, r.Path, res.StatusCode, time.Since(start), attempt)

	return res, body, nil
}

// refreshIfStale refreshes the token pair unless another caller already did
// since sentToken was read. Concurrent callers share a single refresh call,
// which is detached from any one caller's cancellation; each caller stops
// waiting when its own ctx ends.
func (c *Client) refreshIfStale(ctx context.Context, sentToken string) error {
	if current := c.session.AccessToken(); current != "" && current != sentToken {
		return nil
	}

	results := c.refreshGroup.DoChan("refresh", func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout())
		defer cancel()
		return nil, c.refresh(refreshCtx)
	})

	select {
	case res := <-results:
		if res.Shared {
			logger.CtxDebug(ctx, "joined in-flight token refresh")
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) refreshTimeout() time.Duration {
	if c.http.Timeout > 0 {
		return c.http.Timeout
	}
	return defaultTimeout
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (c *Client) refresh(ctx context.Context) error {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return apperrors.ErrNoRefreshToken
	}

	body, err := json.Marshal(refreshRequest{Refresh: refreshToken})
	if err != nil {
		return apperrors.InternalError(err)
	}

	r := &Request{
		Method:      http.MethodPost,
		Path:        RefreshPath,
		Body:        body,
		ContentType: "application/json",
		NoAuth:      true,
	}

	var out refreshResponse
	if err := c.Do(ctx, r, &out); err != nil {
		return err
	}
	if out.Access == "" {
		return apperrors.New(apperrors.CodeInvalidToken, "auth", "Refresh response had no access token", http.StatusOK)
	}

	if err := c.session.SetTokens(ctx, out.Access, out.Refresh); err != nil {
		return fmt.Errorf("failed to store refreshed tokens: %w", err)
	}
	logger.CtxInfo(ctx, "access token refreshed")
	return nil
}

// domainOf names the error domain after the first path segment ("/vendor/orders/" -> "vendor").
func domainOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.Index(trimmed, "/"); i > 0 {
		return trimmed[:i]
	}
	if trimmed == "" {
		return "api"
	}
	return trimmed
}
