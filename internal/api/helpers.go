package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"negromart_seller/pkg/apperrors"
)

func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out, false)
}

// PostJSONNoAuth is PostJSON for the unauthenticated auth endpoints.
func (c *Client) PostJSONNoAuth(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out, true)
}

func (c *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out, false)
}

func (c *Client) PatchJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPatch, path, in, out, false)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
}

func (c *Client) PostMultipart(ctx context.Context, path string, form *Multipart, out interface{}) error {
	return c.sendMultipart(ctx, http.MethodPost, path, form, out, false)
}

// PostMultipartNoAuth is used by seller registration, which happens before login.
func (c *Client) PostMultipartNoAuth(ctx context.Context, path string, form *Multipart, out interface{}) error {
	return c.sendMultipart(ctx, http.MethodPost, path, form, out, true)
}

func (c *Client) PutMultipart(ctx context.Context, path string, form *Multipart, out interface{}) error {
	return c.sendMultipart(ctx, http.MethodPut, path, form, out, false)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}, noAuth bool) error {
	r := &Request{Method: method, Path: path, NoAuth: noAuth}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return apperrors.InternalError(err)
		}
		r.Body = body
		r.ContentType = "application/json"
	}
	return c.Do(ctx, r, out)
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, form *Multipart, out interface{}, noAuth bool) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return apperrors.InternalError(err)
	}
	return c.Do(ctx, &Request{
		Method:      method,
		Path:        path,
		Body:        body,
		ContentType: contentType,
		NoAuth:      noAuth,
	}, out)
}
