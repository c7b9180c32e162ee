// Package remotecatalog talks to the spreadsheet-backed script service that
// lists, registers and removes documents and gallery images.
package remotecatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/netx"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
)

// envelopeKeys are the object keys a listing may be wrapped under.
var envelopeKeys = []string{"data", "documents", "items", "images"}

const defaultMimeType = "application/pdf"

// Client is bound to one script deployment.
type Client struct {
	endpoint     string
	token        string
	fetchAction  string
	tokenInQuery bool
	http         *http.Client
}

// Option adjusts a Client.
type Option func(*Client)

// WithQueryToken also sends the token as ?token= on listings and actions,
// for deployments that cannot read it from the body. Query strings end up
// in access logs, so this is off by default.
func WithQueryToken() Option {
	return func(c *Client) { c.tokenInQuery = true }
}

// NewClient builds a client. fetchAction is sent as ?action= on listings
// and may be empty for deployments that list on a bare GET. The token goes
// in the body of actions only unless WithQueryToken is given.
func NewClient(endpoint, token, fetchAction string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:    strings.TrimSpace(endpoint),
		token:       token,
		fetchAction: fetchAction,
		http:        &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) queryToken(q url.Values) {
	if c.tokenInQuery && c.token != "" {
		q.Set("token", c.token)
	}
}

// Fetch lists the raw rows. Any transport failure, non-2xx status or
// non-JSON body is returned as an error.
func (c *Client) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	q := url.Values{}
	if c.fetchAction != "" {
		q.Set("action", c.fetchAction)
	}
	c.queryToken(q)
	target, err := c.url(q)
	if err != nil {
		return nil, err
	}

	req, err := netx.NewJSONRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	var body json.RawMessage
	if err := netx.DoJSON(c.http, req, &body); err != nil {
		return nil, fmt.Errorf("remote catalog fetch: %w", err)
	}
	return unwrap(body)
}

// unwrap accepts a bare array, an object wrapping the array under one of
// envelopeKeys, or a single record object.
func unwrap(body json.RawMessage) ([]models.RawRecord, error) {
	trimmed := strings.TrimSpace(string(body))
	switch {
	case strings.HasPrefix(trimmed, "["):
		return decodeRows(body)
	case strings.HasPrefix(trimmed, "{"):
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", netx.ErrNotJSON, err)
		}
		for _, k := range envelopeKeys {
			if v, ok := obj[k]; ok && strings.HasPrefix(strings.TrimSpace(string(v)), "[") {
				return decodeRows(v)
			}
		}
		if msg, ok := obj["error"]; ok {
			return nil, fmt.Errorf("remote catalog error: %s", strings.Trim(string(msg), `"`))
		}
		var rec models.RawRecord
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", netx.ErrNotJSON, err)
		}
		return []models.RawRecord{rec}, nil
	case trimmed == "null":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unexpected listing shape", netx.ErrNotJSON)
	}
}

// decodeRows drops array items that are not objects.
func decodeRows(body json.RawMessage) ([]models.RawRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", netx.ErrNotJSON, err)
	}
	rows := make([]models.RawRecord, 0, len(items))
	for _, item := range items {
		var rec models.RawRecord
		if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (c *Client) url(q url.Values) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("remote catalog endpoint is not configured")
	}
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("remote catalog endpoint: %w", err)
	}
	existing := u.Query()
	for k, vs := range q {
		existing[k] = vs
	}
	u.RawQuery = existing.Encode()
	return u.String(), nil
}
