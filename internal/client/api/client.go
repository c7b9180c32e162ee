// Package api is the admin CLI's client for the pmdadmin HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/services"
)

// Error is a non-2xx answer from the API.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

type Client struct {
	httpClient *http.Client
	server     string
	token      string
}

func NewClient(server, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		server:     strings.TrimRight(server, "/"),
		token:      token,
	}
}

func (c *Client) request(ctx context.Context, method, path string, in any, out any) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.server+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(resp.Body)
		return decodeError(resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(status int, payload []byte) error {
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &env); err == nil && env.Error.Message != "" {
		return &Error{Status: status, Code: env.Error.Code, Message: env.Error.Message}
	}
	return &Error{Status: status, Message: strings.TrimSpace(string(payload))}
}

// Health returns nil when the server and its database answer.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthcheck", nil, "", nil)
}

func (c *Client) ListCatalog(ctx context.Context, kind models.CatalogKind) ([]models.CatalogEntry, error) {
	var out []models.CatalogEntry
	err := c.request(ctx, http.MethodGet, "/api/"+string(kind), nil, &out)
	return out, err
}

// Upload describes a file to send to /upload.
type Upload struct {
	Target      string
	Title       string
	Category    string
	Description string
	FileName    string
	ContentType string
	Body        io.Reader
}

// UploadCatalog streams the file as multipart/form-data.
func (c *Client) UploadCatalog(ctx context.Context, kind models.CatalogKind, u Upload) (*services.UploadResult, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for name, v := range map[string]string{
		"target":      u.Target,
		"title":       u.Title,
		"category":    u.Category,
		"description": u.Description,
		"mimeType":    u.ContentType,
	} {
		if v == "" {
			continue
		}
		if err := mw.WriteField(name, v); err != nil {
			return nil, err
		}
	}
	fw, err := mw.CreateFormFile("file", u.FileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, u.Body); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out services.UploadResult
	if err := c.do(ctx, http.MethodPost, "/api/"+string(kind)+"/upload", buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type DeleteRequest struct {
	RecordID string `json:"recordId,omitempty"`
	Title    string `json:"title,omitempty"`
	FileID   string `json:"fileId,omitempty"`
}

func (c *Client) DeleteCatalog(ctx context.Context, kind models.CatalogKind, r DeleteRequest) error {
	return c.request(ctx, http.MethodPost, "/api/"+string(kind)+"/delete", r, nil)
}

func (c *Client) ListRanks(ctx context.Context, all bool) ([]models.RankDefinition, error) {
	path := "/api/ranks"
	if all {
		path += "?all=true"
	}
	var out []models.RankDefinition
	err := c.request(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) ResolveRank(ctx context.Context, label string) (services.Resolution, error) {
	var out services.Resolution
	err := c.request(ctx, http.MethodGet, "/api/ranks/resolve?label="+url.QueryEscape(label), nil, &out)
	return out, err
}

func (c *Client) ListEmployees(ctx context.Context, f services.EmployeeFilter) ([]models.Employee, error) {
	q := url.Values{}
	for k, v := range map[string]string{"district": f.District, "station": f.Station, "rank": f.Rank} {
		if v != "" {
			q.Set(k, v)
		}
	}
	path := "/api/employees"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []models.Employee
	err := c.request(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) ListRegistrations(ctx context.Context) ([]models.PendingRegistration, error) {
	var out []models.PendingRegistration
	err := c.request(ctx, http.MethodGet, "/api/registrations", nil, &out)
	return out, err
}

func (c *Client) ApproveRegistration(ctx context.Context, id string) (models.Employee, error) {
	var out models.Employee
	err := c.request(ctx, http.MethodPost, "/api/registrations/"+url.PathEscape(id)+"/approve", nil, &out)
	return out, err
}

func (c *Client) RejectRegistration(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodPost, "/api/registrations/"+url.PathEscape(id)+"/reject", nil, nil)
}

func (c *Client) Notify(ctx context.Context, n models.Notification) (models.Notification, error) {
	var out models.Notification
	err := c.request(ctx, http.MethodPost, "/api/notifications", n, &out)
	return out, err
}

func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	err := c.request(ctx, http.MethodGet, "/api/stats", nil, &out)
	return out, err
}
