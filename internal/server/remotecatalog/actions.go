package remotecatalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/netx"
)

// UploadRequest registers a file. Exactly one of FileBase64 or ExternalURL
// must be set.
type UploadRequest struct {
	Title       string
	Category    string
	Description string
	UserEmail   string
	FileBase64  string
	MimeType    string
	ExternalURL string
}

// DeleteRequest removes a row by title and, when known, file id.
type DeleteRequest struct {
	Title     string
	FileID    string
	UserEmail string
}

// Result is the script's reply to an action.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	FileID  string         `json:"fileId,omitempty"`
	URL     string         `json:"url,omitempty"`
	Raw     map[string]any `json:"-"`
}

type actionBody struct {
	Action      string `json:"action"`
	Token       string `json:"token,omitempty"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	UserEmail   string `json:"userEmail"`
	FileBase64  string `json:"fileBase64,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
	FileID      string `json:"fileId,omitempty"`
}

// Upload sends the upload action.
func (c *Client) Upload(ctx context.Context, r UploadRequest) (Result, error) {
	if strings.TrimSpace(r.Title) == "" {
		return Result{}, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if (r.FileBase64 == "") == (r.ExternalURL == "") {
		return Result{}, fmt.Errorf("%w: exactly one of file content or external url is required", common.ErrorValidation)
	}

	body := actionBody{
		Action:      "upload",
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
		UserEmail:   uploader(r.UserEmail),
	}
	if r.ExternalURL != "" {
		body.ExternalURL = r.ExternalURL
	} else {
		body.FileBase64 = r.FileBase64
		body.MimeType = common.FirstNonEmpty(r.MimeType, defaultMimeType)
	}
	return c.do(ctx, body)
}

// Delete sends the delete action.
func (c *Client) Delete(ctx context.Context, r DeleteRequest) (Result, error) {
	if strings.TrimSpace(r.Title) == "" {
		return Result{}, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	return c.do(ctx, actionBody{
		Action:    "delete",
		Title:     r.Title,
		FileID:    r.FileID,
		UserEmail: uploader(r.UserEmail),
	})
}

// do posts an action. The token always travels in the body.
func (c *Client) do(ctx context.Context, body actionBody) (Result, error) {
	q := url.Values{}
	q.Set("action", body.Action)
	body.Token = c.token
	c.queryToken(q)
	target, err := c.url(q)
	if err != nil {
		return Result{}, err
	}

	req, err := netx.NewJSONRequest(ctx, http.MethodPost, target, body)
	if err != nil {
		return Result{}, err
	}

	var raw map[string]any
	if err := netx.DoJSON(c.http, req, &raw); err != nil {
		return Result{}, fmt.Errorf("%w: remote catalog %s: %v", common.ErrorUpstream, body.Action, err)
	}

	res := Result{Raw: raw}
	res.Success, _ = raw["success"].(bool)
	res.Message, _ = raw["message"].(string)
	res.Error, _ = raw["error"].(string)
	res.FileID, _ = raw["fileId"].(string)
	res.URL, _ = raw["url"].(string)

	_, hasSuccess := raw["success"]
	if res.Error != "" || (hasSuccess && !res.Success) {
		msg := common.FirstNonEmpty(res.Error, res.Message, "rejected")
		return res, fmt.Errorf("%w: remote catalog %s: %s", common.ErrorUpstream, body.Action, msg)
	}
	if !hasSuccess {
		res.Success = true
	}
	return res, nil
}

func uploader(email string) string {
	return common.FirstNonEmpty(strings.TrimSpace(email), common.DefaultUploader)
}
