package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	"github.com/dmitrijs2005/pmdadmin/internal/server/blobstore"
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/middleware"
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/services"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves one catalog kind: documents or gallery.
type CatalogHandler struct {
	log  logging.Logger
	svc  CatalogService
	kind models.CatalogKind
}

func NewCatalogHandler(log logging.Logger, svc CatalogService, kind models.CatalogKind) *CatalogHandler {
	return &CatalogHandler{log: log.With("handler", "catalog", "kind", kind), svc: svc, kind: kind}
}

func (h *CatalogHandler) limit() int {
	if h.kind == models.KindGallery {
		return blobstore.MaxImageBytes
	}
	return blobstore.MaxDocumentBytes
}

func (h *CatalogHandler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context(), h.kind)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if entries == nil {
		entries = []models.CatalogEntry{}
	}
	response.RespondOK(c, entries)
}

type uploadJSON struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	UserEmail   string `json:"userEmail"`
	FileBase64  string `json:"fileBase64"`
	MimeType    string `json:"mimeType"`
	FileName    string `json:"fileName"`
	Target      string `json:"target"`
}

// Upload accepts multipart/form-data with a "file" part, or JSON carrying
// the file as base64.
func (h *CatalogHandler) Upload(c *gin.Context) {
	// base64 inflates by a third; leave room for the other fields.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(h.limit())*2+1<<20)

	var (
		in  services.UploadInput
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		in, err = h.fromMultipart(c)
	} else {
		in, err = h.fromJSON(c)
	}
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			err = fmt.Errorf("%w: request body exceeds %d bytes", common.ErrorTooLarge, mbe.Limit)
		}
		response.RespondServiceError(c, err)
		return
	}

	in.Kind = h.kind
	if in.UploadedBy == "" {
		in.UploadedBy = middleware.AdminEmail(c)
	}

	res, err := h.svc.Upload(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, res)
}

func (h *CatalogHandler) fromMultipart(c *gin.Context) (services.UploadInput, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return services.UploadInput{}, err
		}
		return services.UploadInput{}, fmt.Errorf("%w: file part is required", common.ErrorValidation)
	}
	f, err := fh.Open()
	if err != nil {
		return services.UploadInput{}, err
	}
	defer f.Close()

	// One byte past the limit is enough for the size check to fail.
	data, err := io.ReadAll(io.LimitReader(f, int64(h.limit())+1))
	if err != nil {
		return services.UploadInput{}, err
	}

	return services.UploadInput{
		Target:      c.PostForm("target"),
		Title:       c.PostForm("title"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		UploadedBy:  c.PostForm("userEmail"),
		FileName:    fh.Filename,
		ContentType: common.FirstNonEmpty(c.PostForm("mimeType"), fh.Header.Get("Content-Type")),
		Data:        data,
	}, nil
}

func (h *CatalogHandler) fromJSON(c *gin.Context) (services.UploadInput, error) {
	var body uploadJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return services.UploadInput{}, err
		}
		return services.UploadInput{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if body.FileBase64 == "" {
		return services.UploadInput{}, fmt.Errorf("%w: fileBase64 is required", common.ErrorValidation)
	}
	data, err := decodeBase64(body.FileBase64)
	if err != nil {
		return services.UploadInput{}, fmt.Errorf("%w: invalid base64 file data", common.ErrorValidation)
	}
	return services.UploadInput{
		Target:      body.Target,
		Title:       body.Title,
		Category:    body.Category,
		Description: body.Description,
		UploadedBy:  body.UserEmail,
		FileName:    body.FileName,
		ContentType: body.MimeType,
		Data:        data,
	}, nil
}

// decodeBase64 accepts plain base64 or a data: URL.
func decodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}

type deleteJSON struct {
	RecordID  string `json:"recordId"`
	Title     string `json:"title"`
	FileID    string `json:"fileId"`
	UserEmail string `json:"userEmail"`
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	var body deleteJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	err := h.svc.Delete(c.Request.Context(), services.DeleteInput{
		Kind:      h.kind,
		RecordID:  body.RecordID,
		Title:     body.Title,
		FileID:    body.FileID,
		UserEmail: common.FirstNonEmpty(body.UserEmail, middleware.AdminEmail(c)),
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
