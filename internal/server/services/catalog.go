package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	"github.com/dmitrijs2005/pmdadmin/internal/server/blobstore"
	"github.com/dmitrijs2005/pmdadmin/internal/server/cache"
	"github.com/dmitrijs2005/pmdadmin/internal/server/catalog"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/remotecatalog"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CatalogRemote is a remote catalog endpoint for one kind.
type CatalogRemote interface {
	catalog.RemoteSource
	Upload(ctx context.Context, r remotecatalog.UploadRequest) (remotecatalog.Result, error)
	Delete(ctx context.Context, r remotecatalog.DeleteRequest) (remotecatalog.Result, error)
}

// Upload targets.
const (
	TargetStore   = "store"
	TargetCatalog = "catalog"
)

// CatalogDeps are the collaborators of CatalogService. Remotes may be nil
// when the corresponding endpoint is not configured.
type CatalogDeps struct {
	Blobs     blobstore.Store
	Documents CatalogRemote
	Gallery   CatalogRemote
	Cache     cache.ListCache
	Log       logging.Logger
	// MirrorStoreUploads registers the public URL of store uploads in the
	// remote catalog so that clients reading only the sheet see them.
	MirrorStoreUploads bool
}

// CatalogService lists, uploads and deletes documents and gallery images.
type CatalogService struct {
	store
	deps        CatalogDeps
	reconcilers map[models.CatalogKind]*catalog.Reconciler
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, deps CatalogDeps) *CatalogService {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	s := &CatalogService{store: store{db: db, repomanager: m}, deps: deps}
	repo := s.records()
	s.reconcilers = map[models.CatalogKind]*catalog.Reconciler{
		models.KindDocuments: catalog.NewReconciler(repo, common.CollectionDocuments, remoteSource(deps.Documents), deps.Log),
		models.KindGallery:   catalog.NewReconciler(repo, common.CollectionGallery, remoteSource(deps.Gallery), deps.Log),
	}
	return s
}

func remoteSource(r CatalogRemote) catalog.RemoteSource {
	if r == nil {
		return nil
	}
	return r
}

func (s *CatalogService) remote(kind models.CatalogKind) CatalogRemote {
	if kind == models.KindGallery {
		return s.deps.Gallery
	}
	return s.deps.Documents
}

func checkKind(kind models.CatalogKind) error {
	if kind != models.KindDocuments && kind != models.KindGallery {
		return fmt.Errorf("%w: unknown catalog %q", common.ErrorValidation, kind)
	}
	return nil
}

// List returns the reconciled listing, served from the cache while fresh.
func (s *CatalogService) List(ctx context.Context, kind models.CatalogKind) ([]models.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	var cached []models.CatalogEntry
	ok, err := s.deps.Cache.Get(ctx, string(kind), &cached)
	if err != nil {
		s.deps.Log.Warn(ctx, "list cache read failed", "kind", kind, "error", err)
	} else if ok {
		return cached, nil
	}

	entries, err := s.reconcilers[kind].FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	catalog.AttachLinks(entries)
	if err := s.deps.Cache.Set(ctx, string(kind), entries); err != nil {
		s.deps.Log.Warn(ctx, "list cache write failed", "kind", kind, "error", err)
	}
	return entries, nil
}

// UploadInput describes one uploaded file.
type UploadInput struct {
	Kind        models.CatalogKind
	Target      string
	Title       string
	Category    string
	Description string
	UploadedBy  string
	FileName    string
	ContentType string
	Data        []byte
}

// UploadResult reports where an upload landed.
type UploadResult struct {
	Target      string `json:"target"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	RecordID    string `json:"recordId,omitempty"`
	StoragePath string `json:"storagePath,omitempty"`
	FileID      string `json:"fileId,omitempty"`
	UploadedBy  string `json:"uploader"`
	// Mirrored is set when a store upload was also registered remotely.
	Mirrored bool `json:"mirrored,omitempty"`
}

func (in *UploadInput) validate() error {
	if err := checkKind(in.Kind); err != nil {
		return err
	}
	in.Target = strings.ToLower(strings.TrimSpace(in.Target))
	if in.Target == "" {
		in.Target = TargetStore
	}
	if in.Target != TargetStore && in.Target != TargetCatalog {
		return fmt.Errorf("%w: unknown upload target %q", common.ErrorValidation, in.Target)
	}

	in.Title = common.FirstNonEmpty(strings.TrimSpace(in.Title), "Untitled")
	in.UploadedBy = common.FirstNonEmpty(strings.TrimSpace(in.UploadedBy), common.DefaultUploader)

	if in.Kind == models.KindGallery {
		if err := blobstore.CheckSize(len(in.Data), blobstore.MaxImageBytes); err != nil {
			return err
		}
		return blobstore.CheckImageType(in.ContentType)
	}
	if in.ContentType == "" {
		in.ContentType = "application/pdf"
	}
	return blobstore.CheckSize(len(in.Data), blobstore.MaxDocumentBytes)
}

// Upload validates the file before any network call, then stores it in the
// chosen target. Successful uploads invalidate the cached listing.
func (s *CatalogService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		res *UploadResult
		err error
	)
	if in.Target == TargetCatalog {
		res, err = s.uploadToCatalog(ctx, in)
	} else {
		res, err = s.uploadToStore(ctx, in)
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, in.Kind)
	return res, nil
}

func (s *CatalogService) uploadToStore(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if s.deps.Blobs == nil {
		return nil, fmt.Errorf("%w: blob store is not configured", common.ErrorValidation)
	}

	id := uuid.NewString()
	path := blobstore.ObjectPath(string(in.Kind), id, in.FileName, in.ContentType)
	url, err := s.deps.Blobs.PutObject(ctx, path, in.Data, in.ContentType)
	if err != nil {
		return nil, err
	}

	res := &UploadResult{
		Target:      TargetStore,
		Title:       in.Title,
		URL:         url,
		StoragePath: path,
		UploadedBy:  in.UploadedBy,
	}

	now := timeNow().UTC()
	rec := models.RawRecord{
		"title":       in.Title,
		"url":         url,
		"URL":         url,
		"uploadedBy":  in.UploadedBy,
		"storagePath": path,
		"fileType":    in.ContentType,
		"createdAt":   now,
		"updatedAt":   now,
	}
	if in.Category != "" {
		rec["category"] = in.Category
	}
	if in.Description != "" {
		rec["description"] = in.Description
	}

	// The bytes are already public at this point; a failed metadata write
	// is reported in the log and the upload still succeeds.
	if err := s.records().Put(ctx, string(in.Kind), id, rec); err != nil {
		s.deps.Log.Error(ctx, "failed to save upload metadata", "kind", in.Kind, "path", path, "error", err)
	} else {
		res.RecordID = id
	}

	if remote := s.remote(in.Kind); s.deps.MirrorStoreUploads && remote != nil {
		_, err := remote.Upload(ctx, remotecatalog.UploadRequest{
			Title:       in.Title,
			Category:    in.Category,
			Description: in.Description,
			UserEmail:   in.UploadedBy,
			ExternalURL: url,
		})
		if err != nil {
			s.deps.Log.Warn(ctx, "remote catalog mirror failed", "kind", in.Kind, "url", url, "error", err)
		} else {
			res.Mirrored = true
		}
	}
	return res, nil
}

func (s *CatalogService) uploadToCatalog(ctx context.Context, in UploadInput) (*UploadResult, error) {
	remote := s.remote(in.Kind)
	if remote == nil {
		return nil, fmt.Errorf("%w: remote %s catalog is not configured", common.ErrorValidation, in.Kind)
	}
	out, err := remote.Upload(ctx, remotecatalog.UploadRequest{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		UserEmail:   in.UploadedBy,
		FileBase64:  base64.StdEncoding.EncodeToString(in.Data),
		MimeType:    in.ContentType,
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		Target:     TargetCatalog,
		Title:      in.Title,
		URL:        out.URL,
		FileID:     out.FileID,
		UploadedBy: in.UploadedBy,
	}, nil
}

// DeleteInput names an entry by its store record id or by title (and file
// id) in the remote catalog. Both may be given.
type DeleteInput struct {
	Kind      models.CatalogKind
	RecordID  string
	Title     string
	FileID    string
	UserEmail string
}

func (s *CatalogService) Delete(ctx context.Context, in DeleteInput) error {
	if err := checkKind(in.Kind); err != nil {
		return err
	}
	in.RecordID = strings.TrimSpace(in.RecordID)
	in.Title = strings.TrimSpace(in.Title)
	if in.RecordID == "" && in.Title == "" {
		return fmt.Errorf("%w: recordId or title is required", common.ErrorValidation)
	}

	var remote CatalogRemote
	if in.Title != "" {
		if in.Kind == models.KindDocuments && strings.TrimSpace(in.FileID) == "" {
			return fmt.Errorf("%w: fileId is required to delete a document", common.ErrorValidation)
		}
		if remote = s.remote(in.Kind); remote == nil {
			return fmt.Errorf("%w: remote %s catalog is not configured", common.ErrorValidation, in.Kind)
		}
	}

	defer s.invalidate(ctx, in.Kind)

	if in.RecordID != "" {
		if err := s.records().Delete(ctx, string(in.Kind), in.RecordID); err != nil {
			return fmt.Errorf("error deleting %s/%s: %w", in.Kind, in.RecordID, err)
		}
	}
	if remote != nil {
		if _, err := remote.Delete(ctx, remotecatalog.DeleteRequest{
			Title:     in.Title,
			FileID:    in.FileID,
			UserEmail: in.UserEmail,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, kind models.CatalogKind) {
	if err := s.deps.Cache.Invalidate(ctx, string(kind)); err != nil {
		s.deps.Log.Warn(ctx, "list cache invalidation failed", "kind", kind, "error", err)
	}
}
