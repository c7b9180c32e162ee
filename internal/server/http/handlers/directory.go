package handlers

import (
	"context"

	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

// CollectionHandler exposes CRUD for one directory collection. list decides
// how the collection is read for GET on the collection root.
type CollectionHandler[T any] struct {
	svc  Collection[T]
	list func(c *gin.Context) ([]T, error)
}

func NewCollectionHandler[T any](svc Collection[T], list func(c *gin.Context) ([]T, error)) *CollectionHandler[T] {
	return &CollectionHandler[T]{svc: svc, list: list}
}

// ListWith adapts a context-only list function.
func ListWith[T any](fn func(ctx context.Context) ([]T, error)) func(c *gin.Context) ([]T, error) {
	return func(c *gin.Context) ([]T, error) { return fn(c.Request.Context()) }
}

func (h *CollectionHandler[T]) List(c *gin.Context) {
	out, err := h.list(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if out == nil {
		out = []T{}
	}
	response.RespondOK(c, out)
}

func (h *CollectionHandler[T]) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, v)
}

func (h *CollectionHandler[T]) Create(c *gin.Context) {
	var v T
	if !bindJSON(c, &v) {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), v)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"id": id})
}

func (h *CollectionHandler[T]) Update(c *gin.Context) {
	var v T
	if !bindJSON(c, &v) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("id"), v); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

func (h *CollectionHandler[T]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// Register mounts the handler on g at path.
func (h *CollectionHandler[T]) Register(g gin.IRoutes, path string) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/:id", h.Get)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}

// DirectoryLister is the read side of the directory service.
type DirectoryLister interface {
	ListOfficers(ctx context.Context) ([]models.Officer, error)
	ListDistricts(ctx context.Context, all bool) ([]models.District, error)
	ListStations(ctx context.Context, district string, all bool) ([]models.Station, error)
	ListLinks(ctx context.Context) ([]models.UsefulLink, error)
}

func NewOfficerHandler(svc Collection[models.Officer], l DirectoryLister) *CollectionHandler[models.Officer] {
	return NewCollectionHandler(svc, ListWith(l.ListOfficers))
}

// NewDistrictHandler lists active districts unless ?all=true.
func NewDistrictHandler(svc Collection[models.District], l DirectoryLister) *CollectionHandler[models.District] {
	return NewCollectionHandler(svc, func(c *gin.Context) ([]models.District, error) {
		return l.ListDistricts(c.Request.Context(), queryBool(c, "all"))
	})
}

// NewStationHandler lists stations, optionally of one ?district=.
func NewStationHandler(svc Collection[models.Station], l DirectoryLister) *CollectionHandler[models.Station] {
	return NewCollectionHandler(svc, func(c *gin.Context) ([]models.Station, error) {
		return l.ListStations(c.Request.Context(), c.Query("district"), queryBool(c, "all"))
	})
}

func NewLinkHandler(svc Collection[models.UsefulLink], l DirectoryLister) *CollectionHandler[models.UsefulLink] {
	return NewCollectionHandler(svc, ListWith(l.ListLinks))
}
