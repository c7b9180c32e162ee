package handlers

import (
	"context"

	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/dmitrijs2005/pmdadmin/internal/server/services"
)

// The interfaces below are the parts of the services the handlers call.

type CatalogService interface {
	List(ctx context.Context, kind models.CatalogKind) ([]models.CatalogEntry, error)
	Upload(ctx context.Context, in services.UploadInput) (*services.UploadResult, error)
	Delete(ctx context.Context, in services.DeleteInput) error
}

type RankService interface {
	List(ctx context.Context, all bool) ([]models.RankDefinition, error)
	Get(ctx context.Context, id string) (models.RankDefinition, error)
	Create(ctx context.Context, r models.RankDefinition) (models.RankDefinition, error)
	Update(ctx context.Context, id string, r models.RankDefinition) (models.RankDefinition, error)
	Deactivate(ctx context.Context, id string) error
	Resolve(ctx context.Context, label string) (services.Resolution, error)
}

type EmployeeService interface {
	List(ctx context.Context, f services.EmployeeFilter) ([]models.Employee, error)
	Get(ctx context.Context, id string) (models.Employee, error)
	Create(ctx context.Context, e models.Employee) (models.Employee, error)
	Update(ctx context.Context, id string, e models.Employee) (models.Employee, error)
	Delete(ctx context.Context, id string) error
}

// Collection is implemented by *services.Collection.
type Collection[T any] interface {
	List(ctx context.Context, q records.Query) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, v T) (string, error)
	Update(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
}

type RegistrationService interface {
	ListPending(ctx context.Context) ([]models.PendingRegistration, error)
	Approve(ctx context.Context, id string) (models.Employee, error)
	Reject(ctx context.Context, id string) error
}

type NotificationService interface {
	Enqueue(ctx context.Context, n models.Notification) (models.Notification, error)
}

type StatsService interface {
	Get(ctx context.Context) (models.Stats, error)
}
