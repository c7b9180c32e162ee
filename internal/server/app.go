// Package server wires the record store, blob store, remote catalogs and
// cache into the services, and runs the HTTP API and the gRPC health
// server until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	"github.com/dmitrijs2005/pmdadmin/internal/server/blobstore"
	"github.com/dmitrijs2005/pmdadmin/internal/server/cache"
	"github.com/dmitrijs2005/pmdadmin/internal/server/config"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/remotecatalog"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pmdadmin/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/pmdadmin/internal/server/grpc"
	httpS "github.com/dmitrijs2005/pmdadmin/internal/server/http"
	httpH "github.com/dmitrijs2005/pmdadmin/internal/server/http/handlers"
	httpMW "github.com/dmitrijs2005/pmdadmin/internal/server/http/middleware"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	http    *httpS.Server
	grpc    *gs.GRPCServer
	closers []io.Closer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	db, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app := &App{config: c, logger: logger, db: db, closers: []io.Closer{db}}

	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("migrations: %w", err)
	}

	blobs, err := blobstore.New(ctx, blobstore.Options{
		Backend:        c.BlobBackend,
		S3AccessKey:    c.S3AccessKey,
		S3SecretKey:    c.S3SecretKey,
		S3Bucket:       c.S3Bucket,
		S3Region:       c.S3Region,
		S3BaseEndpoint: c.S3BaseEndpoint,
		GCSBucket:      c.GCSBucket,
		GCSCredentials: c.GCSCredentials,
		PublicBaseURL:  c.PublicBaseURL,
	})
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("blob store: %w", err)
	}
	if cl, ok := blobs.(io.Closer); ok {
		app.closers = append(app.closers, cl)
	}

	listCache := app.newCache(ctx)

	var catalogOpts []remotecatalog.Option
	if c.CatalogTokenInQuery {
		catalogOpts = append(catalogOpts, remotecatalog.WithQueryToken())
	}
	var docs, gallery services.CatalogRemote
	if c.DocumentsCatalogURL != "" {
		docs = remotecatalog.NewClient(c.DocumentsCatalogURL, c.CatalogToken, c.DocumentsFetchAction, c.CatalogTimeout, catalogOpts...)
	} else {
		logger.Warn(ctx, "documents catalog URL not set, listing the record store only")
	}
	if c.GalleryCatalogURL != "" {
		gallery = remotecatalog.NewClient(c.GalleryCatalogURL, c.CatalogToken, c.GalleryFetchAction, c.CatalogTimeout, catalogOpts...)
	} else {
		logger.Warn(ctx, "gallery catalog URL not set, listing the record store only")
	}

	catalogSvc := services.NewCatalogService(db, rm, services.CatalogDeps{
		Blobs:              blobs,
		Documents:          docs,
		Gallery:            gallery,
		Cache:              listCache,
		Log:                logger,
		MirrorStoreUploads: c.MirrorStoreUploads,
	})
	rankSvc := services.NewRankService(db, rm)
	employeeSvc := services.NewEmployeeService(db, rm, logger)
	directory := services.NewDirectoryService(db, rm)

	app.http = httpS.NewServer(c.EndpointAddrHTTP, httpS.RouterConfig{
		Log:                 logger,
		CORSOrigins:         c.CORSOrigins,
		AuthMiddleware:      httpMW.NewAuthMiddleware(logger, c.SecretKey),
		HealthHandler:       httpH.NewHealthHandler(db),
		DocumentsHandler:    httpH.NewCatalogHandler(logger, catalogSvc, models.KindDocuments),
		GalleryHandler:      httpH.NewCatalogHandler(logger, catalogSvc, models.KindGallery),
		RankHandler:         httpH.NewRankHandler(rankSvc),
		EmployeeHandler:     httpH.NewEmployeeHandler(employeeSvc),
		OfficerHandler:      httpH.NewOfficerHandler(directory.Officers, directory),
		DistrictHandler:     httpH.NewDistrictHandler(directory.Districts, directory),
		StationHandler:      httpH.NewStationHandler(directory.Stations, directory),
		LinkHandler:         httpH.NewLinkHandler(directory.Links, directory),
		RegistrationHandler: httpH.NewRegistrationHandler(services.NewRegistrationService(db, rm)),
		NotificationHandler: httpH.NewNotificationHandler(services.NewNotificationService(db, rm)),
		StatsHandler:        httpH.NewStatsHandler(services.NewStatsService(employeeSvc, directory)),
	})
	app.grpc = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, db, c.HealthProbeInterval, c.SecretKey)

	if c.SecretKey == "" {
		logger.Warn(ctx, "no JWT secret configured, the API is unauthenticated")
	}

	return app, nil
}

// newCache connects to Redis when configured. The cache is optional: a
// failed connection is logged and listing runs uncached.
func (app *App) newCache(ctx context.Context) cache.ListCache {
	if app.config.RedisURL == "" {
		return cache.Noop{}
	}
	rc, err := cache.NewRedisCache(ctx, app.config.RedisURL, app.config.CacheTTL)
	if err != nil {
		app.logger.Warn(ctx, "redis unavailable, list cache disabled", "error", err)
		return cache.Noop{}
	}
	app.closers = append(app.closers, rc)
	return rc
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(gctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)
		if err := app.http.Run(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := app.grpc.Run(gctx); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(gctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.http.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	app.close(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(ctx, "server stopped with error", "error", err)
		return err
	}
	app.logger.Info(ctx, "Stopped")
	return nil
}

func (app *App) close(ctx context.Context) {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.Warn(ctx, "close failed", "error", err)
		}
	}
	app.closers = nil
	if s, ok := app.logger.(interface{ Sync() }); ok {
		s.Sync()
	}
}
