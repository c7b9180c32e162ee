package http

import (
	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	httpH "github.com/dmitrijs2005/pmdadmin/internal/server/http/handlers"
	httpMW "github.com/dmitrijs2005/pmdadmin/internal/server/http/middleware"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Log            logging.Logger
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler       *httpH.HealthHandler
	DocumentsHandler    *httpH.CatalogHandler
	GalleryHandler      *httpH.CatalogHandler
	RankHandler         *httpH.RankHandler
	EmployeeHandler     *httpH.EmployeeHandler
	OfficerHandler      *httpH.CollectionHandler[models.Officer]
	DistrictHandler     *httpH.CollectionHandler[models.District]
	StationHandler      *httpH.CollectionHandler[models.Station]
	LinkHandler         *httpH.CollectionHandler[models.UsefulLink]
	RegistrationHandler *httpH.RegistrationHandler
	NotificationHandler *httpH.NotificationHandler
	StatsHandler        *httpH.StatsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Documents and gallery
	for path, h := range map[string]*httpH.CatalogHandler{
		"/documents": cfg.DocumentsHandler,
		"/gallery":   cfg.GalleryHandler,
	} {
		if h == nil {
			continue
		}
		api.GET(path, h.List)
		api.POST(path+"/upload", h.Upload)
		api.POST(path+"/delete", h.Delete)
	}

	// Ranks
	if h := cfg.RankHandler; h != nil {
		api.GET("/ranks", h.List)
		api.GET("/ranks/resolve", h.Resolve)
		api.GET("/ranks/:id", h.Get)
		api.POST("/ranks", h.Create)
		api.PUT("/ranks/:id", h.Update)
		api.DELETE("/ranks/:id", h.Deactivate)
	}

	// Employees
	if h := cfg.EmployeeHandler; h != nil {
		api.GET("/employees", h.List)
		api.POST("/employees", h.Create)
		api.GET("/employees/:id", h.Get)
		api.PUT("/employees/:id", h.Update)
		api.DELETE("/employees/:id", h.Delete)
	}

	// Directory
	if cfg.OfficerHandler != nil {
		cfg.OfficerHandler.Register(api, "/officers")
	}
	if cfg.DistrictHandler != nil {
		cfg.DistrictHandler.Register(api, "/districts")
	}
	if cfg.StationHandler != nil {
		cfg.StationHandler.Register(api, "/stations")
	}
	if cfg.LinkHandler != nil {
		cfg.LinkHandler.Register(api, "/links")
	}

	// Registrations
	if h := cfg.RegistrationHandler; h != nil {
		api.GET("/registrations", h.List)
		api.POST("/registrations/:id/approve", h.Approve)
		api.POST("/registrations/:id/reject", h.Reject)
	}

	if cfg.NotificationHandler != nil {
		api.POST("/notifications", cfg.NotificationHandler.Enqueue)
	}
	if cfg.StatsHandler != nil {
		api.GET("/stats", cfg.StatsHandler.Get)
	}

	return r
}
