package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/handler"
	"github.com/noah-isme/library-portal/internal/middleware"
	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/service"
	"github.com/noah-isme/library-portal/internal/web"
	"github.com/noah-isme/library-portal/pkg/config"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
	"github.com/noah-isme/library-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/library-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/library-portal/pkg/middleware/requestid"
)

type routerDeps struct {
	logger    *zap.Logger
	validator *validator.Validate
	metrics   *service.MetricsService
	schemas   *service.SchemaRegistry
	catalog   *service.CatalogService
	sessions  *service.SessionService
	exports   *service.ExportService
	ready     map[string]handler.Pinger
}

func newRouter(cfg *config.Config, deps routerDeps) (*gin.Engine, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(deps.metrics))
	}

	metricsHandler := handler.NewMetricsHandler(deps.metrics, deps.ready)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.StaticFS("/static", http.FS(web.Static()))

	optionalSession := middleware.OptionalSession(deps.sessions, cfg.Session.CookieName)
	requireSession := middleware.RequireSession(deps.sessions, cfg.Session.CookieName, cfg.Session.LoginURL)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, service.ListingURL(service.TypeQuestionPapers))
	})

	pages := handler.NewPageHandler(deps.catalog, handler.PageOptions{
		ExportEnabled: cfg.Export.Enabled,
		LiveEnabled:   cfg.Live.Enabled,
	})
	resources := r.Group("/resources", optionalSession)
	resources.GET("/:type", pages.Listing)
	resources.GET("/:type/:id", pages.Detail)
	if cfg.Export.Enabled {
		exports := handler.NewExportHandler(deps.exports, deps.schemas)
		resources.GET("/:type/export.csv", exports.Export("csv"))
		resources.GET("/:type/export.pdf", exports.Export("pdf"))
	} else {
		resources.GET("/:type/export.csv", featureDisabled)
		resources.GET("/:type/export.pdf", featureDisabled)
	}

	if cfg.Live.Enabled {
		live := handler.NewLiveHandler(deps.catalog, deps.validator, deps.metrics, deps.logger, cfg.Live.OriginPatterns)
		r.GET("/ws/resources/:type", optionalSession, live.Listing)
	} else {
		r.GET("/ws/resources/:type", featureDisabled)
	}

	catalogHandler := handler.NewCatalogHandler(deps.catalog)
	api := r.Group("/api/v1/catalog", middleware.WithResponseMeta(), optionalSession)
	api.GET("/types", catalogHandler.Types)
	api.GET("/:type", catalogHandler.List)
	api.GET("/:type/:id", catalogHandler.Get)

	dashboards := handler.NewDashboardHandler(deps.schemas, deps.sessions, deps.metrics, cfg.Session.CookieName, cfg.Session.LoginURL, deps.logger)
	r.GET("/admin/dashboard", requireSession, middleware.RequireRoles(models.RoleAdmin), dashboards.Admin)
	r.GET("/user/dashboard", requireSession, dashboards.User)
	r.POST("/logout", dashboards.Logout)

	return r, nil
}

func featureDisabled(c *gin.Context) {
	middleware.Deny(c, appErrors.ErrFeatureDisabled)
}
