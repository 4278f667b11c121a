package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"lynx/internal/infra/config"
	"lynx/internal/infra/obs"
)

type AnalyticsHTTP interface {
	Metrics(c *gin.Context)
	Catalog(c *gin.Context)
	Series(c *gin.Context)
}

type BookingHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Replace(c *gin.Context)
	Delete(c *gin.Context)
}

type CostsHTTP interface {
	MonthlyCosts(c *gin.Context)
	ReplaceMonthlyCosts(c *gin.Context)
	Consumables(c *gin.Context)
	ReplaceConsumables(c *gin.Context)
	ConsumablesTotal(c *gin.Context)
}

type PreferencesHTTP interface {
	Favorites(c *gin.Context)
	SaveFavorites(c *gin.Context)
	Graphs(c *gin.Context)
	SaveGraphs(c *gin.Context)
}

type ReportHTTP interface {
	Templates(c *gin.Context)
	PutTemplate(c *gin.Context)
	DeleteTemplate(c *gin.Context)
	Get(c *gin.Context)
	Export(c *gin.Context)
}

type Handlers struct {
	Analytics   AnalyticsHTTP
	Booking     BookingHTTP
	Costs       CostsHTTP
	Preferences PreferencesHTTP
	Report      ReportHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the engine without touching the global gin mode.
func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Analytics != nil {
		api.GET("/metrics", h.Analytics.Metrics)
		api.GET("/metrics/catalog", h.Analytics.Catalog)
		api.GET("/series/:kind", h.Analytics.Series)
	}
	if h.Booking != nil {
		api.GET("/bookings", h.Booking.List)
		api.POST("/bookings", h.Booking.Create)
		api.PUT("/bookings", h.Booking.Replace)
		api.DELETE("/bookings/:id", h.Booking.Delete)
	}
	if h.Costs != nil {
		api.GET("/monthly-costs", h.Costs.MonthlyCosts)
		api.PUT("/monthly-costs", h.Costs.ReplaceMonthlyCosts)
		api.GET("/consumables", h.Costs.Consumables)
		api.PUT("/consumables", h.Costs.ReplaceConsumables)
		api.GET("/consumables/total", h.Costs.ConsumablesTotal)
	}
	if h.Preferences != nil {
		api.GET("/favorites", h.Preferences.Favorites)
		api.PUT("/favorites", h.Preferences.SaveFavorites)
		api.GET("/graphs", h.Preferences.Graphs)
		api.PUT("/graphs", h.Preferences.SaveGraphs)
	}
	if h.Report != nil {
		reports := api.Group("/reports")
		reports.GET("/templates", h.Report.Templates)
		reports.POST("/templates", h.Report.PutTemplate)
		reports.DELETE("/templates/:name", h.Report.DeleteTemplate)
		reports.GET("/:name", h.Report.Get)
		reports.POST("/:name/export", h.Report.Export)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
