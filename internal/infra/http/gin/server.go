package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"archatara/internal/infra/config"
	"archatara/internal/infra/obs"
)

type CatalogHTTP interface {
	Catalog(c *gin.Context)
	Activities(c *gin.Context)
	Availability(c *gin.Context)
	Status(c *gin.Context)
}

type BookingHTTP interface {
	Start(c *gin.Context)
	Get(c *gin.Context)
	Date(c *gin.Context)
	Unit(c *gin.Context)
	Submit(c *gin.Context)
	Back(c *gin.Context)
	Reset(c *gin.Context)
}

type AdminHTTP interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Confirm(c *gin.Context)
	Reject(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	DeleteAll(c *gin.Context)
	Calendar(c *gin.Context)
	GetSettings(c *gin.Context)
	PutSettings(c *gin.Context)
	Export(c *gin.Context)
	Summary(c *gin.Context)
}

type Handlers struct {
	Catalog         CatalogHTTP
	Booking         BookingHTTP
	Admin           AdminHTTP
	AdminMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Catalog != nil {
		api.GET("/catalog", h.Catalog.Catalog)
		api.GET("/activities", h.Catalog.Activities)
		api.GET("/availability", h.Catalog.Availability)
		api.GET("/status", h.Catalog.Status)
	}
	if h.Booking != nil {
		api.POST("/booking", h.Booking.Start)
		api.GET("/booking/:id", h.Booking.Get)
		api.POST("/booking/:id/date", h.Booking.Date)
		api.POST("/booking/:id/unit", h.Booking.Unit)
		api.POST("/booking/:id/submit", h.Booking.Submit)
		api.POST("/booking/:id/back", h.Booking.Back)
		api.POST("/booking/:id/reset", h.Booking.Reset)
	}
	if h.Admin != nil {
		api.POST("/admin/login", h.Admin.Login)
		adminGroup := api.Group("/admin")
		if h.AdminMiddleware != nil {
			adminGroup.Use(h.AdminMiddleware)
		}
		adminGroup.POST("/logout", h.Admin.Logout)
		adminGroup.GET("/reservations", h.Admin.List)
		adminGroup.GET("/reservations/:id", h.Admin.Get)
		adminGroup.POST("/reservations/:id/confirm", h.Admin.Confirm)
		adminGroup.POST("/reservations/:id/reject", h.Admin.Reject)
		adminGroup.PATCH("/reservations/:id", h.Admin.Update)
		adminGroup.DELETE("/reservations/:id", h.Admin.Delete)
		adminGroup.DELETE("/reservations", h.Admin.DeleteAll)
		adminGroup.GET("/calendar", h.Admin.Calendar)
		adminGroup.GET("/settings", h.Admin.GetSettings)
		adminGroup.PUT("/settings", h.Admin.PutSettings)
		adminGroup.GET("/export", h.Admin.Export)
		adminGroup.POST("/summary", h.Admin.Summary)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
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
