package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/gmi-lojistik/tir-takip/docs"
	"github.com/gmi-lojistik/tir-takip/internal/handlers"
	"github.com/gmi-lojistik/tir-takip/internal/middlewares"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/repositories"
	"github.com/gmi-lojistik/tir-takip/internal/services/admin"
	"github.com/gmi-lojistik/tir-takip/internal/services/share"
	"github.com/gmi-lojistik/tir-takip/internal/services/tir"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps holds everything the route table needs.
type Deps struct {
	Store          *repositories.DeferredStore
	TirService     tir.TirService
	ShareService   share.ShareService
	AuthService    admin.AuthService
	MaxUploadBytes int64
	Mode           string // gin mode
}

func InitRouter(d *Deps) *gin.Engine {
	if d.Mode != "" {
		gin.SetMode(d.Mode)
	}

	router := gin.New()
	router.Use(middlewares.Recovery(), middlewares.RequestLogger(), middlewares.Metrics())
	// multipart parts above this are spooled to disk
	router.MaxMultipartMemory = d.MaxUploadBytes

	router.GET("/ping", handlers.Ping)
	router.GET("/health/ready", handlers.Ready(d.Store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.POST("/auth/login", handlers.Login(d.AuthService))

		// public capability URLs, never gated
		public := api.Group("/public")
		{
			public.GET("/tir/:token", handlers.PublicTir(d.ShareService))
			public.GET("/list/:token", handlers.PublicList(d.ShareService))
		}

		authenticated := api.Group("")
		authenticated.Use(middlewares.AuthMiddleware(d.AuthService))

		tirGroup := authenticated.Group("/tirs")
		{
			tirGroup.GET("", handlers.ListTirs(d.TirService))
			tirGroup.POST("", handlers.CreateTir(d.TirService))
			tirGroup.GET("/:id", handlers.GetTir(d.TirService))
			tirGroup.PATCH("/:id", handlers.UpdateTir(d.TirService))
			tirGroup.DELETE("/:id", handlers.DeleteTir(d.TirService))
			tirGroup.POST("/:id/documents", handlers.UploadDocument(d.TirService, d.MaxUploadBytes))
			tirGroup.POST("/:id/share", handlers.CreateTirShare(d.ShareService))
		}

		authenticated.DELETE("/documents/:id", handlers.DeleteDocument(d.TirService))

		shareGroup := authenticated.Group("/share")
		{
			shareGroup.POST("/list", handlers.CreateListShare(d.ShareService))
			shareGroup.GET("/:type", handlers.ListShareLinks(d.ShareService))
			shareGroup.PATCH("/:id", handlers.UpdateShareLink(d.ShareService))
			shareGroup.DELETE("/:id", handlers.DeleteShareLink(d.ShareService))
		}
	}

	router.NoRoute(func(c *gin.Context) {
		xerr.Error(c, http.StatusNotFound, "Sayfa bulunamadı")
	})

	return router
}
