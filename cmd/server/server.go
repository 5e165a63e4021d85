package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/cache"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/repositories"
	"github.com/gmi-lojistik/tir-takip/internal/router"
	"github.com/gmi-lojistik/tir-takip/internal/services/admin"
	"github.com/gmi-lojistik/tir-takip/internal/services/share"
	"github.com/gmi-lojistik/tir-takip/internal/services/tir"
	"github.com/gmi-lojistik/tir-takip/internal/setup"
	"github.com/go-redis/redis/v8"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

type Server struct {
	cfg         *config.Config
	router      *gin.Engine
	httpServer  *http.Server
	store       *repositories.DeferredStore
	redisClient *redis.Client
}

// NewServer builds every dependency except the metadata store, which is
// connected by Run in the background.
func NewServer(cfg *config.Config) (*Server, error) {
	redisClient, err := setup.InitRedis(context.Background(), &cfg.Redis)
	if err != nil {
		// the share cache falls back to the in-process LRU
		logger.Warn("Redis unavailable, using in-process cache", zap.Error(err))
		redisClient = nil
	}

	blobs, err := setup.InitBlobStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}

	authService, err := admin.NewAuthService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deferred := repositories.NewDeferredStore()
	var shareCache cache.Cache
	if redisClient != nil {
		shareCache = cache.NewRedisCache(redisClient)
	} else {
		shareCache = cache.NewLRUCache(cfg.Cache.Size, cfg.Cache.TTL)
	}
	store := repositories.NewCachedStore(deferred, shareCache, cfg.Cache.TTL)

	engine := router.InitRouter(&router.Deps{
		Store:          deferred,
		TirService:     tir.NewTirService(store, blobs, cfg.Storage.Folder),
		ShareService:   share.NewShareService(store),
		AuthService:    authService,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Mode:           cfg.Server.Mode,
	})

	addr := ":" + cfg.Server.Port
	httpServer := &http.Server{
		Addr:    addr,
		Handler: gzhttp.GzipHandler(engine),
	}

	return &Server{
		cfg:         cfg,
		router:      engine,
		httpServer:  httpServer,
		store:       deferred,
		redisClient: redisClient,
	}, nil
}

// Run starts listening, connects the metadata store in the background and
// blocks until stopChan fires, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, stopChan chan os.Signal) {
	defer setup.CloseRedis(s.redisClient)

	bootCtx, cancelBoot := context.WithCancel(ctx)
	defer cancelBoot()
	closeStore := make(chan func(), 1)
	go func() {
		closeStore <- setup.Bootstrap(bootCtx, &s.cfg.Database, s.store)
	}()

	go func() {
		logger.Info("Server is running", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-stopChan
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// a bootstrap still connecting gives up and resolves to the fallback
	cancelBoot()
	(<-closeStore)()
	logger.Info("Server exited gracefully")
}
