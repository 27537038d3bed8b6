package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Hen-Heang/h-market/domain"
	"github.com/Hen-Heang/h-market/internal/config"
	httpx "github.com/Hen-Heang/h-market/internal/http"
	"github.com/Hen-Heang/h-market/internal/http/handlers"
	"github.com/Hen-Heang/h-market/internal/infrastructure/crypto"
	"github.com/Hen-Heang/h-market/internal/infrastructure/notifications"
	"github.com/Hen-Heang/h-market/internal/infrastructure/sessions"
	"github.com/Hen-Heang/h-market/internal/infrastructure/store"
	"github.com/Hen-Heang/h-market/internal/infrastructure/upstream"
	"github.com/Hen-Heang/h-market/internal/logging"
	"github.com/Hen-Heang/h-market/internal/services"
)

// Run wires the service and blocks serving HTTP.
func Run(cfg *config.Config) error {
	logger, cleanup := logging.New(cfg.Log, cfg.Production())
	defer cleanup()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	hasher, err := crypto.New()
	if err != nil {
		return err
	}
	users, err := store.NewFileStore(cfg.DataDir, logger)
	if err != nil {
		return err
	}
	sessionStore := sessions.NewMemoryStore(cfg.SessionTTL)

	// Issued codes hit the operator log only outside production.
	var notifier domain.CodeNotifier = notifications.NewLogNotifier(logger)
	if cfg.Production() {
		notifier = notifications.NopNotifier{}
	}

	credSvc := services.NewCredentialService(users, sessionStore, hasher, notifier, services.CredentialConfig{
		OTPLength:     cfg.OTPLength,
		OTPTTL:        cfg.OTPTTL,
		DefaultRoleID: services.RolePartner,
	})

	local := handlers.NewAuthHandlers(credSvc, sessionStore)
	var proxy *handlers.ProxyHandlers
	if cfg.UpstreamBaseURL != "" {
		proxy = handlers.NewProxyHandlers(upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamAuthPath))
		logger.Info("proxy mode", zap.String("upstream", cfg.UpstreamBaseURL))
	} else {
		logger.Info("mock mode, local credential store is the system of record",
			zap.String("data_dir", cfg.DataDir))
	}

	r := httpx.BuildRouter(local, proxy, sessionStore, logger,
		rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
