// Command secureapi runs the product catalog API with stateless bearer-token
// authentication.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/secureapi/auth"
	"github.com/skillsenselab/secureapi/auth/password"
	"github.com/skillsenselab/secureapi/auth/token"
	"github.com/skillsenselab/secureapi/authz"
	"github.com/skillsenselab/secureapi/config"
	"github.com/skillsenselab/secureapi/database"
	"github.com/skillsenselab/secureapi/logger"
	"github.com/skillsenselab/secureapi/observability"
	"github.com/skillsenselab/secureapi/product"
	"github.com/skillsenselab/secureapi/server"
	"github.com/skillsenselab/secureapi/server/handler"
	"github.com/skillsenselab/secureapi/server/middleware"
	"github.com/skillsenselab/secureapi/user"
	"github.com/skillsenselab/secureapi/util"
	"github.com/skillsenselab/secureapi/version"
)

const serviceName = "secureapi"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "secureapi: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting", logger.Fields(
		"version", version.Short(),
		"environment", cfg.Environment,
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"tls", cfg.Server.TLS.IsEnabled(),
		"database", cfg.Database.DSN,
		"token_issuer", cfg.Auth.Token.Issuer,
		"token_ttl", cfg.Auth.Token.TTL.String(),
		"token_secret", util.MaskSecret(cfg.Auth.Token.Secret, 2),
		"login_rate_limit", cfg.Server.LoginRateLimit,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(&user.User{}, &product.Product{}); err != nil {
			return err
		}
	}

	var metrics *observability.Metrics
	if cfg.Observability.Enabled {
		mp, err := observability.InitMeter(ctx, serviceName, version.Short(), cfg.Environment, cfg.Observability)
		if err != nil {
			return fmt.Errorf("initializing metrics: %w", err)
		}
		defer mp.Shutdown(context.Background())

		tp, err := observability.InitTracer(ctx, serviceName, version.Short(), cfg.Environment, cfg.Observability)
		if err != nil {
			return fmt.Errorf("initializing tracing: %w", err)
		}
		defer tp.Shutdown(context.Background())

		metrics, err = observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return fmt.Errorf("creating metric instruments: %w", err)
		}
	}

	tokens, err := token.NewService(cfg.Auth.Token)
	if err != nil {
		return err
	}

	userStore := user.NewGormStore(db)
	productStore := product.NewGormStore(db)
	hasher := password.NewHasher(cfg.Auth.Password)

	authService := auth.NewService(userStore, hasher, tokens, log)
	productService := product.NewService(productStore, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	if metrics != nil {
		srv.GinEngine().Use(middleware.RequestMetrics(metrics))
	}
	srv.RegisterDefaultEndpoints(serviceName, db.PingContext)

	var loginLimiter gin.HandlerFunc
	if cfg.Server.LoginRateLimit > 0 {
		loginLimiter = middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.Server.LoginRateLimit,
		})
	}

	handler.RegisterRoutes(srv.GinEngine(), handler.RouteDeps{
		Auth:         handler.NewAuthHandler(authService, log),
		Products:     handler.NewProductHandler(productService, log),
		Gate:         middleware.Authenticate(tokens, userStore, log, metrics),
		Checker:      authz.DefaultChecker(),
		LoginLimiter: loginLimiter,
	})

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")
	return srv.Stop(context.Background())
}
