// Command dashboard serves the VP Engenharia dashboard gateway.
//
//	@title		Dashboard Gateway API
//	@version	1.0
//	@BasePath	/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/novavp/dashboard-gateway/internal/api"
	"github.com/novavp/dashboard-gateway/internal/core/access"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
	"github.com/novavp/dashboard-gateway/internal/core/service"
	"github.com/novavp/dashboard-gateway/internal/infrastructure/db/mongo"
	"github.com/novavp/dashboard-gateway/internal/infrastructure/db/redis"
	"github.com/novavp/dashboard-gateway/internal/infrastructure/http/handlers"
	"github.com/novavp/dashboard-gateway/internal/infrastructure/identity"
	"github.com/novavp/dashboard-gateway/internal/infrastructure/queue"
	"github.com/novavp/dashboard-gateway/internal/pkg/config"
	"github.com/novavp/dashboard-gateway/pkg/logger"
)

const (
	serviceName     = "dashboard-gateway"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dashboard:", err)
		os.Exit(1)
	}
}

func run() error {
	var policyPath string
	var checkPolicy bool

	flagSet := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	flagSet.StringVar(&policyPath, "policy", "", "role policy YAML file (overrides POLICY_FILE)")
	flagSet.BoolVar(&checkPolicy, "check-policy", false, "validate the role policy and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	policy, err := loadPolicy(cfg.PolicyPath(policyPath))
	if err != nil {
		return err
	}
	if checkPolicy {
		for _, r := range policy.Routes() {
			fmt.Printf("%-12s %-14s %s\n", r.View, r.RequiredRole, r.Path)
		}
		fmt.Println("policy ok")
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	log.Info().Str("env", cfg.Env).Str("auth_mode", cfg.Auth.Mode).Msg("starting")

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongo")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	users := mongo.NewUserRepository(db)
	sales := mongo.NewSaleRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, sales); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	auditCtx, stopAudit := context.WithCancel(ctx)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongo.NewAccessEventRepository(db), log)
	dispatcher.Start(auditCtx)

	sessions := service.NewSessionService(
		authenticator(cfg, users),
		redis.NewSessionStore(rdb),
		service.NewTokenIssuer(cfg.JWTSecret, serviceName),
		dispatcher,
		service.SessionConfig{TTL: cfg.Session.TTL, AuthTimeout: cfg.Auth.Timeout},
		log,
	)

	e := api.NewRouter(api.Deps{
		Sessions:  sessions,
		Dashboard: service.NewDashboardService(users, sales, cfg.AggregateConcurrency, log),
		Users:     service.NewUserService(users),
		Policy:    policy,
		Audit:     dispatcher,
		Checks: map[string]handlers.Check{
			"mongo": mongo.Check(db),
			"redis": redis.Check(rdb),
		},
		CookieSecure: cfg.Session.CookieSecure,
		Log:          log,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serveErr := serve(e, ":"+cfg.Port, quit, log)

	stopAudit()
	dispatcher.Wait()
	log.Info().Msg("stopped")
	return serveErr
}

// serve runs e on addr until a signal arrives on stop or the listener
// fails. A listener failure is returned so the process exits non-zero.
func serve(e *echo.Echo, addr string, stop <-chan os.Signal, log zerolog.Logger) error {
	startErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	select {
	case err := <-startErr:
		log.Error().Err(err).Msg("http server stopped")
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	return nil
}

func loadPolicy(path string) (*access.Policy, error) {
	if path == "" {
		return access.DefaultPolicy(), nil
	}
	return access.LoadPolicy(path)
}

func authenticator(cfg *config.Config, users ports.UserRepository) ports.Authenticator {
	if cfg.Auth.Mode == config.AuthModeRemote {
		return identity.NewClient(cfg.Auth.APIURL, cfg.Auth.Timeout)
	}
	return service.NewDirectoryAuthenticator(users)
}

