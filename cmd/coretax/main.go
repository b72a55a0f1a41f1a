package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	auditpg "arthakarya/ms_coretax_exporter/internal/adapters/audit/postgres"
	"arthakarya/ms_coretax_exporter/internal/adapters/captcha/turnstile"
	authhandler "arthakarya/ms_coretax_exporter/internal/adapters/http/auth"
	exporthandler "arthakarya/ms_coretax_exporter/internal/adapters/http/export"
	healthhandler "arthakarya/ms_coretax_exporter/internal/adapters/http/health"
	"arthakarya/ms_coretax_exporter/internal/adapters/invoice/ninja"
	appauth "arthakarya/ms_coretax_exporter/internal/application/auth"
	appexport "arthakarya/ms_coretax_exporter/internal/application/export"
	apphealth "arthakarya/ms_coretax_exporter/internal/application/health"
	"arthakarya/ms_coretax_exporter/internal/core/audit"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/config"
	httpinfra "arthakarya/ms_coretax_exporter/internal/infrastructure/http"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/http/server"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "service stopped: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.App.Name, cfg.Log.Level, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var auditRepo audit.Repository
	var dependencies []string
	if cfg.Audit.Enabled && cfg.Database.Host != "" && cfg.Database.Database != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
		if err != nil {
			log.Warn("failed to open database, audit trail will be disabled",
				"error", err,
				"host", cfg.Database.Host,
				"database", cfg.Database.Database)
		} else if err := pool.Ping(ctx); err != nil {
			pool.Close()
			log.Warn("failed to connect to database, audit trail will be disabled",
				"error", err,
				"host", cfg.Database.Host,
				"database", cfg.Database.Database)
		} else {
			defer pool.Close()
			auditRepo = auditpg.NewRepository(pool, log)
			dependencies = append(dependencies, "audit")
			log.Info("audit trail enabled", "database", cfg.Database.Database)
		}
	} else {
		log.Info("audit trail disabled", "audit_enabled", cfg.Audit.Enabled)
	}

	provider := ninja.NewClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.APIKey,
		httpinfra.NewClient(cfg.Upstream.Timeout),
		log,
	)

	var verifier appauth.Verifier
	if cfg.Captcha.Enabled {
		verifier = turnstile.NewClient(
			cfg.Captcha.VerifyURL,
			cfg.Captcha.SecretKey,
			httpinfra.NewClient(cfg.Captcha.Timeout),
			log,
		)
		dependencies = append(dependencies, "captcha")
	} else {
		log.Warn("captcha verification disabled, logins will not be challenged")
	}

	exportSvc := appexport.NewService(appexport.Options{
		Provider:        provider,
		AuditRepo:       auditRepo,
		PreviewPageSize: cfg.Upstream.PreviewPageSize,
		CompanyCacheTTL: cfg.Upstream.CompanyCacheTTL,
		Logger:          log,
	})
	authSvc := appauth.NewService(cfg.Auth, verifier, log)
	healthSvc := apphealth.NewService(apphealth.Metadata{
		Service:      cfg.App.Name,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		Dependencies: dependencies,
	})

	srv, err := server.New(server.Options{
		Config:        cfg,
		Logger:        log,
		AuthHandler:   authhandler.NewHandler(authSvc, !cfg.App.IsLocal(), log),
		ExportHandler: exporthandler.NewHandler(exportSvc, cfg.Company.DisplayName, log),
		HealthHandler: healthhandler.NewHandler(healthSvc),
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	log.Info("starting service",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment)

	return srv.Run(ctx)
}
