package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"riavet-api/internal/adapters/dian/gateway"
	"riavet-api/internal/adapters/storage/mongodb"
	"riavet-api/internal/adapters/storage/postgres"
	"riavet-api/internal/platform/config"
	"riavet-api/internal/platform/logger"
	"riavet-api/internal/router"
	dianport "riavet-api/internal/ports/dian"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	opts := router.Options{
		Logger:             zlog,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}

	if cfg.DatabaseDSN != "" {
		db, err := postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			zlog.Fatal("postgres connection failed", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		opts.DB = db
		zlog.Info("postgres connected")
	} else {
		zlog.Warn("DB_DSN not set, using in-memory repositories")
	}

	if cfg.MongoURI != "" {
		mdb, err := mongodb.Open(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			zlog.Fatal("mongodb connection failed", zap.Error(err))
		}
		defer func() { _ = mdb.Client().Disconnect(context.Background()) }()
		opts.Mongo = mdb
		zlog.Info("mongodb connected", zap.String("database", cfg.MongoDatabase))
	} else {
		zlog.Warn("MONGO_URI not set, using in-memory repositories")
	}

	if cfg.DianBaseURL != "" {
		var client dianport.Client
		client, err = gateway.New(cfg.DianBaseURL, cfg.DianAPIKey, zlog)
		if err != nil {
			zlog.Fatal("dian gateway setup failed", zap.Error(err))
		}
		opts.Dian = client
		zlog.Info("dian gateway configured", zap.String("base_url", cfg.DianBaseURL))
	} else {
		zlog.Warn("DIAN_BASE_URL not set, using simulated dian client")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	zlog.Info("starting server", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("server error", zap.Error(err))
	}
}
