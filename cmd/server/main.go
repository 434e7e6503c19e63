package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scanner-backend/internal/config"
	httpdelivery "scanner-backend/internal/delivery/http"
	wsdelivery "scanner-backend/internal/delivery/websocket"
	"scanner-backend/internal/domain"
	"scanner-backend/internal/infrastructure/binance"
	"scanner-backend/internal/infrastructure/db"
	"scanner-backend/internal/infrastructure/fcm"
	"scanner-backend/internal/logger"
	"scanner-backend/internal/metrics"
	"scanner-backend/internal/repository"
	"scanner-backend/internal/usecase"
)

func main() {
	cfg := config.FromEnv()
	log := logger.Init("scanner-backend", logger.LevelFromEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	client := binance.NewClient(os.Getenv("BINANCE_BASE_URL"))
	tickerCache := usecase.NewTickerCache(client, cfg.TickerCacheTTL)

	scanRepo := repository.NewInMemoryScanRepository()

	var (
		tokenRepo domain.TokenRepository = repository.NewInMemoryTokenRepository()
		history   domain.SnapshotHistory
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfigFromEnv())
		if err != nil {
			log.Error("postgres pool init failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			log.Error("migration failed", "err", err)
			os.Exit(1)
		}
		tokenRepo = repository.NewPostgresTokenRepository(pool)
		history = repository.NewPostgresSnapshotHistory(pool)
		log.Info("postgres persistence enabled")
	}

	fcmClient, err := fcm.NewClient(ctx, log)
	if err != nil {
		log.Error("fcm init failed", "err", err)
		os.Exit(1)
	}

	uc := usecase.NewScannerUsecase(client, tickerCache, scanRepo, history, tokenRepo, fcmClient, m, log, usecase.Config{
		QuoteAsset:    cfg.QuoteAsset,
		TopN:          cfg.TopN,
		Interval:      cfg.Interval,
		CandleLimit:   cfg.CandleLimit,
		Concurrency:   cfg.Concurrency,
		SymbolTimeout: cfg.SymbolTimeout,
		ScanCycle:     cfg.ScanCycle,
	})

	go uc.Run(ctx)

	scanHandler := httpdelivery.NewScanHandler(uc, scanRepo)
	strategyHandler := httpdelivery.NewStrategyHandler(uc)
	tokenHandler := httpdelivery.NewTokenHandler(tokenRepo)
	wsHandler := wsdelivery.NewHandler(scanRepo, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan", scanHandler.HandleScan)
	mux.HandleFunc("/api/scan/latest", scanHandler.HandleLatest)
	mux.HandleFunc("/api/strategy/", strategyHandler.Handle)
	mux.HandleFunc("/api/tokens", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			tokenHandler.HandleRegister(w, r)
		case http.MethodDelete:
			tokenHandler.HandleUnregister(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/ws", wsHandler.Handle)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	log.Info("server listening", "addr", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
