package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func newRouter(s *server, cfg Config) http.Handler {
	r := mux.NewRouter()

	// API 路由
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/init", s.initOctreeHandler).Methods("POST")
	api.HandleFunc("/items", s.addItemsHandler).Methods("POST")
	api.HandleFunc("/build", s.buildOctreeHandler).Methods("POST")
	api.HandleFunc("/transform", s.transformHandler).Methods("POST")
	api.HandleFunc("/cull", s.cullHandler).Methods("POST")
	api.HandleFunc("/ws/cull", s.cullStreamHandler).Methods("GET")
	api.HandleFunc("/sphere", s.sphereHandler).Methods("POST")
	api.HandleFunc("/box", s.boxHandler).Methods("POST")
	api.HandleFunc("/octree", s.getOctreeHandler).Methods("GET")
	api.HandleFunc("/stats", s.statsHandler).Methods("GET")
	api.HandleFunc("/save", s.saveHandler).Methods("POST")
	api.HandleFunc("/load", s.loadHandler).Methods("POST")
	api.HandleFunc("/snapshot/info", s.snapshotInfoHandler).Methods("GET")

	// 静态文件路由
	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	listen := flag.String("listen", "", "listen address, overrides the config")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	initial, err := cfg.Level()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	level := new(slog.LevelVar)
	level.Set(initial)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *configPath != "" {
		if err := watchConfig(ctx, *configPath, level, logger); err != nil {
			logger.Warn("config reload disabled", "err", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           newRouter(newServer(cfg, logger), cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	logger.Info("server starting", "listen", cfg.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
