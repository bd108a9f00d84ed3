package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"Pavex/internal/auth"
	"Pavex/internal/calc/batch"
	"Pavex/internal/calc/importer"
	"Pavex/internal/calc/pavement"
	"Pavex/internal/calc/recommend"
	"Pavex/internal/catalog"
	"Pavex/internal/config"
	"Pavex/internal/library"
	"Pavex/internal/logger"
	"Pavex/internal/metrics"
	"Pavex/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// Deps is everything the routes need.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Repo   repo.Repository
}

func solverDefaults(c config.Config) pavement.Options {
	return pavement.Options{
		Earthwork: pavement.Earthwork{
			EmbankmentCost: c.Earthwork.EmbankmentCost,
			ExcavationCost: c.Earthwork.ExcavationCost,
		},
		Population: c.Solver.Population,
		Limit:      c.Solver.Top,
		Tuning:     pavement.Tuning{MaxPasses: c.Solver.MaxPasses, Epsilon: c.Solver.Epsilon},
	}
}

func HandleList(mux *mux.Router, d Deps) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	solver := &pavement.Handler{
		Materials: catalog.Default().Materials,
		Defaults:  solverDefaults(d.Config),
		Log:       d.Log,
	}
	if d.Config.Metrics.Enabled {
		reg := metrics.NewRegistry()
		solver.Observer = metrics.New(reg)
		mux.Handle("/metrics", metrics.Handler(reg)).Methods("GET")
	}

	authEnv := auth.NewAuthenv(d.Config.Auth.TokenKey)
	limiter := auth.NewIPRateLimiter(rate.Limit(d.Config.Auth.RatePerSec), d.Config.Auth.Burst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	batchH := &batch.Handler{Solver: solver, Log: d.Log}
	importH := &importer.Handler{Solver: solver, TargetSN: catalog.DefaultTargetSN, Log: d.Log}
	recommendH := &recommend.Handler{Materials: solver.Materials}

	api.HandleFunc("/tools/pavement/solve", solver.Calc).Methods("POST")
	api.HandleFunc("/tools/pavement/batch", batchH.Pavement).Methods("POST")
	api.HandleFunc("/tools/pavement/import", importH.Pavement).Methods("POST")
	api.HandleFunc("/tools/pavement/materials", recommendH.Pavement).Methods("POST")

	libH := &library.Handler{Repo: d.Repo, Solver: solver, Log: d.Log}
	api.HandleFunc("/catalogs", libH.ListCatalogs).Methods("GET")
	api.HandleFunc("/catalogs/{name}", libH.GetCatalog).Methods("GET")
	api.HandleFunc("/runs/{id}", libH.GetRun).Methods("GET")

	secure := func(h http.HandlerFunc) http.Handler { return authEnv.AuthMiddleware(h) }
	api.Handle("/catalogs/{name}", secure(libH.PutCatalog)).Methods("PUT")
	api.Handle("/catalogs/{name}", secure(libH.DeleteCatalog)).Methods("DELETE")
	api.Handle("/catalogs/{name}/solve", secure(libH.Solve)).Methods("POST")
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.Env)
	if cfg.Auth.TokenKey == "" {
		log.Warn("auth.token_key is not set; catalog writes will be refused")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repo.Open(ctx, cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Error("open database", "driver", cfg.DB.Driver, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	mux := mux.NewRouter()
	HandleList(mux, Deps{Config: cfg, Log: log, Repo: store})
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", "addr", cfg.HTTP.Addr, "tls", cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.HTTP.TLSCert, cfg.HTTP.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
	}
	wg.Wait()
	log.Info("server stopped")
}
