package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"Poolcalc/internal/auth"
	"Poolcalc/internal/calc/batch"
	"Poolcalc/internal/calc/importer"
	"Poolcalc/internal/calc/pool"
	"Poolcalc/internal/calc/report"
	"Poolcalc/internal/calculations"
	"Poolcalc/internal/config"
	"Poolcalc/internal/log"
	"Poolcalc/internal/metrics"
	"Poolcalc/internal/repo"
	"Poolcalc/internal/requestid"
)

func CORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleList registers every route on router.
func HandleList(router *mux.Router, cfg *config.Config, calcRepo repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.Service.TokenKey)}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Service.RateLimit), cfg.Service.RateBurst)

	reportH := &report.Handler{}
	calcH := calculations.NewHandler(calcRepo, reportH)
	poolH := &pool.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Pool calculator API is running"}`))
	}).Methods("GET")

	api.HandleFunc("/suppliers", calcH.SupplierList).Methods("GET")
	api.HandleFunc("/calculate", poolH.Calc).Methods("POST")

	api.HandleFunc("/calculations", calcH.List).Methods("GET")
	api.Handle("/calculations", authEnv.AuthMiddleware(http.HandlerFunc(calcH.Create))).Methods("POST")
	api.HandleFunc("/calculations/export", calcH.Export).Methods("GET")
	api.HandleFunc("/calculations/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/calculations/import", importH.Upload).Methods("POST")
	api.HandleFunc("/calculations/{id:[0-9]+}", calcH.Get).Methods("GET")
	api.HandleFunc("/calculations/{id:[0-9]+}/pdf", calcH.PDF).Methods("GET")
	api.HandleFunc("/export-pdf", calcH.ExportPDF).Methods("POST")
}

// NewHandler builds the full middleware chain around the route table.
func NewHandler(cfg *config.Config, calcRepo repo.Repository, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(metrics.Middleware)
	HandleList(router, cfg, calcRepo)

	var h http.Handler = router
	h = log.Logger(logger, "http")(h)
	h = requestid.Middleware(h)
	return CORS(cfg.Service.CORSOrigin, h)
}

// Run serves until ctx is cancelled, then shuts down with a 5 second grace period.
func Run(ctx context.Context, cfg *config.Config, db *sql.DB) error {
	calcRepo := repo.NewSQLCalculationDB(db, cfg.Database.Type)
	server := &http.Server{
		Addr:              cfg.Service.Address,
		Handler:           NewHandler(cfg, calcRepo, zap.L()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("starting server", "address", cfg.Service.Address, "auth", cfg.AuthEnabled())
		var err error
		if cfg.Service.TLSCert != "" && cfg.Service.TLSKey != "" {
			err = server.ListenAndServeTLS(cfg.Service.TLSCert, cfg.Service.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.S().Info("shutdown signal received, closing active connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zap.S().Info("server stopped")
	return nil
}
