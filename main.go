package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"facilityops/internal/audit"
	"facilityops/internal/auth"
	docstorepg "facilityops/internal/docstore/postgres"
	"facilityops/internal/export"
	"facilityops/internal/facility"
	ledgerapp "facilityops/internal/ledger/application"
	"facilityops/internal/ledger/infrastructure/entrystore"
	ledgerinterfaces "facilityops/internal/ledger/interfaces"
	ledgerhttp "facilityops/internal/ledger/interfaces/http"
	"facilityops/internal/observability/metrics"
	"facilityops/internal/records"
	"facilityops/internal/shopping"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init()

	store := docstorepg.NewStore(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		logger.Fatalf("docstore schema error: %v", err)
	}
	auditRepo := audit.NewRepository(db)
	if err := auditRepo.EnsureSchema(context.Background()); err != nil {
		logger.Fatalf("audit schema error: %v", err)
	}

	clock := systemClock{}

	ledgerRepo, err := entrystore.NewRepository(store)
	if err != nil {
		logger.Fatalf("ledger repo error: %v", err)
	}
	ledgerService, err := ledgerapp.NewService(ledgerRepo, clock)
	if err != nil {
		logger.Fatalf("ledger service error: %v", err)
	}

	exportCfg, err := export.LoadConfig()
	if err != nil {
		logger.Fatalf("export config error: %v", err)
	}
	uploader, err := export.NewFTPUploader(exportCfg, clock)
	if err != nil {
		logger.Fatalf("ftp uploader error: %v", err)
	}
	exportService, err := ledgerapp.NewExportService(ledgerRepo, ledgerinterfaces.XLSXRenderer{}, uploader, clock, logger)
	if err != nil {
		logger.Fatalf("export service error: %v", err)
	}
	ledgerHandler, err := ledgerhttp.NewHandler(ledgerService, exportService, clock, auditRepo)
	if err != nil {
		logger.Fatalf("ledger handler error: %v", err)
	}

	recordService, err := records.NewService(store)
	if err != nil {
		logger.Fatalf("records service error: %v", err)
	}
	recordHandler, err := records.NewHandler(recordService)
	if err != nil {
		logger.Fatalf("records handler error: %v", err)
	}

	shoppingService, err := shopping.NewService(store)
	if err != nil {
		logger.Fatalf("shopping service error: %v", err)
	}
	shoppingHandler, err := shopping.NewHandler(shoppingService)
	if err != nil {
		logger.Fatalf("shopping handler error: %v", err)
	}

	directory, err := facility.NewDirectory(store)
	if err != nil {
		logger.Fatalf("facility directory error: %v", err)
	}
	facilityHandler := facility.NewHandler(directory)

	verifier, err := auth.NewAdminVerifier(store)
	if err != nil {
		logger.Fatalf("admin verifier error: %v", err)
	}
	verifyHandler := auth.NewVerifyHandler(verifier, []byte(cfg.SessionSecret))
	requireSession := auth.NewRequireSession([]byte(cfg.SessionSecret))

	mux := http.NewServeMux()
	mux.Handle("/api/dph/", ledgerHandler)
	mux.Handle("/api/bio-waste/", recordHandler)
	mux.Handle("/api/preparation/", recordHandler)
	mux.Handle("/api/sanitation/", recordHandler)
	mux.Handle("/api/daily-sanitation/", recordHandler)
	mux.Handle("/api/temperatures/", recordHandler)
	mux.Handle("/api/shopping-lists/", shoppingHandler)
	mux.Handle("/api/temp-shopping-lists/", shoppingHandler)
	mux.Handle("/api/facilities", facilityHandler)
	mux.Handle("/api/timer", facilityHandler)
	mux.Handle("/api/verify-admin-code", verifyHandler)
	mux.Handle("/api/audit", requireSession.Wrap(audit.NewListHandler(auditRepo)))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL   string
	HTTPAddr      string
	SessionSecret string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:   getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:      getenvDefault("HTTP_ADDR", ":8080"),
		SessionSecret: getenvDefault("SESSION_SECRET", ""),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
