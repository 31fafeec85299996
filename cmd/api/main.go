package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/finbook/ledger-service/internal/config"
	"github.com/finbook/ledger-service/internal/handler"
	"github.com/finbook/ledger-service/internal/middleware"
	"github.com/finbook/ledger-service/internal/repository"
	"github.com/finbook/ledger-service/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	runLock := repository.NewRunLock(db)
	svc := service.NewService(repo, runLock, logger)
	h := handler.NewHandler(svc)

	// Scheduled daily trigger
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(cfg.RecurringCron, func() {
		if _, err := svc.RunRecurring(context.Background(), time.Now().UTC()); err != nil {
			logger.Errorf("Scheduled recurring run failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to register recurring cron %q: %v", cfg.RecurringCron, err)
	}
	c.Start()
	defer c.Stop()

	// Setup router
	r := mux.NewRouter()
	triggerRouter := r.PathPrefix("/recurring").Subrouter()
	triggerRouter.Use(middleware.SchedulerAuth(cfg))
	triggerRouter.HandleFunc("/run", h.RunRecurring).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
