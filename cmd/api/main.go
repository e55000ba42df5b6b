package main

import (
	"net/http"
	"os"
	"time"

	"med-care-tracker/internal/platform/logger"
	"med-care-tracker/internal/router"
)

// @title med-care-tracker API
// @version 1.0
// @description Seguimiento personal de medicación: extracción de recetas por IA, calendario de tomas, adherencia e interacciones.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Persistencia local por defecto si no vino nada por env.
	if os.Getenv("DB_DSN") == "" && os.Getenv("SQLITE_PATH") == "" {
		os.Setenv("SQLITE_PATH", "med-care.db")
	}

	r := router.NewRouter(router.Options{Log: log})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
