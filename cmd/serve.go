package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/namekart/lead-gen-deep-research/internal/leadgen"
	"github.com/namekart/lead-gen-deep-research/pkg/dotdb"
)

var servePort int

// leadRunner is the engine surface the HTTP handlers need.
type leadRunner interface {
	Run(ctx context.Context, domainName string) (*leadgen.RunState, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lead generation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(cfg)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(e.engine, e.dotdb),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(runner leadRunner, db dotdb.Client) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/leadgen/run", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			DomainName string `json:"domain_name"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.DomainName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "domain_name is required"})
			return
		}

		state, err := runner.Run(req.Context(), body.DomainName)
		if err != nil {
			zap.L().Error("leadgen run failed",
				zap.String("domain", body.DomainName),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lead generation failed"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"run_id":      state.RunID,
			"domain_name": state.DomainName,
			"leads":       state.Leads,
			"notes":       state.Notes,
		})
	})

	r.Post("/dotdb/getleads", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Keywords []string `json:"keywords"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || len(body.Keywords) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "keywords are required"})
			return
		}

		matches, err := db.BulkLeads(req.Context(), body.Keywords)
		if err != nil {
			zap.L().Error("dotdb lookup failed", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "dotdb lookup failed"})
			return
		}
		writeJSON(w, http.StatusOK, matches)
	})

	r.Post("/dotdb/getleads/single", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Keyword string `json:"keyword"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Keyword == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "keyword is required"})
			return
		}

		matches, err := db.BulkLeads(req.Context(), []string{body.Keyword})
		if err != nil {
			zap.L().Error("dotdb lookup failed", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "dotdb lookup failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"keyword": body.Keyword,
			"domains": matches[body.Keyword],
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
