// Package cmd - serve command
package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbitsol/sistemaartn/api"
	"github.com/hbitsol/sistemaartn/core/rules"
	"github.com/hbitsol/sistemaartn/db"
	"github.com/hbitsol/sistemaartn/internal/config"
	"github.com/hbitsol/sistemaartn/internal/logging"
)

var serveAddr string

// serveCmd starts the HTTP API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	dbConn, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	repo := db.NewRepository(dbConn)
	defer repo.Close()

	if cfg.Database.Seed {
		if err := repo.Seed(context.Background()); err != nil {
			return fmt.Errorf("seeding reference data: %w", err)
		}
	}

	rt, err := rules.Load(cfg.Pricing.RulesPath)
	if err != nil {
		logging.Warn("pricing rule table unavailable",
			zap.String("path", cfg.Pricing.RulesPath), zap.Error(err))
		rt = nil
	}

	server := api.NewServer("1.0.0", repo, rt)

	logging.Info("server listening", zap.String("addr", cfg.Server.Addr))
	return http.ListenAndServe(cfg.Server.Addr, server)
}
