// Package main - entry point for the sistemaartn HTTP server
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/hbitsol/sistemaartn/api"
	"github.com/hbitsol/sistemaartn/core/rules"
	"github.com/hbitsol/sistemaartn/db"
	"github.com/hbitsol/sistemaartn/internal/config"
	"github.com/hbitsol/sistemaartn/internal/logging"
)

const version = "1.0.0"

func main() {
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		logging.Fatal("loading config", zap.Error(err))
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("initializing logging", zap.Error(err))
	}
	defer logging.Sync()

	dbConn, err := db.New(cfg.Database.Path)
	if err != nil {
		logging.Fatal("opening database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	repo := db.NewRepository(dbConn)
	defer repo.Close()

	if cfg.Database.Seed {
		if err := repo.Seed(context.Background()); err != nil {
			logging.Fatal("seeding reference data", zap.Error(err))
		}
	}

	// A missing rule table keeps the CRM endpoints alive; pricing
	// endpoints answer RULE_TABLE_UNAVAILABLE until it is fixed.
	rt, err := rules.Load(cfg.Pricing.RulesPath)
	if err != nil {
		logging.Warn("pricing rule table unavailable",
			zap.String("path", cfg.Pricing.RulesPath), zap.Error(err))
		rt = nil
	}

	server := api.NewServer(version, repo, rt)

	logging.Info("server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("version", version),
	)
	if err := http.ListenAndServe(cfg.Server.Addr, server); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
