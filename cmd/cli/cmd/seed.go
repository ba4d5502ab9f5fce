// Package cmd - seed command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbitsol/sistemaartn/db"
	"github.com/hbitsol/sistemaartn/internal/config"
)

// seedCmd loads reference data into the database. It is idempotent; rows
// that already exist are left alone.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		dbConn, err := db.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		repo := db.NewRepository(dbConn)
		defer repo.Close()

		if err := repo.Seed(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Reference data seeded into %s.\n", cfg.Database.Path)
		return nil
	},
}
