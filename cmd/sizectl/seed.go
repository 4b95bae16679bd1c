package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fitable-backend/internal/catalog"
	"fitable-backend/internal/shared/config"
	"fitable-backend/internal/shared/storage/db"
)

func newSeedCmd() *cobra.Command {
	var file string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert brand size charts into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := loadSeeds(file)
			if err != nil {
				return err
			}
			if dryRun {
				rows := 0
				for _, s := range seeds {
					rows += len(s.Rows)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "valid: %d brands, %d rows\n", len(seeds), rows)
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			if err := db.RunMigrations(ctx, sqlDB); err != nil {
				return err
			}
			report, err := catalog.NewService(&catalog.PGRepo{DB: sqlDB}).Seed(ctx, seeds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded: %d brands, %d rows\n", report.Brands, report.Rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seeds file or glob such as charts/**/*.yaml (defaults to the bundled catalog)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the seeds without touching the database")
	return cmd
}
