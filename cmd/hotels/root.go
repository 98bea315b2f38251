package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_catalog/internal/adapters/observability"
	"hotel_catalog/internal/adapters/render"
	"hotel_catalog/internal/adapters/suppliers"
	"hotel_catalog/internal/app"
	"hotel_catalog/internal/domain"
	"hotel_catalog/internal/shared"
	mysqlrepo "hotel_catalog/internal/storage/mysql"
	"hotel_catalog/internal/storage/postgres"
)

var errNoSinks = errors.New("--export given but neither MYSQL_DSN nor POSTGRES_DSN is set")

func newRootCmd() *cobra.Command {
	var (
		configFile string
		export     bool
	)

	cmd := &cobra.Command{
		Use:   "hotels <hotel_ids|none> <destination_ids|none>",
		Short: "Merge hotel data from all suppliers and filter it",
		Long: `hotels fetches the Acme, Paperflies and Patagonia supplier feeds, merges them into
one catalog (the first supplier to publish a hotel id wins) and prints the hotels
matching the filters as a JSON array.

Both arguments are comma-separated lists; "none" means no filter on that dimension.`,
		Example: `  hotels iJhz,f8c9 none
  hotels none 5432
  hotels none none --export`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			hotelIDs := shared.ParseHotelIDs(args[0])
			destIDs, err := shared.ParseDestinationIDs(args[1])
			if err != nil {
				return err
			}

			cfg, err := shared.Load(configFile)
			if err != nil {
				return err
			}
			log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

			return run(cmd.Context(), cmd, cfg, hotelIDs, destIDs, export)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (keys are lower-case env names)")
	cmd.Flags().BoolVar(&export, "export", false, "write the merged catalog to the configured MySQL/PostgreSQL sinks")
	return cmd
}

// run writes to stdout only once everything that can fail has succeeded.
func run(ctx context.Context, cmd *cobra.Command, cfg shared.Config, hotelIDs []string, destIDs []int, export bool) error {
	fetcher := suppliers.NewHTTPFetcher(cfg.FetchTimeout, cfg.FetchRPS, cfg.FetchRetries)
	agg := app.NewAggregationService(suppliers.Default(cfg.Endpoints()), fetcher, cfg.FetchWorkers)

	if _, err := agg.FetchAndMerge(ctx); err != nil {
		return err
	}

	if export {
		sinks, closeAll, err := openSinks(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeAll()
		if err := agg.Export(ctx, sinks...); err != nil {
			return err
		}
	}

	return render.JSON(cmd.OutOrStdout(), agg.Find(hotelIDs, destIDs))
}

// openSinks connects and migrates every configured snapshot sink.
func openSinks(ctx context.Context, cfg shared.Config) ([]domain.CatalogSink, func(), error) {
	var (
		sinks   []domain.CatalogSink
		closers []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, closeAll, fmt.Errorf("mysql: open: %w", err)
		}
		closers = append(closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("mysql: ping: %w", err)
		}
		repo := mysqlrepo.New(db)
		if err := repo.Migrate(ctx); err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("mysql: migrate: %w", err)
		}
		sinks = append(sinks, repo)
	}

	if cfg.PostgresDSN != "" {
		w, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, w.Close)
		if err := w.Migrate(ctx); err != nil {
			closeAll()
			return nil, func() {}, err
		}
		sinks = append(sinks, w)
	}

	if len(sinks) == 0 {
		return nil, closeAll, errNoSinks
	}
	return sinks, closeAll, nil
}
