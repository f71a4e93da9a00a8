package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/booking-atlas/pkg/config"
	"github.com/de-tools/booking-atlas/pkg/server"
	"github.com/de-tools/booking-atlas/pkg/services/auth"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
	"github.com/de-tools/booking-atlas/pkg/services/report"
	"github.com/de-tools/booking-atlas/pkg/services/search"
	"github.com/de-tools/booking-atlas/pkg/services/selection"
	"github.com/de-tools/booking-atlas/pkg/store/bookingdb"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the booking statistics API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a yaml config file (BOOKING_* env vars apply either way)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateWeb(); err != nil {
		return err
	}

	db, err := bookingdb.NewDB(ctx, bookingdb.Settings{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		QueryTimeout: cfg.Database.QueryTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	bookings, err := bookingdb.NewBookingStore(db)
	if err != nil {
		return err
	}
	properties, err := bookingdb.NewPropertyStore(db)
	if err != nil {
		return err
	}
	accounts, err := bookingdb.NewAccountStore(db)
	if err != nil {
		return err
	}

	lookup := refdata.Defaults()
	if cfg.Reference.WorkbookPath != "" {
		lookup, err = refdata.NewLoader(cfg.Reference.WorkbookPath).Load()
		if err != nil {
			return fmt.Errorf("load reference workbook: %w", err)
		}
		logger.Info().Str("path", cfg.Reference.WorkbookPath).Msg("reference workbook loaded")
	}

	timeout := bookingdb.Settings{QueryTimeout: cfg.Database.QueryTimeout}.Timeout()
	reports := report.NewService(
		report.NewFetcher(bookings, lookup, timeout),
		report.NewCalculator(bookings, timeout),
		lookup,
	)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports:    reports,
			Search:     search.NewService(properties, timeout),
			Selections: selection.NewRegistry(),
			Auth: auth.NewService(accounts, auth.Settings{
				JWTSecret:      cfg.Auth.JWTSecret,
				TokenTTL:       cfg.Auth.TokenTTL,
				AllowPlaintext: cfg.Auth.AllowPlaintext,
			}),
			Lookup: lookup,
		},
	})

	return api.Start()
}
