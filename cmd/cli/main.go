package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/de-tools/booking-atlas/pkg/config"
	"github.com/de-tools/booking-atlas/pkg/runtime/terminal"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
	"github.com/de-tools/booking-atlas/pkg/services/report"
	"github.com/de-tools/booking-atlas/pkg/services/search"
	"github.com/de-tools/booking-atlas/pkg/store/bookingdb"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.Load(os.Getenv("BOOKING_CONFIG"))
	if err != nil {
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

	lookup := refdata.Defaults()
	if cfg.Reference.WorkbookPath != "" {
		lookup, err = refdata.NewLoader(cfg.Reference.WorkbookPath).Load()
		if err != nil {
			return fmt.Errorf("load reference workbook: %w", err)
		}
	}

	timeout := bookingdb.Settings{QueryTimeout: cfg.Database.QueryTimeout}.Timeout()
	cli := terminal.NewCLI(terminal.Options{
		Reports: report.NewService(
			report.NewFetcher(bookings, lookup, timeout),
			report.NewCalculator(bookings, timeout),
			lookup,
		),
		Search: search.NewService(properties, timeout),
		Lookup: lookup,
		Output: os.Stdout,
	})

	return cli.Execute(ctx)
}
