package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"madata/loader"
	"madata/parser"
	"madata/pgload"
	"madata/premium"
	"madata/writer"
)

// monthlyFlags are shared by the subcommands that iterate over months.
type monthlyFlags struct {
	year   int
	months []string
}

func (f *monthlyFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.year, "year", 0, "snapshot year (required)")
	cmd.Flags().StringSliceVar(&f.months, "months", allMonths(), "months to load, as they appear in file names")
	_ = cmd.MarkFlagRequired("year")
}

func (a *app) enrollmentCmd() *cobra.Command {
	var f monthlyFlags
	cmd := &cobra.Command{
		Use:   "enrollment",
		Short: "Join contract info with county enrollment for each month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, start := cmd.Context(), time.Now()
			rows, err := loadMonths(ctx, a.log, a.cfg.Workers, f.months, func(month string) ([]loader.PlanMonth, error) {
				snap, err := loader.NewSnapshot(month, f.year)
				if err != nil {
					return nil, err
				}
				return loader.LoadPlans(
					contractInfo.Path(a.cfg.Root, f.year, month),
					enrollmentInfo.Path(a.cfg.Root, f.year, month),
					snap)
			})
			if err != nil {
				return err
			}
			return emit(ctx, a, "plans", f.year, start, rows, (*pgload.Store).CopyPlans)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) serviceAreaCmd() *cobra.Command {
	var f monthlyFlags
	cmd := &cobra.Command{
		Use:   "service-area",
		Short: "Load the county service area extracts for each month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, start := cmd.Context(), time.Now()
			rows, err := loadMonths(ctx, a.log, a.cfg.Workers, f.months, func(month string) ([]loader.ServiceAreaMonth, error) {
				snap, err := loader.NewSnapshot(month, f.year)
				if err != nil {
					return nil, err
				}
				return loader.LoadServiceArea(serviceArea.Path(a.cfg.Root, f.year, month), snap)
			})
			if err != nil {
				return err
			}
			return emit(ctx, a, "service_area", f.year, start, rows, (*pgload.Store).CopyServiceAreas)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) penetrationCmd() *cobra.Command {
	var f monthlyFlags
	cmd := &cobra.Command{
		Use:   "penetration",
		Short: "Load the state/county penetration extracts for each month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, start := cmd.Context(), time.Now()
			rows, err := loadMonths(ctx, a.log, a.cfg.Workers, f.months, func(month string) ([]loader.PenetrationMonth, error) {
				snap, err := loader.NewSnapshot(month, f.year)
				if err != nil {
					return nil, err
				}
				return loader.LoadPenetration(penetration.Path(a.cfg.Root, f.year, month), snap)
			})
			if err != nil {
				return err
			}
			return emit(ctx, a, "penetration", f.year, start, rows, (*pgload.Store).CopyPenetration)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) premiumsCmd() *cobra.Command {
	var (
		year         int
		partCPath    string
		partDPath    string
		partCColumns parser.PartCColumns
		partDColumns parser.PartDColumns
	)
	cmd := &cobra.Command{
		Use:   "premiums",
		Short: "Reconcile the MA-only and MA-PD premium landscape tables for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, start := cmd.Context(), time.Now()
			partC, err := parser.ReadPartC(partCPath, partCColumns)
			if err != nil {
				return fmt.Errorf("read MA-only table: %w", err)
			}
			partD, err := parser.ReadPartD(partDPath, partDColumns)
			if err != nil {
				return fmt.Errorf("read MA-PD table: %w", err)
			}

			rows, stats := premium.Reconcile(partC, partD, year)
			a.log.Info("reconciled premiums",
				zap.Int("year", year),
				zap.Int("rows", len(rows)),
				zap.Int("partc_rows", stats.PartCRows),
				zap.Int("partd_rows", stats.PartDRows),
				zap.Int("partc_filled", stats.PartCFilled),
				zap.Int("partd_filled", stats.PartDFilled),
				zap.Int("partc_dropped", stats.PartCDropped),
				zap.Int("partd_dropped", stats.PartDDropped),
				zap.Int("matched", stats.Matched),
				zap.Int("partc_only", stats.PartCOnly),
				zap.Int("partd_only", stats.PartDOnly),
			)
			a.metrics.observeReconcile(year, stats)
			return emit(ctx, a, "premiums", year, start, rows, (*pgload.Store).CopyPremiums)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&year, "year", 0, "landscape year (required)")
	flags.StringVar(&partCPath, "partc", "", "MA-only premium table, .csv or .xlsx (required)")
	flags.StringVar(&partDPath, "partd", "", "MA-PD premium table, .csv or .xlsx (required)")
	flags.StringVar(&partCColumns.Premium, "partc-premium-col", "", "header of the MA-only premium column")
	flags.StringVar(&partDColumns.PremiumPartC, "partd-partc-col", "", "header of the MA-PD Part C premium column")
	flags.StringVar(&partDColumns.PremiumPartDBasic, "partd-basic-col", "", "header of the Part D basic premium column")
	flags.StringVar(&partDColumns.PremiumPartDSupp, "partd-supp-col", "", "header of the Part D supplemental premium column")
	flags.StringVar(&partDColumns.PremiumPartDTotal, "partd-total-col", "", "header of the Part D total premium column")
	flags.StringVar(&partDColumns.PartDDeductible, "partd-deductible-col", "", "header of the Part D deductible column")
	for _, name := range []string{"year", "partc", "partd"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// emit writes rows to {out}/{dataset}_{year}.parquet, copies them into the
// configured database if any, and records the run metrics.
func emit[T any](ctx context.Context, a *app, dataset string, year int, start time.Time, rows []T,
	copyRows func(*pgload.Store, context.Context, []T) (pgload.Batch, error)) error {
	if err := os.MkdirAll(a.cfg.Out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(a.cfg.Out, fmt.Sprintf("%s_%d.parquet", dataset, year))
	if err := writer.WriteFile(path, rows); err != nil {
		return err
	}
	a.log.Info("wrote parquet",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if a.cfg.PG != "" {
		store, err := pgload.Connect(ctx, a.cfg.PG, a.log)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		if _, err := copyRows(store, ctx, rows); err != nil {
			return err
		}
	}

	a.metrics.observeRun(dataset, year, len(rows), time.Since(start))
	return nil
}
