// Package pgload copies output tables into PostgreSQL. Each Copy call runs
// in its own transaction and tags its rows with a fresh ingest batch id.
package pgload

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"madata/loader"
	"madata/premium"
)

//go:embed schema.sql
var schema string

// Store is a connection pool to the output database.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// Batch describes one completed copy.
type Batch struct {
	ID      uuid.UUID
	Dataset string
	Rows    int64
}

// Connect opens a pool against connStr and verifies it with a ping.
func Connect(ctx context.Context, connStr string, log *zap.Logger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{pool: pool, log: log}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the output tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

var planColumns = []string{
	"batch_id", "contractid", "planid", "org_type", "plan_type", "partd", "snp", "eghp",
	"org_name", "org_marketing_name", "plan_name", "parent_org", "contract_date",
	"ssa", "fips", "state", "county", "enrollment", "month", "year",
}

// CopyPlans loads plan/enrollment rows into plan_months.
func (s *Store) CopyPlans(ctx context.Context, rows []loader.PlanMonth) (Batch, error) {
	return s.copyBatch(ctx, "plans", "plan_months", planColumns, len(rows), func(id pgtype.UUID, i int) []any {
		r := &rows[i]
		return []any{
			id, r.ContractID, r.PlanID, r.OrgType, r.PlanType, r.PartD, r.SNP, r.EGHP,
			r.OrgName, r.OrgMarketingName, r.PlanName, r.ParentOrg, r.ContractDate,
			r.SSA, r.FIPS, r.State, r.County, r.Enrollment, r.Month, r.Year,
		}
	})
}

var serviceAreaColumns = []string{
	"batch_id", "contractid", "org_name", "org_type", "plan_type", "partial", "eghp",
	"ssa", "fips", "county", "state", "notes", "month", "year",
}

// CopyServiceAreas loads service area rows into service_area_months.
func (s *Store) CopyServiceAreas(ctx context.Context, rows []loader.ServiceAreaMonth) (Batch, error) {
	return s.copyBatch(ctx, "service-area", "service_area_months", serviceAreaColumns, len(rows), func(id pgtype.UUID, i int) []any {
		r := &rows[i]
		return []any{
			id, r.ContractID, r.OrgName, r.OrgType, r.PlanType, r.Partial, r.EGHP,
			r.SSA, r.FIPS, r.County, r.State, r.Notes, r.Month, r.Year,
		}
	})
}

var penetrationColumns = []string{
	"batch_id", "state", "county", "fips_state", "fips_cnty", "fips", "ssa_state", "ssa_cnty",
	"ssa", "eligibles", "enrolled", "penetration", "month", "year",
}

// CopyPenetration loads penetration rows into penetration_months.
func (s *Store) CopyPenetration(ctx context.Context, rows []loader.PenetrationMonth) (Batch, error) {
	return s.copyBatch(ctx, "penetration", "penetration_months", penetrationColumns, len(rows), func(id pgtype.UUID, i int) []any {
		r := &rows[i]
		return []any{
			id, r.State, r.County, r.FIPSState, r.FIPSCounty, r.FIPS, r.SSAState, r.SSACounty,
			r.SSA, r.Eligibles, r.Enrolled, r.Penetration, r.Month, r.Year,
		}
	})
}

var premiumColumns = []string{
	"batch_id", "contractid", "planid", "state", "county", "premium", "premium_partc",
	"premium_partd_basic", "premium_partd_supp", "premium_partd_total", "partd_deductible", "year",
}

// CopyPremiums loads reconciled premium rows into plan_premiums.
func (s *Store) CopyPremiums(ctx context.Context, rows []premium.PlanPremium) (Batch, error) {
	return s.copyBatch(ctx, "premiums", "plan_premiums", premiumColumns, len(rows), func(id pgtype.UUID, i int) []any {
		r := &rows[i]
		return []any{
			id, r.ContractID, r.PlanID, r.State, r.County, r.Premium, r.PremiumPartC,
			r.PremiumPartDBasic, r.PremiumPartDSupp, r.PremiumPartDTotal, r.PartDDeductible, r.Year,
		}
	})
}

// copyBatch registers a batch and bulk-loads n rows via COPY in one
// transaction. Nil pointers in a row become NULL.
func (s *Store) copyBatch(ctx context.Context, dataset, table string, columns []string, n int,
	rowAt func(id pgtype.UUID, i int) []any) (Batch, error) {
	start := time.Now()
	batch := Batch{ID: uuid.New(), Dataset: dataset}
	id := pgtype.UUID{Bytes: batch.ID, Valid: true}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return batch, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO ingest_batches (batch_id, dataset) VALUES ($1, $2)`, id, dataset); err != nil {
		return batch, fmt.Errorf("insert batch: %w", err)
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns,
		pgx.CopyFromSlice(n, func(i int) ([]any, error) {
			return rowAt(id, i), nil
		}))
	if err != nil {
		return batch, fmt.Errorf("copy %s: %w", table, err)
	}
	batch.Rows = copied

	if _, err := tx.Exec(ctx,
		`UPDATE ingest_batches SET row_count = $2 WHERE batch_id = $1`, id, copied); err != nil {
		return batch, fmt.Errorf("update batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return batch, fmt.Errorf("commit: %w", err)
	}

	s.log.Info("copied batch",
		zap.String("dataset", dataset),
		zap.String("table", table),
		zap.String("batch_id", batch.ID.String()),
		zap.Int64("rows", copied),
		zap.Duration("elapsed", time.Since(start)),
	)
	return batch, nil
}
