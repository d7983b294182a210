// Package bootcheck runs the startup database diagnostic: a linear,
// sequential check of connectivity, pending migrations and table statistics.
// Its outcome is observational only; the server starts regardless of the
// result.
package bootcheck

import (
	"backoffice/pkg/domain"
	"backoffice/pkg/logger"
	"backoffice/pkg/storage"
	"context"
	"time"

	"go.uber.org/zap"
)

// State names a step of the diagnostic.
type State string

const (
	// StateConnecting is the initial connectivity probe.
	StateConnecting State = "connecting"
	// StateCheckingMigrations reads the applied and pending migration sets.
	StateCheckingMigrations State = "checking_migrations"
	// StateMigrating applies pending migrations synchronously.
	StateMigrating State = "migrating"
	// StateCheckingStats counts rows in the core tables.
	StateCheckingStats State = "checking_stats"
	// StateVerified is the successful terminal state.
	StateVerified State = "verified"
	// StateFailed is the failed terminal state; Err carries the cause.
	StateFailed State = "failed"
)

// Migrator exposes the migration operations the diagnostic needs.
type Migrator interface {
	// Status returns the names of applied and pending migrations.
	Status(ctx context.Context) (applied, pending []string, err error)
	// Apply runs all pending migrations.
	Apply(ctx context.Context) error
}

// Report is the two-level outcome of the diagnostic. The outer outcome is
// State/Err (Verified or Failed-with-cause); the inner stats outcome is
// embedded as an optional warning (StatsErr) that does not fail the check.
type Report struct {
	// State is the terminal state, StateVerified or StateFailed.
	State State
	// Err is the failure cause when State is StateFailed.
	Err error

	// Applied and Pending are the migration sets read from the database.
	Applied []string
	Pending []string
	// MigrationsApplied reports whether pending migrations were applied.
	MigrationsApplied bool

	// Stats is the row-count snapshot; nil when the stats query failed.
	Stats *domain.TableCounts
	// StatsErr carries the stats-query failure, if any. It never turns the
	// outer outcome into StateFailed.
	StatsErr error
	// ServerVersion is the numeric database server version, 0 when unknown.
	ServerVersion int
}

// Verified reports whether the diagnostic reached the successful terminal state.
func (r *Report) Verified() bool { return r.State == StateVerified }

// Options configures the diagnostic run.
type Options struct {
	// MinServerVersion is the lowest supported numeric server version; a lower
	// version only logs a warning. Zero disables the check.
	MinServerVersion int
	// Timeout bounds the whole diagnostic. Zero means no timeout.
	Timeout time.Duration
}

// Run executes the diagnostic once, sequentially, and returns its Report. It
// never returns an error and never panics on dependency failure: a broken
// database must not prevent the server from starting.
func Run(ctx context.Context,
	probe storage.StatsStorage,
	migrator Migrator,
	opts Options) *Report {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	report := &Report{State: StateConnecting}

	logger.Info(ctx, "checking database connectivity...")
	if err := probe.Ping(ctx); err != nil {
		report.State = StateFailed
		report.Err = err
		logger.Error(ctx, "database is unreachable, starting anyway", zap.Error(err))

		return report
	}

	report.State = StateCheckingMigrations
	applied, pending, err := migrator.Status(ctx)
	if err != nil {
		report.State = StateFailed
		report.Err = err
		logger.Error(ctx, "could not read migration status, starting anyway", zap.Error(err))

		return report
	}
	report.Applied = applied
	report.Pending = pending
	logger.Info(ctx, "migration status",
		zap.Int("applied", len(applied)),
		zap.Int("pending", len(pending)),
	)
	for _, name := range pending {
		logger.Info(ctx, "pending migration", zap.String("name", name))
	}

	if len(pending) > 0 {
		report.State = StateMigrating
		logger.Info(ctx, "applying pending migrations...", zap.Int("count", len(pending)))
		if err := migrator.Apply(ctx); err != nil {
			report.State = StateFailed
			report.Err = err
			logger.Error(ctx, "could not apply migrations, starting anyway", zap.Error(err))

			return report
		}
		report.MigrationsApplied = true
		logger.Info(ctx, "migrations applied")
	}

	report.State = StateCheckingStats
	if counts, err := probe.TableCounts(ctx); err != nil {
		// a stats failure (e.g. missing table) is a warning, not a boot failure
		report.StatsErr = err
		logger.Warn(ctx, "could not read table statistics", zap.Error(err))
	} else {
		report.Stats = &counts
		logger.Info(ctx, "table statistics",
			zap.Int64("users", counts.Users),
			zap.Int64("profiles", counts.Profiles),
			zap.Int64("products", counts.Products),
			zap.Int64("companies", counts.Companies),
		)
	}

	if v, err := probe.ServerVersion(ctx); err != nil {
		logger.Warn(ctx, "could not read server version", zap.Error(err))
	} else {
		report.ServerVersion = v
		if opts.MinServerVersion > 0 && v < opts.MinServerVersion {
			logger.Warn(ctx, "database server is older than the supported minimum",
				zap.Int("server_version", v),
				zap.Int("min_server_version", opts.MinServerVersion),
			)
		}
	}

	report.State = StateVerified
	logger.Info(ctx, "database check complete")

	return report
}
