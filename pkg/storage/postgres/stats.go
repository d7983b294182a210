package postgres

import (
	"backoffice/pkg/domain"
	"context"
	"fmt"
	"strconv"
)

const (
	profilesTable  = "profiles"
	productsTable  = "products"
	companiesTable = "companies"
)

// Ping verifies database connectivity. It uses the pgx pool when available and
// falls back to a trivial query inside transactions.
func (p *PgSQL) Ping(ctx context.Context) error {
	if p.Pool != nil {
		if err := p.Pool.Ping(ctx); err != nil {
			return fmt.Errorf("could not ping pg: %w", err)
		}

		return nil
	}

	var one int
	if err := p.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("could not ping pg: %w", err)
	}

	return nil
}

// TableCounts counts the rows of the four core tables. Each count is awaited
// before the next begins; there is no fan-out.
func (p *PgSQL) TableCounts(ctx context.Context) (domain.TableCounts, error) {
	var counts domain.TableCounts
	for _, c := range []struct {
		table string
		dst   *int64
	}{
		{usersTable, &counts.Users},
		{profilesTable, &counts.Profiles},
		{productsTable, &counts.Products},
		{companiesTable, &counts.Companies},
	} {
		n, err := p.countRows(ctx, c.table)
		if err != nil {
			return domain.TableCounts{}, err
		}
		*c.dst = n
	}

	return counts, nil
}

func (p *PgSQL) countRows(ctx context.Context, table string) (int64, error) {
	n, err := p.Builder.From(table).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count rows of %s in pg: %w", table, err)
	}

	return n, nil
}

// ServerVersion returns the numeric PostgreSQL server version (e.g. 170002).
func (p *PgSQL) ServerVersion(ctx context.Context) (int, error) {
	var raw string
	if err := p.DB.QueryRowContext(ctx, "SHOW server_version_num").Scan(&raw); err != nil {
		return 0, fmt.Errorf("could not read pg server version: %w", err)
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("could not parse pg server version %q: %w", raw, err)
	}

	return v, nil
}
