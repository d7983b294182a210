package postgres

import (
	"backoffice/pkg/domain"
	"backoffice/pkg/storage"
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const usersTable = "users"

// GetUserByEmail returns the active user with the given email, or nil when no
// such user exists.
func (p *PgSQL) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(
			goqu.I("email").Eq(email),
			goqu.I("active").IsTrue(),
		).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not get user by email from pg: %w", err)
	}
	if !found {
		return nil, nil //nolint: nilnil
	}

	return row.ToDomain(), nil
}

// CountUsers returns the total number of active users.
func (p *PgSQL) CountUsers(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(usersTable).
		Where(goqu.I("active").IsTrue()).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count users in pg: %w", err)
	}

	return count, nil
}

// ListUsers returns a page of users ordered by created_at DESC, id DESC. A
// zero cursor starts from the newest user; the returned cursor is zero when
// there is no further page. The cursor is a composite (created_at, id) keyset:
// created_at alone would skip rows sharing the boundary timestamp.
func (p *PgSQL) ListUsers(ctx context.Context,
	cursor storage.UserCursor,
	limit uint) ([]domain.User, storage.UserCursor, error) {
	w := []goqu.Expression{
		goqu.I("active").IsTrue(),
	}
	if !cursor.IsZero() {
		w = append(w, goqu.Or(
			goqu.I("created_at").Lt(cursor.CreatedAt),
			goqu.And(
				goqu.I("created_at").Eq(cursor.CreatedAt),
				goqu.I("id").Lt(uuid.UUID(cursor.ID)),
			),
		))
	}

	// fetch one extra row to determine if there is a next page
	fetch := limit + 1
	var rows []PgUser
	if err := p.Builder.From(usersTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch).
		ScanStructsContext(ctx, &rows); err != nil {
		return nil, storage.UserCursor{}, fmt.Errorf("could not list users from pg: %w", err)
	}

	var next storage.UserCursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = storage.UserCursor{CreatedAt: last.CreatedAt, ID: domain.UserID(last.ID)}
	}

	out := make([]domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, next, nil
}
