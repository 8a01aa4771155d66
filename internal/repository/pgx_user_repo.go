package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/yakoovad/teamhub/internal/db"
)

type User struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	Name           string     `db:"name"`
	Image          *string    `db:"image"`
	HashedPassword string     `db:"hashed_password"`
	EmailVerified  *time.Time `db:"email_verified"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) (string, error)
	Get(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgxUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgxUserRepository{pool: pool}
}

func (p *pgxUserRepository) Create(ctx context.Context, user *User) (string, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	id := uuid.NewString()

	q := psql.Insert(
		im.Into("users", "id", "email", "name", "image", "hashed_password"),
		im.Values(psql.Arg(id), psql.Arg(user.Email), psql.Arg(user.Name), psql.Arg(user.Image), psql.Arg(user.HashedPassword)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return "", err
	}

	_, err = e.Exec(ctx, sql, args...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return "", ErrAlreadyExists
	}
	if err != nil {
		return "", err
	}

	return id, nil
}

func (p *pgxUserRepository) Get(ctx context.Context, userID string) (*User, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "email", "name", "image", "hashed_password", "email_verified"),
		sm.From("users"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(userID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	return p.scanUser(e.QueryRow(ctx, sql, args...))
}

func (p *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "email", "name", "image", "hashed_password", "email_verified"),
		sm.From("users"),
		sm.Where(psql.Quote("email").EQ(psql.Arg(email))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	return p.scanUser(e.QueryRow(ctx, sql, args...))
}

func (p *pgxUserRepository) scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Image,
		&u.HashedPassword,
		&u.EmailVerified,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
