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
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/yakoovad/teamhub/internal/db"
	"github.com/yakoovad/teamhub/internal/model"
)

type TeamMember struct {
	TeamMemberID string     `db:"team_member_id"`
	TeamID       string     `db:"team_id"`
	UserID       string     `db:"user_id"`
	Role         model.Role `db:"role"`
}

// MemberWithUser is a membership row joined with the user profile, the
// shape the member listing returns.
type MemberWithUser struct {
	TeamMemberID string     `db:"team_member_id"`
	UserID       string     `db:"user_id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Image        *string    `db:"image"`
	Role         model.Role `db:"role"`
}

type MemberRepository interface {
	Create(ctx context.Context, member *TeamMember) (string, error)
	Get(ctx context.Context, teamMemberID string) (*TeamMember, error)
	GetRole(ctx context.Context, teamID, userID string) (model.Role, error)
	ListWithUsers(ctx context.Context, teamID string) ([]*MemberWithUser, error)
	UpdateRole(ctx context.Context, teamMemberID string, role model.Role) error
	Delete(ctx context.Context, teamMemberID string) error
	DeleteByTeam(ctx context.Context, teamID string) error
	CountByTeam(ctx context.Context, teamID string) (int64, error)
}

type pgxMemberRepository struct {
	pool *pgxpool.Pool
}

func NewPgxMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &pgxMemberRepository{pool: pool}
}

func (p *pgxMemberRepository) Create(ctx context.Context, member *TeamMember) (string, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	id := uuid.NewString()

	q := psql.Insert(
		im.Into("team_member", "team_member_id", "team_id", "user_id", "role"),
		im.Values(psql.Arg(id), psql.Arg(member.TeamID), psql.Arg(member.UserID), psql.Arg(member.Role)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return "", err
	}

	_, err = e.Exec(ctx, sql, args...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505: the (team_id, user_id) pair already exists.
		// 23503: the referenced team or user is gone.
		switch pgErr.Code {
		case "23505":
			return "", ErrAlreadyExists
		case "23503":
			return "", ErrNotFound
		}
	}
	if err != nil {
		return "", err
	}

	return id, nil
}

func (p *pgxMemberRepository) Get(ctx context.Context, teamMemberID string) (*TeamMember, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("team_member_id", "team_id", "user_id", "role"),
		sm.From("team_member"),
		sm.Where(psql.Quote("team_member_id").EQ(psql.Arg(teamMemberID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	m := &TeamMember{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&m.TeamMemberID,
		&m.TeamID,
		&m.UserID,
		&m.Role,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (p *pgxMemberRepository) GetRole(ctx context.Context, teamID, userID string) (model.Role, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("role"),
		sm.From("team_member"),
		sm.Where(
			psql.Quote("team_id").EQ(psql.Arg(teamID)).
				And(psql.Quote("user_id").EQ(psql.Arg(userID))),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return "", err
	}

	var role model.Role
	if err = e.QueryRow(ctx, sql, args...).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return role, nil
}

func (p *pgxMemberRepository) ListWithUsers(ctx context.Context, teamID string) ([]*MemberWithUser, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("team_member.team_member_id", "users.id", "users.name", "users.email", "users.image", "team_member.role"),
		sm.From("team_member"),
		sm.InnerJoin("users").On(psql.Quote("team_member", "user_id").EQ(psql.Quote("users", "id"))),
		sm.Where(psql.Quote("team_member", "team_id").EQ(psql.Arg(teamID))),
		sm.OrderBy(psql.Quote("team_member", "created_at")),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*MemberWithUser, error) {
		m := &MemberWithUser{}
		if err = row.Scan(&m.TeamMemberID, &m.UserID, &m.Name, &m.Email, &m.Image, &m.Role); err != nil {
			return nil, err
		}
		return m, nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (p *pgxMemberRepository) UpdateRole(ctx context.Context, teamMemberID string, role model.Role) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("team_member"),
		um.SetCol("role").ToArg(role),
		um.SetCol("updated_at").ToArg(time.Now()),
		um.Where(psql.Quote("team_member_id").EQ(psql.Arg(teamMemberID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	commandTag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *pgxMemberRepository) Delete(ctx context.Context, teamMemberID string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Delete(
		dm.From("team_member"),
		dm.Where(psql.Quote("team_member_id").EQ(psql.Arg(teamMemberID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	commandTag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *pgxMemberRepository) DeleteByTeam(ctx context.Context, teamID string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Delete(
		dm.From("team_member"),
		dm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return err
	}

	return nil
}

func (p *pgxMemberRepository) CountByTeam(ctx context.Context, teamID string) (int64, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From("team_member"),
		sm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err = e.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
