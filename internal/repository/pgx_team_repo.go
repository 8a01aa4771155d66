package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/yakoovad/teamhub/internal/db"
)

type Team struct {
	TeamID      string     `db:"team_id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	CreatedBy   string     `db:"created_by"`
	CreatedAt   *time.Time `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

type TeamRepository interface {
	Create(ctx context.Context, team *Team) (string, error)
	Get(ctx context.Context, teamID string) (*Team, error)
	GetUserTeams(ctx context.Context, userID string) ([]*Team, error)
	Update(ctx context.Context, teamID, name string, description *string) error
	Delete(ctx context.Context, teamID string) error
}

type pgxTeamRepository struct {
	pool *pgxpool.Pool
}

func NewPgxTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &pgxTeamRepository{pool: pool}
}

func (p *pgxTeamRepository) Create(ctx context.Context, team *Team) (string, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	id := uuid.NewString()

	q := psql.Insert(
		im.Into("team", "team_id", "name", "description", "created_by"),
		im.Values(psql.Arg(id), psql.Arg(team.Name), psql.Arg(team.Description), psql.Arg(team.CreatedBy)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return "", err
	}

	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return "", err
	}

	return id, nil
}

func (p *pgxTeamRepository) Get(ctx context.Context, teamID string) (*Team, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("team_id", "name", "description", "created_by", "created_at", "updated_at"),
		sm.From("team"),
		sm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	team := &Team{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&team.TeamID,
		&team.Name,
		&team.Description,
		&team.CreatedBy,
		&team.CreatedAt,
		&team.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return team, nil
}

func (p *pgxTeamRepository) GetUserTeams(ctx context.Context, userID string) ([]*Team, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("team.team_id", "team.name", "team.description", "team.created_by", "team.created_at", "team.updated_at"),
		sm.From("team"),
		sm.InnerJoin("team_member").On(psql.Quote("team_member", "team_id").EQ(psql.Quote("team", "team_id"))),
		sm.Where(psql.Quote("team_member", "user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("team", "created_at")),
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

	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Team, error) {
		team := &Team{}
		if err = row.Scan(&team.TeamID, &team.Name, &team.Description, &team.CreatedBy, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		return team, nil
	})
	if err != nil {
		return nil, err
	}

	return teams, nil
}

func (p *pgxTeamRepository) Update(ctx context.Context, teamID, name string, description *string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("team"),
		um.SetCol("name").ToArg(name),
		um.SetCol("description").ToArg(description),
		um.SetCol("updated_at").ToArg(time.Now()),
		um.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
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

func (p *pgxTeamRepository) Delete(ctx context.Context, teamID string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Delete(
		dm.From("team"),
		dm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
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
