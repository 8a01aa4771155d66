package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/yakoovad/teamhub/internal/db"
	"github.com/yakoovad/teamhub/internal/model"
	"github.com/yakoovad/teamhub/internal/repository"
	"github.com/yakoovad/teamhub/pkg/logger"
	"go.uber.org/zap"
)

type TeamService struct {
	tx db.Transactor

	teams   repository.TeamRepository
	members repository.MemberRepository
}

func NewTeamService(tx db.Transactor) *TeamService {
	return &TeamService{
		tx: tx,
	}
}

func (t *TeamService) GetUserTeams(ctx context.Context, userID string) ([]*model.Team, *Error) {
	teamsRepo, err := t.teams.GetUserTeams(ctx, userID)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get teams")
	}

	teams := make([]*model.Team, 0, len(teamsRepo))
	for _, team := range teamsRepo {
		teams = append(teams, toModelTeam(team))
	}

	return teams, nil
}

// CreateTeam creates the team row and the creator's owner membership as one
// atomic group. A team must never exist without its owner membership.
func (t *TeamService) CreateTeam(ctx context.Context, callerID, name string, description *string) (string, *Error) {
	l := logger.FromContext(ctx)
	l.Info("creating team", zap.String("caller_id", callerID), zap.String("name", name))

	var teamID string

	err := t.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		id, err := t.teams.Create(txCtx, &repository.Team{
			Name:        name,
			Description: normalizeDescription(description),
			CreatedBy:   callerID,
		})
		if err != nil {
			l.Error("failed to create team", zap.String("name", name), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to create team")
		}

		if _, err = t.members.Create(txCtx, &repository.TeamMember{
			TeamID: id,
			UserID: callerID,
			Role:   model.RoleOwner,
		}); err != nil {
			l.Error("failed to create owner membership", zap.String("team_id", id), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to create team")
		}

		teamID = id
		return nil
	})
	if err != nil {
		return "", asServiceError(err, "failed to create team")
	}

	l.Debug("team created", zap.String("team_id", teamID))

	return teamID, nil
}

func (t *TeamService) UpdateTeam(ctx context.Context, teamID, callerID, name string, description *string) (string, *Error) {
	l := logger.FromContext(ctx)

	role, svcErr := t.resolveRole(ctx, teamID, callerID)
	if svcErr != nil {
		return "", svcErr
	}
	if !role.CanManageTeam() {
		l.Warn("caller not allowed to update team",
			zap.String("team_id", teamID),
			zap.String("caller_id", callerID),
			zap.String("role", string(role)))
		return "", NewError(ErrorCodeUnauthorized, "you do not have permission to update this team")
	}

	err := t.teams.Update(ctx, teamID, name, normalizeDescription(description))
	if errors.Is(err, repository.ErrNotFound) {
		return "", NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		l.Error("failed to update team", zap.String("team_id", teamID), zap.Error(err))
		return "", NewError(ErrorCodeUnspecified, "failed to update team")
	}

	return teamID, nil
}

// DeleteTeam is owner-only. Memberships and the team row go together in one
// transaction.
func (t *TeamService) DeleteTeam(ctx context.Context, teamID, callerID string) *Error {
	l := logger.FromContext(ctx)

	role, svcErr := t.resolveRole(ctx, teamID, callerID)
	if svcErr != nil {
		return svcErr
	}
	if role != model.RoleOwner {
		l.Warn("caller not allowed to delete team",
			zap.String("team_id", teamID),
			zap.String("caller_id", callerID),
			zap.String("role", string(role)))
		return NewError(ErrorCodeUnauthorized, "only the owner can delete a team")
	}

	err := t.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := t.members.DeleteByTeam(txCtx, teamID); err != nil {
			l.Error("failed to delete team members", zap.String("team_id", teamID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to delete team")
		}

		if err := t.teams.Delete(txCtx, teamID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewError(ErrorCodeNotFound, "team not found")
			}
			l.Error("failed to delete team", zap.String("team_id", teamID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to delete team")
		}

		return nil
	})
	if err != nil {
		return asServiceError(err, "failed to delete team")
	}

	l.Info("team deleted", zap.String("team_id", teamID))

	return nil
}

func (t *TeamService) resolveRole(ctx context.Context, teamID, callerID string) (model.Role, *Error) {
	role, err := t.members.GetRole(ctx, teamID, callerID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", NewError(ErrorCodeNotFound, "you are not a member of this team")
	}
	if err != nil {
		return "", NewError(ErrorCodeUnspecified, "failed to resolve role")
	}
	return role, nil
}

func (t *TeamService) WithTeamRepo(r repository.TeamRepository) *TeamService {
	t.teams = r
	return t
}

func (t *TeamService) WithMemberRepo(r repository.MemberRepository) *TeamService {
	t.members = r
	return t
}

func toModelTeam(team *repository.Team) *model.Team {
	return &model.Team{
		TeamID:      team.TeamID,
		Name:        team.Name,
		Description: team.Description,
		CreatedBy:   team.CreatedBy,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
}

// normalizeDescription maps blank and whitespace-only descriptions to nil so
// the store never holds an empty string.
func normalizeDescription(description *string) *string {
	if description == nil || strings.TrimSpace(*description) == "" {
		return nil
	}
	return description
}

// asServiceError unwraps the typed error a transaction callback returned, or
// degrades to UNSPECIFIED for faults raised by the transaction itself.
func asServiceError(err error, fallback string) *Error {
	svcErr := &Error{}
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return NewError(ErrorCodeUnspecified, fallback)
}
