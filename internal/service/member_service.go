package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/teamhub/internal/db"
	"github.com/yakoovad/teamhub/internal/model"
	"github.com/yakoovad/teamhub/internal/repository"
	"github.com/yakoovad/teamhub/pkg/logger"
	"go.uber.org/zap"
)

type MemberService struct {
	tx db.Transactor

	users   repository.UserRepository
	teams   repository.TeamRepository
	members repository.MemberRepository
}

func NewMemberService(tx db.Transactor) *MemberService {
	return &MemberService{
		tx: tx,
	}
}

// GetUserRole is the single source of truth for authorization. It is
// re-read before every privileged mutation, never cached.
func (m *MemberService) GetUserRole(ctx context.Context, teamID, callerID string) (model.Role, *Error) {
	role, err := m.members.GetRole(ctx, teamID, callerID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", NewError(ErrorCodeNotFound, "you are not a member of this team")
	}
	if err != nil {
		return "", NewError(ErrorCodeUnspecified, "failed to resolve role")
	}
	return role, nil
}

// GetTeamMembers returns the member list joined with user profiles.
// Membership itself gates visibility: a non-member cannot enumerate members.
func (m *MemberService) GetTeamMembers(ctx context.Context, teamID, callerID string) ([]*model.TeamMember, *Error) {
	if _, err := m.members.GetRole(ctx, teamID, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewError(ErrorCodeUnauthorized, "you do not have access to this team")
		}
		return nil, NewError(ErrorCodeUnspecified, "failed to get team members")
	}

	membersRepo, err := m.members.ListWithUsers(ctx, teamID)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get team members")
	}

	members := make([]*model.TeamMember, 0, len(membersRepo))
	for _, member := range membersRepo {
		members = append(members, &model.TeamMember{
			TeamMemberID: member.TeamMemberID,
			UserID:       member.UserID,
			Name:         member.Name,
			Email:        member.Email,
			Image:        member.Image,
			Role:         member.Role,
		})
	}

	return members, nil
}

func (m *MemberService) AddTeamMember(ctx context.Context, teamID, callerID, email string) (string, *Error) {
	l := logger.FromContext(ctx)

	role, svcErr := m.GetUserRole(ctx, teamID, callerID)
	if svcErr != nil {
		return "", svcErr
	}
	if !role.CanManageTeam() {
		return "", NewError(ErrorCodeUnauthorized, "you do not have permission to add members")
	}

	target, err := m.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", NewError(ErrorCodeNotFound, "no registered user with this email")
	}
	if err != nil {
		return "", NewError(ErrorCodeUnspecified, "failed to add team member")
	}

	memberID, err := m.members.Create(ctx, &repository.TeamMember{
		TeamID: teamID,
		UserID: target.ID,
		Role:   model.RoleNormal,
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		return "", NewError(ErrorCodeConflict, "member is already in team")
	}
	if errors.Is(err, repository.ErrNotFound) {
		return "", NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		l.Error("failed to add team member",
			zap.String("team_id", teamID),
			zap.String("user_id", target.ID),
			zap.Error(err))
		return "", NewError(ErrorCodeUnspecified, "failed to add team member")
	}

	l.Info("team member added",
		zap.String("team_id", teamID),
		zap.String("team_member_id", memberID),
		zap.String("user_id", target.ID))

	return memberID, nil
}

// UpdateRole changes a membership between admin and normal. Owner is
// reachable only through team creation and an owner membership cannot be
// altered through this path.
func (m *MemberService) UpdateRole(ctx context.Context, teamID, teamMemberID, callerID string, newRole model.Role) *Error {
	l := logger.FromContext(ctx)

	role, svcErr := m.GetUserRole(ctx, teamID, callerID)
	if svcErr != nil {
		return svcErr
	}
	if !role.CanManageTeam() {
		return NewError(ErrorCodeUnauthorized, "you do not have permission to change roles")
	}

	if !newRole.Valid() {
		return NewError(ErrorCodeInvalidBody, "unknown role")
	}
	if newRole == model.RoleOwner {
		return NewError(ErrorCodeInvalidBody, "owner role is granted only at team creation")
	}

	target, err := m.members.Get(ctx, teamMemberID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "team member not found")
	}
	if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to update role")
	}
	if target.TeamID != teamID {
		return NewError(ErrorCodeNotFound, "team member not found")
	}
	if target.Role == model.RoleOwner {
		return NewError(ErrorCodeUnauthorized, "the owner's role cannot be changed")
	}

	if err = m.members.UpdateRole(ctx, teamMemberID, newRole); err != nil {
		l.Error("failed to update role",
			zap.String("team_member_id", teamMemberID),
			zap.String("role", string(newRole)),
			zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to update role")
	}

	l.Info("role updated",
		zap.String("team_id", teamID),
		zap.String("team_member_id", teamMemberID),
		zap.String("role", string(newRole)))

	return nil
}

// RemoveTeamMember removes a membership. The owner membership can only
// disappear through DeleteTeam.
func (m *MemberService) RemoveTeamMember(ctx context.Context, teamID, teamMemberID, callerID string) *Error {
	l := logger.FromContext(ctx)

	role, svcErr := m.GetUserRole(ctx, teamID, callerID)
	if svcErr != nil {
		return svcErr
	}
	if !role.CanManageTeam() {
		return NewError(ErrorCodeUnauthorized, "you do not have permission to remove members")
	}

	target, err := m.members.Get(ctx, teamMemberID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "team member not found")
	}
	if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to remove team member")
	}
	if target.TeamID != teamID {
		return NewError(ErrorCodeNotFound, "team member not found")
	}
	if target.Role == model.RoleOwner {
		return NewError(ErrorCodeUnauthorized, "the owner cannot be removed from the team")
	}

	if err = m.members.Delete(ctx, teamMemberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewError(ErrorCodeNotFound, "team member not found")
		}
		l.Error("failed to remove team member",
			zap.String("team_member_id", teamMemberID),
			zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to remove team member")
	}

	l.Info("team member removed",
		zap.String("team_id", teamID),
		zap.String("team_member_id", teamMemberID))

	return nil
}

// LeaveTeam deletes the caller's own membership. When the last member
// leaves, the team goes with them. The membership delete, the fresh count
// and the conditional team delete run inside one transaction so a
// concurrent AddTeamMember cannot interleave between them.
func (m *MemberService) LeaveTeam(ctx context.Context, teamMemberID, callerID string) *Error {
	l := logger.FromContext(ctx)

	err := m.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		member, err := m.members.Get(txCtx, teamMemberID)
		if errors.Is(err, repository.ErrNotFound) {
			return NewError(ErrorCodeNotFound, "team member not found")
		}
		if err != nil {
			return NewError(ErrorCodeUnspecified, "failed to leave team")
		}
		if member.UserID != callerID {
			return NewError(ErrorCodeUnauthorized, "you can only leave on your own behalf")
		}

		if err = m.members.Delete(txCtx, teamMemberID); err != nil {
			l.Error("failed to delete membership", zap.String("team_member_id", teamMemberID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to leave team")
		}

		remaining, err := m.members.CountByTeam(txCtx, member.TeamID)
		if err != nil {
			l.Error("failed to count remaining members", zap.String("team_id", member.TeamID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to leave team")
		}

		if remaining == 0 {
			l.Info("last member left, deleting team", zap.String("team_id", member.TeamID))
			if err = m.teams.Delete(txCtx, member.TeamID); err != nil {
				l.Error("failed to delete empty team", zap.String("team_id", member.TeamID), zap.Error(err))
				return NewError(ErrorCodeUnspecified, "failed to leave team")
			}
		}

		return nil
	})
	if err != nil {
		return asServiceError(err, "failed to leave team")
	}

	return nil
}

func (m *MemberService) WithUserRepo(r repository.UserRepository) *MemberService {
	m.users = r
	return m
}

func (m *MemberService) WithTeamRepo(r repository.TeamRepository) *MemberService {
	m.teams = r
	return m
}

func (m *MemberService) WithMemberRepo(r repository.MemberRepository) *MemberService {
	m.members = r
	return m
}
