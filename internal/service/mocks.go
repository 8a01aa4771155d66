package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yakoovad/teamhub/internal/model"
	"github.com/yakoovad/teamhub/internal/repository"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *repository.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, userID string) (*repository.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *repository.Team) (string, error) {
	args := m.Called(ctx, team)
	return args.String(0), args.Error(1)
}

func (m *MockTeamRepository) Get(ctx context.Context, teamID string) (*repository.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Team), args.Error(1)
}

func (m *MockTeamRepository) GetUserTeams(ctx context.Context, userID string) ([]*repository.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Team), args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, teamID, name string, description *string) error {
	args := m.Called(ctx, teamID, name, description)
	return args.Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *repository.TeamMember) (string, error) {
	args := m.Called(ctx, member)
	return args.String(0), args.Error(1)
}

func (m *MockMemberRepository) Get(ctx context.Context, teamMemberID string) (*repository.TeamMember, error) {
	args := m.Called(ctx, teamMemberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TeamMember), args.Error(1)
}

func (m *MockMemberRepository) GetRole(ctx context.Context, teamID, userID string) (model.Role, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Get(0).(model.Role), args.Error(1)
}

func (m *MockMemberRepository) ListWithUsers(ctx context.Context, teamID string) ([]*repository.MemberWithUser, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.MemberWithUser), args.Error(1)
}

func (m *MockMemberRepository) UpdateRole(ctx context.Context, teamMemberID string, role model.Role) error {
	args := m.Called(ctx, teamMemberID, role)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, teamMemberID string) error {
	args := m.Called(ctx, teamMemberID)
	return args.Error(0)
}

func (m *MockMemberRepository) DeleteByTeam(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockMemberRepository) CountByTeam(ctx context.Context, teamID string) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}
