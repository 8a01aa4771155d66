package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yakoovad/teamhub/internal/model"
	"github.com/yakoovad/teamhub/internal/repository"
)

func TestTeamService_CreateTeam(t *testing.T) {
	desc := "the engineering team"
	blank := "   "

	tests := []struct {
		name          string
		callerID      string
		teamName      string
		description   *string
		setupMocks    func(*MockTeamRepository, *MockMemberRepository)
		expectedError bool
		errorCode     ErrorCode
		expectedID    string
	}{
		{
			name:        "success: team and owner membership created together",
			callerID:    "user1",
			teamName:    "Eng",
			description: &desc,
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				tr.On("Create", mock.Anything, mock.MatchedBy(func(team *repository.Team) bool {
					return team.Name == "Eng" && team.CreatedBy == "user1" && team.Description != nil
				})).Return("team1", nil)

				mr.On("Create", mock.Anything, mock.MatchedBy(func(m *repository.TeamMember) bool {
					return m.TeamID == "team1" && m.UserID == "user1" && m.Role == model.RoleOwner
				})).Return("member1", nil)
			},
			expectedError: false,
			expectedID:    "team1",
		},
		{
			name:        "success: blank description stored as null",
			callerID:    "user1",
			teamName:    "Eng",
			description: &blank,
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				tr.On("Create", mock.Anything, mock.MatchedBy(func(team *repository.Team) bool {
					return team.Description == nil
				})).Return("team1", nil)

				mr.On("Create", mock.Anything, mock.Anything).Return("member1", nil)
			},
			expectedError: false,
			expectedID:    "team1",
		},
		{
			name:     "failure: team insert fails",
			callerID: "user1",
			teamName: "Eng",
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				tr.On("Create", mock.Anything, mock.Anything).Return("", errors.New("db error"))
			},
			expectedError: true,
			errorCode:     ErrorCodeUnspecified,
		},
		{
			name:     "failure: owner membership insert fails, team must not survive",
			callerID: "user1",
			teamName: "Eng",
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				tr.On("Create", mock.Anything, mock.Anything).Return("team1", nil)
				mr.On("Create", mock.Anything, mock.Anything).Return("", errors.New("db error"))
			},
			expectedError: true,
			errorCode:     ErrorCodeUnspecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTx := new(MockTransactor)
			mockTeamRepo := new(MockTeamRepository)
			mockMemberRepo := new(MockMemberRepository)

			tt.setupMocks(mockTeamRepo, mockMemberRepo)

			service := NewTeamService(mockTx).
				WithTeamRepo(mockTeamRepo).
				WithMemberRepo(mockMemberRepo)

			teamID, err := service.CreateTeam(context.Background(), tt.callerID, tt.teamName, tt.description)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
				assert.Empty(t, teamID)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, tt.expectedID, teamID)
			}

			mockTeamRepo.AssertExpectations(t)
			mockMemberRepo.AssertExpectations(t)
		})
	}
}

func TestTeamService_UpdateTeam(t *testing.T) {
	empty := ""

	tests := []struct {
		name          string
		callerRole    model.Role
		roleErr       error
		setupMocks    func(*MockTeamRepository, *MockMemberRepository)
		expectedError bool
		errorCode     ErrorCode
	}{
		{
			name:       "success: owner updates team",
			callerRole: model.RoleOwner,
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				tr.On("Update", mock.Anything, "team1", "Alpha", (*string)(nil)).Return(nil)
			},
			expectedError: false,
		},
		{
			name:       "success: admin updates team",
			callerRole: model.RoleAdmin,
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				tr.On("Update", mock.Anything, "team1", "Alpha", (*string)(nil)).Return(nil)
			},
			expectedError: false,
		},
		{
			name:          "failure: normal member is not allowed",
			callerRole:    model.RoleNormal,
			setupMocks:    func(tr *MockTeamRepository, mr *MockMemberRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeUnauthorized,
		},
		{
			name:          "failure: caller is not a member",
			roleErr:       repository.ErrNotFound,
			setupMocks:    func(tr *MockTeamRepository, mr *MockMemberRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeNotFound,
		},
		{
			name:       "failure: team no longer exists",
			callerRole: model.RoleOwner,
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				tr.On("Update", mock.Anything, "team1", "Alpha", (*string)(nil)).Return(repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTx := new(MockTransactor)
			mockTeamRepo := new(MockTeamRepository)
			mockMemberRepo := new(MockMemberRepository)

			mockMemberRepo.On("GetRole", mock.Anything, "team1", "user1").Return(tt.callerRole, tt.roleErr)
			tt.setupMocks(mockTeamRepo, mockMemberRepo)

			service := NewTeamService(mockTx).
				WithTeamRepo(mockTeamRepo).
				WithMemberRepo(mockMemberRepo)

			// Empty description must be normalized to null, never stored.
			teamID, err := service.UpdateTeam(context.Background(), "team1", "user1", "Alpha", &empty)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, "team1", teamID)
			}

			mockTeamRepo.AssertExpectations(t)
			mockMemberRepo.AssertExpectations(t)
		})
	}
}

func TestTeamService_DeleteTeam(t *testing.T) {
	tests := []struct {
		name          string
		callerRole    model.Role
		roleErr       error
		setupMocks    func(*MockTeamRepository, *MockMemberRepository)
		expectedError bool
		errorCode     ErrorCode
	}{
		{
			name:       "success: owner deletes team with all memberships",
			callerRole: model.RoleOwner,
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				mr.On("DeleteByTeam", mock.Anything, "team1").Return(nil)
				tr.On("Delete", mock.Anything, "team1").Return(nil)
			},
			expectedError: false,
		},
		{
			name:          "failure: admin cannot delete team",
			callerRole:    model.RoleAdmin,
			setupMocks:    func(tr *MockTeamRepository, mr *MockMemberRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeUnauthorized,
		},
		{
			name:          "failure: normal member cannot delete team",
			callerRole:    model.RoleNormal,
			setupMocks:    func(tr *MockTeamRepository, mr *MockMemberRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeUnauthorized,
		},
		{
			name:       "failure: team already gone",
			callerRole: model.RoleOwner,
			setupMocks: func(tr *MockTeamRepository, mr *MockMemberRepository) {
				mr.On("DeleteByTeam", mock.Anything, "team1").Return(nil)
				tr.On("Delete", mock.Anything, "team1").Return(repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTx := new(MockTransactor)
			mockTeamRepo := new(MockTeamRepository)
			mockMemberRepo := new(MockMemberRepository)

			mockMemberRepo.On("GetRole", mock.Anything, "team1", "user1").Return(tt.callerRole, tt.roleErr)
			tt.setupMocks(mockTeamRepo, mockMemberRepo)

			service := NewTeamService(mockTx).
				WithTeamRepo(mockTeamRepo).
				WithMemberRepo(mockMemberRepo)

			err := service.DeleteTeam(context.Background(), "team1", "user1")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
			} else {
				assert.Nil(t, err)
			}

			mockTeamRepo.AssertExpectations(t)
			mockMemberRepo.AssertExpectations(t)
		})
	}
}

func TestTeamService_GetUserTeams(t *testing.T) {
	mockTx := new(MockTransactor)
	mockTeamRepo := new(MockTeamRepository)

	mockTeamRepo.On("GetUserTeams", mock.Anything, "user1").Return([]*repository.Team{
		{TeamID: "team1", Name: "Eng", CreatedBy: "user1"},
		{TeamID: "team2", Name: "Design", CreatedBy: "user2"},
	}, nil)

	service := NewTeamService(mockTx).WithTeamRepo(mockTeamRepo)

	teams, err := service.GetUserTeams(context.Background(), "user1")

	assert.Nil(t, err)
	assert.Len(t, teams, 2)
	assert.Equal(t, "Eng", teams[0].Name)
	assert.Equal(t, "team2", teams[1].TeamID)

	mockTeamRepo.AssertExpectations(t)
}
