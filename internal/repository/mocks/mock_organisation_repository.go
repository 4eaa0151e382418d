package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nomia/internal/model"
	"nomia/internal/repository"
)

type MockOrganisationRepository struct {
	mock.Mock
}

func (m *MockOrganisationRepository) FindByTeamAndUser(ctx context.Context, teamID, userID int64) (*model.Organisation, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organisation), args.Error(1)
}

func (m *MockOrganisationRepository) CountDirectTemplates(ctx context.Context, organisationID string) (int, error) {
	args := m.Called(ctx, organisationID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrganisationRepository) FindTeams(ctx context.Context, userID int64, organisationID, query string, page repository.PageQuery) (*repository.PageResult[model.Team], error) {
	args := m.Called(ctx, userID, organisationID, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Team]), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindUserByToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
