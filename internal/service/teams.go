package service

import (
	"context"

	"nomia/internal/model"
	"nomia/internal/repository"
)

// Team listing pagination bounds.
const (
	DefaultTeamPageSize = 10
	MaxTeamPageSize     = 100
)

// TeamListOptions filter and page a team listing. Zero values fall back
// to the first page with the default size and no filters.
type TeamListOptions struct {
	OrganisationID string
	Query          string
	Page           int
	PerPage        int
}

// TeamListResult is one page of teams plus pagination metadata.
type TeamListResult struct {
	Data        []model.Team `json:"data"`
	Count       int          `json:"count"`
	CurrentPage int          `json:"currentPage"`
	PerPage     int          `json:"perPage"`
	TotalPages  int          `json:"totalPages"`
}

// TeamService lists the teams a user can see through organisation
// membership.
type TeamService interface {
	List(ctx context.Context, userID int64, opts TeamListOptions) (*TeamListResult, error)
}

type teamService struct {
	orgs repository.OrganisationRepository
}

// NewTeamService constructs a TeamService backed by the organisation
// repository.
func NewTeamService(orgs repository.OrganisationRepository) TeamService {
	return &teamService{orgs: orgs}
}

// List normalizes the pagination options and delegates to the
// repository. Visibility is enforced there: only teams of organisations
// the user belongs to come back.
func (s *teamService) List(ctx context.Context, userID int64, opts TeamListOptions) (*TeamListResult, error) {
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultTeamPageSize
	}
	if perPage > MaxTeamPageSize {
		perPage = MaxTeamPageSize
	}

	res, err := s.orgs.FindTeams(ctx, userID, opts.OrganisationID, opts.Query, repository.PageQuery{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, err
	}

	return &TeamListResult{
		Data:        res.Items,
		Count:       res.Total,
		CurrentPage: page,
		PerPage:     perPage,
		TotalPages:  (res.Total + perPage - 1) / perPage,
	}, nil
}
