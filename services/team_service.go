package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
	"github.com/Dosada05/basketball-league/storage"
)

type CreateTeamInput struct {
	Name    string `json:"name"`
	CoachID int    `json:"coach_id"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListMyTeams(ctx context.Context, coachID int) ([]models.Team, error)
	UpdateTeam(ctx context.Context, team *models.Team) error
	DeleteTeam(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	statsSvc StatsService
	uploader storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	statsSvc StatsService,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		statsSvc: statsSvc,
		uploader: uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	coach, err := s.userRepo.GetByID(ctx, input.CoachID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up coach: %w", err)
	}
	if !coach.IsCoach {
		return nil, fmt.Errorf("%w: user %d is not a coach", ErrValidationFailed, coach.ID)
	}

	team := &models.Team{Name: input.Name, CoachID: coach.ID}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, mapTeamRepoError(err)
	}

	summary := coach.Summary()
	team.Coach = &summary
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}
	if err := s.populateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.populateTeams(ctx, teams)
}

// ListMyTeams is coach-scoped: it only ever returns teams coached by the
// requesting user, so a foreign coach simply sees an empty list.
func (s *teamService) ListMyTeams(ctx context.Context, coachID int) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return s.populateTeams(ctx, teams)
}

func (s *teamService) UpdateTeam(ctx context.Context, team *models.Team) error {
	if team.Name == "" {
		return ErrTeamNameRequired
	}
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return mapTeamRepoError(err)
	}
	return nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return mapTeamRepoError(err)
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return mapTeamRepoError(err)
	}

	if team.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			// The row is gone; a stale object is not worth failing the call.
			return nil
		}
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, mapTeamRepoError(err)
	}

	team.LogoKey = &result.Key
	team.LogoURL = &result.Location
	return team, nil
}

func (s *teamService) populateTeams(ctx context.Context, teams []models.Team) ([]models.Team, error) {
	for i := range teams {
		if err := s.populateTeam(ctx, &teams[i]); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (s *teamService) populateTeam(ctx context.Context, team *models.Team) error {
	coach, err := s.userRepo.GetByID(ctx, team.CoachID)
	if err == nil {
		summary := coach.Summary()
		team.Coach = &summary
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to load coach for team %d: %w", team.ID, err)
	}

	if s.statsSvc != nil {
		team.AverageScore, err = s.statsSvc.TeamAverageScore(ctx, team.ID)
		if err != nil {
			return err
		}
	}

	if team.LogoKey != nil && s.uploader != nil {
		if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
			team.LogoURL = &url
		}
	}
	return nil
}

func mapTeamRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return fmt.Errorf("%w: team name is already in use", ErrValidationFailed)
	case errors.Is(err, repositories.ErrTeamInvalidCoach):
		return ErrUserNotFound
	}
	return err
}
