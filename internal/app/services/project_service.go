package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/app/repositories"
	"github.com/synqit/synqit/internal/pkg/apperrors"
	"github.com/synqit/synqit/internal/pkg/helpers"
)

// ProjectService defines the interface for project operations
type ProjectService interface {
	Browse(ctx context.Context, filter *dto.ProjectFilter) ([]*models.Project, *dto.PaginationInfo, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	GetMine(ctx context.Context, userID int64) (*models.Project, error)
	Save(ctx context.Context, userID int64, req *dto.SaveProjectRequest) (*models.Project, error)
	DeleteMine(ctx context.Context, userID int64) error
}

// projectServiceImpl implements ProjectService
type projectServiceImpl struct {
	projectRepo repositories.ProjectStore
	userRepo    repositories.UserStore
	logger      zerolog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repositories.ProjectStore,
	userRepo repositories.UserStore,
	logger zerolog.Logger,
) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Browse retrieves the public project listing with owner summaries and chain
// preferences attached.
func (s *projectServiceImpl) Browse(ctx context.Context, filter *dto.ProjectFilter) ([]*models.Project, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)

	projects, total, err := s.projectRepo.List(ctx, filter.Query, filter.Blockchain, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list projects")
		return nil, nil, err
	}

	ownerIDs := make([]int64, 0, len(projects))
	projectIDs := make([]int64, 0, len(projects))
	for _, p := range projects {
		ownerIDs = append(ownerIDs, p.OwnerID)
		projectIDs = append(projectIDs, p.ID)
	}

	owners, err := s.userRepo.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, nil, err
	}
	chains, err := s.projectRepo.BlockchainsByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, nil, err
	}

	for _, p := range projects {
		if owner, ok := owners[p.OwnerID]; ok {
			p.Owner = owner.PublicProfile()
		}
		p.Blockchains = chains[p.ID]
	}

	pagination := helpers.NewPaginationInfo(total, filter.Page, limit)
	return projects, &pagination, nil
}

// GetByID retrieves a single project with its owner summary
func (s *projectServiceImpl) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, project.OwnerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("projectID", id).Msg("Failed to load project owner")
		return nil, err
	}
	project.Owner = owner.PublicProfile()

	return project, nil
}

// GetMine retrieves the caller's own project
func (s *projectServiceImpl) GetMine(ctx context.Context, userID int64) (*models.Project, error) {
	return s.projectRepo.GetByOwnerID(ctx, userID)
}

// Save upserts the caller's project: creates it on first save, updates it
// afterwards. Chain preferences are replaced wholesale.
func (s *projectServiceImpl) Save(ctx context.Context, userID int64, req *dto.SaveProjectRequest) (*models.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("Project name cannot be empty")
	}

	prefs, err := normalizeBlockchains(req.Blockchains)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByOwnerID(ctx, userID)
	switch {
	case err == nil:
		project.Name = req.Name
		project.Description = req.Description
		project.Website = req.Website
		project.Twitter = req.Twitter
		project.Discord = req.Discord
		project.Tags = req.Tags
		if err := s.projectRepo.Update(ctx, project); err != nil {
			s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update project")
			return nil, err
		}
	case errors.Is(err, apperrors.ErrResourceNotFound):
		project = &models.Project{
			OwnerID:     userID,
			Name:        req.Name,
			Description: req.Description,
			Website:     req.Website,
			Twitter:     req.Twitter,
			Discord:     req.Discord,
			Tags:        req.Tags,
		}
		if _, err := s.projectRepo.Create(ctx, project); err != nil {
			s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create project")
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.projectRepo.ReplaceBlockchains(ctx, project.ID, prefs); err != nil {
		s.logger.Error().Err(err).Int64("projectID", project.ID).Msg("Failed to replace chain preferences")
		return nil, err
	}

	return s.projectRepo.GetByOwnerID(ctx, userID)
}

// DeleteMine removes the caller's project
func (s *projectServiceImpl) DeleteMine(ctx context.Context, userID int64) error {
	return s.projectRepo.DeleteByOwnerID(ctx, userID)
}

// normalizeBlockchains deduplicates the chain list and demotes every primary
// flag after the first so at most one preference stays primary. A list with
// no primary gets its first entry promoted.
func normalizeBlockchains(input []dto.BlockchainPreference) ([]models.ProjectBlockchain, error) {
	seen := make(map[models.Blockchain]bool, len(input))
	prefs := make([]models.ProjectBlockchain, 0, len(input))
	primarySeen := false

	for _, in := range input {
		chain := models.Blockchain(in.Blockchain)
		if seen[chain] {
			return nil, apperrors.NewValidationError("Duplicate blockchain preference: " + in.Blockchain)
		}
		seen[chain] = true

		isPrimary := in.IsPrimary && !primarySeen
		if isPrimary {
			primarySeen = true
		}
		prefs = append(prefs, models.ProjectBlockchain{
			Blockchain: chain,
			IsPrimary:  isPrimary,
		})
	}

	if len(prefs) > 0 && !primarySeen {
		prefs[0].IsPrimary = true
	}

	return prefs, nil
}
