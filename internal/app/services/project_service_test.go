package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/pkg/apperrors"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	users    *fakeUserStore
	projects *fakeProjectStore
	service  ProjectService
	ctx      context.Context

	owner int64
}

func (s *ProjectServiceTestSuite) SetupTest() {
	s.users = newFakeUserStore()
	s.projects = newFakeProjectStore()
	s.service = NewProjectService(s.projects, s.users, zerolog.Nop())
	s.ctx = context.Background()

	id, err := s.users.Create(s.ctx, &models.User{
		Email: "owner@synqit.com", FirstName: "Own", LastName: "Er",
		UserType: models.UserTypeStartup, IsActive: true,
	})
	s.Require().NoError(err)
	s.owner = id
}

func (s *ProjectServiceTestSuite) TestSaveCreatesThenUpdates() {
	project, err := s.service.Save(s.ctx, s.owner, &dto.SaveProjectRequest{
		Name:        "ChainBridge",
		Description: "Cross-chain bridge",
		Tags:        []string{"defi"},
	})
	s.Require().NoError(err)
	s.Equal("ChainBridge", project.Name)
	firstID := project.ID

	project, err = s.service.Save(s.ctx, s.owner, &dto.SaveProjectRequest{
		Name:        "ChainBridge v2",
		Description: "Cross-chain bridge, now faster",
	})
	s.Require().NoError(err)
	s.Equal(firstID, project.ID)
	s.Equal("ChainBridge v2", project.Name)
}

func (s *ProjectServiceTestSuite) TestSaveNormalizesPrimaryChain() {
	project, err := s.service.Save(s.ctx, s.owner, &dto.SaveProjectRequest{
		Name:        "ChainBridge",
		Description: "d",
		Blockchains: []dto.BlockchainPreference{
			{Blockchain: "ETHEREUM", IsPrimary: true},
			{Blockchain: "SOLANA", IsPrimary: true},
			{Blockchain: "BASE"},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(project.Blockchains, 3)

	primaries := 0
	for _, pref := range project.Blockchains {
		if pref.IsPrimary {
			primaries++
			s.Equal(models.BlockchainEthereum, pref.Blockchain)
		}
	}
	s.Equal(1, primaries)
}

func (s *ProjectServiceTestSuite) TestSavePromotesFirstChainWhenNoPrimary() {
	project, err := s.service.Save(s.ctx, s.owner, &dto.SaveProjectRequest{
		Name:        "ChainBridge",
		Description: "d",
		Blockchains: []dto.BlockchainPreference{
			{Blockchain: "POLYGON"},
			{Blockchain: "BASE"},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(project.Blockchains, 2)
	s.True(project.Blockchains[0].IsPrimary)
	s.False(project.Blockchains[1].IsPrimary)
}

func (s *ProjectServiceTestSuite) TestSaveRejectsDuplicateChains() {
	_, err := s.service.Save(s.ctx, s.owner, &dto.SaveProjectRequest{
		Name:        "ChainBridge",
		Description: "d",
		Blockchains: []dto.BlockchainPreference{
			{Blockchain: "ETHEREUM"},
			{Blockchain: "ETHEREUM", IsPrimary: true},
		},
	})
	s.ErrorIs(err, apperrors.ErrValidationFailed)
}

func (s *ProjectServiceTestSuite) TestGetMineWithoutProject() {
	_, err := s.service.GetMine(s.ctx, s.owner)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *ProjectServiceTestSuite) TestBrowseAttachesOwners() {
	_, err := s.service.Save(s.ctx, s.owner, &dto.SaveProjectRequest{
		Name:        "ChainBridge",
		Description: "Cross-chain bridge",
		Blockchains: []dto.BlockchainPreference{{Blockchain: "ETHEREUM", IsPrimary: true}},
	})
	s.Require().NoError(err)

	projects, pagination, err := s.service.Browse(s.ctx, &dto.ProjectFilter{Page: 1, Size: 20})
	s.Require().NoError(err)
	s.Require().Len(projects, 1)
	s.Equal(int64(1), pagination.TotalItems)
	s.Require().NotNil(projects[0].Owner)
	s.Equal(s.owner, projects[0].Owner.ID)
	s.Len(projects[0].Blockchains, 1)
}

func (s *ProjectServiceTestSuite) TestDeleteMine() {
	_, err := s.service.Save(s.ctx, s.owner, &dto.SaveProjectRequest{Name: "ChainBridge", Description: "d"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteMine(s.ctx, s.owner))

	err = s.service.DeleteMine(s.ctx, s.owner)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
