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

type PartnershipServiceTestSuite struct {
	suite.Suite
	users         *fakeUserStore
	projects      *fakeProjectStore
	partnerships  *fakePartnershipStore
	notifications *fakeNotificationStore
	service       PartnershipService
	ctx           context.Context

	requester int64
	receiver  int64
}

func (s *PartnershipServiceTestSuite) SetupTest() {
	s.users = newFakeUserStore()
	s.projects = newFakeProjectStore()
	s.partnerships = newFakePartnershipStore()
	s.notifications = newFakeNotificationStore()
	s.service = NewPartnershipService(s.partnerships, s.users, s.projects, s.notifications, fakeTransactor{}, zerolog.Nop())
	s.ctx = context.Background()

	s.requester = s.createUserWithProject("requester@synqit.com", "Reqmark")
	s.receiver = s.createUserWithProject("receiver@synqit.com", "Recware")
}

func (s *PartnershipServiceTestSuite) createUserWithProject(email, projectName string) int64 {
	user := &models.User{Email: email, FirstName: "Test", LastName: "User", UserType: models.UserTypeStartup, IsActive: true}
	id, err := s.users.Create(s.ctx, user)
	s.Require().NoError(err)
	_, err = s.projects.Create(s.ctx, &models.Project{OwnerID: id, Name: projectName, Description: "d"})
	s.Require().NoError(err)
	return id
}

func (s *PartnershipServiceTestSuite) createUserWithoutProject(email string) int64 {
	user := &models.User{Email: email, FirstName: "No", LastName: "Project", UserType: models.UserTypeIndividual, IsActive: true}
	id, err := s.users.Create(s.ctx, user)
	s.Require().NoError(err)
	return id
}

func (s *PartnershipServiceTestSuite) propose() *models.Partnership {
	p, err := s.service.Create(s.ctx, s.requester, &dto.CreatePartnershipRequest{
		ReceiverID:      s.receiver,
		PartnershipType: "INTEGRATION",
		Title:           "Bridge integration",
		Description:     "Integrate our bridges",
	})
	s.Require().NoError(err)
	return p
}

func (s *PartnershipServiceTestSuite) TestCreateStartsPending() {
	p := s.propose()

	s.Equal(models.PartnershipStatusPending, p.Status)
	s.Nil(p.RespondedAt)
	s.Equal(s.requester, p.RequesterID)
	s.Equal(s.receiver, p.ReceiverID)
	s.NotZero(p.RequesterProjectID)
	s.NotZero(p.ReceiverProjectID)

	// Receiver got a request notification
	count, err := s.notifications.UnreadCount(s.ctx, s.receiver)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PartnershipServiceTestSuite) TestCreateRejectsSelf() {
	_, err := s.service.Create(s.ctx, s.requester, &dto.CreatePartnershipRequest{
		ReceiverID:      s.requester,
		PartnershipType: "TECHNICAL",
		Title:           "t",
		Description:     "d",
	})
	s.ErrorIs(err, apperrors.ErrValidationFailed)
}

func (s *PartnershipServiceTestSuite) TestCreateUnknownReceiver() {
	_, err := s.service.Create(s.ctx, s.requester, &dto.CreatePartnershipRequest{
		ReceiverID:      9999,
		PartnershipType: "TECHNICAL",
		Title:           "t",
		Description:     "d",
	})
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *PartnershipServiceTestSuite) TestCreateRequiresProjects() {
	noProject := s.createUserWithoutProject("bare@synqit.com")

	_, err := s.service.Create(s.ctx, noProject, &dto.CreatePartnershipRequest{
		ReceiverID:      s.receiver,
		PartnershipType: "TECHNICAL",
		Title:           "t",
		Description:     "d",
	})
	s.ErrorIs(err, apperrors.ErrValidationFailed)

	_, err = s.service.Create(s.ctx, s.requester, &dto.CreatePartnershipRequest{
		ReceiverID:      noProject,
		PartnershipType: "TECHNICAL",
		Title:           "t",
		Description:     "d",
	})
	s.ErrorIs(err, apperrors.ErrValidationFailed)
}

func (s *PartnershipServiceTestSuite) TestRespondAccept() {
	p := s.propose()

	updated, err := s.service.Respond(s.ctx, p.ID, s.receiver, &dto.RespondPartnershipRequest{Decision: "ACCEPT"})
	s.Require().NoError(err)
	s.Equal(models.PartnershipStatusAccepted, updated.Status)
	s.NotNil(updated.RespondedAt)

	// Requester got the acceptance notification
	notifications, _, err := s.notifications.ListByUser(s.ctx, s.requester, false, 0, 10)
	s.Require().NoError(err)
	s.Require().Len(notifications, 1)
	s.Equal(models.NotificationTypePartnershipAccepted, notifications[0].NotificationType)
}

func (s *PartnershipServiceTestSuite) TestRespondReject() {
	p := s.propose()

	updated, err := s.service.Respond(s.ctx, p.ID, s.receiver, &dto.RespondPartnershipRequest{Decision: "REJECT"})
	s.Require().NoError(err)
	s.Equal(models.PartnershipStatusRejected, updated.Status)
}

func (s *PartnershipServiceTestSuite) TestRespondOnlyReceiver() {
	p := s.propose()

	_, err := s.service.Respond(s.ctx, p.ID, s.requester, &dto.RespondPartnershipRequest{Decision: "ACCEPT"})
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	stored, err := s.partnerships.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(models.PartnershipStatusPending, stored.Status)
}

func (s *PartnershipServiceTestSuite) TestRespondTwiceConflicts() {
	p := s.propose()

	_, err := s.service.Respond(s.ctx, p.ID, s.receiver, &dto.RespondPartnershipRequest{Decision: "ACCEPT"})
	s.Require().NoError(err)

	_, err = s.service.Respond(s.ctx, p.ID, s.receiver, &dto.RespondPartnershipRequest{Decision: "REJECT"})
	s.ErrorIs(err, apperrors.ErrConflict)

	// The first decision sticks
	stored, err := s.partnerships.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(models.PartnershipStatusAccepted, stored.Status)
}

func (s *PartnershipServiceTestSuite) TestGetByIDParticipantOnly() {
	p := s.propose()
	outsider := s.createUserWithProject("outsider@synqit.com", "Outcorp")

	_, err := s.service.GetByID(s.ctx, p.ID, outsider)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	_, err = s.service.GetByID(s.ctx, 9999, outsider)
	s.ErrorIs(err, apperrors.ErrPartnershipNotFound)

	got, err := s.service.GetByID(s.ctx, p.ID, s.receiver)
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
	s.NotNil(got.Requester)
	s.NotNil(got.RequesterProject)
}

func (s *PartnershipServiceTestSuite) TestListRoles() {
	s.propose()

	sent, err := s.service.List(s.ctx, s.requester, "sent")
	s.Require().NoError(err)
	s.Len(sent, 1)

	received, err := s.service.List(s.ctx, s.requester, "received")
	s.Require().NoError(err)
	s.Empty(received)

	all, err := s.service.List(s.ctx, s.receiver, "all")
	s.Require().NoError(err)
	s.Len(all, 1)

	_, err = s.service.List(s.ctx, s.requester, "bogus")
	s.ErrorIs(err, apperrors.ErrValidationFailed)
}

func (s *PartnershipServiceTestSuite) TestStats() {
	p1 := s.propose()
	_, err := s.service.Respond(s.ctx, p1.ID, s.receiver, &dto.RespondPartnershipRequest{Decision: "ACCEPT"})
	s.Require().NoError(err)

	third := s.createUserWithProject("third@synqit.com", "Thirdware")
	_, err = s.service.Create(s.ctx, s.requester, &dto.CreatePartnershipRequest{
		ReceiverID:      third,
		PartnershipType: "MARKETING",
		Title:           "Co-marketing",
		Description:     "d",
	})
	s.Require().NoError(err)

	stats, err := s.service.Stats(s.ctx, s.requester)
	s.Require().NoError(err)
	s.Equal(2, stats.Total)
	s.Equal(1, stats.Pending)
	s.Equal(1, stats.Accepted)
	s.Equal(0, stats.Rejected)
}

func TestPartnershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartnershipServiceTestSuite))
}
