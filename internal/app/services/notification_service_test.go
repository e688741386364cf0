package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/pkg/apperrors"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	notifications *fakeNotificationStore
	service       NotificationService
	ctx           context.Context
}

func (s *NotificationServiceTestSuite) SetupTest() {
	s.notifications = newFakeNotificationStore()
	s.service = NewNotificationService(s.notifications, zerolog.Nop())
	s.ctx = context.Background()
}

func (s *NotificationServiceTestSuite) seed(userID int64, count int) []int64 {
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		n := &models.Notification{
			UserID:           userID,
			Title:            "New message",
			Content:          "You have a new message",
			NotificationType: models.NotificationTypeNewMessage,
		}
		id, err := s.notifications.Create(s.ctx, n)
		s.Require().NoError(err)
		ids = append(ids, id)
	}
	return ids
}

func (s *NotificationServiceTestSuite) TestListAndUnreadFilter() {
	ids := s.seed(1, 3)
	s.Require().NoError(s.service.MarkRead(s.ctx, ids[0], 1))

	all, pagination, err := s.service.List(s.ctx, 1, false, 1, 20)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal(int64(3), pagination.TotalItems)

	unread, _, err := s.service.List(s.ctx, 1, true, 1, 20)
	s.Require().NoError(err)
	s.Len(unread, 2)

	count, err := s.service.UnreadCount(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *NotificationServiceTestSuite) TestMarkReadOwnership() {
	ids := s.seed(1, 1)

	err := s.service.MarkRead(s.ctx, ids[0], 2)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	err = s.service.MarkRead(s.ctx, 9999, 1)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *NotificationServiceTestSuite) TestMarkAllReadIdempotent() {
	s.seed(1, 2)
	s.seed(2, 1)

	updated, err := s.service.MarkAllRead(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(int64(2), updated)

	updated, err = s.service.MarkAllRead(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(int64(0), updated)

	// The other user's notification is untouched
	count, err := s.service.UnreadCount(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *NotificationServiceTestSuite) TestDeleteOwnership() {
	ids := s.seed(1, 1)

	err := s.service.Delete(s.ctx, ids[0], 2)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	s.Require().NoError(s.service.Delete(s.ctx, ids[0], 1))

	err = s.service.Delete(s.ctx, ids[0], 1)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
