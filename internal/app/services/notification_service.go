package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/app/repositories"
	"github.com/synqit/synqit/internal/pkg/apperrors"
	"github.com/synqit/synqit/internal/pkg/helpers"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	List(ctx context.Context, userID int64, unreadOnly bool, page, size int) ([]*models.Notification, *dto.PaginationInfo, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, notificationID, userID int64) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo repositories.NotificationStore
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationStore, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// List retrieves the caller's notifications, newest first
func (s *notificationServiceImpl) List(ctx context.Context, userID int64, unreadOnly bool, page, size int) ([]*models.Notification, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list notifications")
		return nil, nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, limit)
	return notifications, &pagination, nil
}

// UnreadCount counts the caller's unread notifications
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one of the caller's notifications as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, userID int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return apperrors.NewForbiddenError("Notification belongs to another user")
	}

	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks all of the caller's notifications as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	updated, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to mark notifications read")
		return 0, err
	}
	return updated, nil
}

// Delete removes one of the caller's notifications
func (s *notificationServiceImpl) Delete(ctx context.Context, notificationID, userID int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return apperrors.NewForbiddenError("Notification belongs to another user")
	}

	return s.notificationRepo.Delete(ctx, notificationID)
}
