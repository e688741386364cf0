package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/app/repositories"
	"github.com/synqit/synqit/internal/db"
	"github.com/synqit/synqit/internal/pkg/apperrors"
)

// PartnershipService defines the interface for partnership operations
type PartnershipService interface {
	Create(ctx context.Context, requesterID int64, req *dto.CreatePartnershipRequest) (*models.Partnership, error)
	Respond(ctx context.Context, partnershipID, responderID int64, req *dto.RespondPartnershipRequest) (*models.Partnership, error)
	List(ctx context.Context, userID int64, role string) ([]*models.Partnership, error)
	GetByID(ctx context.Context, partnershipID, viewerID int64) (*models.Partnership, error)
	Stats(ctx context.Context, userID int64) (*dto.PartnershipStats, error)
}

// partnershipServiceImpl implements PartnershipService
type partnershipServiceImpl struct {
	partnershipRepo  repositories.PartnershipStore
	userRepo         repositories.UserStore
	projectRepo      repositories.ProjectStore
	notificationRepo repositories.NotificationStore
	transactor       db.Transactor
	logger           zerolog.Logger
}

// NewPartnershipService creates a new PartnershipService
func NewPartnershipService(
	partnershipRepo repositories.PartnershipStore,
	userRepo repositories.UserStore,
	projectRepo repositories.ProjectStore,
	notificationRepo repositories.NotificationStore,
	transactor db.Transactor,
	logger zerolog.Logger,
) PartnershipService {
	return &partnershipServiceImpl{
		partnershipRepo:  partnershipRepo,
		userRepo:         userRepo,
		projectRepo:      projectRepo,
		notificationRepo: notificationRepo,
		transactor:       transactor,
		logger:           logger,
	}
}

// Create proposes a partnership to another user. Both sides must have a
// project; the two project ids are frozen into the partnership row.
func (s *partnershipServiceImpl) Create(ctx context.Context, requesterID int64, req *dto.CreatePartnershipRequest) (*models.Partnership, error) {
	s.logger.Debug().
		Int64("requesterID", requesterID).
		Int64("receiverID", req.ReceiverID).
		Msg("Creating partnership request")

	if req.ReceiverID == requesterID {
		return nil, apperrors.NewValidationError("Cannot create a partnership with yourself")
	}

	receiver, err := s.userRepo.FindByID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Receiver not found")
		}
		return nil, err
	}

	requesterProject, err := s.projectRepo.GetByOwnerID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewValidationError("You need a project before proposing a partnership")
		}
		return nil, err
	}

	receiverProject, err := s.projectRepo.GetByOwnerID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewValidationError("Receiver has no project to partner with")
		}
		return nil, err
	}

	partnership := &models.Partnership{
		RequesterID:        requesterID,
		ReceiverID:         req.ReceiverID,
		RequesterProjectID: requesterProject.ID,
		ReceiverProjectID:  receiverProject.ID,
		PartnershipType:    models.PartnershipType(req.PartnershipType),
		Title:              req.Title,
		Description:        req.Description,
		ProposedTerms:      req.ProposedTerms,
	}

	if _, err := s.partnershipRepo.Create(ctx, partnership); err != nil {
		s.logger.Error().Err(err).Int64("requesterID", requesterID).Msg("Failed to create partnership")
		return nil, err
	}

	notification := &models.Notification{
		UserID:           receiver.ID,
		Title:            "New partnership request",
		Content:          fmt.Sprintf("%s proposed a partnership: %s", requesterProject.Name, partnership.Title),
		NotificationType: models.NotificationTypePartnershipRequest,
		PartnershipID:    &partnership.ID,
	}
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		// The partnership itself is committed; a lost notification is
		// not worth failing the request over.
		s.logger.Error().Err(err).Int64("partnershipID", partnership.ID).Msg("Failed to create partnership notification")
	}

	s.attachParticipants(ctx, partnership)
	return partnership, nil
}

// Respond accepts or rejects a pending partnership. Only the receiver may
// respond, exactly once; the status change and the requester's notification
// commit in a single transaction.
func (s *partnershipServiceImpl) Respond(ctx context.Context, partnershipID, responderID int64, req *dto.RespondPartnershipRequest) (*models.Partnership, error) {
	partnership, err := s.partnershipRepo.GetByID(ctx, partnershipID)
	if err != nil {
		return nil, err
	}

	if partnership.ReceiverID != responderID {
		return nil, apperrors.NewForbiddenError("Only the receiver can respond to a partnership request")
	}

	if partnership.Status != models.PartnershipStatusPending {
		return nil, apperrors.NewConflictError("Partnership has already been responded to")
	}

	status := models.PartnershipStatusAccepted
	notificationType := models.NotificationTypePartnershipAccepted
	verb := "accepted"
	if req.Decision == "REJECT" {
		status = models.PartnershipStatusRejected
		notificationType = models.NotificationTypePartnershipRejected
		verb = "rejected"
	}

	respondedAt := time.Now()

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.partnershipRepo.UpdateStatusTx(ctx, tx, partnershipID, status, respondedAt); err != nil {
			return err
		}

		notification := &models.Notification{
			UserID:           partnership.RequesterID,
			Title:            "Partnership request " + verb,
			Content:          fmt.Sprintf("Your partnership request %q was %s", partnership.Title, verb),
			NotificationType: notificationType,
			PartnershipID:    &partnership.ID,
		}
		_, err := s.notificationRepo.CreateTx(ctx, tx, notification)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyResponded) {
			s.logger.Error().Err(err).Int64("partnershipID", partnershipID).Msg("Failed to respond to partnership")
		}
		return nil, err
	}

	partnership.Status = status
	partnership.RespondedAt = &respondedAt
	partnership.UpdatedAt = respondedAt

	s.attachParticipants(ctx, partnership)
	return partnership, nil
}

// List retrieves the caller's partnerships filtered by role
func (s *partnershipServiceImpl) List(ctx context.Context, userID int64, role string) ([]*models.Partnership, error) {
	switch role {
	case "", "all", "sent", "received":
	default:
		return nil, apperrors.NewValidationError("Role must be one of: sent, received, all")
	}

	partnerships, err := s.partnershipRepo.ListForUser(ctx, userID, role)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list partnerships")
		return nil, err
	}

	if err := s.attachParticipantsBatch(ctx, partnerships); err != nil {
		return nil, err
	}

	return partnerships, nil
}

// GetByID retrieves one partnership, visible only to its two participants
func (s *partnershipServiceImpl) GetByID(ctx context.Context, partnershipID, viewerID int64) (*models.Partnership, error) {
	partnership, err := s.partnershipRepo.GetByID(ctx, partnershipID)
	if err != nil {
		return nil, err
	}

	if !partnership.IsParticipant(viewerID) {
		return nil, apperrors.NewForbiddenError("You are not a participant in this partnership")
	}

	s.attachParticipants(ctx, partnership)
	return partnership, nil
}

// Stats summarizes the caller's partnerships by status
func (s *partnershipServiceImpl) Stats(ctx context.Context, userID int64) (*dto.PartnershipStats, error) {
	counts, err := s.partnershipRepo.CountByStatus(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to count partnerships")
		return nil, err
	}

	stats := &dto.PartnershipStats{
		Pending:  counts[models.PartnershipStatusPending],
		Accepted: counts[models.PartnershipStatusAccepted],
		Rejected: counts[models.PartnershipStatusRejected],
	}
	stats.Total = stats.Pending + stats.Accepted + stats.Rejected

	return stats, nil
}

func (s *partnershipServiceImpl) attachParticipants(ctx context.Context, p *models.Partnership) {
	if err := s.attachParticipantsBatch(ctx, []*models.Partnership{p}); err != nil {
		s.logger.Warn().Err(err).Int64("partnershipID", p.ID).Msg("Failed to attach partnership participants")
	}
}

// attachParticipantsBatch joins user and project summaries onto partnerships.
// One project per user, so projects are fetched keyed by owner.
func (s *partnershipServiceImpl) attachParticipantsBatch(ctx context.Context, partnerships []*models.Partnership) error {
	if len(partnerships) == 0 {
		return nil
	}

	idSet := make(map[int64]struct{}, len(partnerships)*2)
	for _, p := range partnerships {
		idSet[p.RequesterID] = struct{}{}
		idSet[p.ReceiverID] = struct{}{}
	}
	userIDs := make([]int64, 0, len(idSet))
	for id := range idSet {
		userIDs = append(userIDs, id)
	}

	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	projects, err := s.projectRepo.GetByOwnerIDs(ctx, userIDs)
	if err != nil {
		return err
	}

	for _, p := range partnerships {
		if u, ok := users[p.RequesterID]; ok {
			p.Requester = u.PublicProfile()
		}
		if u, ok := users[p.ReceiverID]; ok {
			p.Receiver = u.PublicProfile()
		}
		p.RequesterProject = projects[p.RequesterID]
		p.ReceiverProject = projects[p.ReceiverID]
	}

	return nil
}
