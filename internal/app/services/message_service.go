package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/app/repositories"
	"github.com/synqit/synqit/internal/pkg/apperrors"
	"github.com/synqit/synqit/internal/pkg/helpers"
)

// MessageService defines the interface for messaging operations
type MessageService interface {
	Send(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*models.Message, error)
	SendDirect(ctx context.Context, senderID int64, req *dto.SendDirectMessageRequest) (*models.Message, error)
	PartnershipThread(ctx context.Context, partnershipID, viewerID int64, page, size int) ([]*models.Message, error)
	DirectThread(ctx context.Context, viewerID, peerID int64, page, size int) ([]*models.Message, error)
	Conversations(ctx context.Context, viewerID int64, page, size int) ([]*models.Conversation, *dto.PaginationInfo, error)
	MarkPartnershipRead(ctx context.Context, viewerID, partnershipID int64) (*dto.MarkReadResponse, error)
	MarkDirectRead(ctx context.Context, viewerID, peerID int64) (*dto.MarkReadResponse, error)
	UnreadCount(ctx context.Context, viewerID int64) (int, error)
	Search(ctx context.Context, viewerID int64, query string, limit int) ([]*models.Message, error)
	Stats(ctx context.Context, viewerID int64) (*dto.MessageStats, error)
	Recent(ctx context.Context, viewerID int64, limit int) ([]*models.Message, error)
	Delete(ctx context.Context, messageID, callerID int64) error
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	messageRepo      repositories.MessageStore
	partnershipRepo  repositories.PartnershipStore
	userRepo         repositories.UserStore
	projectRepo      repositories.ProjectStore
	notificationRepo repositories.NotificationStore
	logger           zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo repositories.MessageStore,
	partnershipRepo repositories.PartnershipStore,
	userRepo repositories.UserStore,
	projectRepo repositories.ProjectStore,
	notificationRepo repositories.NotificationStore,
	logger zerolog.Logger,
) MessageService {
	return &messageServiceImpl{
		messageRepo:      messageRepo,
		partnershipRepo:  partnershipRepo,
		userRepo:         userRepo,
		projectRepo:      projectRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Send posts a message into a partnership thread. The receiver is always the
// other participant; clients never choose it.
func (s *messageServiceImpl) Send(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*models.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("Message content cannot be empty")
	}

	partnership, err := s.partnershipRepo.GetByID(ctx, req.PartnershipID)
	if err != nil {
		return nil, err
	}

	if !partnership.IsParticipant(senderID) {
		return nil, apperrors.NewForbiddenError("You are not a participant in this partnership")
	}

	message := &models.Message{
		SenderID:      senderID,
		ReceiverID:    partnership.OtherParticipant(senderID),
		PartnershipID: &partnership.ID,
		Content:       content,
		MessageType:   models.MessageTypeText,
	}

	if _, err := s.messageRepo.Create(ctx, message); err != nil {
		s.logger.Error().Err(err).Int64("partnershipID", partnership.ID).Msg("Failed to create message")
		return nil, err
	}

	s.notifyNewMessage(ctx, message, &partnership.ID)
	return message, nil
}

// SendDirect posts a direct user-to-user message outside any partnership
func (s *messageServiceImpl) SendDirect(ctx context.Context, senderID int64, req *dto.SendDirectMessageRequest) (*models.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("Message content cannot be empty")
	}
	if req.ReceiverID == senderID {
		return nil, apperrors.NewValidationError("Cannot send a message to yourself")
	}

	if _, err := s.userRepo.FindByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Receiver not found")
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:    senderID,
		ReceiverID:  req.ReceiverID,
		Content:     content,
		MessageType: models.MessageTypeText,
	}

	if _, err := s.messageRepo.Create(ctx, message); err != nil {
		s.logger.Error().Err(err).Int64("receiverID", req.ReceiverID).Msg("Failed to create direct message")
		return nil, err
	}

	s.notifyNewMessage(ctx, message, nil)
	return message, nil
}

// PartnershipThread retrieves a partnership thread in chat order. The
// partnership must exist before the membership check so outsiders get a 404
// for missing threads and a 403 for real ones.
func (s *messageServiceImpl) PartnershipThread(ctx context.Context, partnershipID, viewerID int64, page, size int) ([]*models.Message, error) {
	partnership, err := s.partnershipRepo.GetByID(ctx, partnershipID)
	if err != nil {
		return nil, err
	}

	if !partnership.IsParticipant(viewerID) {
		return nil, apperrors.NewForbiddenError("You are not a participant in this partnership")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	messages, err := s.messageRepo.ListByPartnership(ctx, partnershipID, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Int64("partnershipID", partnershipID).Msg("Failed to list partnership messages")
		return nil, err
	}

	if err := s.attachUsers(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// DirectThread retrieves the direct thread between the viewer and a peer
func (s *messageServiceImpl) DirectThread(ctx context.Context, viewerID, peerID int64, page, size int) ([]*models.Message, error) {
	if _, err := s.userRepo.FindByID(ctx, peerID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	messages, err := s.messageRepo.ListDirect(ctx, viewerID, peerID, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Int64("peerID", peerID).Msg("Failed to list direct messages")
		return nil, err
	}

	if err := s.attachUsers(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Conversations builds the viewer's inbox: one entry per partnership the
// viewer participates in (even without messages) plus one per direct peer,
// sorted by last activity. The list is derived on every call, never stored.
func (s *messageServiceImpl) Conversations(ctx context.Context, viewerID int64, page, size int) ([]*models.Conversation, *dto.PaginationInfo, error) {
	partnerships, err := s.partnershipRepo.ListForUser(ctx, viewerID, "all")
	if err != nil {
		s.logger.Error().Err(err).Int64("viewerID", viewerID).Msg("Failed to list partnerships for conversations")
		return nil, nil, err
	}

	partnershipIDs := make([]int64, 0, len(partnerships))
	for _, p := range partnerships {
		partnershipIDs = append(partnershipIDs, p.ID)
	}

	lastByPartnership, err := s.messageRepo.LastMessagesByPartnerships(ctx, partnershipIDs)
	if err != nil {
		return nil, nil, err
	}
	unreadByPartnership, err := s.messageRepo.UnreadCountsByPartnerships(ctx, partnershipIDs, viewerID)
	if err != nil {
		return nil, nil, err
	}
	lastByPeer, err := s.messageRepo.LastDirectMessagesByPeer(ctx, viewerID)
	if err != nil {
		return nil, nil, err
	}
	unreadByPeer, err := s.messageRepo.UnreadDirectCountsByPeer(ctx, viewerID)
	if err != nil {
		return nil, nil, err
	}

	// Collect every user the inbox references in one lookup.
	idSet := map[int64]struct{}{viewerID: {}}
	for _, p := range partnerships {
		idSet[p.OtherParticipant(viewerID)] = struct{}{}
	}
	for peerID := range lastByPeer {
		idSet[peerID] = struct{}{}
	}
	userIDs := make([]int64, 0, len(idSet))
	for id := range idSet {
		userIDs = append(userIDs, id)
	}

	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, nil, err
	}
	projects, err := s.projectRepo.GetByOwnerIDs(ctx, userIDs)
	if err != nil {
		return nil, nil, err
	}

	conversations := make([]*models.Conversation, 0, len(partnerships)+len(lastByPeer))

	for _, p := range partnerships {
		partnerID := p.OtherParticipant(viewerID)
		status := p.Status

		conv := &models.Conversation{
			Type:           models.ConversationTypePartnership,
			ID:             p.ID,
			Title:          p.Title,
			Status:         &status,
			PartnerProject: projects[partnerID],
			MyProject:      projects[viewerID],
			LastMessage:    lastByPartnership[p.ID],
			UnreadCount:    unreadByPartnership[p.ID],
			UpdatedAt:      p.UpdatedAt,
		}
		if partner, ok := users[partnerID]; ok {
			conv.Partner = partner.PublicProfile()
		}
		if conv.LastMessage != nil && conv.LastMessage.CreatedAt.After(conv.UpdatedAt) {
			conv.UpdatedAt = conv.LastMessage.CreatedAt
		}
		conversations = append(conversations, conv)
	}

	for peerID, last := range lastByPeer {
		conv := &models.Conversation{
			Type:        models.ConversationTypeDirect,
			ID:          peerID,
			LastMessage: last,
			UnreadCount: unreadByPeer[peerID],
			UpdatedAt:   last.CreatedAt,
		}
		if peer, ok := users[peerID]; ok {
			conv.Partner = peer.PublicProfile()
			conv.Title = peer.FirstName + " " + peer.LastName
		}
		conversations = append(conversations, conv)
	}

	sort.Slice(conversations, func(i, j int) bool {
		if conversations[i].UpdatedAt.Equal(conversations[j].UpdatedAt) {
			return conversations[i].ID > conversations[j].ID
		}
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})

	total := int64(len(conversations))
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	pagination := helpers.NewPaginationInfo(total, page, limit)

	if offset >= uint64(len(conversations)) {
		return []*models.Conversation{}, &pagination, nil
	}
	end := offset + uint64(limit)
	if end > uint64(len(conversations)) {
		end = uint64(len(conversations))
	}

	return conversations[offset:end], &pagination, nil
}

// MarkPartnershipRead marks the viewer's unread messages in a partnership
// thread as read. Safe to call repeatedly.
func (s *messageServiceImpl) MarkPartnershipRead(ctx context.Context, viewerID, partnershipID int64) (*dto.MarkReadResponse, error) {
	partnership, err := s.partnershipRepo.GetByID(ctx, partnershipID)
	if err != nil {
		return nil, err
	}

	if !partnership.IsParticipant(viewerID) {
		return nil, apperrors.NewForbiddenError("You are not a participant in this partnership")
	}

	updated, err := s.messageRepo.MarkPartnershipRead(ctx, partnershipID, viewerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("partnershipID", partnershipID).Msg("Failed to mark thread read")
		return nil, err
	}

	return &dto.MarkReadResponse{UpdatedCount: int(updated)}, nil
}

// MarkDirectRead marks the viewer's unread direct messages from a peer as
// read. Safe to call repeatedly.
func (s *messageServiceImpl) MarkDirectRead(ctx context.Context, viewerID, peerID int64) (*dto.MarkReadResponse, error) {
	updated, err := s.messageRepo.MarkDirectRead(ctx, peerID, viewerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("peerID", peerID).Msg("Failed to mark direct thread read")
		return nil, err
	}

	return &dto.MarkReadResponse{UpdatedCount: int(updated)}, nil
}

// UnreadCount counts the viewer's unread messages across all threads
func (s *messageServiceImpl) UnreadCount(ctx context.Context, viewerID int64) (int, error) {
	return s.messageRepo.UnreadCountForUser(ctx, viewerID)
}

// Search finds the viewer's messages matching a content substring
func (s *messageServiceImpl) Search(ctx context.Context, viewerID int64, query string, limit int) ([]*models.Message, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("Search query cannot be empty")
	}

	messages, err := s.messageRepo.Search(ctx, viewerID, query, limit)
	if err != nil {
		s.logger.Error().Err(err).Int64("viewerID", viewerID).Msg("Failed to search messages")
		return nil, err
	}

	if err := s.attachUsers(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Stats summarizes the viewer's messaging activity. Active conversations are
// the viewer's accepted partnerships.
func (s *messageServiceImpl) Stats(ctx context.Context, viewerID int64) (*dto.MessageStats, error) {
	sent, err := s.messageRepo.CountSent(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	received, err := s.messageRepo.CountReceived(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	unread, err := s.messageRepo.UnreadCountForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.partnershipRepo.CountByStatus(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.MessageStats{
		MessagesSent:        sent,
		MessagesReceived:    received,
		UnreadMessages:      unread,
		ActiveConversations: statusCounts[models.PartnershipStatusAccepted],
		TotalMessages:       sent + received,
	}, nil
}

// Recent retrieves the viewer's newest messages across all threads
func (s *messageServiceImpl) Recent(ctx context.Context, viewerID int64, limit int) ([]*models.Message, error) {
	messages, err := s.messageRepo.Recent(ctx, viewerID, limit)
	if err != nil {
		s.logger.Error().Err(err).Int64("viewerID", viewerID).Msg("Failed to list recent messages")
		return nil, err
	}

	if err := s.attachUsers(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete removes a message. Only the sender may delete.
func (s *messageServiceImpl) Delete(ctx context.Context, messageID, callerID int64) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if message.SenderID != callerID {
		return apperrors.NewForbiddenError("Only the sender can delete a message")
	}

	return s.messageRepo.Delete(ctx, messageID)
}

// notifyNewMessage creates the receiver's NEW_MESSAGE notification. The
// message row is already committed; a failed notification is logged, not
// surfaced.
func (s *messageServiceImpl) notifyNewMessage(ctx context.Context, message *models.Message, partnershipID *int64) {
	sender, err := s.userRepo.FindByID(ctx, message.SenderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("messageID", message.ID).Msg("Failed to load sender for notification")
		return
	}

	notification := &models.Notification{
		UserID:           message.ReceiverID,
		Title:            "New message",
		Content:          sender.FirstName + " " + sender.LastName + " sent you a message",
		NotificationType: models.NotificationTypeNewMessage,
		PartnershipID:    partnershipID,
	}
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("messageID", message.ID).Msg("Failed to create message notification")
	}
}

// attachUsers joins sender and receiver summaries onto messages
func (s *messageServiceImpl) attachUsers(ctx context.Context, messages []*models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	idSet := make(map[int64]struct{}, len(messages)*2)
	for _, m := range messages {
		idSet[m.SenderID] = struct{}{}
		idSet[m.ReceiverID] = struct{}{}
	}
	userIDs := make([]int64, 0, len(idSet))
	for id := range idSet {
		userIDs = append(userIDs, id)
	}

	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return err
	}

	for _, m := range messages {
		if u, ok := users[m.SenderID]; ok {
			m.Sender = u.PublicProfile()
		}
		if u, ok := users[m.ReceiverID]; ok {
			m.Receiver = u.PublicProfile()
		}
	}

	return nil
}
