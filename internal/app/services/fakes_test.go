package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/db"
	"github.com/synqit/synqit/internal/pkg/apperrors"
)

// In-memory store fakes used across the service tests.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) (int64, error) {
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.users[user.ID] = &copied
	return user.ID, nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) FindByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	result := make(map[int64]*models.User)
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			copied := *user
			result[id] = &copied
		}
	}
	return result, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	return err == nil, nil
}

func (s *fakeUserStore) UpdateProfile(ctx context.Context, user *models.User) error {
	stored, ok := s.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Bio = user.Bio
	stored.UserType = user.UserType
	stored.UpdatedAt = time.Now()
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if stored, ok := s.users[id]; ok {
		stored.LastLoginAt = &at
	}
	return nil
}

type storedToken struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*storedToken)}
}

func (s *fakeTokenStore) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	s.tokens[token] = &storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *fakeTokenStore) FindByToken(ctx context.Context, token string) (int64, time.Time, bool, error) {
	stored, ok := s.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return stored.userID, stored.expiresAt, stored.revoked, nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, token string) error {
	stored, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (s *fakeTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	var deleted int64
	for token, stored := range s.tokens {
		if time.Now().After(stored.expiresAt) {
			delete(s.tokens, token)
			deleted++
		}
	}
	return deleted, nil
}

type fakeProjectStore struct {
	projects map[int64]*models.Project
	chains   map[int64][]models.ProjectBlockchain
	nextID   int64
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{
		projects: make(map[int64]*models.Project),
		chains:   make(map[int64][]models.ProjectBlockchain),
		nextID:   1,
	}
}

func (s *fakeProjectStore) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	project, ok := s.projects[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *project
	copied.Blockchains = s.chains[id]
	return &copied, nil
}

func (s *fakeProjectStore) GetByOwnerID(ctx context.Context, ownerID int64) (*models.Project, error) {
	for _, project := range s.projects {
		if project.OwnerID == ownerID {
			copied := *project
			copied.Blockchains = s.chains[project.ID]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (s *fakeProjectStore) GetByOwnerIDs(ctx context.Context, ownerIDs []int64) (map[int64]*models.Project, error) {
	result := make(map[int64]*models.Project)
	for _, ownerID := range ownerIDs {
		if project, err := s.GetByOwnerID(ctx, ownerID); err == nil {
			result[ownerID] = project
		}
	}
	return result, nil
}

func (s *fakeProjectStore) Create(ctx context.Context, project *models.Project) (int64, error) {
	project.ID = s.nextID
	s.nextID++
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	copied := *project
	s.projects[project.ID] = &copied
	return project.ID, nil
}

func (s *fakeProjectStore) Update(ctx context.Context, project *models.Project) error {
	stored, ok := s.projects[project.ID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	stored.Name = project.Name
	stored.Description = project.Description
	stored.Website = project.Website
	stored.Twitter = project.Twitter
	stored.Discord = project.Discord
	stored.Tags = project.Tags
	stored.UpdatedAt = time.Now()
	return nil
}

func (s *fakeProjectStore) ReplaceBlockchains(ctx context.Context, projectID int64, prefs []models.ProjectBlockchain) error {
	s.chains[projectID] = prefs
	return nil
}

func (s *fakeProjectStore) BlockchainsByProjectIDs(ctx context.Context, projectIDs []int64) (map[int64][]models.ProjectBlockchain, error) {
	result := make(map[int64][]models.ProjectBlockchain)
	for _, id := range projectIDs {
		result[id] = s.chains[id]
	}
	return result, nil
}

func (s *fakeProjectStore) List(ctx context.Context, query, blockchain string, offset uint64, limit int) ([]*models.Project, int64, error) {
	var matched []*models.Project
	for _, project := range s.projects {
		if query != "" &&
			!strings.Contains(strings.ToLower(project.Name), strings.ToLower(query)) &&
			!strings.Contains(strings.ToLower(project.Description), strings.ToLower(query)) {
			continue
		}
		if blockchain != "" {
			found := false
			for _, pref := range s.chains[project.ID] {
				if string(pref.Blockchain) == blockchain {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		copied := *project
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return nil, total, nil
	}
	end := offset + uint64(limit)
	if end > uint64(len(matched)) {
		end = uint64(len(matched))
	}
	return matched[offset:end], total, nil
}

func (s *fakeProjectStore) DeleteByOwnerID(ctx context.Context, ownerID int64) error {
	for id, project := range s.projects {
		if project.OwnerID == ownerID {
			delete(s.projects, id)
			delete(s.chains, id)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

type fakePartnershipStore struct {
	partnerships map[int64]*models.Partnership
	nextID       int64
}

func newFakePartnershipStore() *fakePartnershipStore {
	return &fakePartnershipStore{partnerships: make(map[int64]*models.Partnership), nextID: 1}
}

func (s *fakePartnershipStore) Create(ctx context.Context, p *models.Partnership) (int64, error) {
	p.ID = s.nextID
	s.nextID++
	p.Status = models.PartnershipStatusPending
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	copied := *p
	s.partnerships[p.ID] = &copied
	return p.ID, nil
}

func (s *fakePartnershipStore) GetByID(ctx context.Context, id int64) (*models.Partnership, error) {
	p, ok := s.partnerships[id]
	if !ok {
		return nil, apperrors.ErrPartnershipNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakePartnershipStore) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.PartnershipStatus, respondedAt time.Time) error {
	p, ok := s.partnerships[id]
	if !ok || p.Status != models.PartnershipStatusPending {
		return apperrors.ErrAlreadyResponded
	}
	p.Status = status
	p.RespondedAt = &respondedAt
	p.UpdatedAt = respondedAt
	return nil
}

func (s *fakePartnershipStore) ListForUser(ctx context.Context, userID int64, role string) ([]*models.Partnership, error) {
	var result []*models.Partnership
	for _, p := range s.partnerships {
		switch role {
		case "sent":
			if p.RequesterID != userID {
				continue
			}
		case "received":
			if p.ReceiverID != userID {
				continue
			}
		default:
			if !p.IsParticipant(userID) {
				continue
			}
		}
		copied := *p
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *fakePartnershipStore) CountByStatus(ctx context.Context, userID int64) (map[models.PartnershipStatus]int, error) {
	counts := make(map[models.PartnershipStatus]int)
	for _, p := range s.partnerships {
		if p.IsParticipant(userID) {
			counts[p.Status]++
		}
	}
	return counts, nil
}

type fakeMessageStore struct {
	messages map[int64]*models.Message
	nextID   int64
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: make(map[int64]*models.Message), nextID: 1}
}

func (s *fakeMessageStore) Create(ctx context.Context, m *models.Message) (int64, error) {
	m.ID = s.nextID
	s.nextID++
	// Monotonic timestamps so ordering assertions are stable.
	m.CreatedAt = time.Now().Add(time.Duration(m.ID) * time.Millisecond)
	copied := *m
	s.messages[m.ID] = &copied
	return m.ID, nil
}

func (s *fakeMessageStore) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	m, ok := s.messages[id]
	if !ok {
		return nil, apperrors.ErrMessageNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *fakeMessageStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.messages[id]; !ok {
		return apperrors.ErrMessageNotFound
	}
	delete(s.messages, id)
	return nil
}

func (s *fakeMessageStore) sorted() []*models.Message {
	result := make([]*models.Message, 0, len(s.messages))
	for _, m := range s.messages {
		copied := *m
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

func (s *fakeMessageStore) ListByPartnership(ctx context.Context, partnershipID int64, offset uint64, limit int) ([]*models.Message, error) {
	var result []*models.Message
	for _, m := range s.sorted() {
		if m.PartnershipID != nil && *m.PartnershipID == partnershipID {
			result = append(result, m)
		}
	}
	return window(result, offset, limit), nil
}

func (s *fakeMessageStore) ListDirect(ctx context.Context, userAID, userBID int64, offset uint64, limit int) ([]*models.Message, error) {
	var result []*models.Message
	for _, m := range s.sorted() {
		if m.PartnershipID != nil {
			continue
		}
		if (m.SenderID == userAID && m.ReceiverID == userBID) || (m.SenderID == userBID && m.ReceiverID == userAID) {
			result = append(result, m)
		}
	}
	return window(result, offset, limit), nil
}

func (s *fakeMessageStore) LastMessagesByPartnerships(ctx context.Context, partnershipIDs []int64) (map[int64]*models.Message, error) {
	result := make(map[int64]*models.Message)
	for _, m := range s.sorted() {
		if m.PartnershipID == nil {
			continue
		}
		for _, id := range partnershipIDs {
			if *m.PartnershipID == id {
				result[id] = m
			}
		}
	}
	return result, nil
}

func (s *fakeMessageStore) UnreadCountsByPartnerships(ctx context.Context, partnershipIDs []int64, viewerID int64) (map[int64]int, error) {
	result := make(map[int64]int)
	for _, m := range s.messages {
		if m.PartnershipID == nil || m.ReceiverID != viewerID || m.IsRead {
			continue
		}
		for _, id := range partnershipIDs {
			if *m.PartnershipID == id {
				result[id]++
			}
		}
	}
	return result, nil
}

func (s *fakeMessageStore) LastDirectMessagesByPeer(ctx context.Context, viewerID int64) (map[int64]*models.Message, error) {
	result := make(map[int64]*models.Message)
	for _, m := range s.sorted() {
		if m.PartnershipID != nil {
			continue
		}
		if m.SenderID == viewerID {
			result[m.ReceiverID] = m
		} else if m.ReceiverID == viewerID {
			result[m.SenderID] = m
		}
	}
	return result, nil
}

func (s *fakeMessageStore) UnreadDirectCountsByPeer(ctx context.Context, viewerID int64) (map[int64]int, error) {
	result := make(map[int64]int)
	for _, m := range s.messages {
		if m.PartnershipID == nil && m.ReceiverID == viewerID && !m.IsRead {
			result[m.SenderID]++
		}
	}
	return result, nil
}

func (s *fakeMessageStore) MarkPartnershipRead(ctx context.Context, partnershipID, viewerID int64) (int64, error) {
	var updated int64
	for _, m := range s.messages {
		if m.PartnershipID != nil && *m.PartnershipID == partnershipID && m.ReceiverID == viewerID && !m.IsRead {
			m.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (s *fakeMessageStore) MarkDirectRead(ctx context.Context, peerID, viewerID int64) (int64, error) {
	var updated int64
	for _, m := range s.messages {
		if m.PartnershipID == nil && m.SenderID == peerID && m.ReceiverID == viewerID && !m.IsRead {
			m.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (s *fakeMessageStore) UnreadCountForUser(ctx context.Context, viewerID int64) (int, error) {
	count := 0
	for _, m := range s.messages {
		if m.ReceiverID == viewerID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeMessageStore) Search(ctx context.Context, viewerID int64, query string, limit int) ([]*models.Message, error) {
	var result []*models.Message
	messages := s.sorted()
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.SenderID != viewerID && m.ReceiverID != viewerID {
			continue
		}
		if !strings.Contains(strings.ToLower(m.Content), strings.ToLower(query)) {
			continue
		}
		result = append(result, m)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (s *fakeMessageStore) Recent(ctx context.Context, viewerID int64, limit int) ([]*models.Message, error) {
	var result []*models.Message
	messages := s.sorted()
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.SenderID == viewerID || m.ReceiverID == viewerID {
			result = append(result, m)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (s *fakeMessageStore) CountSent(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, m := range s.messages {
		if m.SenderID == userID {
			count++
		}
	}
	return count, nil
}

func (s *fakeMessageStore) CountReceived(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, m := range s.messages {
		if m.ReceiverID == userID {
			count++
		}
	}
	return count, nil
}

func window(messages []*models.Message, offset uint64, limit int) []*models.Message {
	if offset >= uint64(len(messages)) {
		return nil
	}
	end := offset + uint64(limit)
	if end > uint64(len(messages)) {
		end = uint64(len(messages))
	}
	return messages[offset:end]
}

type fakeNotificationStore struct {
	notifications map[int64]*models.Notification
	nextID        int64
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[int64]*models.Notification), nextID: 1}
}

func (s *fakeNotificationStore) Create(ctx context.Context, n *models.Notification) (int64, error) {
	n.ID = s.nextID
	s.nextID++
	n.CreatedAt = time.Now()
	copied := *n
	s.notifications[n.ID] = &copied
	return n.ID, nil
}

func (s *fakeNotificationStore) CreateTx(ctx context.Context, tx pgx.Tx, n *models.Notification) (int64, error) {
	return s.Create(ctx, n)
}

func (s *fakeNotificationStore) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	n, ok := s.notifications[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *n
	return &copied, nil
}

func (s *fakeNotificationStore) ListByUser(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	var matched []*models.Notification
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		copied := *n
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return nil, total, nil
	}
	end := offset + uint64(limit)
	if end > uint64(len(matched)) {
		end = uint64(len(matched))
	}
	return matched[offset:end], total, nil
}

func (s *fakeNotificationStore) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) MarkRead(ctx context.Context, id int64) error {
	n, ok := s.notifications[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	n.IsRead = true
	return nil
}

func (s *fakeNotificationStore) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	var updated int64
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (s *fakeNotificationStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.notifications[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(s.notifications, id)
	return nil
}

// fakeTransactor runs the function directly without a database transaction
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}
