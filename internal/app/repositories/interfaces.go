package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/synqit/synqit/internal/app/models"
)

// Store interfaces consumed by the service layer. The pgx implementations
// below satisfy them; tests substitute in-memory fakes.

// UserStore handles user rows
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// TokenStore handles refresh token rows
type TokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	FindByToken(ctx context.Context, token string) (userID int64, expiresAt time.Time, revoked bool, err error)
	Revoke(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ProjectStore handles project rows and their chain preferences
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*models.Project, error)
	GetByOwnerIDs(ctx context.Context, ownerIDs []int64) (map[int64]*models.Project, error)
	Create(ctx context.Context, project *models.Project) (int64, error)
	Update(ctx context.Context, project *models.Project) error
	ReplaceBlockchains(ctx context.Context, projectID int64, prefs []models.ProjectBlockchain) error
	BlockchainsByProjectIDs(ctx context.Context, projectIDs []int64) (map[int64][]models.ProjectBlockchain, error)
	List(ctx context.Context, query, blockchain string, offset uint64, limit int) ([]*models.Project, int64, error)
	DeleteByOwnerID(ctx context.Context, ownerID int64) error
}

// PartnershipStore handles partnership rows
type PartnershipStore interface {
	Create(ctx context.Context, p *models.Partnership) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Partnership, error)
	// UpdateStatusTx stamps the status transition inside the caller's
	// transaction so it can commit atomically with its notification.
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.PartnershipStatus, respondedAt time.Time) error
	ListForUser(ctx context.Context, userID int64, role string) ([]*models.Partnership, error)
	CountByStatus(ctx context.Context, userID int64) (map[models.PartnershipStatus]int, error)
}

// MessageStore handles message rows and the aggregations over them
type MessageStore interface {
	Create(ctx context.Context, m *models.Message) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	Delete(ctx context.Context, id int64) error
	ListByPartnership(ctx context.Context, partnershipID int64, offset uint64, limit int) ([]*models.Message, error)
	ListDirect(ctx context.Context, userAID, userBID int64, offset uint64, limit int) ([]*models.Message, error)
	LastMessagesByPartnerships(ctx context.Context, partnershipIDs []int64) (map[int64]*models.Message, error)
	UnreadCountsByPartnerships(ctx context.Context, partnershipIDs []int64, viewerID int64) (map[int64]int, error)
	LastDirectMessagesByPeer(ctx context.Context, viewerID int64) (map[int64]*models.Message, error)
	UnreadDirectCountsByPeer(ctx context.Context, viewerID int64) (map[int64]int, error)
	MarkPartnershipRead(ctx context.Context, partnershipID, viewerID int64) (int64, error)
	MarkDirectRead(ctx context.Context, peerID, viewerID int64) (int64, error)
	UnreadCountForUser(ctx context.Context, viewerID int64) (int, error)
	Search(ctx context.Context, viewerID int64, query string, limit int) ([]*models.Message, error)
	Recent(ctx context.Context, viewerID int64, limit int) ([]*models.Message, error)
	CountSent(ctx context.Context, userID int64) (int, error)
	CountReceived(ctx context.Context, userID int64) (int, error)
}

// NotificationStore handles notification rows
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	// CreateTx inserts inside an existing transaction (partnership respond path).
	CreateTx(ctx context.Context, tx pgx.Tx, n *models.Notification) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
