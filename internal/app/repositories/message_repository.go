package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/pkg/apperrors"
)

// MessageRepository handles database operations for messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, sender_id, receiver_id, partnership_id, content, message_type, is_read, created_at`

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.ID,
		&m.SenderID,
		&m.ReceiverID,
		&m.PartnershipID,
		&m.Content,
		&m.MessageType,
		&m.IsRead,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error scanning message row: %w", err)
	}
	return &m, nil
}

func (r *MessageRepository) queryMessages(ctx context.Context, sql string, args ...interface{}) ([]*models.Message, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, m *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (sender_id, receiver_id, partnership_id, content, message_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at
	`

	err := r.db.QueryRow(ctx, query,
		m.SenderID,
		m.ReceiverID,
		m.PartnershipID,
		m.Content,
		m.MessageType,
	).Scan(&m.ID, &m.IsRead, &m.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	return m.ID, nil
}

// GetByID retrieves a message by id
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := fmt.Sprintf(`SELECT %s FROM messages WHERE id = $1`, messageColumns)
	return scanMessage(r.db.QueryRow(ctx, query, id))
}

// Delete removes a message
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}

	return nil
}

// ListByPartnership retrieves a partnership thread in chat order (oldest
// first) with offset pagination.
func (r *MessageRepository) ListByPartnership(ctx context.Context, partnershipID int64, offset uint64, limit int) ([]*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM messages
		WHERE partnership_id = $1
		ORDER BY created_at ASC
		OFFSET $2 LIMIT $3
	`, messageColumns)

	return r.queryMessages(ctx, query, partnershipID, offset, limit)
}

// ListDirect retrieves the direct thread between two users in chat order
// (oldest first). Partnership-scoped messages never appear here.
func (r *MessageRepository) ListDirect(ctx context.Context, userAID, userBID int64, offset uint64, limit int) ([]*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM messages
		WHERE partnership_id IS NULL
		  AND ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
		ORDER BY created_at ASC
		OFFSET $3 LIMIT $4
	`, messageColumns)

	return r.queryMessages(ctx, query, userAID, userBID, offset, limit)
}

// LastMessagesByPartnerships retrieves the single most recent message per
// partnership, keyed by partnership id.
func (r *MessageRepository) LastMessagesByPartnerships(ctx context.Context, partnershipIDs []int64) (map[int64]*models.Message, error) {
	result := make(map[int64]*models.Message)
	if len(partnershipIDs) == 0 {
		return result, nil
	}

	builder := squirrel.Select(
		"DISTINCT ON (partnership_id) id", "sender_id", "receiver_id", "partnership_id",
		"content", "message_type", "is_read", "created_at",
	).
		From("messages").
		Where(squirrel.Eq{"partnership_id": partnershipIDs}).
		OrderBy("partnership_id", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	messages, err := r.queryMessages(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	for _, m := range messages {
		result[*m.PartnershipID] = m
	}

	return result, nil
}

// UnreadCountsByPartnerships counts unread messages addressed to the viewer
// per partnership.
func (r *MessageRepository) UnreadCountsByPartnerships(ctx context.Context, partnershipIDs []int64, viewerID int64) (map[int64]int, error) {
	result := make(map[int64]int)
	if len(partnershipIDs) == 0 {
		return result, nil
	}

	builder := squirrel.Select("partnership_id", "COUNT(*)").
		From("messages").
		Where(squirrel.Eq{"partnership_id": partnershipIDs}).
		Where("receiver_id = ? AND is_read = FALSE", viewerID).
		GroupBy("partnership_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var partnershipID int64
		var count int
		if err := rows.Scan(&partnershipID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[partnershipID] = count
	}

	return result, rows.Err()
}

// LastDirectMessagesByPeer retrieves the most recent direct message per peer
// the viewer has a thread with, keyed by the peer's user id.
func (r *MessageRepository) LastDirectMessagesByPeer(ctx context.Context, viewerID int64) (map[int64]*models.Message, error) {
	query := `
		SELECT DISTINCT ON (peer_id) id, sender_id, receiver_id, partnership_id, content, message_type, is_read, created_at
		FROM (
			SELECT m.*,
				CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END AS peer_id
			FROM messages m
			WHERE m.partnership_id IS NULL
			  AND (m.sender_id = $1 OR m.receiver_id = $1)
		) t
		ORDER BY peer_id, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]*models.Message)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		peerID := m.SenderID
		if peerID == viewerID {
			peerID = m.ReceiverID
		}
		result[peerID] = m
	}

	return result, rows.Err()
}

// UnreadDirectCountsByPeer counts unread direct messages addressed to the
// viewer, grouped by the sending peer.
func (r *MessageRepository) UnreadDirectCountsByPeer(ctx context.Context, viewerID int64) (map[int64]int, error) {
	query := `
		SELECT sender_id, COUNT(*)
		FROM messages
		WHERE partnership_id IS NULL AND receiver_id = $1 AND is_read = FALSE
		GROUP BY sender_id
	`

	rows, err := r.db.Query(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]int)
	for rows.Next() {
		var senderID int64
		var count int
		if err := rows.Scan(&senderID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[senderID] = count
	}

	return result, rows.Err()
}

// MarkPartnershipRead flips is_read on every unread message addressed to the
// viewer in a partnership. Idempotent; returns the number of rows updated.
func (r *MessageRepository) MarkPartnershipRead(ctx context.Context, partnershipID, viewerID int64) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE messages SET is_read = TRUE
		 WHERE partnership_id = $1 AND receiver_id = $2 AND is_read = FALSE`,
		partnershipID, viewerID,
	)
	if err != nil {
		return 0, fmt.Errorf("error marking messages read: %w", err)
	}
	return result.RowsAffected(), nil
}

// MarkDirectRead flips is_read on every unread direct message from a peer to
// the viewer. Idempotent; returns the number of rows updated.
func (r *MessageRepository) MarkDirectRead(ctx context.Context, peerID, viewerID int64) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE messages SET is_read = TRUE
		 WHERE partnership_id IS NULL AND sender_id = $1 AND receiver_id = $2 AND is_read = FALSE`,
		peerID, viewerID,
	)
	if err != nil {
		return 0, fmt.Errorf("error marking direct messages read: %w", err)
	}
	return result.RowsAffected(), nil
}

// UnreadCountForUser counts every unread message addressed to the viewer
// across partnership and direct threads.
func (r *MessageRepository) UnreadCountForUser(ctx context.Context, viewerID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE`,
		viewerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}
	return count, nil
}

// Search performs a case-insensitive substring match over content, scoped to
// messages the viewer sent or received. Newest first, no relevance ranking.
func (r *MessageRepository) Search(ctx context.Context, viewerID int64, query string, limit int) ([]*models.Message, error) {
	builder := squirrel.Select(
		"id", "sender_id", "receiver_id", "partnership_id", "content", "message_type", "is_read", "created_at",
	).
		From("messages").
		Where("(sender_id = ? OR receiver_id = ?)", viewerID, viewerID).
		Where(squirrel.ILike{"content": "%" + query + "%"}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return r.queryMessages(ctx, sql, args...)
}

// Recent retrieves the newest messages involving the viewer
func (r *MessageRepository) Recent(ctx context.Context, viewerID int64, limit int) ([]*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, messageColumns)

	return r.queryMessages(ctx, query, viewerID, limit)
}

// CountSent counts messages the user has sent
func (r *MessageRepository) CountSent(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE sender_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting sent messages: %w", err)
	}
	return count, nil
}

// CountReceived counts messages the user has received
func (r *MessageRepository) CountReceived(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE receiver_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting received messages: %w", err)
	}
	return count, nil
}
