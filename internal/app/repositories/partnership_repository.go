package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/pkg/apperrors"
)

// PartnershipRepository handles database operations for partnerships
type PartnershipRepository struct {
	db *pgxpool.Pool
}

// NewPartnershipRepository creates a new PartnershipRepository
func NewPartnershipRepository(db *pgxpool.Pool) *PartnershipRepository {
	return &PartnershipRepository{db: db}
}

const partnershipColumns = `id, requester_id, receiver_id, requester_project_id, receiver_project_id,
	partnership_type, title, description, proposed_terms, status, responded_at, created_at, updated_at`

func scanPartnership(row pgx.Row) (*models.Partnership, error) {
	var p models.Partnership
	err := row.Scan(
		&p.ID,
		&p.RequesterID,
		&p.ReceiverID,
		&p.RequesterProjectID,
		&p.ReceiverProjectID,
		&p.PartnershipType,
		&p.Title,
		&p.Description,
		&p.ProposedTerms,
		&p.Status,
		&p.RespondedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPartnershipNotFound
		}
		return nil, fmt.Errorf("error scanning partnership row: %w", err)
	}
	return &p, nil
}

// Create inserts a new partnership in PENDING state
func (r *PartnershipRepository) Create(ctx context.Context, p *models.Partnership) (int64, error) {
	query := `
		INSERT INTO partnerships (
			requester_id, receiver_id, requester_project_id, receiver_project_id,
			partnership_type, title, description, proposed_terms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.RequesterID,
		p.ReceiverID,
		p.RequesterProjectID,
		p.ReceiverProjectID,
		p.PartnershipType,
		p.Title,
		p.Description,
		p.ProposedTerms,
	).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating partnership: %w", err)
	}

	return p.ID, nil
}

// GetByID retrieves a partnership by id
func (r *PartnershipRepository) GetByID(ctx context.Context, id int64) (*models.Partnership, error) {
	query := fmt.Sprintf(`SELECT %s FROM partnerships WHERE id = $1`, partnershipColumns)
	return scanPartnership(r.db.QueryRow(ctx, query, id))
}

// UpdateStatusTx stamps a status transition inside an existing transaction.
// The WHERE clause re-checks PENDING so concurrent responders race on the
// database row, not on application state.
func (r *PartnershipRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.PartnershipStatus, respondedAt time.Time) error {
	query := `
		UPDATE partnerships
		SET status = $1, responded_at = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
	`

	result, err := tx.Exec(ctx, query, status, respondedAt, id)
	if err != nil {
		return fmt.Errorf("error updating partnership status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAlreadyResponded
	}

	return nil
}

// ListForUser retrieves partnerships where the user participates, filtered by
// role: "sent" (requester), "received" (receiver) or "all". Newest first.
func (r *PartnershipRepository) ListForUser(ctx context.Context, userID int64, role string) ([]*models.Partnership, error) {
	builder := squirrel.Select(
		"id", "requester_id", "receiver_id", "requester_project_id", "receiver_project_id",
		"partnership_type", "title", "description", "proposed_terms", "status", "responded_at", "created_at", "updated_at",
	).
		From("partnerships").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	switch role {
	case "sent":
		builder = builder.Where("requester_id = ?", userID)
	case "received":
		builder = builder.Where("receiver_id = ?", userID)
	default:
		builder = builder.Where("(requester_id = ? OR receiver_id = ?)", userID, userID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var partnerships []*models.Partnership
	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, err
		}
		partnerships = append(partnerships, p)
	}

	return partnerships, rows.Err()
}

// CountByStatus counts a user's partnerships grouped by status
func (r *PartnershipRepository) CountByStatus(ctx context.Context, userID int64) (map[models.PartnershipStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM partnerships
		WHERE requester_id = $1 OR receiver_id = $1
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.PartnershipStatus]int)
	for rows.Next() {
		var status models.PartnershipStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
