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

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, owner_id, name, description, website, twitter, discord, tags, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&p.Website,
		&p.Twitter,
		&p.Discord,
		&p.Tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning project row: %w", err)
	}
	return &p, nil
}

// GetByID retrieves a project by id, including chain preferences
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1`, projectColumns)
	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadBlockchains(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// GetByOwnerID retrieves the single project owned by a user
func (r *ProjectRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE owner_id = $1`, projectColumns)
	project, err := scanProject(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		return nil, err
	}

	if err := r.loadBlockchains(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// GetByOwnerIDs retrieves projects for multiple owners keyed by owner id.
// Chain preferences are not loaded; callers needing summaries only.
func (r *ProjectRepository) GetByOwnerIDs(ctx context.Context, ownerIDs []int64) (map[int64]*models.Project, error) {
	result := make(map[int64]*models.Project)
	if len(ownerIDs) == 0 {
		return result, nil
	}

	query := squirrel.Select(
		"id", "owner_id", "name", "description", "website", "twitter", "discord", "tags", "created_at", "updated_at",
	).
		From("projects").
		Where(squirrel.Eq{"owner_id": ownerIDs}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result[project.OwnerID] = project
	}

	return result, rows.Err()
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) (int64, error) {
	query := `
		INSERT INTO projects (owner_id, name, description, website, twitter, discord, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		project.OwnerID,
		project.Name,
		project.Description,
		project.Website,
		project.Twitter,
		project.Discord,
		project.Tags,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating project: %w", err)
	}

	return project.ID, nil
}

// Update rewrites the mutable fields of a project
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $1, description = $2, website = $3, twitter = $4, discord = $5, tags = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := r.db.Exec(ctx, query,
		project.Name,
		project.Description,
		project.Website,
		project.Twitter,
		project.Discord,
		project.Tags,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// ReplaceBlockchains swaps the full chain preference set of a project
func (r *ProjectRepository) ReplaceBlockchains(ctx context.Context, projectID int64, prefs []models.ProjectBlockchain) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM project_blockchains WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("error clearing chain preferences: %w", err)
	}

	for _, pref := range prefs {
		_, err := tx.Exec(ctx,
			`INSERT INTO project_blockchains (project_id, blockchain, is_primary) VALUES ($1, $2, $3)`,
			projectID, pref.Blockchain, pref.IsPrimary,
		)
		if err != nil {
			return fmt.Errorf("error inserting chain preference: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// List retrieves projects for public browse with optional name/description
// substring and blockchain filters.
func (r *ProjectRepository) List(ctx context.Context, query, blockchain string, offset uint64, limit int) ([]*models.Project, int64, error) {
	builder := squirrel.Select(
		"p.id", "p.owner_id", "p.name", "p.description", "p.website", "p.twitter", "p.discord", "p.tags", "p.created_at", "p.updated_at",
	).
		From("projects p").
		OrderBy("p.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	countBuilder := squirrel.Select("COUNT(*)").
		From("projects p").
		PlaceholderFormat(squirrel.Dollar)

	if query != "" {
		like := "%" + query + "%"
		cond := squirrel.Or{
			squirrel.ILike{"p.name": like},
			squirrel.ILike{"p.description": like},
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	if blockchain != "" {
		cond := squirrel.Expr(
			"EXISTS (SELECT 1 FROM project_blockchains pb WHERE pb.project_id = p.id AND pb.blockchain = ?)",
			blockchain,
		)
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting projects: %w", err)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, total, nil
}

// DeleteByOwnerID removes a user's project
func (r *ProjectRepository) DeleteByOwnerID(ctx context.Context, ownerID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// BlockchainsByProjectIDs retrieves chain preferences for multiple projects
// keyed by project id.
func (r *ProjectRepository) BlockchainsByProjectIDs(ctx context.Context, projectIDs []int64) (map[int64][]models.ProjectBlockchain, error) {
	result := make(map[int64][]models.ProjectBlockchain)
	if len(projectIDs) == 0 {
		return result, nil
	}

	builder := squirrel.Select("id", "project_id", "blockchain", "is_primary").
		From("project_blockchains").
		Where(squirrel.Eq{"project_id": projectIDs}).
		OrderBy("is_primary DESC", "blockchain").
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
		var pref models.ProjectBlockchain
		if err := rows.Scan(&pref.ID, &pref.ProjectID, &pref.Blockchain, &pref.IsPrimary); err != nil {
			return nil, fmt.Errorf("error scanning chain preference row: %w", err)
		}
		result[pref.ProjectID] = append(result[pref.ProjectID], pref)
	}

	return result, rows.Err()
}

func (r *ProjectRepository) loadBlockchains(ctx context.Context, project *models.Project) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, blockchain, is_primary
		 FROM project_blockchains
		 WHERE project_id = $1
		 ORDER BY is_primary DESC, blockchain`,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("error loading chain preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pref models.ProjectBlockchain
		if err := rows.Scan(&pref.ID, &pref.ProjectID, &pref.Blockchain, &pref.IsPrimary); err != nil {
			return fmt.Errorf("error scanning chain preference row: %w", err)
		}
		project.Blockchains = append(project.Blockchains, pref)
	}

	return rows.Err()
}
