package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
)

// PostgresSessionRepository implements the SessionRepository interface
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(config *RepositoryConfig) repositories.SessionRepository {
	return &PostgresSessionRepository{pool: config.Pool}
}

// date is read back as text so it keeps its YYYY-MM-DD form
const sessionColumns = `id, created_at, title, date::text, notes, campaign_id, user_id, scenario_id`

func scanSession(row rowScanner) (*models.Session, error) {
	var s models.Session
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.Title, &s.Date, &s.Notes, &s.CampaignID, &s.UserID, &s.ScenarioID); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a session
func (r *PostgresSessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (title, date, notes, campaign_id, user_id, scenario_id)
		VALUES ($1, $2::date, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		session.Title,
		session.Date,
		session.Notes,
		session.CampaignID,
		session.UserID,
		session.ScenarioID,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("campaign or scenario for session: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by ID
func (r *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapRowError(err, "session", id)
	}
	return session, nil
}

// ListByCampaign retrieves a campaign's sessions, latest date first
func (r *PostgresSessionRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE campaign_id = $1 ORDER BY date DESC, created_at DESC`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// Update writes the editable session fields
func (r *PostgresSessionRepository) Update(ctx context.Context, session *models.Session) error {
	query := `UPDATE sessions SET title = $1, date = $2::date, notes = $3, scenario_id = $4 WHERE id = $5`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		session.Title,
		session.Date,
		session.Notes,
		session.ScenarioID,
		session.ID,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("scenario for session: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", session.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a session
func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
