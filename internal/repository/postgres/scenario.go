package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
)

const scenarioColumns = `s.id, s.created_at, s.title, s.description, s.campaign_id, s.user_id, s.content`

// PostgresScenarioRepository implements the ScenarioRepository interface
type PostgresScenarioRepository struct {
	pool *pgxpool.Pool
}

// NewScenarioRepository creates a new scenario repository
func NewScenarioRepository(config *RepositoryConfig) repositories.ScenarioRepository {
	return &PostgresScenarioRepository{pool: config.Pool}
}

func scenarioDest(s *models.Scenario) []any {
	return []any{&s.ID, &s.CreatedAt, &s.Title, &s.Description, &s.CampaignID, &s.UserID, &s.Content}
}

// Create inserts a scenario
func (r *PostgresScenarioRepository) Create(ctx context.Context, scenario *models.Scenario) error {
	query := `
		INSERT INTO scenarios (title, description, campaign_id, user_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		scenario.Title,
		scenario.Description,
		scenario.CampaignID,
		scenario.UserID,
		scenario.Content,
	).Scan(&scenario.ID, &scenario.CreatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("campaign %s: %w", scenario.CampaignID, domain.ErrNotFound)
		}
		return fmt.Errorf("create scenario: %w", err)
	}

	return nil
}

// GetByID retrieves a scenario by ID
func (r *PostgresScenarioRepository) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios s WHERE s.id = $1`

	var scenario models.Scenario
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(scenarioDest(&scenario)...); err != nil {
		return nil, mapRowError(err, "scenario", id)
	}
	return &scenario, nil
}

// ListByCampaign retrieves a campaign's scenarios, newest first
func (r *PostgresScenarioRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.Scenario, error) {
	query := `SELECT ` + scenarioColumns + `
		FROM scenarios s
		WHERE s.campaign_id = $1
		ORDER BY s.created_at DESC`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	return collectScenarios(rows, false)
}

// ListVisible retrieves every scenario in a campaign the user can see
func (r *PostgresScenarioRepository) ListVisible(ctx context.Context, userID, email string) ([]models.Scenario, error) {
	query := `SELECT ` + scenarioColumns + `, c.title
		FROM scenarios s
		JOIN campaigns c ON c.id = s.campaign_id
		WHERE ` + visibleToUser + `
		ORDER BY s.created_at DESC`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID, email)
	if err != nil {
		return nil, fmt.Errorf("list visible scenarios: %w", err)
	}
	return collectScenarios(rows, true)
}

func collectScenarios(rows pgx.Rows, withCampaignTitle bool) ([]models.Scenario, error) {
	defer rows.Close()

	scenarios := []models.Scenario{}
	for rows.Next() {
		var s models.Scenario
		dest := scenarioDest(&s)
		if withCampaignTitle {
			dest = append(dest, &s.CampaignTitle)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}
	return scenarios, nil
}

// Update writes title, description and content
func (r *PostgresScenarioRepository) Update(ctx context.Context, scenario *models.Scenario) error {
	query := `UPDATE scenarios SET title = $1, description = $2, content = $3 WHERE id = $4`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		scenario.Title,
		scenario.Description,
		scenario.Content,
		scenario.ID,
	)
	if err != nil {
		return fmt.Errorf("update scenario: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scenario %s: %w", scenario.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateContent replaces the content document only
func (r *PostgresScenarioRepository) UpdateContent(ctx context.Context, id string, doc content.Document) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, `UPDATE scenarios SET content = $1 WHERE id = $2`, doc, id)
	if err != nil {
		return fmt.Errorf("update scenario content: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scenario %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a scenario; sessions linking to it keep a NULL scenario_id
func (r *PostgresScenarioRepository) Delete(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scenario %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
