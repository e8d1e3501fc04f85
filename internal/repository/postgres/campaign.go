package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
)

const campaignColumns = `
	c.id, c.created_at, c.title, c.description, c.user_id, c.image_url,
	COALESCE(c.members, '[]'::jsonb), COALESCE(c.imported_scenarios, '[]'::jsonb)`

// visibleToUser matches campaigns owned by $1 or listing $2 as a member email.
const visibleToUser = `(c.user_id = $1 OR COALESCE(c.members, '[]'::jsonb) @> jsonb_build_array(jsonb_build_object('email', $2::text)))`

// PostgresCampaignRepository implements the CampaignRepository interface
type PostgresCampaignRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(config *RepositoryConfig) repositories.CampaignRepository {
	return &PostgresCampaignRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(
		&c.ID,
		&c.CreatedAt,
		&c.Title,
		&c.Description,
		&c.UserID,
		&c.ImageURL,
		&c.Members,
		&c.ImportedScenarios,
	)
	if err != nil {
		return nil, err
	}
	if c.Members == nil {
		c.Members = []models.Member{}
	}
	if c.ImportedScenarios == nil {
		c.ImportedScenarios = []string{}
	}
	return &c, nil
}

// Create inserts a campaign
func (r *PostgresCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (title, description, user_id, image_url, members, imported_scenarios)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		campaign.Title,
		campaign.Description,
		campaign.UserID,
		campaign.ImageURL,
		nonNilMembers(campaign.Members),
		nonNilStrings(campaign.ImportedScenarios),
	).Scan(&campaign.ID, &campaign.CreatedAt)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}

	return nil
}

// GetByID retrieves a campaign by ID
func (r *PostgresCampaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns c WHERE c.id = $1`

	campaign, err := scanCampaign(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapRowError(err, "campaign", id)
	}
	return campaign, nil
}

// GetForUpdate retrieves a campaign and locks the row for the rest of the transaction
func (r *PostgresCampaignRepository) GetForUpdate(ctx context.Context, id string) (*models.Campaign, error) {
	if !repositories.InTx(ctx) {
		return nil, fmt.Errorf("lock campaign %s: no transaction in context", id)
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns c WHERE c.id = $1 FOR UPDATE`

	campaign, err := scanCampaign(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapRowError(err, "campaign", id)
	}
	return campaign, nil
}

// ListVisible retrieves campaigns owned by or shared with a user, newest first
func (r *PostgresCampaignRepository) ListVisible(ctx context.Context, userID, email string) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + `
		FROM campaigns c
		WHERE ` + visibleToUser + `
		ORDER BY c.created_at DESC`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID, email)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}

	return campaigns, nil
}

// Update writes the editable campaign fields
func (r *PostgresCampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	query := `
		UPDATE campaigns
		SET title = $1, description = $2, image_url = $3, imported_scenarios = $4
		WHERE id = $5
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		campaign.Title,
		campaign.Description,
		campaign.ImageURL,
		nonNilStrings(campaign.ImportedScenarios),
		campaign.ID,
	)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", campaign.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateMembers replaces the member list
func (r *PostgresCampaignRepository) UpdateMembers(ctx context.Context, id string, members []models.Member) error {
	query := `UPDATE campaigns SET members = $1 WHERE id = $2`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, nonNilMembers(members), id)
	if err != nil {
		return fmt.Errorf("update campaign members: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a campaign; children are removed by ON DELETE CASCADE
func (r *PostgresCampaignRepository) Delete(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}

	r.logger.Debug("campaign row deleted", "id", id)
	return nil
}

func nonNilMembers(members []models.Member) []models.Member {
	if members == nil {
		return []models.Member{}
	}
	return members
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
