package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
)

// PostgresNPCRepository implements the NPCRepository interface
type PostgresNPCRepository struct {
	pool *pgxpool.Pool
}

// NewNPCRepository creates a new NPC repository
func NewNPCRepository(config *RepositoryConfig) repositories.NPCRepository {
	return &PostgresNPCRepository{pool: config.Pool}
}

const npcColumns = `id, created_at, name, description, campaign_id, user_id, image_url, COALESCE(traits, '[]'::jsonb)`

func scanNPC(row rowScanner) (*models.NPC, error) {
	var n models.NPC
	if err := row.Scan(&n.ID, &n.CreatedAt, &n.Name, &n.Description, &n.CampaignID, &n.UserID, &n.ImageURL, &n.Traits); err != nil {
		return nil, err
	}
	if n.Traits == nil {
		n.Traits = []models.Trait{}
	}
	return &n, nil
}

func nonNilTraits(traits []models.Trait) []models.Trait {
	if traits == nil {
		return []models.Trait{}
	}
	return traits
}

// Create inserts an NPC
func (r *PostgresNPCRepository) Create(ctx context.Context, npc *models.NPC) error {
	query := `
		INSERT INTO npcs (name, description, campaign_id, user_id, image_url, traits)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		npc.Name,
		npc.Description,
		npc.CampaignID,
		npc.UserID,
		npc.ImageURL,
		nonNilTraits(npc.Traits),
	).Scan(&npc.ID, &npc.CreatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("campaign %s: %w", npc.CampaignID, domain.ErrNotFound)
		}
		return fmt.Errorf("create npc: %w", err)
	}
	return nil
}

// GetByID retrieves an NPC by ID
func (r *PostgresNPCRepository) GetByID(ctx context.Context, id string) (*models.NPC, error) {
	query := `SELECT ` + npcColumns + ` FROM npcs WHERE id = $1`

	npc, err := scanNPC(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapRowError(err, "npc", id)
	}
	return npc, nil
}

// ListByCampaign retrieves a campaign's NPCs, newest first
func (r *PostgresNPCRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.NPC, error) {
	query := `SELECT ` + npcColumns + ` FROM npcs WHERE campaign_id = $1 ORDER BY created_at DESC`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list npcs: %w", err)
	}
	defer rows.Close()

	npcs := []models.NPC{}
	for rows.Next() {
		n, err := scanNPC(rows)
		if err != nil {
			return nil, fmt.Errorf("scan npc: %w", err)
		}
		npcs = append(npcs, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate npcs: %w", err)
	}
	return npcs, nil
}

// Update writes the editable NPC fields
func (r *PostgresNPCRepository) Update(ctx context.Context, npc *models.NPC) error {
	query := `UPDATE npcs SET name = $1, description = $2, image_url = $3, traits = $4 WHERE id = $5`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		npc.Name,
		npc.Description,
		npc.ImageURL,
		nonNilTraits(npc.Traits),
		npc.ID,
	)
	if err != nil {
		return fmt.Errorf("update npc: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("npc %s: %w", npc.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an NPC. Sections that copied it keep their text and link id.
func (r *PostgresNPCRepository) Delete(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, `DELETE FROM npcs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete npc: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("npc %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
