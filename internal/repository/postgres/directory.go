package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
)

// PostgresDirectoryRepository implements the DirectoryRepository interface
type PostgresDirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new user directory repository
func NewDirectoryRepository(config *RepositoryConfig) repositories.DirectoryRepository {
	return &PostgresDirectoryRepository{pool: config.Pool}
}

// ListAllUsers calls get_all_users(), which reads the auth schema
func (r *PostgresDirectoryRepository) ListAllUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx,
		`SELECT id, email, username, avatar_url FROM get_all_users() ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("call get_all_users: %w", err)
	}
	defer rows.Close()

	users := []models.DirectoryUser{}
	for rows.Next() {
		var u models.DirectoryUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan directory user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get_all_users: %w", err)
	}
	return users, nil
}

// ListProfilesWithEmail reads profiles that have an email address
func (r *PostgresDirectoryRepository) ListProfilesWithEmail(ctx context.Context) ([]models.Profile, error) {
	query := `
		SELECT id, created_at, username, avatar_url, email
		FROM profiles
		WHERE email IS NOT NULL AND email <> ''
		ORDER BY email
	`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.Username, &p.AvatarURL, &p.Email); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

// UpsertProfile creates or refreshes a profile row
func (r *PostgresDirectoryRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, username, avatar_url, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
		    avatar_url = EXCLUDED.avatar_url,
		    email = EXCLUDED.email
		RETURNING created_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		profile.ID, profile.Username, profile.AvatarURL, profile.Email,
	).Scan(&profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", profile.ID, err)
	}
	return nil
}
