package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/api/internal/models"
)

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get loads the single settings row. A missing row, table or column reads
// as empty settings so admin pages render before migrations have run.
func (r *SettingsRepository) Get(ctx context.Context) (models.SiteSettings, error) {
	const query = `
		SELECT id, resume_url, resume_updated_at, hero_roles
		FROM site_settings WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, models.SettingsID)
	var settings models.SiteSettings
	if err := row.Scan(
		&settings.ID,
		&settings.ResumeURL,
		&settings.ResumeUpdatedAt,
		&settings.HeroRoles,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || schemaMissing(err) {
			return models.SiteSettings{ID: models.SettingsID, HeroRoles: []string{}}, nil
		}
		return models.SiteSettings{}, err
	}
	if settings.HeroRoles == nil {
		settings.HeroRoles = []string{}
	}
	return settings, nil
}

func (r *SettingsRepository) UpsertResume(ctx context.Context, resumeURL string, updatedAt time.Time) error {
	const query = `
		INSERT INTO site_settings (id, resume_url, resume_updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			resume_url = EXCLUDED.resume_url,
			resume_updated_at = EXCLUDED.resume_updated_at
	`

	_, err := r.pool.Exec(ctx, query, models.SettingsID, resumeURL, updatedAt)
	if err != nil && schemaMissing(err) {
		return ErrPendingMigration
	}
	return err
}

func (r *SettingsRepository) UpsertHeroRoles(ctx context.Context, heroRoles []string) error {
	const query = `
		INSERT INTO site_settings (id, hero_roles)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET hero_roles = EXCLUDED.hero_roles
	`

	if heroRoles == nil {
		heroRoles = []string{}
	}
	_, err := r.pool.Exec(ctx, query, models.SettingsID, heroRoles)
	if err != nil && schemaMissing(err) {
		return ErrPendingMigration
	}
	return err
}
