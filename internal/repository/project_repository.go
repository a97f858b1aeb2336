package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/api/internal/models"
)

const projectColumns = `
	id, title, url, description, tech_stack, "order", is_visible,
	likes_count, rating_count, rating_sum,
	preview_image, preview_images, preview_title, preview_description,
	preview_domain, preview_fetched_at, created_at, updated_at
`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// PreviewUpdate carries a freshly synchronized preview block. All fields are
// written together with the fetch timestamp.
type PreviewUpdate struct {
	Image       *string
	Images      []string
	Title       *string
	Description *string
	Domain      *string
	FetchedAt   time.Time
}

// ProjectPatch is a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Title         *string
	URL           *string
	Description   *string
	TechStack     []string
	Order         *int
	IsVisible     *bool
	PreviewImages []string
	Preview       *PreviewUpdate
}

func (r *ProjectRepository) List(ctx context.Context, onlyVisible bool) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if onlyVisible {
		query += ` WHERE is_visible = TRUE`
	}
	query += ` ORDER BY "order" ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		if schemaMissing(err) {
			return []models.Project{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}
	return project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project models.Project) error {
	const query = `
		INSERT INTO projects (
			id, title, url, description, tech_stack, "order", is_visible,
			preview_image, preview_images, preview_title, preview_description,
			preview_domain, preview_fetched_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		project.ID,
		project.Title,
		project.URL,
		project.Description,
		project.TechStack,
		project.Order,
		project.IsVisible,
		project.PreviewImage,
		project.PreviewImages,
		project.PreviewTitle,
		project.PreviewDescription,
		project.PreviewDomain,
		project.PreviewFetchedAt,
	)
	return err
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch ProjectPatch) (models.Project, error) {
	set := make([]string, 0, 12)
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.URL != nil {
		add("url", *patch.URL)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.TechStack != nil {
		add("tech_stack", patch.TechStack)
	}
	if patch.Order != nil {
		add(`"order"`, *patch.Order)
	}
	if patch.IsVisible != nil {
		add("is_visible", *patch.IsVisible)
	}
	// A full preview block supersedes a standalone image-list edit; assigning
	// preview_images twice in one statement is a postgres error.
	if patch.PreviewImages != nil && patch.Preview == nil {
		add("preview_images", patch.PreviewImages)
	}
	if p := patch.Preview; p != nil {
		add("preview_image", p.Image)
		add("preview_images", p.Images)
		add("preview_title", p.Title)
		add("preview_description", p.Description)
		add("preview_domain", p.Domain)
		add("preview_fetched_at", p.FetchedAt)
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	set = append(set, "updated_at = NOW()")
	query := fmt.Sprintf(
		`UPDATE projects SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), projectColumns,
	)

	project, err := scanProject(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}
	return project, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// ApplyEngagement increments the engagement counters in a single statement
// so the arithmetic happens inside the database. Reading a counter into the
// application and writing it back would lose concurrent updates; this form
// cannot. The fresh row travels back via RETURNING.
func (r *ProjectRepository) ApplyEngagement(ctx context.Context, id string, like bool, rating int) (models.EngagementCounters, error) {
	const query = `
		UPDATE projects SET
			likes_count  = likes_count  + CASE WHEN $2 THEN 1 ELSE 0 END,
			rating_count = rating_count + CASE WHEN $3 > 0 THEN 1 ELSE 0 END,
			rating_sum   = rating_sum   + CASE WHEN $3 > 0 THEN $3 ELSE 0 END,
			updated_at   = NOW()
		WHERE id = $1
		RETURNING id, likes_count, rating_count, rating_sum
	`

	row := r.pool.QueryRow(ctx, query, id, like, rating)
	var counters models.EngagementCounters
	if err := row.Scan(
		&counters.ProjectID,
		&counters.LikesCount,
		&counters.RatingCount,
		&counters.RatingSum,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.EngagementCounters{}, ErrProjectNotFound
		}
		return models.EngagementCounters{}, err
	}
	return counters, nil
}

func scanProject(row pgx.Row) (models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.URL,
		&project.Description,
		&project.TechStack,
		&project.Order,
		&project.IsVisible,
		&project.LikesCount,
		&project.RatingCount,
		&project.RatingSum,
		&project.PreviewImage,
		&project.PreviewImages,
		&project.PreviewTitle,
		&project.PreviewDescription,
		&project.PreviewDomain,
		&project.PreviewFetchedAt,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	return project, err
}
