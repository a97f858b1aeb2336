package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/api/internal/models"
)

type VisitorLogRepository struct {
	pool *pgxpool.Pool
}

func NewVisitorLogRepository(pool *pgxpool.Pool) *VisitorLogRepository {
	return &VisitorLogRepository{pool: pool}
}

func (r *VisitorLogRepository) Insert(ctx context.Context, log models.VisitorLog) error {
	const query = `
		INSERT INTO visitor_logs (id, path, referrer, country, city, user_agent, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.Path,
		log.Referrer,
		log.Country,
		log.City,
		log.UserAgent,
		log.IP,
	)
	if err != nil && schemaMissing(err) {
		// Visitor logging is advisory; a missing table must not surface
		// anywhere near a page view.
		return nil
	}
	return err
}

// Search returns the latest entries, optionally filtered by a substring
// match on path, referrer or ip. A missing table reads as no traffic.
func (r *VisitorLogRepository) Search(ctx context.Context, q string, limit int) ([]models.VisitorLog, error) {
	query := `
		SELECT id, path, referrer, country, city, user_agent, ip, created_at
		FROM visitor_logs
	`
	args := []any{}
	if q != "" {
		query += ` WHERE path ILIKE $1 OR referrer ILIKE $1 OR ip ILIKE $1`
		args = append(args, "%"+q+"%")
	}
	if limit <= 0 {
		limit = 100
	}
	query += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if schemaMissing(err) {
			return []models.VisitorLog{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	var logs []models.VisitorLog
	for rows.Next() {
		var log models.VisitorLog
		if err := rows.Scan(
			&log.ID,
			&log.Path,
			&log.Referrer,
			&log.Country,
			&log.City,
			&log.UserAgent,
			&log.IP,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// PurgeOlderThan deletes entries past the retention window and reports how
// many were removed.
func (r *VisitorLogRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM visitor_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		if schemaMissing(err) {
			return 0, nil
		}
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
