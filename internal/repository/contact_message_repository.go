package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/api/internal/models"
)

type ContactMessageRepository struct {
	pool *pgxpool.Pool
}

func NewContactMessageRepository(pool *pgxpool.Pool) *ContactMessageRepository {
	return &ContactMessageRepository{pool: pool}
}

func (r *ContactMessageRepository) Insert(ctx context.Context, msg models.ContactMessage) error {
	const query = `
		INSERT INTO contact_messages (id, name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Message,
	)
	if err != nil && schemaMissing(err) {
		return ErrPendingMigration
	}
	return err
}

func (r *ContactMessageRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	const query = `
		SELECT id, name, email, phone, message, is_read, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		if schemaMissing(err) {
			return []models.ContactMessage{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var msg models.ContactMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Phone,
			&msg.Message,
			&msg.IsRead,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
