package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"github.com/diegoclair/reminder-bot/internal/domain/entity"
	"github.com/google/uuid"
)

type deliveryRepo struct {
	db dbConn
}

func newDeliveryRepo(db dbConn) contract.DeliveryRepo {
	return &deliveryRepo{db: db}
}

const deliveryColumns = `id, reminder_index, channel_id, scheduled_for, status, error, created_at`

func (r *deliveryRepo) Create(ctx context.Context, delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if delivery.ID == "" {
		delivery.ID = uuid.NewString()
	}
	if delivery.CreatedAt.IsZero() {
		delivery.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		delivery.ID,
		delivery.ReminderIndex,
		delivery.ChannelID,
		delivery.ScheduledFor.UTC(),
		delivery.Status,
		delivery.Error,
		delivery.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}

	return nil
}

func (r *deliveryRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE scheduled_for >= ?
		ORDER BY scheduled_for, reminder_index
	`

	rows, err := r.db.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*entity.Delivery
	for rows.Next() {
		delivery, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, delivery)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deliveries: %w", err)
	}

	return deliveries, nil
}

func (r *deliveryRepo) LastByReminder(ctx context.Context, reminderIndex int) (*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE reminder_index = ?
		ORDER BY scheduled_for DESC, created_at DESC
		LIMIT 1
	`

	delivery, err := scanDelivery(r.db.QueryRowContext(ctx, query, reminderIndex))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return delivery, nil
}

func (r *deliveryRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM deliveries WHERE scheduled_for < ?`

	result, err := r.db.ExecContext(ctx, query, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete deliveries: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return n, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDelivery(row scanner) (*entity.Delivery, error) {
	delivery := &entity.Delivery{}
	err := row.Scan(
		&delivery.ID,
		&delivery.ReminderIndex,
		&delivery.ChannelID,
		&delivery.ScheduledFor,
		&delivery.Status,
		&delivery.Error,
		&delivery.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan delivery: %w", err)
	}

	return delivery, nil
}
