package repository

import (
	"context"
	"time"

	"booking-board/internal/infra"
	"booking-board/internal/infra/db"
)

// NotificationRepository enqueues jobs for the external notification layer.
// Displaced-requester events are written here in the same transaction as the
// override that displaced them.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	const q = `
		INSERT INTO notification_jobs (id, kind, topic, payload, run_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)`

	if _, err := r.db.Exec(ctx, q, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}
