package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateLog(ctx context.Context, log *NotificationLog) error
	UpdateLog(ctx context.Context, log *NotificationLog) error
	ListByEvent(ctx context.Context, eventID string) ([]NotificationLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLog(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) UpdateLog(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).
		Model(&NotificationLog{}).
		Where("id = ?", log.ID).
		Updates(map[string]interface{}{
			"status":     log.Status,
			"error":      log.Error,
			"updated_at": log.UpdatedAt,
		}).Error
}

func (r *repository) ListByEvent(ctx context.Context, eventID string) ([]NotificationLog, error) {
	var logs []NotificationLog
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
