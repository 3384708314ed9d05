package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sharath018/secret-santa-backend/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	// CommitDraw flips the event to drawn and stores every assignment as one
	// unit. It fails with ErrAlreadyDrawn, writing nothing, when the event
	// was already drawn.
	CommitDraw(ctx context.Context, eventID string, assignments []models.Assignment, at time.Time) error
	// Reset deletes the event's assignments and clears the drawn flag. It
	// returns the number of assignments removed.
	Reset(ctx context.Context, eventID string, at time.Time) (int64, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Assignment, error)
	// GetByGiver returns nil, nil when the giver has no assignment.
	GetByGiver(ctx context.Context, eventID, giverEmail string) (*models.Assignment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ===========================
// 🎲 Commit Draw
func (r *repository) CommitDraw(ctx context.Context, eventID string, assignments []models.Assignment, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The conditional update is the commit point: only one writer can
		// move is_drawn from false to true.
		res := tx.Model(&models.Event{}).
			Where("id = ? AND is_drawn = ?", eventID, false).
			Updates(map[string]interface{}{"is_drawn": true, "updated_at": at})
		if res.Error != nil {
			return fmt.Errorf("mark event drawn: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyDrawn
		}

		if err := tx.Create(&assignments).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyDrawn
			}
			return fmt.Errorf("insert assignments: %w", err)
		}
		return nil
	})
}

// ===========================
// 🔄 Reset
func (r *repository) Reset(ctx context.Context, eventID string, at time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("event_id = ?", eventID).Delete(&models.Assignment{})
		if res.Error != nil {
			return fmt.Errorf("delete assignments: %w", res.Error)
		}
		deleted = res.RowsAffected

		if err := tx.Model(&models.Event{}).
			Where("id = ?", eventID).
			Updates(map[string]interface{}{"is_drawn": false, "updated_at": at}).Error; err != nil {
			return fmt.Errorf("clear drawn flag: %w", err)
		}
		return nil
	})
	return deleted, err
}

// ===========================
// 📄 Queries
func (r *repository) ListByEvent(ctx context.Context, eventID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("giver_name ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) GetByGiver(ctx context.Context, eventID, giverEmail string) (*models.Assignment, error) {
	var a models.Assignment
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND giver_email = ?", eventID, giverEmail).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
