package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/sharath018/secret-santa-backend/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	// Create inserts the event and its organizer participant atomically.
	Create(ctx context.Context, e *models.Event, organizer *models.Participant) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetByJoinCode(ctx context.Context, code string) (*models.Event, error)
	JoinCodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes the event with its participants, assignments and messages.
	Delete(ctx context.Context, id string) error
	ListByParticipantEmail(ctx context.Context, email string) ([]EventSummary, error)
	ListParticipants(ctx context.Context, eventID string) ([]models.Participant, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ===========================
// 🎯 Create Event
func (r *repository) Create(ctx context.Context, e *models.Event, organizer *models.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		if err := tx.Create(organizer).Error; err != nil {
			return fmt.Errorf("insert organizer: %w", err)
		}
		return nil
	})
}

// ===========================
// 🔍 Get Event By ID
func (r *repository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 🔍 Get Event By Join Code
func (r *repository) GetByJoinCode(ctx context.Context, code string) (*models.Event, error) {
	var e models.Event
	err := r.db.WithContext(ctx).Where("join_code = ?", code).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidJoinCode
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) JoinCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).Where("join_code = ?", code).Count(&count).Error
	return count > 0, err
}

// ===========================
// 🛠 Update Event
func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ===========================
// ❌ Delete Event (cascades to everything the event owns)
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&models.Participant{}, &models.Assignment{}, &models.Message{}} {
			if err := tx.Where("event_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("delete %T: %w", child, err)
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.Event{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEventNotFound
		}
		return nil
	})
}

// ===========================
// 📄 Events where email is an accepted participant, newest first
func (r *repository) ListByParticipantEmail(ctx context.Context, email string) ([]EventSummary, error) {
	var rows []EventSummary
	err := r.db.WithContext(ctx).
		Table("events e").
		Select(`e.*, p.is_organizer,
			(SELECT COUNT(*) FROM participants ap WHERE ap.event_id = e.id AND ap.status = ?) AS participant_count`,
			models.StatusAccepted).
		Joins("JOIN participants p ON p.event_id = e.id").
		Where("p.email = ? AND p.status = ?", email, models.StatusAccepted).
		Order("e.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListParticipants(ctx context.Context, eventID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}
