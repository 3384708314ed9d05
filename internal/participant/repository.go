package participant

import (
	"context"
	"errors"

	"github.com/sharath018/secret-santa-backend/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *models.Participant) error
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*models.Participant, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Participant, error)
	ListAccepted(ctx context.Context, eventID string) ([]models.Participant, error)
	Update(ctx context.Context, eventID, email string, fields map[string]interface{}) error
	// Remove deletes the participant and every assignment of the event in
	// which they give or receive. It returns how many assignments were voided.
	Remove(ctx context.Context, eventID, email string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *models.Participant) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyJoined
	}
	return err
}

func (r *repository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*models.Participant, error) {
	var p models.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND email = ?", eventID, email).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

func (r *repository) ListAccepted(ctx context.Context, eventID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, models.StatusAccepted).
		Find(&participants).Error
	return participants, err
}

func (r *repository) Update(ctx context.Context, eventID, email string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("event_id = ? AND email = ?", eventID, email).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, eventID, email string) (int64, error) {
	var voided int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("event_id = ? AND email = ?", eventID, email).Delete(&models.Participant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrParticipantNotFound
		}

		res = tx.Where("event_id = ? AND (giver_email = ? OR receiver_email = ?)", eventID, email, email).
			Delete(&models.Assignment{})
		if res.Error != nil {
			return res.Error
		}
		voided = res.RowsAffected
		return nil
	})
	return voided, err
}
