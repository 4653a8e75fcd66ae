package implementation

import (
	"context"
	"errors"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/mapper"
	"chargeflow-be/internal/model"
	"chargeflow-be/internal/repository/contract"
	"chargeflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduledMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewScheduledMessageRepository(db *gorm.DB) contract.ScheduledMessageRepository {
	return &ScheduledMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *ScheduledMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ScheduledMessageRepositoryImpl) Create(ctx context.Context, message *entity.ScheduledMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScheduledMessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScheduledMessage, error) {
	var m model.ScheduledMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ScheduledMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScheduledMessage, error) {
	var models []*model.ScheduledMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ScheduledMessage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ScheduledMessageRepositoryImpl) FindDue(ctx context.Context, now time.Time) ([]*entity.ScheduledMessage, error) {
	return r.FindAll(ctx,
		specification.StatusIs{Status: string(entity.MessageStatusPending)},
		specification.DueBefore{Now: now},
		specification.OwnerChannelConnected{},
		specification.OrderBy{Field: "scheduled_for"},
	)
}

func (r *ScheduledMessageRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus, sentAt *time.Time, errMsg string) (bool, error) {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if sentAt != nil {
		updates["sent_at"] = *sentAt
	}
	if errMsg != "" {
		updates["error"] = errMsg
	}
	result := r.db.WithContext(ctx).
		Model(&model.ScheduledMessage{}).
		Where("id = ? AND status = ?", id, string(entity.MessageStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
