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

type ClientPaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewClientPaymentRepository(db *gorm.DB) contract.ClientPaymentRepository {
	return &ClientPaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *ClientPaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ClientPaymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ClientPayment, error) {
	var m model.ClientPayment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ClientPaymentToEntity(&m), nil
}

func (r *ClientPaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ClientPayment, error) {
	var models []*model.ClientPayment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ClientPayment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ClientPaymentToEntity(m)
	}
	return entities, nil
}

func (r *ClientPaymentRepositoryImpl) FindPending(ctx context.Context, now time.Time) ([]*entity.ClientPayment, error) {
	return r.FindAll(ctx,
		specification.PendingNotExpired{Now: now},
		specification.OrderBy{Field: "created_at"},
	)
}

func (r *ClientPaymentRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ClientPayment{}).
		Where("status = ? AND expires_at <= ?", string(entity.PaymentStatusPending), now).
		Update("status", string(entity.PaymentStatusCancelled))
	return result.RowsAffected, result.Error
}

func (r *ClientPaymentRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, settledAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": string(status)}
	if settledAt != nil {
		updates["settled_at"] = *settledAt
	}
	result := r.db.WithContext(ctx).
		Model(&model.ClientPayment{}).
		Where("id = ? AND status = ?", id, string(entity.PaymentStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
