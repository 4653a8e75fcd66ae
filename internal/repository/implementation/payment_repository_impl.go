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

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var m model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var models []*model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Payment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PaymentRepositoryImpl) FindPending(ctx context.Context, now time.Time) ([]*entity.Payment, error) {
	return r.FindAll(ctx,
		specification.PendingNotExpired{Now: now},
		specification.OrderBy{Field: "created_at"},
	)
}

func (r *PaymentRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("status = ? AND expires_at <= ?", string(entity.PaymentStatusPending), now).
		Update("status", string(entity.PaymentStatusCancelled))
	return result.RowsAffected, result.Error
}

// TransitionStatus is the single write path out of pending. The status guard
// in the WHERE clause makes the transition a compare-and-set, so overlapping
// batch runs cannot resolve the same payment twice.
func (r *PaymentRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, settledAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": string(status)}
	if settledAt != nil {
		updates["settled_at"] = *settledAt
	}
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, string(entity.PaymentStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
