package implementation

import (
	"context"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/mapper"
	"chargeflow-be/internal/model"
	"chargeflow-be/internal/repository/contract"
	"chargeflow-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageHistoryRepository(db *gorm.DB) contract.MessageHistoryRepository {
	return &MessageHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageHistoryRepositoryImpl) Create(ctx context.Context, history *entity.MessageHistory) error {
	m := r.mapper.HistoryToModel(history)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*history = *r.mapper.HistoryToEntity(m)
	return nil
}

func (r *MessageHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MessageHistory, error) {
	var models []*model.MessageHistory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.MessageHistory, len(models))
	for i, m := range models {
		entities[i] = r.mapper.HistoryToEntity(m)
	}
	return entities, nil
}
