package implementation

import (
	"context"
	"errors"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/mapper"
	"chargeflow-be/internal/model"
	"chargeflow-be/internal/repository/contract"
	"chargeflow-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageTemplateRepository(db *gorm.DB) contract.MessageTemplateRepository {
	return &MessageTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageTemplateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageTemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MessageTemplate, error) {
	var m model.MessageTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TemplateToEntity(&m), nil
}

func (r *MessageTemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MessageTemplate, error) {
	var models []*model.MessageTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.MessageTemplate, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TemplateToEntity(m)
	}
	return entities, nil
}
