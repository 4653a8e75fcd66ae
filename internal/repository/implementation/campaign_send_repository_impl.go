package implementation

import (
	"context"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/mapper"
	"chargeflow-be/internal/model"
	"chargeflow-be/internal/repository/contract"
	"chargeflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignSendRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CampaignMapper
}

func NewCampaignSendRepository(db *gorm.DB) contract.CampaignSendRepository {
	return &CampaignSendRepositoryImpl{
		db:     db,
		mapper: mapper.NewCampaignMapper(),
	}
}

func (r *CampaignSendRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CampaignSendRepositoryImpl) CreateBatch(ctx context.Context, sends []*entity.CampaignSend) error {
	if len(sends) == 0 {
		return nil
	}
	models := make([]*model.CampaignSend, len(sends))
	for i, s := range sends {
		models[i] = r.mapper.SendToModel(s)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*sends[i] = *r.mapper.SendToEntity(m)
	}
	return nil
}

func (r *CampaignSendRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CampaignSend, error) {
	var models []*model.CampaignSend
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CampaignSend, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SendToEntity(m)
	}
	return entities, nil
}

func (r *CampaignSendRepositoryImpl) CountByStatus(ctx context.Context, campaignID uuid.UUID, status entity.MessageStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CampaignSend{}).
		Where("campaign_id = ? AND status = ?", campaignID, string(status)).
		Count(&count).Error
	return count, err
}

func (r *CampaignSendRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.CampaignSend{}).
		Where("id = ? AND status = ?", id, string(entity.MessageStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
