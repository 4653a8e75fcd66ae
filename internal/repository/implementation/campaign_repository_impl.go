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

type CampaignRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CampaignMapper
}

func NewCampaignRepository(db *gorm.DB) contract.CampaignRepository {
	return &CampaignRepositoryImpl{
		db:     db,
		mapper: mapper.NewCampaignMapper(),
	}
}

func (r *CampaignRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CampaignRepositoryImpl) Create(ctx context.Context, campaign *entity.Campaign) error {
	m := r.mapper.ToModel(campaign)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*campaign = *r.mapper.ToEntity(m)
	return nil
}

func (r *CampaignRepositoryImpl) Update(ctx context.Context, campaign *entity.Campaign) error {
	m := r.mapper.ToModel(campaign)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *CampaignRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Campaign, error) {
	var m model.Campaign
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CampaignRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Campaign, error) {
	var models []*model.Campaign
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Campaign, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CampaignRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.CampaignStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Campaign{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CampaignRepositoryImpl) SetRecipientCount(ctx context.Context, id uuid.UUID, total int) error {
	return r.db.WithContext(ctx).
		Model(&model.Campaign{}).
		Where("id = ?", id).
		Update("total_recipients", total).Error
}

func (r *CampaignRepositoryImpl) IncrementCounters(ctx context.Context, id uuid.UUID, sent, delivered, failed int) error {
	return r.db.WithContext(ctx).
		Model(&model.Campaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sent_count":      gorm.Expr("sent_count + ?", sent),
			"delivered_count": gorm.Expr("delivered_count + ?", delivered),
			"failed_count":    gorm.Expr("failed_count + ?", failed),
		}).Error
}
