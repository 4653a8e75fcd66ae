package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chargeflow-be/internal/model"
	"chargeflow-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppSettingRepositoryImpl struct {
	db *gorm.DB
}

func NewAppSettingRepository(db *gorm.DB) contract.AppSettingRepository {
	return &AppSettingRepositoryImpl{db: db}
}

func (r *AppSettingRepositoryImpl) Get(ctx context.Context, key string) (string, error) {
	var m model.AppSetting
	if err := r.db.WithContext(ctx).First(&m, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.Value, nil
}

func (r *AppSettingRepositoryImpl) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model.AppSetting{Key: key, Value: value}).Error
}

func (r *AppSettingRepositoryImpl) SetCronLastRun(ctx context.Context, job string, at time.Time) error {
	return r.Set(ctx, fmt.Sprintf("cron_last_run_%s", job), at.Format(time.RFC3339))
}
