package model

import "time"

// AppSetting is a key/value row for operational bookkeeping, e.g. the last
// time each cron batch ran.
type AppSetting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}
