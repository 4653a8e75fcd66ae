package contract

import (
	"context"
	"time"
)

type AppSettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error

	// SetCronLastRun records the completion time of a batch job.
	SetCronLastRun(ctx context.Context, job string, at time.Time) error
}
