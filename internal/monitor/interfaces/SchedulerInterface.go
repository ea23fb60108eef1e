package interfaces

import (
	"context"
	"mindmate/internal/models"
	"time"
)

type SchedulerInterface interface {
	Init()
	Stop()
	Check(ctx context.Context) models.HealthStatus
	Status() (models.HealthStatus, time.Time)
}
