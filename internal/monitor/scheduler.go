package monitor

import (
	"context"
	"github.com/roylee0704/gron"
	"mindmate/internal/models"
	"mindmate/internal/monitor/interfaces"
	"mindmate/internal/providers"
	"mindmate/internal/services"
	"mindmate/internal/structures"
	"sync"
	"time"
)

// Scheduler polls the backend health on a fixed interval and keeps the last
// answer for the local /health endpoint.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.OperationServiceInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu        sync.RWMutex
	status    models.HealthStatus
	checkedAt time.Time
}

// Init starts polling. The first check runs in the background so a slow
// backend never holds up the caller.
func (s *Scheduler) Init() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Check(ctx)
	}()

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Monitor.Interval), func() {
		s.Check(ctx)
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		s.cron.Stop()
	}
	s.wg.Wait()
}

// Check runs one health probe. Overlapping ticks are serialized.
func (s *Scheduler) Check(ctx context.Context) models.HealthStatus {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if s.config.Backend.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Backend.Timeout)
		defer cancel()
	}
	status := s.service.Health(ctx)

	s.mu.Lock()
	previous := s.status
	s.status = status
	s.checkedAt = time.Now()
	s.mu.Unlock()

	if status != previous {
		if status == models.HealthOK {
			s.logger.Infof(providers.TypeApp, "Backend %s is %s", s.config.Backend.BaseURL, status)
		} else {
			s.logger.Warnf(providers.TypeApp, "Backend %s is %s", s.config.Backend.BaseURL, status)
		}
	}
	return status
}

// Status is the last polled status; offline until the first check.
func (s *Scheduler) Status() (models.HealthStatus, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.checkedAt.IsZero() {
		return models.HealthOffline, time.Time{}
	}
	return s.status, s.checkedAt
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.OperationServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
	}
}
