package app

import (
	"context"
	"time"
)

// HoldSweeper интерфейс сервиса, фиксирующего истёкшие удержания
type HoldSweeper interface {
	SweepExpiredHolds(ctx context.Context) (int64, error)
}

// SweeperMetrics бизнес-метрики sweeper-а, nil-safe при выключенных метриках
type SweeperMetrics interface {
	AddHoldsExpired(n int64)
}

// Sweeper фоновая задача, периодически переводящая просроченные удержания
// в статус expired. Выдача доступности корректна и без него (ленивое
// истечение при чтении), sweeper лишь фиксирует статус в БД
type Sweeper struct {
	service  HoldSweeper
	metrics  SweeperMetrics
	interval time.Duration
	logger   Logger
	stopChan chan struct{}
}

// NewSweeper создаёт новый sweeper
func NewSweeper(service HoldSweeper, metrics SweeperMetrics, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		service:  service,
		metrics:  metrics,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую задачу
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting hold sweeper, interval=%s", s.interval)
	go s.run(ctx)
}

// Stop останавливает фоновую задачу
func (s *Sweeper) Stop() {
	s.logger.Info("Stopping hold sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	// Первый проход сразу при старте
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Hold sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Hold sweeper cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.service.SweepExpiredHolds(ctx)
	if err != nil {
		s.logger.Error("Hold sweeper pass failed: %v", err)
		return
	}

	if expired > 0 {
		s.metrics.AddHoldsExpired(expired)
		s.logger.Info("Hold sweeper pass: %d holds expired", expired)
	}
}
