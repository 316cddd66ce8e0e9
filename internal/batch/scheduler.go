package batch

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler drives the synchronization job on a fixed interval. It runs once
// immediately on start, then on every tick until stopped.
type Scheduler struct {
	Job      *SyncJob
	Interval time.Duration

	logger *zap.Logger
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler(job *SyncJob, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Job:      job,
		Interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticker = time.NewTicker(s.Interval)
	s.wg.Add(1)

	go s.run()

	s.logger.Info("synchronization scheduler started", zap.Duration("interval", s.Interval))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.logger.Info("synchronization scheduler stopped")
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.runOnce()

	for {
		select {
		case <-s.ticker.C:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) runOnce() {
	if _, err := s.Job.RunCycle(); err != nil {
		s.logger.Error("synchronization cycle failed", zap.Error(err))
	}
}
