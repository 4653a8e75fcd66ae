package scheduler

import (
	"context"

	"chargeflow-be/internal/config"
	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/pkg/batchlock"
	"chargeflow-be/internal/pkg/logger"
	"chargeflow-be/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the batch engine on cron expressions. Every job run
// takes a distributed lock first so concurrent replicas never run the
// same batch twice.
type Scheduler struct {
	cron    *cron.Cron
	cfg     config.EngineConfig
	locker  batchlock.Locker
	reports service.IReportService
	log     logger.ILogger

	reconciler service.IReconcilerService
	dispatcher service.IDispatcherService
	risk       service.IRiskService
}

func New(
	cfg config.EngineConfig,
	locker batchlock.Locker,
	reconciler service.IReconcilerService,
	dispatcher service.IDispatcherService,
	risk service.IRiskService,
	reports service.IReportService,
	log logger.ILogger,
) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		cfg:        cfg,
		locker:     locker,
		reports:    reports,
		log:        log,
		reconciler: reconciler,
		dispatcher: dispatcher,
		risk:       risk,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.ReconcileCron, func() {
		s.runLocked("payment_reconcile", s.reconciler.ReconcilePayments)
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.DispatchCron, func() {
		s.runLocked("message_dispatch", s.dispatcher.DispatchDue)
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.ScoreCron, func() {
		s.runLocked("risk_score", s.risk.ScoreBatch)
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler", "Batch scheduler started", map[string]interface{}{
		"reconcile": s.cfg.ReconcileCron,
		"dispatch":  s.cfg.DispatchCron,
		"score":     s.cfg.ScoreCron,
	})
	return nil
}

// Stop waits for in-flight jobs before returning.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runLocked(job string, run func(ctx context.Context) (*entity.BatchReport, error)) {
	ctx := context.Background()

	acquired, err := s.locker.TryAcquire(ctx, job, s.cfg.LockTTL)
	if err != nil {
		s.log.Error("scheduler", "Batch lock error", map[string]interface{}{"job": job, "error": err.Error()})
		return
	}
	if !acquired {
		s.log.Info("scheduler", "Batch already running elsewhere, skipping", map[string]interface{}{"job": job})
		return
	}
	defer func() {
		if err := s.locker.Release(ctx, job); err != nil {
			s.log.Warn("scheduler", "Failed to release batch lock", map[string]interface{}{"job": job, "error": err.Error()})
		}
	}()

	report, err := run(ctx)
	if err != nil {
		s.log.Error("scheduler", "Batch run failed", map[string]interface{}{"job": job, "error": err.Error()})
		if report == nil {
			return
		}
	}

	s.reports.Deliver(report)
}
