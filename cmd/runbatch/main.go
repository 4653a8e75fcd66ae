package main

import (
	"context"
	"flag"
	"log"
	"time"

	"chargeflow-be/internal/bootstrap"
	"chargeflow-be/internal/config"
	"chargeflow-be/internal/entity"
	"chargeflow-be/pkg/database"

	"github.com/fatih/color"
)

// One-shot batch runner for operators and cron-less deployments.
//
//	go run ./cmd/runbatch -job reconcile
//	go run ./cmd/runbatch -job all
func main() {
	job := flag.String("job", "all", "batch to run: reconcile | dispatch | score | all")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	ctx := context.Background()

	type batch struct {
		name string
		run  func(context.Context) (*entity.BatchReport, error)
	}

	var batches []batch
	switch *job {
	case "reconcile":
		batches = []batch{{"payment_reconcile", container.ReconcilerService.ReconcilePayments}}
	case "dispatch":
		batches = []batch{{"message_dispatch", container.DispatcherService.DispatchDue}}
	case "score":
		batches = []batch{{"risk_score", container.RiskService.ScoreBatch}}
	case "all":
		batches = []batch{
			{"payment_reconcile", container.ReconcilerService.ReconcilePayments},
			{"message_dispatch", container.DispatcherService.DispatchDue},
			{"risk_score", container.RiskService.ScoreBatch},
		}
	default:
		log.Fatalf("Unknown job %q (want reconcile, dispatch, score or all)", *job)
	}

	exitErr := false
	for _, b := range batches {
		color.Cyan("▶ Running %s...", b.name)

		report, err := b.run(ctx)
		if err != nil {
			color.Red("✗ %s failed: %v", b.name, err)
			exitErr = true
			if report == nil {
				continue
			}
		}

		printReport(report)
		container.ReportService.Deliver(report)
	}

	if exitErr {
		log.Fatal("one or more batches failed")
	}
}

func printReport(r *entity.BatchReport) {
	bold := color.New(color.Bold)
	bold.Printf("  %s", r.Job)
	color.New(color.Faint).Printf(" (%s)\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))

	color.White("  checked: %d", r.Checked)
	if r.Approved > 0 {
		color.Green("  approved: %d", r.Approved)
	}
	if r.Expired > 0 {
		color.Yellow("  expired: %d", r.Expired)
	}
	if r.Sent > 0 {
		color.Green("  sent: %d", r.Sent)
	}
	if r.Updated > 0 {
		color.Green("  updated: %d", r.Updated)
	}
	if r.Failed > 0 {
		color.Red("  failed: %d", r.Failed)
	}
	for _, e := range r.Errors {
		color.Red("  error: %s", e)
	}
}
