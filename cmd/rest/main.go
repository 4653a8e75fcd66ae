package main

import (
	"context"
	"log"

	"chargeflow-be/internal/bootstrap"
	"chargeflow-be/internal/config"
	"chargeflow-be/internal/scheduler"
	"chargeflow-be/internal/server"
	"chargeflow-be/internal/tracer"
	"chargeflow-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting confirmation consumer...")
		if err := container.NotifierService.StartConsumer(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	sched := scheduler.New(
		cfg.Engine,
		container.BatchLocker,
		container.ReconcilerService,
		container.DispatcherService,
		container.RiskService,
		container.ReportService,
		container.Logger,
	)
	if err := sched.Start(); err != nil {
		log.Panicf("Unable to start batch scheduler: %v", err)
	}
	defer sched.Stop()

	// 5. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
