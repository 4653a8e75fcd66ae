package bootstrap

import (
	"context"
	"log"
	"time"

	"chargeflow-be/internal/config"
	"chargeflow-be/internal/controller"
	"chargeflow-be/internal/gateway/messaging"
	"chargeflow-be/internal/gateway/payment"
	"chargeflow-be/internal/handler"
	"chargeflow-be/internal/pkg/batchlock"
	"chargeflow-be/internal/pkg/logger"
	"chargeflow-be/internal/pkg/mailer"
	"chargeflow-be/internal/pkg/pacer"
	"chargeflow-be/internal/repository/implementation"
	"chargeflow-be/internal/repository/unitofwork"
	"chargeflow-be/internal/service"

	pkgNats "chargeflow-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CampaignController controller.ICampaignController
	EngineController   controller.IEngineController

	// Background Services (Exposed for main.go to run)
	ReconcilerService service.IReconcilerService
	DispatcherService service.IDispatcherService
	RiskService       service.IRiskService
	ReportService     service.IReportService
	NotifierService   service.INotifierService

	// Notification inbox
	NotificationHandler *handler.NotificationHandler

	BatchLocker batchlock.Locker
	Logger      logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// The engine runs without NATS; events are simply not fanned out.
	var eventPub service.EventPublisher
	if natsPub != nil {
		eventPub = natsPub
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	var locker batchlock.Locker
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, batch runs are unguarded: %v", err)
		locker = batchlock.NewNoopLocker()
	} else {
		locker = batchlock.NewRedisLocker(rdb)
	}

	// 3. Vendor gateways
	paymentGateway := payment.NewMidtransGateway(cfg.Gateway.MidtransServerKey, cfg.Gateway.Production)
	messagingGateway := messaging.NewEvolutionGateway(cfg.Messaging.BaseURL, cfg.Messaging.APIKey)
	connectivity := service.NewConnectivityChecker(messagingGateway, 30*time.Second)

	// 4. Services
	notifierService := service.NewNotifierService(uowFactory, sysLogger)

	reconcilerService := service.NewReconcilerService(
		uowFactory,
		paymentGateway,
		connectivity,
		pacer.NewFixedInterval(cfg.Engine.PaymentPacing),
		notifierService,
		eventPub,
		sysLogger,
	)
	dispatcherService := service.NewDispatcherService(
		uowFactory,
		messagingGateway,
		connectivity,
		pacer.NewFixedInterval(cfg.Engine.MessagePacing),
		sysLogger,
	)
	riskService := service.NewRiskService(uowFactory, eventPub, sysLogger)
	campaignService := service.NewCampaignService(uowFactory, eventPub, sysLogger)
	reportService := service.NewReportService(emailService, cfg.SMTP.OperatorEmail, sysLogger)

	// 5. Notification inbox
	notifRepo := implementation.NewNotificationRepository(db)
	notifLogger := logger.NewIsolatedLogger("logs/notification.log")
	notifService := service.NewNotificationService(notifRepo, natsSub, notifLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, notifLogger)

	return &Container{
		CampaignController: controller.NewCampaignController(campaignService),
		EngineController: controller.NewEngineController(
			reconcilerService,
			dispatcherService,
			riskService,
			reportService,
		),

		ReconcilerService: reconcilerService,
		DispatcherService: dispatcherService,
		RiskService:       riskService,
		ReportService:     reportService,
		NotifierService:   notifierService,

		NotificationHandler: notifHandler,

		BatchLocker: locker,
		Logger:      sysLogger,
	}
}
