package service

import (
	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/pkg/logger"
	"chargeflow-be/internal/pkg/mailer"
)

type IReportService interface {
	// Deliver mails the batch summary to the operator. Quiet runs are
	// dropped so the inbox only sees batches that did something.
	Deliver(report *entity.BatchReport)
}

type reportService struct {
	mailer        mailer.IEmailService
	operatorEmail string
	log           logger.ILogger
}

func NewReportService(emailService mailer.IEmailService, operatorEmail string, log logger.ILogger) IReportService {
	return &reportService{
		mailer:        emailService,
		operatorEmail: operatorEmail,
		log:           log,
	}
}

func (s *reportService) Deliver(report *entity.BatchReport) {
	if report == nil || !report.HasActivity() {
		return
	}
	if s.operatorEmail == "" {
		s.log.Debug("report", "No operator email configured, skipping batch report", map[string]interface{}{"job": report.Job})
		return
	}
	if err := s.mailer.SendBatchReport(s.operatorEmail, report); err != nil {
		s.log.Error("report", "Failed to deliver batch report", map[string]interface{}{
			"job":   report.Job,
			"error": err.Error(),
		})
	}
}
