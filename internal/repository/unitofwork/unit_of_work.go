package unitofwork

import (
	"context"

	"chargeflow-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ClientRepository() contract.ClientRepository
	PaymentRepository() contract.PaymentRepository
	ClientPaymentRepository() contract.ClientPaymentRepository

	ScheduledMessageRepository() contract.ScheduledMessageRepository
	MessageTemplateRepository() contract.MessageTemplateRepository
	MessageHistoryRepository() contract.MessageHistoryRepository

	CampaignRepository() contract.CampaignRepository
	CampaignSendRepository() contract.CampaignSendRepository

	SubscriptionRepository() contract.SubscriptionRepository
	AppSettingRepository() contract.AppSettingRepository
}
