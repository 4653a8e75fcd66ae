package unitofwork

import (
	"context"
	"fmt"

	"chargeflow-be/internal/repository/contract"
	"chargeflow-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ClientRepository() contract.ClientRepository {
	return implementation.NewClientRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentRepository() contract.PaymentRepository {
	return implementation.NewPaymentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ClientPaymentRepository() contract.ClientPaymentRepository {
	return implementation.NewClientPaymentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ScheduledMessageRepository() contract.ScheduledMessageRepository {
	return implementation.NewScheduledMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MessageTemplateRepository() contract.MessageTemplateRepository {
	return implementation.NewMessageTemplateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MessageHistoryRepository() contract.MessageHistoryRepository {
	return implementation.NewMessageHistoryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CampaignRepository() contract.CampaignRepository {
	return implementation.NewCampaignRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CampaignSendRepository() contract.CampaignSendRepository {
	return implementation.NewCampaignSendRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SubscriptionRepository() contract.SubscriptionRepository {
	return implementation.NewSubscriptionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AppSettingRepository() contract.AppSettingRepository {
	return implementation.NewAppSettingRepository(u.getDB())
}
