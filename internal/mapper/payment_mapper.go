package mapper

import (
	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:            p.Id,
		UserId:        p.UserId,
		PlanId:        p.PlanId,
		Amount:        p.Amount,
		Status:        entity.PaymentStatus(p.Status),
		PaymentMethod: p.PaymentMethod,
		GatewayRef:    p.GatewayRef,
		ExpiresAt:     p.ExpiresAt,
		SettledAt:     p.SettledAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:            p.Id,
		UserId:        p.UserId,
		PlanId:        p.PlanId,
		Amount:        p.Amount,
		Status:        string(p.Status),
		PaymentMethod: p.PaymentMethod,
		GatewayRef:    p.GatewayRef,
		ExpiresAt:     p.ExpiresAt,
		SettledAt:     p.SettledAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *PaymentMapper) ClientPaymentToEntity(p *model.ClientPayment) *entity.ClientPayment {
	if p == nil {
		return nil
	}
	return &entity.ClientPayment{
		Id:            p.Id,
		UserId:        p.UserId,
		ClientId:      p.ClientId,
		Amount:        p.Amount,
		Status:        entity.PaymentStatus(p.Status),
		PaymentMethod: p.PaymentMethod,
		GatewayRef:    p.GatewayRef,
		ExpiresAt:     p.ExpiresAt,
		SettledAt:     p.SettledAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *PaymentMapper) ClientPaymentToModel(p *entity.ClientPayment) *model.ClientPayment {
	if p == nil {
		return nil
	}
	return &model.ClientPayment{
		Id:            p.Id,
		UserId:        p.UserId,
		ClientId:      p.ClientId,
		Amount:        p.Amount,
		Status:        string(p.Status),
		PaymentMethod: p.PaymentMethod,
		GatewayRef:    p.GatewayRef,
		ExpiresAt:     p.ExpiresAt,
		SettledAt:     p.SettledAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
