package mapper

import (
	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/model"
)

type ClientMapper struct{}

func NewClientMapper() *ClientMapper {
	return &ClientMapper{}
}

func (m *ClientMapper) ToEntity(c *model.Client) *entity.Client {
	if c == nil {
		return nil
	}
	return &entity.Client{
		Id:                 c.Id,
		UserId:             c.UserId,
		Name:               c.Name,
		Phone:              c.Phone,
		Email:              c.Email,
		Status:             entity.ClientStatus(c.Status),
		SubscriptionAmount: c.SubscriptionAmount,
		DueDate:            c.DueDate,
		LastPaymentDate:    c.LastPaymentDate,
		RiskScore:          c.RiskScore,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (m *ClientMapper) ToModel(c *entity.Client) *model.Client {
	if c == nil {
		return nil
	}
	return &model.Client{
		Id:                 c.Id,
		UserId:             c.UserId,
		Name:               c.Name,
		Phone:              c.Phone,
		Email:              c.Email,
		Status:             string(c.Status),
		SubscriptionAmount: c.SubscriptionAmount,
		DueDate:            c.DueDate,
		LastPaymentDate:    c.LastPaymentDate,
		RiskScore:          c.RiskScore,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (m *ClientMapper) InteractionToModel(i *entity.ClientInteraction) *model.ClientInteraction {
	if i == nil {
		return nil
	}
	return &model.ClientInteraction{
		Id:          i.Id,
		UserId:      i.UserId,
		ClientId:    i.ClientId,
		Type:        string(i.Type),
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
	}
}

func (m *ClientMapper) InteractionToEntity(i *model.ClientInteraction) *entity.ClientInteraction {
	if i == nil {
		return nil
	}
	return &entity.ClientInteraction{
		Id:          i.Id,
		UserId:      i.UserId,
		ClientId:    i.ClientId,
		Type:        entity.InteractionType(i.Type),
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
	}
}
