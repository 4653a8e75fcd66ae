package mapper

import (
	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(s *model.ScheduledMessage) *entity.ScheduledMessage {
	if s == nil {
		return nil
	}
	return &entity.ScheduledMessage{
		Id:           s.Id,
		UserId:       s.UserId,
		ClientId:     s.ClientId,
		TemplateId:   s.TemplateId,
		CampaignId:   s.CampaignId,
		Body:         s.Body,
		Phone:        s.Phone,
		ScheduledFor: s.ScheduledFor,
		Status:       entity.MessageStatus(s.Status),
		SentAt:       s.SentAt,
		Error:        s.Error,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *MessageMapper) ToModel(s *entity.ScheduledMessage) *model.ScheduledMessage {
	if s == nil {
		return nil
	}
	return &model.ScheduledMessage{
		Id:           s.Id,
		UserId:       s.UserId,
		ClientId:     s.ClientId,
		TemplateId:   s.TemplateId,
		CampaignId:   s.CampaignId,
		Body:         s.Body,
		Phone:        s.Phone,
		ScheduledFor: s.ScheduledFor,
		Status:       string(s.Status),
		SentAt:       s.SentAt,
		Error:        s.Error,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *MessageMapper) TemplateToEntity(t *model.MessageTemplate) *entity.MessageTemplate {
	if t == nil {
		return nil
	}
	return &entity.MessageTemplate{
		Id:        t.Id,
		UserId:    t.UserId,
		Name:      t.Name,
		Body:      t.Body,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (m *MessageMapper) HistoryToModel(h *entity.MessageHistory) *model.MessageHistory {
	if h == nil {
		return nil
	}
	return &model.MessageHistory{
		Id:              h.Id,
		UserId:          h.UserId,
		ClientId:        h.ClientId,
		TemplateId:      h.TemplateId,
		PaymentId:       h.PaymentId,
		Body:            h.Body,
		Phone:           h.Phone,
		Status:          string(h.Status),
		VendorMessageId: h.VendorMessageId,
		CreatedAt:       h.CreatedAt,
	}
}

func (m *MessageMapper) HistoryToEntity(h *model.MessageHistory) *entity.MessageHistory {
	if h == nil {
		return nil
	}
	return &entity.MessageHistory{
		Id:              h.Id,
		UserId:          h.UserId,
		ClientId:        h.ClientId,
		TemplateId:      h.TemplateId,
		PaymentId:       h.PaymentId,
		Body:            h.Body,
		Phone:           h.Phone,
		Status:          entity.MessageStatus(h.Status),
		VendorMessageId: h.VendorMessageId,
		CreatedAt:       h.CreatedAt,
	}
}
