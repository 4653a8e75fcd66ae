package mapper

import (
	"encoding/json"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/model"

	"gorm.io/datatypes"
)

type CampaignMapper struct{}

func NewCampaignMapper() *CampaignMapper {
	return &CampaignMapper{}
}

func (m *CampaignMapper) ToEntity(c *model.Campaign) *entity.Campaign {
	if c == nil {
		return nil
	}
	var audience entity.TargetAudience
	if len(c.TargetAudience) > 0 {
		// Malformed audience JSON degrades to "all clients" rather than failing the read.
		_ = json.Unmarshal(c.TargetAudience, &audience)
	}
	return &entity.Campaign{
		Id:              c.Id,
		UserId:          c.UserId,
		Name:            c.Name,
		Description:     c.Description,
		TemplateId:      c.TemplateId,
		TargetAudience:  audience,
		ScheduledFor:    c.ScheduledFor,
		Status:          entity.CampaignStatus(c.Status),
		TotalRecipients: c.TotalRecipients,
		SentCount:       c.SentCount,
		DeliveredCount:  c.DeliveredCount,
		FailedCount:     c.FailedCount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *CampaignMapper) ToModel(c *entity.Campaign) *model.Campaign {
	if c == nil {
		return nil
	}
	audienceJSON, _ := json.Marshal(c.TargetAudience)
	return &model.Campaign{
		Id:              c.Id,
		UserId:          c.UserId,
		Name:            c.Name,
		Description:     c.Description,
		TemplateId:      c.TemplateId,
		TargetAudience:  datatypes.JSON(audienceJSON),
		ScheduledFor:    c.ScheduledFor,
		Status:          string(c.Status),
		TotalRecipients: c.TotalRecipients,
		SentCount:       c.SentCount,
		DeliveredCount:  c.DeliveredCount,
		FailedCount:     c.FailedCount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *CampaignMapper) SendToEntity(s *model.CampaignSend) *entity.CampaignSend {
	if s == nil {
		return nil
	}
	return &entity.CampaignSend{
		Id:         s.Id,
		CampaignId: s.CampaignId,
		ClientId:   s.ClientId,
		Phone:      s.Phone,
		Body:       s.Body,
		Status:     entity.MessageStatus(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (m *CampaignMapper) SendToModel(s *entity.CampaignSend) *model.CampaignSend {
	if s == nil {
		return nil
	}
	return &model.CampaignSend{
		Id:         s.Id,
		CampaignId: s.CampaignId,
		ClientId:   s.ClientId,
		Phone:      s.Phone,
		Body:       s.Body,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
