package mapper

import (
	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                u.Id,
		FullName:          u.FullName,
		Email:             u.Email,
		Role:              u.Role,
		WhatsappInstance:  u.WhatsappInstance,
		WhatsappConnected: u.WhatsappConnected,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                u.Id,
		FullName:          u.FullName,
		Email:             u.Email,
		Role:              u.Role,
		WhatsappInstance:  u.WhatsappInstance,
		WhatsappConnected: u.WhatsappConnected,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
