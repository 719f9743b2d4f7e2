package service

import (
	"context"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
	"github.com/ripu1821/mobile-auth-service/internal/repository"
)

type UpdateDeviceSessionInput struct {
	DeviceTokenFCM  string `json:"device_token_fcm,omitempty"`
	DeviceModel     string `json:"device_model,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty"`
	OSVersion       string `json:"os_version,omitempty"`
	AppVersion      string `json:"app_version,omitempty"`
	ForceLogout     *bool  `json:"force_logout,omitempty"`
}

type DeviceServiceInterface interface {
	GetByID(ctx context.Context, id uint) (*domain.DeviceSession, error)
	List(ctx context.Context) ([]domain.DeviceSession, error)
	UpdateByID(ctx context.Context, id uint, input UpdateDeviceSessionInput) (*domain.DeviceSession, error)
	DeleteByID(ctx context.Context, id uint) error
}

type DeviceService struct {
	sessions repository.DeviceSessionRepository
}

func NewDeviceService(sessions repository.DeviceSessionRepository) *DeviceService {
	return &DeviceService{sessions: sessions}
}

func (s *DeviceService) GetByID(_ context.Context, id uint) (*domain.DeviceSession, error) {
	return s.sessions.FindByID(id)
}

func (s *DeviceService) List(_ context.Context) ([]domain.DeviceSession, error) {
	return s.sessions.List()
}

func (s *DeviceService) UpdateByID(_ context.Context, id uint, input UpdateDeviceSessionInput) (*domain.DeviceSession, error) {
	fields := map[string]any{
		"device_token_fcm": input.DeviceTokenFCM,
		"device_model":     input.DeviceModel,
		"operating_system": input.OperatingSystem,
		"os_version":       input.OSVersion,
		"app_version":      input.AppVersion,
	}
	if input.ForceLogout != nil {
		fields["force_logout"] = *input.ForceLogout
	}
	return s.sessions.UpdateByID(id, fields)
}

func (s *DeviceService) DeleteByID(_ context.Context, id uint) error {
	return s.sessions.DeleteByID(id)
}
