package service

import (
	"context"

	"github.com/google/uuid"

	"feedback-service/internal/repository"
)

// DeviceTokenService registers the APNs tokens the notification worker
// pushes new-feedback alerts to.
type DeviceTokenService interface {
	Register(ctx context.Context, userID uuid.UUID, deviceToken string) error
}

type deviceTokenService struct {
	deviceTokenRepo repository.DeviceTokenRepository
}

func NewDeviceTokenService(deviceTokenRepo repository.DeviceTokenRepository) DeviceTokenService {
	return &deviceTokenService{deviceTokenRepo: deviceTokenRepo}
}

func (s *deviceTokenService) Register(ctx context.Context, userID uuid.UUID, deviceToken string) error {
	return s.deviceTokenRepo.Register(ctx, userID, deviceToken)
}
