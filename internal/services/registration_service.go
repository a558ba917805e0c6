package services

import (
	"context"

	"negromart_seller/internal/api"
	"negromart_seller/internal/logger"
	"negromart_seller/internal/services/dto"
)

type RegistrationService interface {
	// Submit posts the seller application. It needs no session.
	Submit(ctx context.Context, payload *api.Multipart) (*dto.RegistrationResponse, error)
}

type registrationService struct {
	client *api.Client
}

func NewRegistrationService(client *api.Client) RegistrationService {
	return &registrationService{client: client}
}

func (s *registrationService) Submit(ctx context.Context, payload *api.Multipart) (*dto.RegistrationResponse, error) {
	var res dto.RegistrationResponse
	if err := s.client.PostMultipartNoAuth(ctx, pathRegister, payload, &res); err != nil {
		logger.CtxWarn(ctx, "seller registration rejected", "error", err.Error())
		return nil, err
	}
	logger.CtxInfo(ctx, "seller registration submitted", "files", payload.FileNames())
	return &res, nil
}
