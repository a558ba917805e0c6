package services

import (
	"context"
	"strings"

	"negromart_seller/internal/api"
	"negromart_seller/internal/logger"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"
	"negromart_seller/internal/validator"
	"negromart_seller/pkg/apperrors"
)

type PaymentService interface {
	// Get returns apperrors.ErrPaymentMethodMissing when none is configured yet.
	Get(ctx context.Context) (*models.PaymentMethod, error)
	// Update validates the active method (checking bank names server-side) and saves it.
	Update(ctx context.Context, pm *models.PaymentMethod) (*models.PaymentMethod, error)
	ValidateBank(ctx context.Context, bankName string) (*dto.ValidateBankResponse, error)
}

type paymentService struct {
	client    *api.Client
	validator *validator.Validator
}

func NewPaymentService(client *api.Client, v *validator.Validator) PaymentService {
	return &paymentService{client: client, validator: v}
}

func (s *paymentService) Get(ctx context.Context) (*models.PaymentMethod, error) {
	var pm models.PaymentMethod
	if err := s.client.GetJSON(ctx, pathPaymentMethod, nil, &pm); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrPaymentMethodMissing
		}
		return nil, err
	}
	return &pm, nil
}

func (s *paymentService) Update(ctx context.Context, pm *models.PaymentMethod) (*models.PaymentMethod, error) {
	if err := s.validator.PaymentMethod("", *pm); err != nil {
		return nil, err
	}

	if pm.Method == models.PaymentBank {
		check, err := s.ValidateBank(ctx, pm.BankName)
		if err != nil {
			return nil, err
		}
		if !check.Valid {
			return nil, apperrors.ValidationError(map[string]string{"bank_name": "Unknown bank"})
		}
		if check.NormalizedName != "" {
			pm.BankName = check.NormalizedName
		}
	}

	var saved models.PaymentMethod
	if err := s.client.PutJSON(ctx, pathPaymentMethod, pm, &saved); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "payment method updated", "method", string(saved.Method))
	return &saved, nil
}

func (s *paymentService) ValidateBank(ctx context.Context, bankName string) (*dto.ValidateBankResponse, error) {
	req := &dto.ValidateBankRequest{BankName: strings.TrimSpace(bankName)}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var res dto.ValidateBankResponse
	if err := s.client.PostJSON(ctx, pathValidateBank, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
