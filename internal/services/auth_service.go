package services

import (
	"context"

	"negromart_seller/internal/api"
	"negromart_seller/internal/logger"
	"negromart_seller/internal/services/dto"
	"negromart_seller/internal/session"
	"negromart_seller/internal/validator"
	"negromart_seller/pkg/apperrors"
)

type AuthService interface {
	// Login stores the token pair, or returns apperrors.ErrOTPRequired after
	// saving the OTP identifier in the session.
	Login(ctx context.Context, req *dto.LoginRequest) error
	VerifyOTP(ctx context.Context, otp string) error
	ResendOTP(ctx context.Context) error
	Refresh(ctx context.Context) error
	Verify(ctx context.Context) error
	Logout(ctx context.Context) error
}

type authService struct {
	client    *api.Client
	session   *session.Session
	validator *validator.Validator
}

func NewAuthService(client *api.Client, v *validator.Validator) AuthService {
	return &authService{
		client:    client,
		session:   client.Session(),
		validator: v,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	var res dto.LoginResponse
	if err := s.client.PostJSONNoAuth(ctx, pathLogin, req, &res); err != nil {
		return err
	}

	if res.OTPRequired || (res.Access == "" && res.Identifier != "") {
		if err := s.session.SetOTPIdentifier(ctx, res.Identifier); err != nil {
			return apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "login requires one-time code", "email", req.Email)
		return apperrors.ErrOTPRequired
	}

	return s.storeTokens(ctx, res.Access, res.Refresh)
}

func (s *authService) VerifyOTP(ctx context.Context, otp string) error {
	req := &dto.OTPVerifyRequest{Identifier: s.session.OTPIdentifier(), OTP: otp}
	if req.Identifier == "" {
		return apperrors.New(apperrors.CodeOTPRequired, "auth", "One-time code session expired, log in again", 0)
	}
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	var res dto.TokenPair
	if err := s.client.PostJSONNoAuth(ctx, pathOTPVerify, req, &res); err != nil {
		return err
	}
	if err := s.storeTokens(ctx, res.Access, res.Refresh); err != nil {
		return err
	}
	_ = s.session.Remove(ctx, session.CookieOTPIdentifier)
	return nil
}

func (s *authService) ResendOTP(ctx context.Context) error {
	req := &dto.OTPResendRequest{Identifier: s.session.OTPIdentifier()}
	if err := s.validator.Validate(req); err != nil {
		return apperrors.New(apperrors.CodeOTPRequired, "auth", "One-time code session expired, log in again", 0)
	}
	return s.client.PostJSONNoAuth(ctx, pathOTPResend, req, nil)
}

func (s *authService) Refresh(ctx context.Context) error {
	req := &dto.RefreshRequest{Refresh: s.session.RefreshToken()}
	if req.Refresh == "" {
		return apperrors.ErrNoRefreshToken
	}

	var res dto.TokenPair
	if err := s.client.PostJSONNoAuth(ctx, api.RefreshPath, req, &res); err != nil {
		return err
	}
	return s.storeTokens(ctx, res.Access, res.Refresh)
}

func (s *authService) Verify(ctx context.Context) error {
	req := &dto.VerifyRequest{Token: s.session.AccessToken()}
	if req.Token == "" {
		return apperrors.ErrUnauthorized
	}
	return s.client.PostJSONNoAuth(ctx, pathVerify, req, nil)
}

// Logout blacklists the refresh token server-side (best effort) and clears the local session.
func (s *authService) Logout(ctx context.Context) error {
	if refresh := s.session.RefreshToken(); refresh != "" {
		if err := s.client.PostJSON(ctx, pathLogout, &dto.LogoutRequest{Refresh: refresh}, nil); err != nil {
			logger.CtxWarn(ctx, "server logout failed", "error", err.Error())
		}
	}
	if err := s.session.ClearTokens(ctx); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) storeTokens(ctx context.Context, access, refresh string) error {
	if access == "" {
		return apperrors.New(apperrors.CodeInvalidToken, "auth", "Server returned no access token", 0)
	}
	if err := s.session.SetTokens(ctx, access, refresh); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "seller logged in", "vendor_id", s.session.VendorID())
	return nil
}
