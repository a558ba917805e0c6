package dto

// ---------------- Requests ----------------

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OTPVerifyRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	OTP        string `json:"otp" validate:"required,len=6,numeric"`
}

type OTPResendRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// ---------------- Responses ----------------

// LoginResponse is either a token pair or an OTP challenge.
type LoginResponse struct {
	Access      string `json:"access,omitempty"`
	Refresh     string `json:"refresh,omitempty"`
	OTPRequired bool   `json:"otp_required,omitempty"`
	Identifier  string `json:"identifier,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
