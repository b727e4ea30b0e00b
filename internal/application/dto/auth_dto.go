package dto

// RequestOTPRequest solicitud de código de verificación.
type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// VerifyOTPRequest canje del código por un token.
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6"`
}

// LoginResponse token del dashboard tras verificar el OTP.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse usuario del dashboard.
type UserResponse struct {
	ID           string `json:"id"`
	Phone        string `json:"phone"`
	BusinessName string `json:"business_name,omitempty"`
}
