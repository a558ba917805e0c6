package dto

type RegistrationResponse struct {
	ID     int64  `json:"id"`
	Detail string `json:"detail,omitempty"`
}
