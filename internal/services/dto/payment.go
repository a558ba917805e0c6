package dto

type ValidateBankRequest struct {
	BankName string `json:"bank_name" validate:"required"`
}

type ValidateBankResponse struct {
	Valid          bool   `json:"valid"`
	NormalizedName string `json:"normalized_name,omitempty"`
}

type PayoutCriteria struct {
	Status string
	Page   int
}
