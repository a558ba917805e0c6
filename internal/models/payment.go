package models

import "time"

// PaymentMethod is the payout destination of a vendor. Only the fields of the
// active Method are meaningful.
type PaymentMethod struct {
	Method PaymentMethodType `json:"method"`

	MobileNumber   string `json:"mobile_number,omitempty"`
	MobileProvider string `json:"mobile_provider,omitempty"`

	BankName      string `json:"bank_name,omitempty"`
	AccountHolder string `json:"account_holder,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`

	PayPalAccount string `json:"paypal_account,omitempty"`
}

type Payout struct {
	ID          int64             `json:"id"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Status      PayoutStatus      `json:"status"`
	Method      PaymentMethodType `json:"method"`
	Reference   string            `json:"reference"`
	RequestedAt time.Time         `json:"requested_at"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
}
