package comfort

import "github.com/shopspring/decimal"

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationConfirmed DonationStatus = "confirmed"
	DonationCancelled DonationStatus = "cancelled"
)

type Donation struct {
	ID        string          `json:"id"`
	DonorName string          `json:"donor_name"`
	Email     string          `json:"email"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Message   string          `json:"message,omitempty"`
	Status    DonationStatus  `json:"status"`
	Created   string          `json:"created_at,omitempty"`
}
