package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateDepositRequestDTO struct {
	Amount      decimal.Decimal `json:"amount" example:"100.00"`
	PayCurrency string          `json:"pay_currency" example:"btc"`
}

type DepositResponseDTO struct {
	ID            string          `json:"id" example:"dep_a1b2c3d4e5f6"`
	Amount        decimal.Decimal `json:"amount" example:"100.00"`
	Status        string          `json:"status" example:"PENDING"`
	PaymentStatus string          `json:"payment_status" example:"waiting"`
	PayAddress    string          `json:"pay_address" example:"3EZ2uTdVDAMWJcjwRZtBYVfyCZPGaaPbMh"`
	PayCurrency   string          `json:"pay_currency" example:"btc"`
	PayAmount     decimal.Decimal `json:"pay_amount" example:"0.00155103"`
	ActuallyPaid  decimal.Decimal `json:"actually_paid" example:"0"`
	CreatedAt     time.Time       `json:"created_at" example:"2024-05-01T12:00:00Z"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

type EstimateResponseDTO struct {
	EstimatedAmount decimal.Decimal `json:"estimated_amount" example:"0.00155103"`
	CurrencyFrom    string          `json:"currency_from" example:"usd"`
	CurrencyTo      string          `json:"currency_to" example:"btc"`
}

type CurrenciesResponseDTO struct {
	Currencies []string `json:"currencies" example:"btc,eth,usdttrc20"`
}
