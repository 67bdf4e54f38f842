package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceResponseDTO struct {
	Current   decimal.Decimal `json:"current" example:"500.50"`
	Withdrawn decimal.Decimal `json:"withdrawn" example:"42.00"`
	Invested  decimal.Decimal `json:"invested" example:"1000.00"`
	Profit    decimal.Decimal `json:"profit" example:"80.00"`
}

type WithdrawRequestDTO struct {
	Amount        decimal.Decimal `json:"amount" example:"75.00"`
	Currency      string          `json:"currency" example:"usdttrc20"`
	WalletAddress string          `json:"wallet_address" example:"TN3W4H6rK2ce4vX9YnFQHwKENnHjoxb3m9"`
}

type WithdrawalResponseDTO struct {
	ID          string          `json:"id" example:"wit_0f9e8d7c6b5a"`
	Amount      decimal.Decimal `json:"amount" example:"75.00"`
	Currency    string          `json:"currency" example:"usdttrc20"`
	Status      string          `json:"status" example:"PENDING"`
	TxHash      string          `json:"tx_hash,omitempty" example:"0xdeadbeef"`
	CreatedAt   time.Time       `json:"created_at" example:"2024-05-02T09:00:00Z"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
