package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlanResponseDTO struct {
	ID            int             `json:"id" example:"2"`
	Name          string          `json:"name" example:"Growth"`
	MinAmount     decimal.Decimal `json:"min_amount" example:"1000.00"`
	MaxAmount     decimal.Decimal `json:"max_amount" example:"9999.00"`
	PercentReturn decimal.Decimal `json:"percent_return" example:"2.00"`
	DurationDays  int             `json:"duration_days" example:"14"`
}

type CreateInvestmentRequestDTO struct {
	PlanID int             `json:"plan_id" example:"2"`
	Amount decimal.Decimal `json:"amount" example:"1000.00"`
}

type InvestmentResponseDTO struct {
	ID             string          `json:"id" example:"inv_1a2b3c4d5e6f"`
	PlanID         int             `json:"plan_id" example:"2"`
	AmountInvested decimal.Decimal `json:"amount_invested" example:"1000.00"`
	ExpectedReturn decimal.Decimal `json:"expected_return" example:"1280.00"`
	StartDate      time.Time       `json:"start_date" example:"2024-04-01T00:00:00Z"`
	EndDate        time.Time       `json:"end_date" example:"2024-04-15T00:00:00Z"`
	ProfitMade     decimal.Decimal `json:"profit_made" example:"40.00"`
	Status         string          `json:"status" example:"ACTIVE"`
}
