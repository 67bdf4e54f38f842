package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Balance is the single ledger row per user. Every mutation is a relative
// delta applied inside a transaction; the row never goes negative.
type Balance struct {
	ID             int             `db:"id"`
	UserID         int             `db:"user_id"`
	Current        decimal.Decimal `db:"current_balance"`
	WithdrawnTotal decimal.Decimal `db:"withdrawn_total"`
	InvestedTotal  decimal.Decimal `db:"invested_total"`
	ProfitTotal    decimal.Decimal `db:"profit_total"`
}

const (
	// DepositPending is the only non-terminal deposit status.
	DepositPending   string = "PENDING"
	DepositCompleted string = "COMPLETED"
	DepositFailed    string = "FAILED"
	DepositCancelled string = "CANCELLED"
	DepositExpired   string = "EXPIRED"
)

// Deposit is one attempt to fund a balance through the payment gateway.
// Amount is USD; PayAmount is denominated in PayCurrency.
type Deposit struct {
	ID            string          `db:"id"`
	UserID        int             `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Status        string          `db:"status"`
	PaymentID     string          `db:"payment_id"`
	PayAddress    string          `db:"pay_address"`
	PayCurrency   string          `db:"pay_currency"`
	PayAmount     decimal.Decimal `db:"pay_amount"`
	PaymentStatus string          `db:"payment_status"`
	ActuallyPaid  decimal.Decimal `db:"actually_paid"`
	IPNProcessed  bool            `db:"ipn_processed"`
	CreatedAt     time.Time       `db:"created_at"`
	CompletedAt   *time.Time      `db:"completed_at"`
}

// Terminal reports whether the deposit status admits no further transitions.
func (d *Deposit) Terminal() bool {
	return d.Status != DepositPending
}

const (
	WithdrawalPending   string = "PENDING"
	WithdrawalCompleted string = "COMPLETED"
	WithdrawalFailed    string = "FAILED"
)

type Withdrawal struct {
	ID            string          `db:"id"`
	UserID        int             `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	WalletAddress string          `db:"wallet_address"`
	Status        string          `db:"status"`
	TxHash        string          `db:"tx_hash"`
	CreatedAt     time.Time       `db:"created_at"`
	CompletedAt   *time.Time      `db:"completed_at"`
}

// Plan is an admin-defined investment product. PercentReturn is a daily
// rate in percentage points applied across DurationDays.
type Plan struct {
	ID            int             `db:"id"`
	Name          string          `db:"name"`
	MinAmount     decimal.Decimal `db:"min_amount"`
	MaxAmount     decimal.Decimal `db:"max_amount"`
	PercentReturn decimal.Decimal `db:"percent_return"`
	DurationDays  int             `db:"duration_days"`
}

const (
	InvestmentActive    string = "ACTIVE"
	InvestmentCompleted string = "COMPLETED"
	InvestmentCancelled string = "CANCELLED"
)

// Investment snapshots its terms at purchase time: changing the plan later
// does not affect EndDate or ExpectedReturn.
type Investment struct {
	ID               string          `db:"id"`
	UserID           int             `db:"user_id"`
	PlanID           int             `db:"plan_id"`
	AmountInvested   decimal.Decimal `db:"amount_invested"`
	ExpectedReturn   decimal.Decimal `db:"expected_return"`
	StartDate        time.Time       `db:"start_date"`
	EndDate          time.Time       `db:"end_date"`
	ProfitMade       decimal.Decimal `db:"profit_made"`
	IsActive         bool            `db:"is_active"`
	Status           string          `db:"status"`
	LastProfitUpdate time.Time       `db:"last_profit_update"`
}
