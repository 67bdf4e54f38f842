package depositservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/gateway"
	"github.com/vrudenko/cryptovest/internal/pg"
	"github.com/vrudenko/cryptovest/pkg/ident"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error)
	FindByID(ctx context.Context, id string, userID int) (*domain.Deposit, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*domain.Deposit, error)
	FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.Deposit, error)
	Update(ctx context.Context, deposit *domain.Deposit) error
	FindByUserID(ctx context.Context, userID int) ([]domain.Deposit, error)
}
type BalanceRepo interface {
	Credit(ctx context.Context, userID int, amount decimal.Decimal) error
}
type Gateway interface {
	CreatePayment(ctx context.Context, amount decimal.Decimal, currencyFrom, currencyTo string) (*gateway.Payment, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*gateway.StatusSnapshot, error)
	EstimateRate(ctx context.Context, amount decimal.Decimal, currencyFrom, currencyTo string) (*gateway.Estimate, error)
	Currencies(ctx context.Context) ([]string, error)
	VerifyIPN(body []byte, signature string) (bool, error)
}

type Service struct {
	repo        Repo
	balanceRepo BalanceRepo
	gateway     Gateway
	txManager   pg.TXManager
}

func New(repo Repo, balanceRepo BalanceRepo, gw Gateway, txManager pg.TXManager) *Service {
	return &Service{
		repo:        repo,
		balanceRepo: balanceRepo,
		gateway:     gw,
		txManager:   txManager,
	}
}

var (
	ErrDepositNotFound     = errors.New("deposit not found")
	ErrUnknownPayment      = errors.New("unknown payment id")
	ErrInvalidIPNSignature = errors.New("invalid ipn signature")
	ErrMalformedIPN        = errors.New("malformed ipn payload")
)

// statusTransition maps a provider payment status onto the internal deposit
// status. Unknown provider statuses map to the empty string and leave the
// deposit untouched.
func statusTransition(providerStatus string) string {
	switch providerStatus {
	case gateway.StatusWaiting, gateway.StatusConfirming, gateway.StatusConfirmed, gateway.StatusSending, gateway.StatusPartiallyPaid:
		return domain.DepositPending
	case gateway.StatusFinished:
		return domain.DepositCompleted
	case gateway.StatusFailed, gateway.StatusRefunded:
		return domain.DepositFailed
	case gateway.StatusExpired:
		return domain.DepositExpired
	case gateway.StatusCancelled:
		return domain.DepositCancelled
	default:
		return ""
	}
}

func (s *Service) CreateDeposit(ctx context.Context, userID int, amount decimal.Decimal, payCurrency string) (*domain.Deposit, error) {
	payment, err := s.gateway.CreatePayment(ctx, amount, "usd", payCurrency)
	if err != nil {
		zap.L().Error("failed to create gateway payment", zap.Error(err))
		return nil, err
	}

	deposit := &domain.Deposit{
		ID:            ident.New("dep_"),
		UserID:        userID,
		Amount:        amount,
		Status:        domain.DepositPending,
		PaymentID:     payment.PaymentID,
		PayAddress:    payment.PayAddress,
		PayCurrency:   payment.PayCurrency,
		PayAmount:     payment.PayAmount,
		PaymentStatus: payment.PaymentStatus,
	}
	saved, err := s.repo.Save(ctx, deposit)
	if err != nil {
		zap.L().Error("failed to save deposit", zap.Error(err))
		return nil, err
	}

	zap.L().Info("deposit created",
		zap.String("deposit_id", saved.ID),
		zap.String("payment_id", saved.PaymentID),
		zap.Int("user_id", userID))
	return saved, nil
}

// ApplyStatus reconciles one provider status report against the stored
// deposit. The row is locked for the whole transaction, terminal deposits
// are never modified, and the balance credit happens only on the first
// transition to COMPLETED. Replaying the same report any number of times
// leaves the ledger unchanged.
func (s *Service) ApplyStatus(ctx context.Context, paymentID, providerStatus string, actuallyPaid decimal.Decimal) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		deposit, err := s.repo.FindByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if deposit == nil {
			return ErrUnknownPayment
		}
		if deposit.Terminal() {
			zap.L().Info("status report for settled deposit ignored",
				zap.String("payment_id", paymentID),
				zap.String("status", providerStatus))
			return nil
		}

		next := statusTransition(providerStatus)
		if next == "" {
			zap.L().Warn("unrecognized payment status",
				zap.String("payment_id", paymentID),
				zap.String("status", providerStatus))
			return nil
		}

		deposit.PaymentStatus = providerStatus
		if actuallyPaid.IsPositive() {
			deposit.ActuallyPaid = actuallyPaid
		}
		deposit.Status = next
		if next != domain.DepositPending {
			now := time.Now()
			deposit.CompletedAt = &now
			deposit.IPNProcessed = true
		}
		if err := s.repo.Update(ctx, deposit); err != nil {
			return err
		}

		if next == domain.DepositCompleted {
			if err := s.balanceRepo.Credit(ctx, deposit.UserID, deposit.Amount); err != nil {
				return err
			}
			zap.L().Info("deposit credited",
				zap.String("deposit_id", deposit.ID),
				zap.Int("user_id", deposit.UserID),
				zap.String("amount", deposit.Amount.String()))
		}
		return nil
	})
}

// ProcessIPN authenticates and applies one gateway callback.
func (s *Service) ProcessIPN(ctx context.Context, body []byte, signature string) error {
	valid, err := s.gateway.VerifyIPN(body, signature)
	if err != nil {
		if errors.Is(err, gateway.ErrMalformedPayload) {
			return ErrMalformedIPN
		}
		return err
	}
	if !valid {
		return ErrInvalidIPNSignature
	}

	var payload struct {
		PaymentID     json.Number     `json:"payment_id"`
		PaymentStatus string          `json:"payment_status"`
		ActuallyPaid  decimal.Decimal `json:"actually_paid"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ErrMalformedIPN
	}
	if payload.PaymentID.String() == "" || payload.PaymentStatus == "" {
		return ErrMalformedIPN
	}

	return s.ApplyStatus(ctx, payload.PaymentID.String(), payload.PaymentStatus, payload.ActuallyPaid)
}

// CheckStatus polls the gateway for a pending deposit and folds the answer
// through the same reconciliation path the IPN takes. Settled deposits are
// returned as stored without a gateway round trip.
func (s *Service) CheckStatus(ctx context.Context, userID int, depositID string) (*domain.Deposit, error) {
	deposit, err := s.repo.FindByID(ctx, depositID, userID)
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, ErrDepositNotFound
	}
	if deposit.Terminal() {
		return deposit, nil
	}

	// The gateway client already falls back to a cached snapshot; an error
	// here means there is no answer at all, and the caller must know the
	// poll failed rather than read the stale stored state as current.
	snapshot, err := s.gateway.GetPaymentStatus(ctx, deposit.PaymentID)
	if err != nil {
		zap.L().Warn("status poll failed",
			zap.String("deposit_id", depositID), zap.Error(err))
		return nil, err
	}

	if err := s.ApplyStatus(ctx, deposit.PaymentID, snapshot.PaymentStatus, snapshot.ActuallyPaid); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, depositID, userID)
}

func (s *Service) GetDeposits(ctx context.Context, userID int) ([]domain.Deposit, error) {
	deposits, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch deposits", zap.Error(err))
		return nil, err
	}
	return deposits, nil
}

func (s *Service) GetDeposit(ctx context.Context, userID int, depositID string) (*domain.Deposit, error) {
	deposit, err := s.repo.FindByID(ctx, depositID, userID)
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, ErrDepositNotFound
	}
	return deposit, nil
}

func (s *Service) EstimateRate(ctx context.Context, amount decimal.Decimal, currencyFrom, currencyTo string) (*gateway.Estimate, error) {
	return s.gateway.EstimateRate(ctx, amount, currencyFrom, currencyTo)
}

func (s *Service) Currencies(ctx context.Context) ([]string, error) {
	return s.gateway.Currencies(ctx)
}
