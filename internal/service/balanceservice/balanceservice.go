package balanceservice

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/pg"
	"github.com/vrudenko/cryptovest/pkg/ident"
	"go.uber.org/zap"
)

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	Debit(ctx context.Context, userID int, amount decimal.Decimal) (bool, error)
	AddWithdrawn(ctx context.Context, userID int, amount decimal.Decimal) error
}
type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	FindByID(ctx context.Context, id string) (*domain.Withdrawal, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	MarkCompleted(ctx context.Context, id string, txHash string) (bool, error)
	MarkFailed(ctx context.Context, id string) (bool, error)
}

type Service struct {
	balanceRepo    BalanceRepo
	withdrawalRepo WithdrawalRepo
	txManager      pg.TXManager
	minWithdrawal  decimal.Decimal
}

func New(balanceRepo BalanceRepo, withdrawalRepo WithdrawalRepo, txManager pg.TXManager, minWithdrawal decimal.Decimal) *Service {
	return &Service{
		balanceRepo:    balanceRepo,
		withdrawalRepo: withdrawalRepo,
		txManager:      txManager,
		minWithdrawal:  minWithdrawal,
	}
}

var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrBelowMinimum         = errors.New("amount below minimum withdrawal")
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrWithdrawalNotPending = errors.New("withdrawal already processed")
)

func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

func (s *Service) CreateBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.CreateUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

// RequestWithdrawal records a pending withdrawal. The balance is only
// checked here, not debited: funds leave the ledger when an operator
// completes the payout, and the sufficiency check is repeated then.
func (s *Service) RequestWithdrawal(ctx context.Context, userID int, amount decimal.Decimal, currency, walletAddress string) (*domain.Withdrawal, error) {
	if amount.LessThan(s.minWithdrawal) {
		return nil, ErrBelowMinimum
	}

	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if balance == nil || balance.Current.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}

	withdrawal := &domain.Withdrawal{
		ID:            ident.New("wit_"),
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		WalletAddress: walletAddress,
		Status:        domain.WithdrawalPending,
	}
	saved, err := s.withdrawalRepo.Create(ctx, withdrawal)
	if err != nil {
		zap.L().Error("failed to create withdrawal", zap.Error(err))
		return nil, err
	}

	zap.L().Info("withdrawal requested",
		zap.String("withdrawal_id", saved.ID),
		zap.Int("user_id", userID),
		zap.String("amount", amount.String()))
	return saved, nil
}

// CompleteWithdrawal settles a pending payout. The status flip and the
// debit run in one transaction: if the balance no longer covers the amount
// the flip rolls back and the withdrawal is marked failed instead.
func (s *Service) CompleteWithdrawal(ctx context.Context, id string, txHash string) error {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if withdrawal == nil {
		return ErrWithdrawalNotFound
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		flipped, err := s.withdrawalRepo.MarkCompleted(ctx, id, txHash)
		if err != nil {
			return err
		}
		if !flipped {
			return ErrWithdrawalNotPending
		}
		debited, err := s.balanceRepo.Debit(ctx, withdrawal.UserID, withdrawal.Amount)
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientBalance
		}
		return s.balanceRepo.AddWithdrawn(ctx, withdrawal.UserID, withdrawal.Amount)
	})
	if errors.Is(err, ErrInsufficientBalance) {
		if _, failErr := s.withdrawalRepo.MarkFailed(ctx, id); failErr != nil {
			zap.L().Error("failed to fail withdrawal", zap.Error(failErr))
		}
		return err
	}
	if err != nil {
		zap.L().Error("failed to complete withdrawal", zap.Error(err))
		return err
	}

	zap.L().Info("withdrawal completed", zap.String("withdrawal_id", id), zap.String("tx_hash", txHash))
	return nil
}

func (s *Service) FailWithdrawal(ctx context.Context, id string) error {
	flipped, err := s.withdrawalRepo.MarkFailed(ctx, id)
	if err != nil {
		return err
	}
	if !flipped {
		return ErrWithdrawalNotPending
	}
	return nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}
