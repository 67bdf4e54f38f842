package investservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/pg"
	"github.com/vrudenko/cryptovest/pkg/ident"
	"go.uber.org/zap"
)

type PlanRepo interface {
	FindAll(ctx context.Context) ([]domain.Plan, error)
	FindByID(ctx context.Context, id int) (*domain.Plan, error)
}
type InvestmentRepo interface {
	Save(ctx context.Context, investment *domain.Investment) (*domain.Investment, error)
	FindByID(ctx context.Context, id string, userID int) (*domain.Investment, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Investment, error)
	FindExpired(ctx context.Context, now time.Time) ([]domain.Investment, error)
	FindExpiredByUserID(ctx context.Context, userID int, now time.Time) ([]domain.Investment, error)
	Complete(ctx context.Context, id string) (bool, error)
	FindActiveForAccrual(ctx context.Context, before time.Time) ([]domain.Investment, error)
	UpdateProfit(ctx context.Context, id string, profit decimal.Decimal, at time.Time) error
}
type BalanceRepo interface {
	Debit(ctx context.Context, userID int, amount decimal.Decimal) (bool, error)
	Credit(ctx context.Context, userID int, amount decimal.Decimal) error
	AddInvested(ctx context.Context, userID int, amount decimal.Decimal) error
	AddProfit(ctx context.Context, userID int, amount decimal.Decimal) error
}

type Service struct {
	planRepo       PlanRepo
	investmentRepo InvestmentRepo
	balanceRepo    BalanceRepo
	txManager      pg.TXManager
	accrualPeriod  time.Duration
}

func New(planRepo PlanRepo, investmentRepo InvestmentRepo, balanceRepo BalanceRepo, txManager pg.TXManager, accrualPeriod time.Duration) *Service {
	return &Service{
		planRepo:       planRepo,
		investmentRepo: investmentRepo,
		balanceRepo:    balanceRepo,
		txManager:      txManager,
		accrualPeriod:  accrualPeriod,
	}
}

var (
	ErrPlanNotFound        = errors.New("plan not found")
	ErrAmountOutOfRange    = errors.New("amount outside plan bounds")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvestmentNotFound  = errors.New("investment not found")
)

var oneHundred = decimal.NewFromInt(100)

// ExpectedReturn is principal plus simple interest: the plan rate applied
// per day across the full term, rounded to cents.
func ExpectedReturn(amount decimal.Decimal, plan *domain.Plan) decimal.Decimal {
	rate := plan.PercentReturn.Div(oneHundred).Mul(decimal.NewFromInt(int64(plan.DurationDays)))
	return amount.Add(amount.Mul(rate)).Round(2)
}

func (s *Service) GetPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.planRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch plans", zap.Error(err))
		return nil, err
	}
	return plans, nil
}

// CreateInvestment debits the principal and opens the position in one
// transaction. The conditional debit doubles as the sufficiency check.
func (s *Service) CreateInvestment(ctx context.Context, userID, planID int, amount decimal.Decimal) (*domain.Investment, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	if amount.LessThan(plan.MinAmount) || amount.GreaterThan(plan.MaxAmount) {
		return nil, ErrAmountOutOfRange
	}

	now := time.Now()
	investment := &domain.Investment{
		ID:             ident.New("inv_"),
		UserID:         userID,
		PlanID:         planID,
		AmountInvested: amount,
		ExpectedReturn: ExpectedReturn(amount, plan),
		StartDate:      now,
		EndDate:        now.AddDate(0, 0, plan.DurationDays),
		Status:         domain.InvestmentActive,
	}

	var saved *domain.Investment
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		debited, err := s.balanceRepo.Debit(ctx, userID, amount)
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientBalance
		}
		saved, err = s.investmentRepo.Save(ctx, investment)
		if err != nil {
			return err
		}
		return s.balanceRepo.AddInvested(ctx, userID, amount)
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) {
			zap.L().Error("failed to create investment", zap.Error(err))
		}
		return nil, err
	}

	zap.L().Info("investment opened",
		zap.String("investment_id", saved.ID),
		zap.Int("user_id", userID),
		zap.String("plan", plan.Name),
		zap.String("amount", amount.String()))
	return saved, nil
}

func (s *Service) GetInvestments(ctx context.Context, userID int) ([]domain.Investment, error) {
	// Opportunistic sweep so a user who beats the scheduler still sees
	// matured positions paid out.
	if err := s.SweepUser(ctx, userID); err != nil {
		zap.L().Warn("user sweep failed", zap.Int("user_id", userID), zap.Error(err))
	}
	investments, err := s.investmentRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch investments", zap.Error(err))
		return nil, err
	}
	return investments, nil
}

func (s *Service) GetInvestment(ctx context.Context, userID int, id string) (*domain.Investment, error) {
	investment, err := s.investmentRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if investment == nil {
		return nil, ErrInvestmentNotFound
	}
	return investment, nil
}

// FindMatured lists active investments whose term has elapsed.
func (s *Service) FindMatured(ctx context.Context) ([]domain.Investment, error) {
	return s.investmentRepo.FindExpired(ctx, time.Now())
}

// Settle pays out one matured investment: conditional flip plus credit in
// one transaction. Overlapping sweeps settle each position exactly once;
// the loser of the race sees flipped=false and reports (false, nil).
func (s *Service) Settle(ctx context.Context, investment domain.Investment) (bool, error) {
	settled := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		flipped, err := s.investmentRepo.Complete(ctx, investment.ID)
		if err != nil {
			return err
		}
		if !flipped {
			return nil
		}
		if err := s.balanceRepo.Credit(ctx, investment.UserID, investment.ExpectedReturn); err != nil {
			return err
		}
		profit := investment.ExpectedReturn.Sub(investment.AmountInvested)
		if err := s.balanceRepo.AddProfit(ctx, investment.UserID, profit); err != nil {
			return err
		}
		settled = true
		zap.L().Info("investment matured",
			zap.String("investment_id", investment.ID),
			zap.Int("user_id", investment.UserID),
			zap.String("payout", investment.ExpectedReturn.String()))
		return nil
	})
	return settled, err
}

// SweepExpired pays out every matured investment sequentially. The
// background sweeper fans the same settlements through its worker pool
// instead.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	expired, err := s.FindMatured(ctx)
	if err != nil {
		return 0, err
	}
	return s.settle(ctx, expired), nil
}

func (s *Service) SweepUser(ctx context.Context, userID int) error {
	expired, err := s.investmentRepo.FindExpiredByUserID(ctx, userID, time.Now())
	if err != nil {
		return err
	}
	s.settle(ctx, expired)
	return nil
}

func (s *Service) settle(ctx context.Context, expired []domain.Investment) int {
	settled := 0
	for _, investment := range expired {
		ok, err := s.Settle(ctx, investment)
		if err != nil {
			zap.L().Error("failed to settle investment",
				zap.String("investment_id", investment.ID), zap.Error(err))
			continue
		}
		if ok {
			settled++
		}
	}
	return settled
}

// AccrueProfits advances profit_made on active positions by one accrual
// period of simple interest. Bookkeeping only: the balance is paid in full
// at maturity.
func (s *Service) AccrueProfits(ctx context.Context) error {
	now := time.Now()
	investments, err := s.investmentRepo.FindActiveForAccrual(ctx, now.Add(-s.accrualPeriod))
	if err != nil {
		return err
	}
	for _, investment := range investments {
		plan, err := s.planRepo.FindByID(ctx, investment.PlanID)
		if err != nil || plan == nil {
			zap.L().Error("failed to resolve plan for accrual",
				zap.String("investment_id", investment.ID), zap.Error(err))
			continue
		}
		profit := investment.AmountInvested.Mul(plan.PercentReturn).Div(oneHundred).Round(2)
		if err := s.investmentRepo.UpdateProfit(ctx, investment.ID, profit, now); err != nil {
			zap.L().Error("failed to accrue profit",
				zap.String("investment_id", investment.ID), zap.Error(err))
		}
	}
	return nil
}
