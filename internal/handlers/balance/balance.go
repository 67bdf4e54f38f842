package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/dto"
	balanceservice "github.com/vrudenko/cryptovest/internal/service/balanceservice"
	"github.com/vrudenko/cryptovest/pkg/auth"
	"github.com/vrudenko/cryptovest/pkg/utils"
)

type Service interface {
	CreateBalance(ctx context.Context, userID int) (*domain.Balance, error)
	GetBalance(ctx context.Context, userID int) (*domain.Balance, error)
	RequestWithdrawal(ctx context.Context, userID int, amount decimal.Decimal, currency, walletAddress string) (*domain.Withdrawal, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the current balance together with withdrawn, invested and profit totals.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance and rollups"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil || balance == nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Current:   balance.Current,
		Withdrawn: balance.WithdrawnTotal,
		Invested:  balance.InvestedTotal,
		Profit:    balance.ProfitTotal,
	})
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Record a pending withdrawal to the given wallet. Funds are debited when the payout settles.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		422		{object}	utils.Response	"Amount below minimum"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.WalletAddress == "" || req.Currency == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Wallet address and currency are required")
		return
	}

	withdrawal, err := h.balanceService.RequestWithdrawal(r.Context(), userID, req.Amount, req.Currency, req.WalletAddress)
	if err != nil {
		switch {
		case errors.Is(err, balanceservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, balanceservice.ErrBelowMinimum):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalDTO(withdrawal))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawals history
//	@Description	Get the withdrawal history for the authenticated user, newest first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Withdrawals history"
//	@Success		204	{object}	utils.Response				"Withdrawals not found"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *BalanceHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.balanceService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		wd := wd
		response[i] = toWithdrawalDTO(&wd)
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toWithdrawalDTO(w *domain.Withdrawal) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:          w.ID,
		Amount:      w.Amount,
		Currency:    w.Currency,
		Status:      w.Status,
		TxHash:      w.TxHash,
		CreatedAt:   w.CreatedAt,
		CompletedAt: w.CompletedAt,
	}
}
