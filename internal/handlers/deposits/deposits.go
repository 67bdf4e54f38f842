package deposits

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/dto"
	"github.com/vrudenko/cryptovest/internal/gateway"
	depositservice "github.com/vrudenko/cryptovest/internal/service/depositservice"
	"github.com/vrudenko/cryptovest/pkg/auth"
	"github.com/vrudenko/cryptovest/pkg/utils"
	"go.uber.org/zap"
)

type Service interface {
	CreateDeposit(ctx context.Context, userID int, amount decimal.Decimal, payCurrency string) (*domain.Deposit, error)
	GetDeposits(ctx context.Context, userID int) ([]domain.Deposit, error)
	CheckStatus(ctx context.Context, userID int, depositID string) (*domain.Deposit, error)
	ProcessIPN(ctx context.Context, body []byte, signature string) error
	EstimateRate(ctx context.Context, amount decimal.Decimal, currencyFrom, currencyTo string) (*gateway.Estimate, error)
	Currencies(ctx context.Context) ([]string, error)
}

type DepositHandler struct {
	depositService Service
}

func New(depositService Service) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
	}
}

// CreateDeposit godoc
//
//	@Summary		Create a deposit
//	@Description	Create a payment at the gateway and record a pending deposit with the crypto payment details.
//	@Tags			Deposits
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateDepositRequestDTO	true	"Deposit request payload"
//	@Success		200		{object}	dto.DepositResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Amount or currency rejected"
//	@Failure		429		{object}	utils.Response	"Gateway rate limit exceeded"
//	@Failure		502		{object}	utils.Response	"Payment gateway error"
//	@Router			/api/user/deposits [post]
func (h *DepositHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateDepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	deposit, err := h.depositService.CreateDeposit(r.Context(), userID, req.Amount, req.PayCurrency)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDepositDTO(deposit))
}

// GetDeposits godoc
//
//	@Summary		Get deposit history
//	@Description	List the user's deposits, newest first.
//	@Tags			Deposits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.DepositResponseDTO
//	@Success		204	{object}	utils.Response	"Deposits not found"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/deposits [get]
func (h *DepositHandler) GetDeposits(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	deposits, err := h.depositService.GetDeposits(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch deposits")
		return
	}
	if len(deposits) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Deposits not found")
		return
	}

	response := make([]dto.DepositResponseDTO, len(deposits))
	for i, d := range deposits {
		d := d
		response[i] = toDepositDTO(&d)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CheckStatus godoc
//
//	@Summary		Poll deposit status
//	@Description	Poll the gateway for a pending deposit and return the reconciled state. Settled deposits are returned as stored.
//	@Tags			Deposits
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Deposit id"
//	@Success		200	{object}	dto.DepositResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Deposit not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Failure		502	{object}	utils.Response	"Payment gateway unreachable"
//	@Router			/api/user/deposits/{id}/status [get]
func (h *DepositHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	depositID := chi.URLParam(r, "id")

	deposit, err := h.depositService.CheckStatus(r.Context(), userID, depositID)
	if err != nil {
		if errors.Is(err, depositservice.ErrDepositNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		var gwErr *gateway.APIError
		if errors.As(err, &gwErr) || errors.Is(err, gateway.ErrUnreachable) ||
			errors.Is(err, gateway.ErrRateLimited) {
			respondGatewayError(w, err)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDepositDTO(deposit))
}

// HandleIPN godoc
//
//	@Summary		Payment gateway callback
//	@Description	Verify the HMAC signature of a gateway status notification and reconcile the referenced deposit.
//	@Tags			Deposits
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	utils.Response	"Processed"
//	@Failure		400	{object}	utils.Response	"Missing or invalid signature, malformed payload"
//	@Failure		404	{object}	utils.Response	"Unknown payment id"
//	@Failure		500	{object}	utils.Response	"Reconciliation failure"
//	@Router			/api/payments/ipn [post]
func (h *DepositHandler) HandleIPN(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	signature := r.Header.Get(gateway.SignatureHeader)

	err = h.depositService.ProcessIPN(r.Context(), body, signature)
	switch {
	case err == nil:
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Processed"})
	case errors.Is(err, depositservice.ErrInvalidIPNSignature),
		errors.Is(err, depositservice.ErrMalformedIPN),
		errors.Is(err, gateway.ErrNotConfigured):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, depositservice.ErrUnknownPayment):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		zap.L().Error("ipn processing failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Estimate godoc
//
//	@Summary		Estimate crypto amount
//	@Description	Convert a fiat amount into the expected crypto amount at the current rate.
//	@Tags			Deposits
//	@Security		BearerAuth
//	@Produce		json
//	@Param			amount		query		string	true	"Fiat amount"
//	@Param			currency	query		string	true	"Crypto currency"
//	@Success		200			{object}	dto.EstimateResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid amount"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		502			{object}	utils.Response	"Payment gateway error"
//	@Router			/api/user/estimate [get]
func (h *DepositHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil || !amount.IsPositive() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Currency is required")
		return
	}

	estimate, err := h.depositService.EstimateRate(r.Context(), amount, "usd", currency)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.EstimateResponseDTO{
		EstimatedAmount: estimate.EstimatedAmount,
		CurrencyFrom:    estimate.CurrencyFrom,
		CurrencyTo:      estimate.CurrencyTo,
	})
}

// Currencies godoc
//
//	@Summary		List supported currencies
//	@Description	List the crypto networks accepted for deposits.
//	@Tags			Deposits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.CurrenciesResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		502	{object}	utils.Response	"Payment gateway error"
//	@Router			/api/user/currencies [get]
func (h *DepositHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.depositService.Currencies(r.Context())
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CurrenciesResponseDTO{Currencies: currencies})
}

func respondGatewayError(w http.ResponseWriter, err error) {
	var apiErr *gateway.APIError
	switch {
	case errors.Is(err, gateway.ErrAmountTooSmall),
		errors.Is(err, gateway.ErrAmountTooLarge),
		errors.Is(err, gateway.ErrUnsupportedCurrency):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, gateway.ErrRateLimited):
		utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &apiErr):
		utils.RespondWithError(w, http.StatusBadGateway, apiErr.Message)
	default:
		utils.RespondWithError(w, http.StatusBadGateway, "Payment gateway error")
	}
}

func toDepositDTO(d *domain.Deposit) dto.DepositResponseDTO {
	return dto.DepositResponseDTO{
		ID:            d.ID,
		Amount:        d.Amount,
		Status:        d.Status,
		PaymentStatus: d.PaymentStatus,
		PayAddress:    d.PayAddress,
		PayCurrency:   d.PayCurrency,
		PayAmount:     d.PayAmount,
		ActuallyPaid:  d.ActuallyPaid,
		CreatedAt:     d.CreatedAt,
		CompletedAt:   d.CompletedAt,
	}
}
