package investments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/dto"
	investservice "github.com/vrudenko/cryptovest/internal/service/investservice"
	"github.com/vrudenko/cryptovest/pkg/auth"
	"github.com/vrudenko/cryptovest/pkg/utils"
)

type Service interface {
	GetPlans(ctx context.Context) ([]domain.Plan, error)
	CreateInvestment(ctx context.Context, userID, planID int, amount decimal.Decimal) (*domain.Investment, error)
	GetInvestments(ctx context.Context, userID int) ([]domain.Investment, error)
	GetInvestment(ctx context.Context, userID int, id string) (*domain.Investment, error)
}

type InvestmentHandler struct {
	investService Service
}

func New(investService Service) *InvestmentHandler {
	return &InvestmentHandler{
		investService: investService,
	}
}

// GetPlans godoc
//
//	@Summary		List investment plans
//	@Description	List the available investment plans with their bounds, rates and terms.
//	@Tags			Investments
//	@Produce		json
//	@Success		200	{array}		dto.PlanResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/plans [get]
func (h *InvestmentHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.investService.GetPlans(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch plans")
		return
	}

	response := make([]dto.PlanResponseDTO, len(plans))
	for i, p := range plans {
		response[i] = dto.PlanResponseDTO{
			ID:            p.ID,
			Name:          p.Name,
			MinAmount:     p.MinAmount,
			MaxAmount:     p.MaxAmount,
			PercentReturn: p.PercentReturn,
			DurationDays:  p.DurationDays,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CreateInvestment godoc
//
//	@Summary		Purchase an investment plan
//	@Description	Debit the principal from the balance and open an investment position with a fixed payout at term end.
//	@Tags			Investments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateInvestmentRequestDTO	true	"Investment request payload"
//	@Success		200		{object}	dto.InvestmentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"Plan not found"
//	@Failure		422		{object}	utils.Response	"Amount outside plan bounds"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/investments [post]
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateInvestmentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	investment, err := h.investService.CreateInvestment(r.Context(), userID, req.PlanID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, investservice.ErrPlanNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, investservice.ErrAmountOutOfRange):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, investservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toInvestmentDTO(investment))
}

// GetInvestments godoc
//
//	@Summary		List investments
//	@Description	List the user's investments. Matured positions are settled before the list is read.
//	@Tags			Investments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.InvestmentResponseDTO
//	@Success		204	{object}	utils.Response	"Investments not found"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/investments [get]
func (h *InvestmentHandler) GetInvestments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	investments, err := h.investService.GetInvestments(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch investments")
		return
	}
	if len(investments) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Investments not found")
		return
	}

	response := make([]dto.InvestmentResponseDTO, len(investments))
	for i, inv := range investments {
		inv := inv
		response[i] = toInvestmentDTO(&inv)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetInvestment godoc
//
//	@Summary		Get investment detail
//	@Description	Get one investment position by id.
//	@Tags			Investments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Investment id"
//	@Success		200	{object}	dto.InvestmentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Investment not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	id := chi.URLParam(r, "id")

	investment, err := h.investService.GetInvestment(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, investservice.ErrInvestmentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toInvestmentDTO(investment))
}

func toInvestmentDTO(inv *domain.Investment) dto.InvestmentResponseDTO {
	return dto.InvestmentResponseDTO{
		ID:             inv.ID,
		PlanID:         inv.PlanID,
		AmountInvested: inv.AmountInvested,
		ExpectedReturn: inv.ExpectedReturn,
		StartDate:      inv.StartDate,
		EndDate:        inv.EndDate,
		ProfitMade:     inv.ProfitMade,
		Status:         inv.Status,
	}
}
