package handlers

import (
	"net/http"

	_ "github.com/vrudenko/cryptovest/docs"
	authhandlers "github.com/vrudenko/cryptovest/internal/handlers/auth"
	balancehandlers "github.com/vrudenko/cryptovest/internal/handlers/balance"
	deposithandlers "github.com/vrudenko/cryptovest/internal/handlers/deposits"
	investmenthandlers "github.com/vrudenko/cryptovest/internal/handlers/investments"
	"github.com/vrudenko/cryptovest/internal/service"
	"github.com/vrudenko/cryptovest/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
}

type DepositHandler interface {
	CreateDeposit(w http.ResponseWriter, r *http.Request)
	GetDeposits(w http.ResponseWriter, r *http.Request)
	CheckStatus(w http.ResponseWriter, r *http.Request)
	HandleIPN(w http.ResponseWriter, r *http.Request)
	Estimate(w http.ResponseWriter, r *http.Request)
	Currencies(w http.ResponseWriter, r *http.Request)
}

type InvestmentHandler interface {
	GetPlans(w http.ResponseWriter, r *http.Request)
	CreateInvestment(w http.ResponseWriter, r *http.Request)
	GetInvestments(w http.ResponseWriter, r *http.Request)
	GetInvestment(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	BalanceHandler    BalanceHandler
	DepositHandler    DepositHandler
	InvestmentHandler InvestmentHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		BalanceHandler:    balancehandlers.New(s.BalanceService),
		DepositHandler:    deposithandlers.New(s.DepositService),
		InvestmentHandler: investmenthandlers.New(s.InvestService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Get("/api/plans", h.InvestmentHandler.GetPlans)

	// Gateway callbacks authenticate with an HMAC signature, not a JWT.
	r.Post("/api/payments/ipn", h.DepositHandler.HandleIPN)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Get("/balance", h.BalanceHandler.GetBalance)
			r.Route("/deposits", func(r chi.Router) {
				r.Post("/", h.DepositHandler.CreateDeposit)
				r.Get("/", h.DepositHandler.GetDeposits)
				r.Get("/{id}/status", h.DepositHandler.CheckStatus)
			})
			r.Get("/estimate", h.DepositHandler.Estimate)
			r.Get("/currencies", h.DepositHandler.Currencies)
			r.Route("/withdrawals", func(r chi.Router) {
				r.Post("/", h.BalanceHandler.Withdraw)
				r.Get("/", h.BalanceHandler.GetWithdrawals)
			})
			r.Route("/investments", func(r chi.Router) {
				r.Post("/", h.InvestmentHandler.CreateInvestment)
				r.Get("/", h.InvestmentHandler.GetInvestments)
				r.Get("/{id}", h.InvestmentHandler.GetInvestment)
			})
		})
	})

	return r
}
