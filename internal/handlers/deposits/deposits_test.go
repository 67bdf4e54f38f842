package deposits

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/dto"
	"github.com/vrudenko/cryptovest/internal/gateway"
	depositservice "github.com/vrudenko/cryptovest/internal/service/depositservice"
	"github.com/vrudenko/cryptovest/pkg/auth"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*DepositHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func testDeposit() *domain.Deposit {
	return &domain.Deposit{
		ID:            "dep_a1b2c3d4e5f6",
		UserID:        1,
		Amount:        decimal.RequireFromString("100.00"),
		Status:        domain.DepositPending,
		PaymentID:     "5077125051",
		PayAddress:    "3EZ2uTdVDAMWJcjwRZtBYVfyCZPGaaPbMh",
		PayCurrency:   "btc",
		PayAmount:     decimal.RequireFromString("0.00155103"),
		PaymentStatus: "waiting",
		ActuallyPaid:  decimal.Zero,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreateDepositHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful creation",
			body: `{"amount":100.00,"pay_currency":"btc"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateDeposit(context.WithValue(context.Background(), auth.UserIDKey, 1), 1, gomock.Any(), "btc").
					Return(testDeposit(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"amount":invalid}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Amount below gateway minimum",
			body: `{"amount":1.00,"pay_currency":"btc"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateDeposit(context.WithValue(context.Background(), auth.UserIDKey, 1), 1, gomock.Any(), "btc").
					Return(nil, gateway.ErrAmountTooSmall)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "amount below gateway minimum",
		},
		{
			name: "Gateway rate limited",
			body: `{"amount":100.00,"pay_currency":"btc"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateDeposit(context.WithValue(context.Background(), auth.UserIDKey, 1), 1, gomock.Any(), "btc").
					Return(nil, gateway.ErrRateLimited)
			},
			expectedCode: http.StatusTooManyRequests,
		},
		{
			name: "Gateway api error",
			body: `{"amount":100.00,"pay_currency":"btc"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateDeposit(context.WithValue(context.Background(), auth.UserIDKey, 1), 1, gomock.Any(), "btc").
					Return(nil, &gateway.APIError{StatusCode: 500, Message: "internal provider error"})
			},
			expectedCode:  http.StatusBadGateway,
			expectedError: "internal provider error",
		},
		{
			name: "Gateway unreachable",
			body: `{"amount":100.00,"pay_currency":"btc"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateDeposit(context.WithValue(context.Background(), auth.UserIDKey, 1), 1, gomock.Any(), "btc").
					Return(nil, errors.New("connection refused"))
			},
			expectedCode:  http.StatusBadGateway,
			expectedError: "Payment gateway error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/deposits", bytes.NewBufferString(tt.body))
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()

			handler.CreateDeposit(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestGetDepositsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetDeposits(context.WithValue(context.Background(), auth.UserIDKey, 1), 1).
					Return([]domain.Deposit{*testDeposit()}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name: "No deposits",
			prepareMock: func() {
				service.EXPECT().GetDeposits(context.WithValue(context.Background(), auth.UserIDKey, 1), 1).
					Return([]domain.Deposit{}, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetDeposits(context.WithValue(context.Background(), auth.UserIDKey, 1), 1).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/deposits", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()

			handler.GetDeposits(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.DepositResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
				assert.Equal(t, "dep_a1b2c3d4e5f6", body[0].ID)
			}
		})
	}
}

func TestCheckStatusHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		depositID     string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:      "Successful poll",
			depositID: "dep_a1b2c3d4e5f6",
			prepareMock: func() {
				settled := testDeposit()
				settled.Status = domain.DepositCompleted
				settled.PaymentStatus = "finished"
				service.EXPECT().
					CheckStatus(gomock.Any(), 1, "dep_a1b2c3d4e5f6").
					Return(settled, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "Deposit not found",
			depositID: "dep_missing",
			prepareMock: func() {
				service.EXPECT().
					CheckStatus(gomock.Any(), 1, "dep_missing").
					Return(nil, depositservice.ErrDepositNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "deposit not found",
		},
		{
			name:      "Gateway unreachable",
			depositID: "dep_a1b2c3d4e5f6",
			prepareMock: func() {
				service.EXPECT().
					CheckStatus(gomock.Any(), 1, "dep_a1b2c3d4e5f6").
					Return(nil, fmt.Errorf("%w: connection refused", gateway.ErrUnreachable))
			},
			expectedCode:  http.StatusBadGateway,
			expectedError: "Payment gateway error",
		},
		{
			name:      "Internal server error",
			depositID: "dep_a1b2c3d4e5f6",
			prepareMock: func() {
				service.EXPECT().
					CheckStatus(gomock.Any(), 1, "dep_a1b2c3d4e5f6").
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.depositID)
			r := httptest.NewRequest(http.MethodGet, "/deposits/"+tt.depositID+"/status", nil)
			ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
			r = r.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.CheckStatus(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestHandleIPN(t *testing.T) {
	handler, service := NewMock(t)

	body := `{"payment_id":5077125051,"payment_status":"finished","actually_paid":0.00155103}`

	tests := []struct {
		name          string
		signature     string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:      "Processed",
			signature: "deadbeef",
			prepareMock: func() {
				service.EXPECT().ProcessIPN(gomock.Any(), []byte(body), "deadbeef").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "Invalid signature",
			signature: "bogus",
			prepareMock: func() {
				service.EXPECT().ProcessIPN(gomock.Any(), []byte(body), "bogus").Return(depositservice.ErrInvalidIPNSignature)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid ipn signature",
		},
		{
			name:      "Malformed payload",
			signature: "deadbeef",
			prepareMock: func() {
				service.EXPECT().ProcessIPN(gomock.Any(), []byte(body), "deadbeef").Return(depositservice.ErrMalformedIPN)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "malformed ipn payload",
		},
		{
			name:      "Unknown payment",
			signature: "deadbeef",
			prepareMock: func() {
				service.EXPECT().ProcessIPN(gomock.Any(), []byte(body), "deadbeef").Return(depositservice.ErrUnknownPayment)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "unknown payment id",
		},
		{
			name:      "Reconciliation failure",
			signature: "deadbeef",
			prepareMock: func() {
				service.EXPECT().ProcessIPN(gomock.Any(), []byte(body), "deadbeef").Return(errors.New("tx failed"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/payments/ipn", bytes.NewBufferString(body))
			r.Header.Set(gateway.SignatureHeader, tt.signature)
			w := httptest.NewRecorder()

			handler.HandleIPN(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestEstimateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		query         string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:  "Successful estimate",
			query: "amount=100&currency=btc",
			prepareMock: func() {
				service.EXPECT().
					EstimateRate(gomock.Any(), gomock.Any(), "usd", "btc").
					Return(&gateway.Estimate{
						EstimatedAmount: decimal.RequireFromString("0.00155103"),
						CurrencyFrom:    "usd",
						CurrencyTo:      "btc",
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid amount",
			query:         "amount=abc&currency=btc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid amount",
		},
		{
			name:          "Negative amount",
			query:         "amount=-5&currency=btc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid amount",
		},
		{
			name:          "Missing currency",
			query:         "amount=100",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Currency is required",
		},
		{
			name:  "Gateway error",
			query: "amount=100&currency=btc",
			prepareMock: func() {
				service.EXPECT().
					EstimateRate(gomock.Any(), gomock.Any(), "usd", "btc").
					Return(nil, errors.New("gateway down"))
			},
			expectedCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/estimate?"+tt.query, nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()

			handler.Estimate(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.EstimateResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "btc", body.CurrencyTo)
				assert.True(t, decimal.RequireFromString("0.00155103").Equal(body.EstimatedAmount))
			}
		})
	}
}

func TestCurrenciesHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().Currencies(gomock.Any()).Return([]string{"btc", "eth", "usdttrc20"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Gateway error",
			prepareMock: func() {
				service.EXPECT().Currencies(gomock.Any()).Return(nil, gateway.ErrNotConfigured)
			},
			expectedCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/currencies", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()

			handler.Currencies(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.CurrenciesResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, []string{"btc", "eth", "usdttrc20"}, body.Currencies)
			}
		})
	}
}
