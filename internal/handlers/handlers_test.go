package handlers_test

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

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portssvc "github.com/SscSPs/transaction_processor/internal/core/ports/services"
	"github.com/SscSPs/transaction_processor/internal/dto"
	"github.com/SscSPs/transaction_processor/internal/handlers"
	"github.com/SscSPs/transaction_processor/internal/platform/config"
	"github.com/SscSPs/transaction_processor/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListClientAccounts(ctx context.Context, clientID string) ([]domain.Account, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ChangeAccountStatus(ctx context.Context, accountID string, action domain.StatusAction, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, action, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ProcessTransaction(ctx context.Context, cmd domain.TransactionCommand) (*domain.TransactionResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionResult), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.AccountSvcFacade     = (*MockAccountService)(nil)
	_ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)
)

type stubHealth struct{ err error }

func (s stubHealth) Ping(context.Context) error { return s.err }

// --- Test Suite Setup ---

type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	accounts    *MockAccountService
	transaction *MockTransactionService
	cfg         *config.Config
	health      stubHealth
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.accounts = new(MockAccountService)
	suite.transaction = new(MockTransactionService)
	suite.cfg = &config.Config{IsProduction: true}
	suite.health = stubHealth{}
	suite.buildRouter()
}

func (suite *HandlersTestSuite) buildRouter() {
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Account:     suite.accounts,
		Transaction: suite.transaction,
	}, handlers.RouteDeps{Health: suite.health})
}

func (suite *HandlersTestSuite) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func testAccount() *domain.Account {
	acc, _ := domain.NewAccount("ACC-0001", "client-1", decimal.NewFromInt(100), decimal.NewFromInt(50), "BRL", time.Now().UTC())
	return acc
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestCreateAccount() {
	acc := testAccount()
	suite.accounts.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.ClientID == "client-1" && req.InitialBalance.Equal(decimal.NewFromInt(100)) && req.Currency == "brl"
	}), "").Return(acc, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"clientID": "client-1", "initialBalance": "100", "creditLimit": "50", "currency": "brl",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ACC-0001", resp.AccountID)
	suite.True(resp.AvailableBalance.Equal(decimal.NewFromInt(150)))
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCreateAccount_BindingErrors() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing client", map[string]any{"initialBalance": "1"}},
		{"negative balance", map[string]any{"clientID": "c", "initialBalance": "-1"}},
		{"negative limit", map[string]any{"clientID": "c", "creditLimit": "-5"}},
		{"bad currency", map[string]any{"clientID": "c", "currency": "EU1"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounts", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestGetAccount() {
	suite.accounts.On("GetAccountByID", mock.Anything, "ACC-0001").Return(testAccount(), nil).Once()
	suite.accounts.On("GetAccountByID", mock.Anything, "ACC-404").
		Return(nil, fmt.Errorf("%w: ACC-404", apperrors.ErrAccountNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/ACC-0001", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"ACTIVE"`)

	w = suite.do(http.MethodGet, "/api/v1/accounts/ACC-404", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "account resource not found")
}

func (suite *HandlersTestSuite) TestListAccountTransactions() {
	token := "next"
	suite.accounts.On("ListAccountTransactions", mock.Anything, "ACC-0001", dto.ListTransactionsParams{Limit: 20}).
		Return(&dto.ListTransactionsResponse{Transactions: []dto.LedgerEntryResponse{{TransactionID: "e1"}}, NextToken: &token}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/ACC-0001/transactions", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"nextToken":"next"`)

	w = suite.do(http.MethodGet, "/api/v1/accounts/ACC-0001/transactions?limit=1000", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestChangeStatus() {
	blocked := testAccount()
	suite.Require().NoError(blocked.Block())
	suite.accounts.On("ChangeAccountStatus", mock.Anything, "ACC-0001", domain.ActionBlock, "").Return(blocked, nil).Once()
	suite.accounts.On("ChangeAccountStatus", mock.Anything, "ACC-0001", domain.ActionDeactivate, "").
		Return(nil, apperrors.ErrInvalidStateTransition).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/ACC-0001/block", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"BLOCKED"`)

	w = suite.do(http.MethodPost, "/api/v1/accounts/ACC-0001/deactivate", nil)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestCreateTransaction() {
	result := &domain.TransactionResult{
		EntryID: "entry-1", Status: domain.EntrySuccess,
		Balance: decimal.NewFromInt(60), ReservedBalance: decimal.Zero, AvailableBalance: decimal.NewFromInt(60),
		Timestamp: time.Now().UTC(),
	}
	suite.transaction.On("ProcessTransaction", mock.Anything, mock.MatchedBy(func(cmd domain.TransactionCommand) bool {
		return cmd.Operation == domain.OperationTransfer &&
			cmd.AccountID == "ACC-1" && cmd.DestinationAccountID == "ACC-2" &&
			cmd.Amount.Equal(decimal.RequireFromString("40.50")) &&
			cmd.ReferenceID == "TRF-1" && cmd.Metadata["channel"] == "pix"
	})).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"operation": "TRANSFER", "accountID": "ACC-1", "destinationAccountID": "ACC-2",
		"amount": "40.50", "referenceID": "TRF-1", "metadata": map[string]string{"channel": "pix"},
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("entry-1", resp.TransactionID)
	suite.Equal("success", resp.Status)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(60)))
	suite.transaction.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCreateTransaction_Replay() {
	suite.transaction.On("ProcessTransaction", mock.Anything, mock.Anything).
		Return(&domain.TransactionResult{EntryID: "entry-1", Status: domain.EntrySuccess, Replayed: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"operation": "credit", "accountID": "ACC-1", "amount": "1", "referenceID": "R-1",
	})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestCreateTransaction_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation), http.StatusBadRequest},
		{"account not found", apperrors.ErrAccountNotFound, http.StatusNotFound},
		{"insufficient funds", apperrors.ErrInsufficientFunds, http.StatusConflict},
		{"insufficient reserve", apperrors.ErrInsufficientReserve, http.StatusConflict},
		{"not active", apperrors.ErrAccountNotActive, http.StatusConflict},
		{"not reversible", apperrors.ErrOriginalEntryNotFound, http.StatusConflict},
		{"conflict", apperrors.ErrConcurrencyConflict, http.StatusConflict},
		{"infrastructure", apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", errors.New("conn refused")), http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.transaction.ExpectedCalls = nil
			suite.transaction.On("ProcessTransaction", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
				"operation": "debit", "accountID": "ACC-1", "amount": "10", "referenceID": "R-" + tt.name,
			})

			suite.Equal(tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				suite.Contains(w.Body.String(), "Failed to process transaction")
				suite.NotContains(w.Body.String(), "conn refused")
			}
		})
	}
}

func (suite *HandlersTestSuite) TestCreateTransaction_BadRequests() {
	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"operation": "refund", "accountID": "ACC-1", "amount": "1", "referenceID": "R-1",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "operation not supported")

	w = suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{"operation": "credit", "amount": "1"})
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.transaction.AssertNotCalled(suite.T(), "ProcessTransaction", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestAuthenticationPassesActor() {
	suite.cfg.JWTSecret = "secret"
	suite.cfg.JWTIssuer = "ledger"
	suite.buildRouter()
	token, err := utils.GenerateJWT("operator-1", "secret", time.Minute, "ledger")
	suite.Require().NoError(err)

	suite.accounts.On("ChangeAccountStatus", mock.Anything, "ACC-0001", domain.ActionActivate, "operator-1").
		Return(testAccount(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/ACC-0001/activate", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/accounts/ACC-0001/activate", nil, "Authorization", "Bearer "+token)
	suite.Equal(http.StatusOK, w.Code)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.health = stubHealth{err: errors.New("db down")}
	suite.buildRouter()
	w = suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
