package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portssvc "github.com/SscSPs/transaction_processor/internal/core/ports/services"
	"github.com/SscSPs/transaction_processor/internal/dto"
	"github.com/SscSPs/transaction_processor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts and their owners.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/transactions", h.listAccountTransactions)
		accounts.POST("/:accountID/block", h.changeStatus(domain.ActionBlock))
		accounts.POST("/:accountID/activate", h.changeStatus(domain.ActionActivate))
		accounts.POST("/:accountID/deactivate", h.changeStatus(domain.ActionDeactivate))
	}
	rg.GET("/clients/:clientID/accounts", h.listClientAccounts)
}

// createAccount godoc
// @Summary Open an account
// @Description Opens an account for a client. The client is created on first use.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, _ := middleware.GetActorIDFromContext(c)

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Returns balances, credit limit and status of an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("accountID")))

	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccountTransactions godoc
// @Summary List account transactions
// @Description Pages through an account's ledger entries, newest first
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *accountHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("accountID")))

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAccountTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.accountService.ListAccountTransactions(c.Request.Context(), c.Param("accountID"), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listClientAccounts godoc
// @Summary List a client's accounts
// @Tags accounts
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{clientID}/accounts [get]
func (h *accountHandler) listClientAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("client_id", c.Param("clientID")))

	accounts, err := h.accountService.ListClientAccounts(c.Request.Context(), c.Param("clientID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// changeStatus godoc
// @Summary Change account status
// @Description Blocks, activates or deactivates an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /accounts/{accountID}/block [post]
// @Router /accounts/{accountID}/activate [post]
// @Router /accounts/{accountID}/deactivate [post]
func (h *accountHandler) changeStatus(action domain.StatusAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
			slog.String("account_id", c.Param("accountID")),
			slog.String("action", string(action)))
		actorID, _ := middleware.GetActorIDFromContext(c)

		account, err := h.accountService.ChangeAccountStatus(c.Request.Context(), c.Param("accountID"), action, actorID)
		if err != nil {
			respondError(c, logger, err, "Failed to change account status")
			return
		}
		c.JSON(http.StatusOK, dto.ToAccountResponse(account))
	}
}
