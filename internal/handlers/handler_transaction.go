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

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}
	rg.POST("/transactions", h.createTransaction)
}

// createTransaction godoc
// @Summary Process a ledger transaction
// @Description Applies credit, debit, reserve, capture, reversal or transfer. Requests are idempotent on referenceID;
// @Description repeating one returns the original outcome.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Rejected by a ledger rule or concurrent modification"
// @Failure 500 {object} map[string]string "Failed to process transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	kind, err := domain.ParseOperationKind(req.Operation)
	if err != nil {
		logger.Warn("Unknown operation", slog.String("operation", req.Operation))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actorID, _ := middleware.GetActorIDFromContext(c)

	result, err := h.transactionService.ProcessTransaction(c.Request.Context(), domain.TransactionCommand{
		Operation:            kind,
		AccountID:            req.AccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               req.Amount,
		Currency:             req.Currency,
		ReferenceID:          req.ReferenceID,
		OriginalReferenceID:  req.OriginalReferenceID,
		Metadata:             req.Metadata,
		ActorID:              actorID,
	})
	if err != nil {
		respondError(c, logger.With(slog.String("reference_id", req.ReferenceID)), err, "Failed to process transaction")
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToTransactionResponse(result))
}
