package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/apperrors"
	portssvc "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/services"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/dto"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/middleware"
)

// transactionHandler handles HTTP requests for ledger operations.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ledgerService portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{
		ledgerService: ledgerService,
	}
}

// registerTransactionRoutes registers routes related to ledger transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/credit", h.creditBalance)
		transactions.POST("/campaign-debit", h.campaignDebit)
		transactions.GET("/history", h.getHistory)
	}
}

// statusFromLedgerError maps domain errors to HTTP status codes.
func statusFromLedgerError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// creditBalance godoc
// @Summary Credit points to an account
// @Description Moves points from the authenticated caller to the receiver. Admin credits mint; reseller credits are zero-sum.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   credit body dto.CreditRequest true "Receiver and amount"
// @Success 200 {object} dto.CreditResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role not permitted"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Unexpected failure"
// @Router /transactions/credit [post]
func (h *transactionHandler) creditBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreditRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for creditBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	senderID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.ledgerService.CreditBalance(c.Request.Context(), senderID, req.ReceiverID, req.Amount)
	if err != nil {
		status := statusFromLedgerError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to credit balance", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to credit balance"})
			return
		}
		logger.Warn("Credit rejected", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CreditResponse{
		Sender:      dto.ToAccountResponse(&result.Sender),
		Receiver:    dto.ToAccountResponse(&result.Receiver),
		Transaction: dto.ToTransactionResponse(&result.Transaction),
	})
}

// campaignDebit godoc
// @Summary Pay for a campaign batch
// @Description Debits one point per recipient, capped at the available balance. Partial funding is reported, not an error.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   debit body dto.CampaignDebitRequest true "Campaign and recipient count"
// @Success 200 {object} dto.CampaignDebitResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Unexpected failure"
// @Router /transactions/campaign-debit [post]
func (h *transactionHandler) campaignDebit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CampaignDebitRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for campaignDebit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.ledgerService.DebitForCampaign(c.Request.Context(), userID, req.CampaignID, req.RequestedAmount)
	if err != nil {
		status := statusFromLedgerError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to debit for campaign", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to debit for campaign"})
			return
		}
		logger.Warn("Campaign debit rejected", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CampaignDebitResponse{
		Account:                dto.ToAccountResponse(&result.Account),
		Transaction:            dto.ToTransactionResponse(&result.Transaction),
		ActualNumbersProcessed: result.ActualNumbersProcessed,
	})
}

// getHistory godoc
// @Summary List the caller's transaction history
// @Description Returns the most recent transactions referencing the caller's account, newest first.
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Maximum entries (default 50)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Unexpected failure"
// @Router /transactions/history [get]
func (h *transactionHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	transactions, err := h.ledgerService.GetTransactionHistory(c.Request.Context(), accountID, limit)
	if err != nil {
		status := statusFromLedgerError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to fetch transaction history", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to fetch transaction history"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
	})
}
