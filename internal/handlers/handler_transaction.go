package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to transactions. There
// is deliberately no DELETE route: transactions are permanent records and
// corrections go through PUT.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.GET("", h.listTransactions)
		transactions.PUT("/:id", h.updateTransaction)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records a money movement and atomically adjusts the linked account's balance
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, inactive account/category, or foreign reference"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record transaction"
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

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create transaction",
		slog.String("account_id", req.AccountID),
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()),
	)

	newTxn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Referenced account or category not found", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		}
		return
	}

	logger.Info("Transaction recorded successfully", slog.String("transaction_id", newTxn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(newTxn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves details for a specific transaction by its ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to access transaction", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get transaction from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions for the logged-in user
// @Description Retrieves transactions filtered by account, category, type and inclusive date range, newest first
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Param   accountID query string false "Filter by account"
// @Param   categoryID query string false "Filter by category"
// @Param   type query string false "Filter by type (income, expense, transfer)"
// @Param   from query string false "Start date (inclusive, YYYY-MM-DD)"
// @Param   to query string false "End date (inclusive, YYYY-MM-DD)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.TransactionFilter{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		FromDate:   params.From,
		ToDate:     params.To,
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		filter.Type = &t
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), userID, filter, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToListTransactionResponse(txns)})
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates a transaction's mutable fields (category, description, date, person). Amount, type and account are immutable.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID to update"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedTxn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for update", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to update transaction", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		}
		return
	}

	logger.Info("Transaction updated successfully", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(updatedTxn))
}
