package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/SscSPs/splitbalance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to a group's expenses.
type expenseHandler struct {
	expenseService  portssvc.ExpenseSvcFacade
	currencyService portssvc.CurrencyReaderSvc
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade, cs portssvc.CurrencyReaderSvc) *expenseHandler {
	return &expenseHandler{expenseService: es, currencyService: cs}
}

// RegisterExpenseRoutes registers expense routes under a group-scoped router group.
func RegisterExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, currencyService portssvc.CurrencyReaderSvc) {
	h := newExpenseHandler(expenseService, currencyService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expense_id", h.getExpense)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Description Splits the amount among the listed participants and records the expense.
// @Description Split values are percentages, amounts in major units or weights depending on splitType.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input or split"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 422 {object} map[string]any "Split inputs do not add up"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Security BearerAuth
// @Router /groups/{group_id}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("group_id", groupID), slog.String("split_type", string(req.SplitType)))
	logger.Info("Received request to create expense", slog.Int("participants", len(req.Splits)))

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), groupID, req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create expense")
		return
	}

	precision, err := h.currencyService.PrecisionLookup(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to render expense")
		return
	}

	logger.Info("Expense created successfully", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense, precision(expense.Total.Currency)))
}

// getExpense godoc
// @Summary Get an expense
// @Description Retrieves one expense and its split lines.
// @Tags expenses
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   expense_id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /groups/{group_id}/expenses/{expense_id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")
	expenseID := c.Param("expense_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("group_id", groupID), slog.String("expense_id", expenseID))
	expense, err := h.expenseService.GetExpense(c.Request.Context(), groupID, expenseID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve expense")
		return
	}

	precision, err := h.currencyService.PrecisionLookup(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, precision(expense.Total.Currency)))
}

// listExpenses godoc
// @Summary List expenses
// @Description Retrieves a page of the group's expenses, newest first.
// @Tags expenses
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   limit query int false "Page size" default(20) minimum(1) maximum(100)
// @Param   nextToken query string false "Token from the previous page"
// @Param   includeSettlements query bool false "Include settlements" default(true)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /groups/{group_id}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("group_id", groupID))
	res, err := h.expenseService.ListExpenses(c.Request.Context(), groupID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list expenses")
		return
	}

	logger.Info("Expenses listed successfully", slog.Int("count", len(res.Expenses)))
	c.JSON(http.StatusOK, res)
}
