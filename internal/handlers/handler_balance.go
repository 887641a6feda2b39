package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/SscSPs/splitbalance/internal/middleware"
	"github.com/gin-gonic/gin"
)

const displayCurrencyParam = "display_currency"

// balanceHandler serves derived balances and exports.
type balanceHandler struct {
	balanceService         portssvc.BalanceSvc
	groupService           portssvc.GroupReaderSvc
	defaultDisplayCurrency string
}

// RegisterBalanceRoutes registers balance routes under a group-scoped router group.
// defaultDisplayCurrency applies when the request names no display currency; empty
// means the per-currency breakdown.
func RegisterBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc, groupService portssvc.GroupReaderSvc, defaultDisplayCurrency string) {
	h := &balanceHandler{
		balanceService:         balanceService,
		groupService:           groupService,
		defaultDisplayCurrency: strings.ToUpper(defaultDisplayCurrency),
	}

	rg.GET("/balance-data", h.getBalanceData)
	rg.GET("/export", h.exportGroup)
}

// displayCurrency resolves the requested projection. An explicit empty parameter asks
// for the breakdown even when a default is configured.
func (h *balanceHandler) displayCurrency(c *gin.Context) (*string, error) {
	raw, present := c.GetQuery(displayCurrencyParam)
	if !present {
		if h.defaultDisplayCurrency == "" {
			return nil, nil
		}
		code := h.defaultDisplayCurrency
		return &code, nil
	}

	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return nil, nil
	}
	if len(code) != 3 {
		return nil, fmt.Errorf("%s must be a 3-letter currency code", displayCurrencyParam)
	}
	return &code, nil
}

// getBalanceData godoc
// @Summary Get group balances
// @Description Derives every member's net balance from the group's expenses and settlements.
// @Description With display_currency each balance is converted and summed, otherwise
// @Description balances are broken down per currency. An empty display_currency forces the breakdown.
// @Tags balances
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   display_currency query string false "Currency to convert balances into"
// @Success 200 {object} dto.BalanceDataResponse
// @Failure 400 {object} map[string]string "Invalid display currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 422 {object} map[string]string "Missing exchange rate"
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Security BearerAuth
// @Router /groups/{group_id}/balance-data [get]
func (h *balanceHandler) getBalanceData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	display, err := h.displayCurrency(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("group_id", groupID))
	gb, err := h.balanceService.GetBalanceData(c.Request.Context(), groupID, display, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceDataResponse(*gb))
}

// exportGroup godoc
// @Summary Export a group as CSV
// @Description Downloads every expense followed by each member's net balance per currency.
// @Tags balances
// @Produce  text/csv
// @Param   group_id path string true "Group ID"
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 500 {object} map[string]string "Failed to export group"
// @Security BearerAuth
// @Router /groups/{group_id}/export [get]
func (h *balanceHandler) exportGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("group_id", groupID))
	group, err := h.groupService.GetGroup(c.Request.Context(), groupID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to export group")
		return
	}

	var buf bytes.Buffer
	if err := h.balanceService.ExportGroupCSV(c.Request.Context(), groupID, userID, &buf); err != nil {
		respondError(c, logger, err, "Failed to export group")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(group.Name)))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// exportFilename builds "<name>_expenses.csv" keeping only filename-safe characters.
func exportFilename(groupName string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, groupName)
	if safe == "" {
		safe = "group"
	}
	return safe + "_expenses.csv"
}
