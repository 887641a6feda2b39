package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/SscSPs/splitbalance/internal/middleware"
	"github.com/gin-gonic/gin"
)

type settlementHandler struct {
	settlementService portssvc.SettlementSvc
	currencyService   portssvc.CurrencyReaderSvc
}

func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvc, currencyService portssvc.CurrencyReaderSvc) {
	h := &settlementHandler{settlementService: settlementService, currencyService: currencyService}
	rg.POST("/settlements", h.recordSettlement)
}

// recordSettlement godoc
// @Summary Record a settlement
// @Description Records a transfer from one member to another. fromID defaults to the caller.
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   settlement body dto.RecordSettlementRequest true "Settlement details"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 500 {object} map[string]string "Failed to record settlement"
// @Security BearerAuth
// @Router /groups/{group_id}/settlements [post]
func (h *settlementHandler) recordSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("group_id", groupID))
	settlement, err := h.settlementService.RecordSettlement(c.Request.Context(), groupID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record settlement")
		return
	}

	precision, err := h.currencyService.PrecisionLookup(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to record settlement")
		return
	}

	logger.Info("Settlement recorded", slog.String("settlement_id", settlement.SettlementID))
	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement, precision(settlement.Amount.Currency)))
}
