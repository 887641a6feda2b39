package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/SscSPs/splitbalance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// splitHandler serves split computations that never touch storage.
type splitHandler struct {
	splitService portssvc.SplitCalculatorSvc
}

// RegisterSplitRoutes registers the split preview and validation routes.
func RegisterSplitRoutes(rg *gin.RouterGroup, splitService portssvc.SplitCalculatorSvc) {
	h := &splitHandler{splitService: splitService}

	splits := rg.Group("/splits")
	{
		splits.POST("/preview", h.previewSplit)
		splits.POST("/validate", h.validateSplit)
	}
}

// previewSplit godoc
// @Summary Preview a split
// @Description Returns the per-participant lines an expense would produce without saving it.
// @Tags splits
// @Accept  json
// @Produce  json
// @Param   split body dto.PreviewSplitRequest true "Split inputs"
// @Success 200 {object} dto.SplitPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input or split"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]any "Split inputs do not add up"
// @Security BearerAuth
// @Router /splits/preview [post]
func (h *splitHandler) previewSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PreviewSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewSplit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.splitService.PreviewSplit(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to compute split")
		return
	}
	c.JSON(http.StatusOK, res)
}

// validateSplit godoc
// @Summary Validate percentages
// @Description Reports the running percentage total and whether it is within 0.01 of 100.
// @Tags splits
// @Accept  json
// @Produce  json
// @Param   split body dto.ValidateSplitRequest true "Percentages entered so far"
// @Success 200 {object} dto.SplitValidationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /splits/validate [post]
func (h *splitHandler) validateSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ValidateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateSplit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToSplitValidationResponse(h.splitService.ValidateSplit(c.Request.Context(), req)))
}
