package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/SscSPs/splitbalance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// groupHandler handles HTTP requests related to groups and their members.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

func newGroupHandler(gs portssvc.GroupSvcFacade) *groupHandler {
	return &groupHandler{groupService: gs}
}

// RegisterGroupRoutes registers group routes and the expense, settlement and balance
// routes nested under a specific group.
func RegisterGroupRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, defaultDisplayCurrency string) {
	h := newGroupHandler(services.Group)

	groupsTopLevel := rg.Group("/groups")
	{
		groupsTopLevel.POST("", h.createGroup)
		groupsTopLevel.GET("", h.listUserGroups)
		groupsTopLevel.POST("/join", h.joinGroup)
	}

	groupSpecific := rg.Group("/groups/:group_id")
	{
		groupSpecific.GET("", h.getGroup)
		groupSpecific.POST("/members", h.addMember)

		RegisterExpenseRoutes(groupSpecific, services.Expense, services.Currency)
		registerSettlementRoutes(groupSpecific, services.Settlement, services.Currency)
		RegisterBalanceRoutes(groupSpecific, services.Balance, services.Group, defaultDisplayCurrency)
	}
}

// createGroup godoc
// @Summary Create a new group
// @Description Creates a group with the caller as its first member and returns its invite code.
// @Tags groups
// @Accept  json
// @Produce  json
// @Param   group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create group"
// @Security BearerAuth
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create group", slog.String("group_name", req.Name))

	group, err := h.groupService.CreateGroup(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create group")
		return
	}

	logger.Info("Group created successfully", slog.String("group_id", group.GroupID))
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// listUserGroups godoc
// @Summary List groups for current user
// @Description Retrieves the groups the authenticated user belongs to.
// @Tags groups
// @Produce  json
// @Success 200 {object} dto.ListGroupsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list groups"
// @Security BearerAuth
// @Router /groups [get]
func (h *groupHandler) listUserGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	groups, err := h.groupService.ListUserGroups(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list groups")
		return
	}

	logger.Info("Groups listed successfully", slog.Int("count", len(groups)))
	c.JSON(http.StatusOK, dto.ToListGroupsResponse(groups))
}

// getGroup godoc
// @Summary Get a group
// @Description Retrieves a group and its members. Only members may view a group.
// @Tags groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 500 {object} map[string]string "Failed to retrieve group"
// @Security BearerAuth
// @Router /groups/{group_id} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("group_id", groupID))
	group, err := h.groupService.GetGroup(c.Request.Context(), groupID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve group")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// addMember godoc
// @Summary Add a member to a group
// @Description Adds a participant to a group the caller belongs to.
// @Tags groups
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   member body dto.AddMemberRequest true "Member details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 409 {object} map[string]string "Already a member"
// @Failure 500 {object} map[string]string "Failed to add member"
// @Security BearerAuth
// @Router /groups/{group_id}/members [post]
func (h *groupHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("group_id", groupID), slog.String("participant_id", req.ParticipantID))
	logger.Info("Received request to add member")

	group, err := h.groupService.AddMember(c.Request.Context(), groupID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to add member")
		return
	}

	logger.Info("Member added successfully")
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// joinGroup godoc
// @Summary Join a group with an invite code
// @Description Adds the caller to the group identified by the invite code. Joining twice is a no-op.
// @Tags groups
// @Accept  json
// @Produce  json
// @Param   join body dto.JoinGroupRequest true "Invite code and display name"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Unknown invite code"
// @Failure 500 {object} map[string]string "Failed to join group"
// @Security BearerAuth
// @Router /groups/join [post]
func (h *groupHandler) joinGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for JoinGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	group, err := h.groupService.JoinByInviteCode(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to join group")
		return
	}

	logger.Info("Joined group", slog.String("group_id", group.GroupID))
	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}
