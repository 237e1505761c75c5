package v1

import (
	"net/http"

	"intervyo-backend/internal/delivery/http/response"
	"intervyo-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type BuddyHandler struct {
	buddyUC domain.BuddyUsecase
	groupUC domain.StudyGroupUsecase
}

// NewBuddyHandler registers buddy matching and study group routes
func NewBuddyHandler(protected *gin.RouterGroup, buddyUC domain.BuddyUsecase, groupUC domain.StudyGroupUsecase) {
	handler := &BuddyHandler{buddyUC: buddyUC, groupUC: groupUC}

	buddy := protected.Group("/buddy")
	{
		buddy.GET("/matches", handler.FindMatches)
		buddy.POST("/connect", handler.Connect)
		buddy.GET("/my", handler.MyBuddies)
		buddy.POST("/:matchId/schedule", handler.ScheduleMock)

		buddy.POST("/groups", handler.CreateGroup)
		buddy.GET("/groups", handler.FindGroups)
		buddy.GET("/groups/my", handler.MyGroups)
		buddy.POST("/groups/:groupId/join", handler.JoinGroup)
	}
}

type buddyListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending accepted rejected blocked all"`
}

type groupListQuery struct {
	TargetCompany string `form:"targetCompany" binding:"max=120"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	OnlyAvailable bool   `form:"onlyAvailable"`
}

// FindMatches godoc
// @Summary      Find interview buddies
// @Description  Suggest users preparing for the same companies, ranked by match score
// @Tags         Buddy
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.BuddyResult}
// @Failure      401  {object}  response.Response
// @Router       /buddy/matches [get]
// @Security     BearerAuth
func (h *BuddyHandler) FindMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.buddyUC.FindBuddies(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Buddy matches retrieved", result)
}

// Connect godoc
// @Summary      Connect with a buddy
// @Description  Send a connection request, or accept the pending request the buddy already sent
// @Tags         Buddy
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ConnectRequest  true  "Buddy to connect with"
// @Success      201      {object}  response.Response{data=domain.BuddyMatch}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /buddy/connect [post]
// @Security     BearerAuth
func (h *BuddyHandler) Connect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.ConnectRequest
	if !bindJSON(c, &req) {
		return
	}

	match, err := h.buddyUC.Connect(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	if match.Status == domain.MatchAccepted {
		response.Success(c, http.StatusOK, "Buddy connection accepted", match)
		return
	}
	response.Success(c, http.StatusCreated, "Buddy connection request sent", match)
}

// MyBuddies godoc
// @Summary      List my buddies
// @Description  Accepted connections by default; pass status=all for every match
// @Tags         Buddy
// @Produce      json
// @Param        status  query     string  false  "pending, accepted, rejected, blocked or all"
// @Success      200     {object}  response.Response{data=[]domain.BuddyConnection}
// @Failure      400     {object}  response.Response
// @Router       /buddy/my [get]
// @Security     BearerAuth
func (h *BuddyHandler) MyBuddies(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query buddyListQuery
	if !bindQuery(c, &query) {
		return
	}

	buddies, err := h.buddyUC.ListBuddies(c.Request.Context(), userID, query.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Buddies retrieved", buddies)
}

// ScheduleMock godoc
// @Summary      Schedule a mock interview
// @Tags         Buddy
// @Accept       json
// @Produce      json
// @Param        matchId  path      string                      true  "Buddy match ID"
// @Param        request  body      domain.ScheduleMockRequest  true  "Session details"
// @Success      201      {object}  response.Response{data=domain.BuddyMatch}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /buddy/{matchId}/schedule [post]
// @Security     BearerAuth
func (h *BuddyHandler) ScheduleMock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.ScheduleMockRequest
	if !bindJSON(c, &req) {
		return
	}

	match, err := h.buddyUC.ScheduleMockInterview(c.Request.Context(), userID, c.Param("matchId"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Mock interview scheduled successfully", match)
}

// CreateGroup godoc
// @Summary      Create a study group
// @Tags         Study Groups
// @Accept       json
// @Produce      json
// @Param        request  body      domain.CreateGroupRequest  true  "Group details"
// @Success      201      {object}  response.Response{data=domain.StudyGroup}
// @Failure      400      {object}  response.Response
// @Router       /buddy/groups [post]
// @Security     BearerAuth
func (h *BuddyHandler) CreateGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupUC.CreateGroup(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Study group created successfully", group)
}

// FindGroups godoc
// @Summary      Find study groups
// @Description  Active public groups, most recently active first
// @Tags         Study Groups
// @Produce      json
// @Param        targetCompany  query     string  false  "Company filter"
// @Param        limit          query     int     false  "Maximum results (default 20)"
// @Param        onlyAvailable  query     bool    false  "Hide full groups"
// @Success      200            {object}  response.Response{data=[]domain.StudyGroup}
// @Router       /buddy/groups [get]
// @Security     BearerAuth
func (h *BuddyHandler) FindGroups(c *gin.Context) {
	var query groupListQuery
	if !bindQuery(c, &query) {
		return
	}

	groups, err := h.groupUC.FindGroups(c.Request.Context(), domain.GroupFilter{
		TargetCompany: query.TargetCompany,
		Limit:         query.Limit,
		OnlyAvailable: query.OnlyAvailable,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Study groups retrieved", groups)
}

// MyGroups godoc
// @Summary      List my study groups
// @Tags         Study Groups
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.StudyGroup}
// @Router       /buddy/groups/my [get]
// @Security     BearerAuth
func (h *BuddyHandler) MyGroups(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	groups, err := h.groupUC.MyGroups(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Study groups retrieved", groups)
}

// JoinGroup godoc
// @Summary      Join a study group
// @Tags         Study Groups
// @Produce      json
// @Param        groupId  path      string  true  "Study group ID"
// @Success      200      {object}  response.Response{data=domain.StudyGroup}
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /buddy/groups/{groupId}/join [post]
// @Security     BearerAuth
func (h *BuddyHandler) JoinGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	group, err := h.groupUC.JoinGroup(c.Request.Context(), userID, c.Param("groupId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Successfully joined study group", group)
}
