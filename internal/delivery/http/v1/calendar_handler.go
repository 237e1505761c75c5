package v1

import (
	"net/http"

	"intervyo-backend/internal/delivery/http/response"
	"intervyo-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarUC domain.CalendarUsecase
}

// NewCalendarHandler registers preparation calendar routes
func NewCalendarHandler(protected *gin.RouterGroup, calendarUC domain.CalendarUsecase) {
	handler := &CalendarHandler{calendarUC: calendarUC}

	calendar := protected.Group("/calendar")
	{
		calendar.POST("", handler.CreateCalendar)
		calendar.GET("", handler.ListCalendars)
		calendar.GET("/:calendarId/timeline", handler.GetTimeline)
		calendar.GET("/:calendarId/export", handler.ExportCalendar)
		calendar.PUT("/:calendarId/milestone/:milestoneId", handler.UpdateMilestone)
		calendar.PUT("/:calendarId/practice/:practiceId", handler.CompletePractice)
		calendar.DELETE("/:calendarId", handler.DeleteCalendar)
	}
}

type calendarListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active completed cancelled all"`
}

type exportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=xlsx csv"`
}

// CreateCalendar godoc
// @Summary      Create a preparation calendar
// @Description  Plans milestones up to the interview date and seeds today's practice checklist
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        request  body      domain.CreateCalendarRequest  true  "Interview details"
// @Success      201      {object}  response.Response{data=domain.PreparationCalendar}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /calendar [post]
// @Security     BearerAuth
func (h *CalendarHandler) CreateCalendar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.CreateCalendarRequest
	if !bindJSON(c, &req) {
		return
	}

	calendar, err := h.calendarUC.CreateCalendar(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview calendar created successfully", calendar)
}

// ListCalendars godoc
// @Summary      List my calendars
// @Description  Active calendars by default, soonest interview first. Adds today's practice entry when missing.
// @Tags         Calendar
// @Produce      json
// @Param        status  query     string  false  "active, completed, cancelled or all"
// @Success      200     {object}  response.Response{data=[]domain.PreparationCalendar}
// @Failure      400     {object}  response.Response
// @Router       /calendar [get]
// @Security     BearerAuth
func (h *CalendarHandler) ListCalendars(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query calendarListQuery
	if !bindQuery(c, &query) {
		return
	}

	calendars, err := h.calendarUC.ListCalendars(c.Request.Context(), userID, query.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Calendars retrieved", calendars)
}

// GetTimeline godoc
// @Summary      Preparation timeline
// @Tags         Calendar
// @Produce      json
// @Param        calendarId  path      string  true  "Calendar ID"
// @Success      200         {object}  response.Response{data=domain.CalendarTimeline}
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /calendar/{calendarId}/timeline [get]
// @Security     BearerAuth
func (h *CalendarHandler) GetTimeline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	timeline, err := h.calendarUC.Timeline(c.Request.Context(), userID, c.Param("calendarId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Preparation timeline retrieved", timeline)
}

// ExportCalendar godoc
// @Summary      Export a preparation plan
// @Description  Downloads milestones and daily practice as xlsx (default) or csv
// @Tags         Calendar
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        calendarId  path      string  true   "Calendar ID"
// @Param        format      query     string  false  "xlsx or csv"
// @Success      200         {file}    binary
// @Failure      400         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /calendar/{calendarId}/export [get]
// @Security     BearerAuth
func (h *CalendarHandler) ExportCalendar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query exportQuery
	if !bindQuery(c, &query) {
		return
	}

	file, err := h.calendarUC.ExportCalendar(c.Request.Context(), userID, c.Param("calendarId"), query.Format)
	if err != nil {
		c.Error(err)
		return
	}

	response.File(c, file)
}

// UpdateMilestone godoc
// @Summary      Update a milestone
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        calendarId   path      string                         true  "Calendar ID"
// @Param        milestoneId  path      string                         true  "Milestone ID"
// @Param        request      body      domain.UpdateMilestoneRequest  true  "Completion flag"
// @Success      200          {object}  response.Response{data=domain.PreparationCalendar}
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /calendar/{calendarId}/milestone/{milestoneId} [put]
// @Security     BearerAuth
func (h *CalendarHandler) UpdateMilestone(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.UpdateMilestoneRequest
	if !bindJSON(c, &req) {
		return
	}

	calendar, err := h.calendarUC.UpdateMilestone(c.Request.Context(), userID, c.Param("calendarId"), c.Param("milestoneId"), req.Completed)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Milestone updated successfully", calendar)
}

// CompletePractice godoc
// @Summary      Complete a daily practice
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        calendarId  path      string                          true  "Calendar ID"
// @Param        practiceId  path      string                          true  "Daily practice ID"
// @Param        request     body      domain.CompletePracticeRequest  true  "Practices done"
// @Success      200         {object}  response.Response{data=domain.PreparationCalendar}
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /calendar/{calendarId}/practice/{practiceId} [put]
// @Security     BearerAuth
func (h *CalendarHandler) CompletePractice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.CompletePracticeRequest
	if !bindJSON(c, &req) {
		return
	}

	calendar, err := h.calendarUC.CompleteDailyPractice(c.Request.Context(), userID, c.Param("calendarId"), c.Param("practiceId"), req.PracticesDone)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Daily practice marked as complete", calendar)
}

// DeleteCalendar godoc
// @Summary      Delete a calendar
// @Tags         Calendar
// @Produce      json
// @Param        calendarId  path      string  true  "Calendar ID"
// @Success      200         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /calendar/{calendarId} [delete]
// @Security     BearerAuth
func (h *CalendarHandler) DeleteCalendar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.calendarUC.DeleteCalendar(c.Request.Context(), userID, c.Param("calendarId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Calendar deleted successfully", nil)
}
