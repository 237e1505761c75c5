package v1

import (
	"net/http"

	"intervyo-backend/internal/delivery/http/response"
	"intervyo-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionUC domain.QuestionUsecase
}

// NewQuestionHandler registers the crowdsourced question routes.
// Browsing is public; contributing and moderating require a token.
func NewQuestionHandler(public, protected *gin.RouterGroup, questionUC domain.QuestionUsecase) {
	handler := &QuestionHandler{questionUC: questionUC}

	browse := public.Group("/questions")
	{
		browse.GET("/trending", handler.Trending)
		browse.GET("/search", handler.Search)
		browse.GET("/company/:company", handler.ByCompany)
		browse.GET("/company/:company/frequency", handler.Frequency)
	}

	contribute := protected.Group("/questions")
	{
		contribute.POST("", handler.Submit)
		contribute.GET("/my", handler.MyQuestions)
		contribute.POST("/:questionId/vote", handler.Vote)
		contribute.POST("/:questionId/report", handler.Report)
		contribute.POST("/:questionId/verify", handler.Verify)
	}
}

type questionListQuery struct {
	QuestionType string `form:"questionType" binding:"omitempty,question_type"`
	Difficulty   string `form:"difficulty" binding:"omitempty,oneof=easy medium hard expert"`
	Role         string `form:"role" binding:"max=120"`
	Verified     *bool  `form:"verified"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type questionSearchQuery struct {
	Q            string `form:"q" binding:"max=200"`
	Company      string `form:"company" binding:"max=120"`
	QuestionType string `form:"questionType" binding:"omitempty,question_type"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type trendingQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Trending godoc
// @Summary      Trending questions
// @Description  Active questions ranked by votes, frequency and recency
// @Tags         Questions
// @Produce      json
// @Param        limit  query     int  false  "Maximum results (default 20)"
// @Success      200    {object}  response.Response{data=[]domain.RealQuestion}
// @Router       /questions/trending [get]
func (h *QuestionHandler) Trending(c *gin.Context) {
	var query trendingQuery
	if !bindQuery(c, &query) {
		return
	}

	questions, err := h.questionUC.Trending(c.Request.Context(), query.Limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Trending questions retrieved", questions)
}

// Search godoc
// @Summary      Search questions
// @Description  Case-insensitive match on question text and tags
// @Tags         Questions
// @Produce      json
// @Param        q             query     string  true   "Search term"
// @Param        company       query     string  false  "Company filter"
// @Param        questionType  query     string  false  "Question type filter"
// @Param        limit         query     int     false  "Maximum results (default 30)"
// @Success      200           {object}  response.Response{data=[]domain.RealQuestion}
// @Failure      400           {object}  response.Response
// @Router       /questions/search [get]
func (h *QuestionHandler) Search(c *gin.Context) {
	var query questionSearchQuery
	if !bindQuery(c, &query) {
		return
	}

	questions, err := h.questionUC.Search(c.Request.Context(), query.Q, domain.QuestionFilter{
		Company:      query.Company,
		QuestionType: query.QuestionType,
		Limit:        query.Limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Search results retrieved", questions)
}

// ByCompany godoc
// @Summary      Questions for a company
// @Tags         Questions
// @Produce      json
// @Param        company       path      string  true   "Company name"
// @Param        questionType  query     string  false  "Question type filter"
// @Param        difficulty    query     string  false  "Difficulty filter"
// @Param        role          query     string  false  "Role filter"
// @Param        verified      query     bool    false  "Verified filter"
// @Param        limit         query     int     false  "Maximum results (default 50)"
// @Success      200           {object}  response.Response{data=[]domain.RealQuestion}
// @Router       /questions/company/{company} [get]
func (h *QuestionHandler) ByCompany(c *gin.Context) {
	var query questionListQuery
	if !bindQuery(c, &query) {
		return
	}

	questions, err := h.questionUC.ByCompany(c.Request.Context(), c.Param("company"), domain.QuestionFilter{
		QuestionType: query.QuestionType,
		Difficulty:   query.Difficulty,
		Role:         query.Role,
		Verified:     query.Verified,
		Limit:        query.Limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company questions retrieved", questions)
}

// Frequency godoc
// @Summary      Question frequency for a company
// @Tags         Questions
// @Produce      json
// @Param        company  path      string  true  "Company name"
// @Success      200      {object}  response.Response{data=domain.FrequencyStats}
// @Router       /questions/company/{company}/frequency [get]
func (h *QuestionHandler) Frequency(c *gin.Context) {
	stats, err := h.questionUC.Frequency(c.Request.Context(), c.Param("company"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question frequency retrieved", stats)
}

// Submit godoc
// @Summary      Submit a real interview question
// @Description  The question is reviewed before appearing publicly
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SubmitQuestionRequest  true  "Question details"
// @Success      201      {object}  response.Response{data=domain.RealQuestion}
// @Failure      400      {object}  response.Response
// @Router       /questions [post]
// @Security     BearerAuth
func (h *QuestionHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.SubmitQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.questionUC.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Question submitted successfully. It will be reviewed before appearing publicly.", q)
}

// MyQuestions godoc
// @Summary      My submitted questions
// @Tags         Questions
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.UserQuestions}
// @Router       /questions/my [get]
// @Security     BearerAuth
func (h *QuestionHandler) MyQuestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mine, err := h.questionUC.MyQuestions(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your questions retrieved", mine)
}

// Vote godoc
// @Summary      Vote on a question
// @Description  Repeating a vote removes it; the opposite vote replaces it
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        questionId  path      string              true  "Question ID"
// @Param        request     body      domain.VoteRequest  true  "up or down"
// @Success      200         {object}  response.Response{data=domain.RealQuestion}
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /questions/{questionId}/vote [post]
// @Security     BearerAuth
func (h *QuestionHandler) Vote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.VoteRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.questionUC.Vote(c.Request.Context(), userID, c.Param("questionId"), req.VoteType)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Vote recorded successfully", q)
}

// Report godoc
// @Summary      Report a question
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        questionId  path      string                true  "Question ID"
// @Param        request     body      domain.ReportRequest  true  "Reason"
// @Success      200         {object}  response.Response{data=domain.RealQuestion}
// @Failure      404         {object}  response.Response
// @Router       /questions/{questionId}/report [post]
// @Security     BearerAuth
func (h *QuestionHandler) Report(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.ReportRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	q, err := h.questionUC.Report(c.Request.Context(), userID, c.Param("questionId"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question reported successfully", q)
}

// Verify godoc
// @Summary      Verify a question
// @Description  Admins only; rewards the submitter
// @Tags         Questions
// @Produce      json
// @Param        questionId  path      string  true  "Question ID"
// @Success      200         {object}  response.Response{data=domain.RealQuestion}
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /questions/{questionId}/verify [post]
// @Security     BearerAuth
func (h *QuestionHandler) Verify(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	q, err := h.questionUC.Verify(c.Request.Context(), userID, c.Param("questionId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question verified successfully", q)
}
