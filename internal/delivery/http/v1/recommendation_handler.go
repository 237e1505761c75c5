package v1

import (
	"net/http"

	"intervyo-backend/internal/delivery/http/response"
	"intervyo-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendationUC domain.RecommendationUsecase
}

// NewRecommendationHandler registers company fit routes
func NewRecommendationHandler(protected *gin.RouterGroup, recommendationUC domain.RecommendationUsecase) {
	handler := &RecommendationHandler{recommendationUC: recommendationUC}

	recommendations := protected.Group("/recommendations")
	{
		recommendations.GET("", handler.GetRecommendations)
		recommendations.GET("/:companyName", handler.GetCompanyFit)
	}
}

// GetRecommendations godoc
// @Summary      Company recommendations
// @Description  Rank every catalog company by how well the caller's interview history fits its hiring bar
// @Tags         Recommendations
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Recommendations}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recommendations [get]
// @Security     BearerAuth
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recs, err := h.recommendationUC.Recommend(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company recommendations retrieved", recs)
}

// GetCompanyFit godoc
// @Summary      Company fit analysis
// @Description  Detailed fit of the caller against one company, including improvement over time
// @Tags         Recommendations
// @Produce      json
// @Param        companyName  path      string  true  "Company name"
// @Success      200          {object}  response.Response{data=domain.FitAnalysis}
// @Failure      401          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /recommendations/{companyName} [get]
// @Security     BearerAuth
func (h *RecommendationHandler) GetCompanyFit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	analysis, err := h.recommendationUC.AnalyzeCompanyFit(c.Request.Context(), userID, c.Param("companyName"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company fit analysis retrieved", analysis)
}
