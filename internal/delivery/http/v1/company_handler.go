package v1

import (
	"net/http"

	"intervyo-backend/internal/delivery/http/response"
	"intervyo-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

// NewCompanyHandler registers the public company catalog route
func NewCompanyHandler(public *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	public.GET("/companies", handler.ListCompanies)
}

// ListCompanies godoc
// @Summary      Company catalog
// @Description  Hiring bars and characteristics used for fit scoring
// @Tags         Companies
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CompanyProfile}
// @Router       /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyUC.ListCompanies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Companies retrieved", companies)
}
