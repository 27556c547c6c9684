package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
)

type CompanyHandler struct {
	CompanyService  *services.CompanyService
	CategoryService *services.CategoryService
	Decorator       listing.Decorator
}

func NewCompanyHandler(co *services.CompanyService, ca *services.CategoryService, d listing.Decorator) *CompanyHandler {
	return &CompanyHandler{CompanyService: co, CategoryService: ca, Decorator: d}
}

type companyResponse struct {
	*models.Company
	LogoURL *string `json:"logo_url"`
}

func (h *CompanyHandler) respond(c *gin.Context, status int, company *models.Company) {
	c.JSON(status, companyResponse{Company: company, LogoURL: h.Decorator.LogoURL(company.LogoName)})
}

// Upsert is the POST /company endpoint
func (h *CompanyHandler) Upsert(c *gin.Context) {
	var req dtos.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, _ := auth.CurrentUser(c)
	company, err := h.CompanyService.Upsert(c.Request.Context(), user.UserID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, company)
}

// Get is the GET /company endpoint
func (h *CompanyHandler) Get(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	company, err := h.CompanyService.Get(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, company)
}

// SearchCategories is the POST /job-category endpoint
func (h *CompanyHandler) SearchCategories(c *gin.Context) {
	var req dtos.CategorySearchRequest
	// An empty body lists every category.
	_ = c.ShouldBindJSON(&req)
	categories, err := h.CategoryService.Search(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
