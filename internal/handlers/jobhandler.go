package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/services"
)

type JobHandler struct {
	FilterService   *services.FilterService
	JobOfferService *services.JobOfferService
}

func NewJobHandler(f *services.FilterService, j *services.JobOfferService) *JobHandler {
	return &JobHandler{
		FilterService:   f,
		JobOfferService: j,
	}
}

// Filter is the POST /job-offers/filter endpoint
func (h *JobHandler) Filter(c *gin.Context) {
	// An unreadable body counts as no criteria.
	body, _ := io.ReadAll(c.Request.Body)
	req := dtos.ParseFilterRequest(body)
	page := listing.ParsePage(c.Query("page"), c.Query("limit"), listing.DefaultLimit)

	result, err := h.FilterService.Search(c.Request.Context(), req.ToCriteria(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Recent is the GET /job-offers/recent endpoint
func (h *JobHandler) Recent(c *gin.Context) {
	page := listing.ParsePage(c.Query("page"), c.Query("limit"), services.RecentDefaultLimit)
	result, err := h.JobOfferService.Recent(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get is the GET /job-offers/:id endpoint
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.JobOfferService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create is the POST /job-offers endpoint
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, _ := auth.CurrentUser(c)
	offer, err := h.JobOfferService.Create(c.Request.Context(), user.UserID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// Dashboard is the GET /job-offers endpoint: the recruiter's own offers
// ranked by applicants.
func (h *JobHandler) Dashboard(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	q := services.DashboardQuery{
		Page:   listing.ParsePage(c.Query("page"), c.Query("limit"), services.DashboardDefaultLimit),
		Search: c.Query("search"),
		Filter: c.DefaultQuery("filter", services.DashboardAll),
	}
	dashboard, err := h.JobOfferService.Dashboard(c.Request.Context(), user.UserID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Update is the PUT /job-offers/:id endpoint
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dtos.JobOfferPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, _ := auth.CurrentUser(c)
	offer, err := h.JobOfferService.Update(c.Request.Context(), user.UserID, id, req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// SetActive is the PATCH /job-offers/:id/active endpoint
func (h *JobHandler) SetActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dtos.ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, _ := auth.CurrentUser(c)
	offer, err := h.JobOfferService.SetActive(c.Request.Context(), user.UserID, id, *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// Delete is the DELETE /job-offers/:id endpoint
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, _ := auth.CurrentUser(c)
	if err := h.JobOfferService.Delete(c.Request.Context(), user.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job offer deleted successfully"})
}
