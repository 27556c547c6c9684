package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	SavedJobService    *services.SavedJobService
}

func NewApplicationHandler(a *services.ApplicationService, s *services.SavedJobService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a, SavedJobService: s}
}

// Apply is the POST /job-applications endpoint
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, _ := auth.CurrentUser(c)
	app, err := h.ApplicationService.Apply(c.Request.Context(), user.UserID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": app})
}

// List is the GET /job-applications endpoint
func (h *ApplicationHandler) List(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	page := listing.ParsePage(c.Query("page"), c.Query("limit"), listing.DefaultLimit)
	result, err := h.ApplicationService.ListForUser(c.Request.Context(), user.UserID, c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Applicants is the GET /job-offers/:id/applicants endpoint
func (h *ApplicationHandler) Applicants(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, _ := auth.CurrentUser(c)
	page := listing.ParsePage(c.Query("page"), c.Query("limit"), listing.DefaultLimit)
	result, err := h.ApplicationService.ApplicantsForOffer(c.Request.Context(), user.UserID, id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecentApplicants is the GET /job-applications/recent endpoint
func (h *ApplicationHandler) RecentApplicants(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	page := listing.ParsePage(c.Query("page"), c.Query("limit"), services.RecentApplicantsDefaultLimit)
	result, err := h.ApplicationService.RecentApplicants(c.Request.Context(), user.UserID, c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStatus is the PATCH /job-applications/:id endpoint
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dtos.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}
	user, _ := auth.CurrentUser(c)
	app, err := h.ApplicationService.UpdateStatus(c.Request.Context(), user.UserID, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": app})
}

// Save is the POST /saved endpoint
func (h *ApplicationHandler) Save(c *gin.Context) {
	var req dtos.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, _ := auth.CurrentUser(c)
	saved, err := h.SavedJobService.Save(c.Request.Context(), user.UserID, req.JobOfferID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ListSaved is the GET /saved endpoint
func (h *ApplicationHandler) ListSaved(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	saved, err := h.SavedJobService.List(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// IsSaved is the GET /saved/:jobOfferId endpoint
func (h *ApplicationHandler) IsSaved(c *gin.Context) {
	id, ok := paramID(c, "jobOfferId")
	if !ok {
		return
	}
	user, _ := auth.CurrentUser(c)
	saved, err := h.SavedJobService.Find(c.Request.Context(), user.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job offer is saved", "saved_job_id": saved.ID})
}

// DeleteSaved is the DELETE /saved/:jobOfferId endpoint
func (h *ApplicationHandler) DeleteSaved(c *gin.Context) {
	id, ok := paramID(c, "jobOfferId")
	if !ok {
		return
	}
	user, _ := auth.CurrentUser(c)
	if err := h.SavedJobService.Delete(c.Request.Context(), user.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Saved job deleted successfully"})
}
