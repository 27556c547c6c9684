package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
)

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

type Handlers struct {
	Jobs         *JobHandler
	Companies    *CompanyHandler
	Applications *ApplicationHandler
}

// NewRouter builds the gin engine with CORS, request timeouts and every
// route under /api/v1.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", auth.HeaderUserID, auth.HeaderUserRole}
	r.Use(cors.New(corsConfig))
	r.Use(Timeout(cfg.RequestTimeout))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		// Public
		api.POST("/job-offers/filter", h.Jobs.Filter)
		api.GET("/job-offers/recent", h.Jobs.Recent)
		api.GET("/job-offers/:id", h.Jobs.Get)
		api.POST("/job-category", h.Companies.SearchCategories)
	}

	recruiter := api.Group("", auth.RequireUser(), auth.RequireRole(models.RoleRecruiter))
	{
		recruiter.POST("/job-offers", h.Jobs.Create)
		recruiter.GET("/job-offers", h.Jobs.Dashboard)
		recruiter.PUT("/job-offers/:id", h.Jobs.Update)
		recruiter.PATCH("/job-offers/:id/active", h.Jobs.SetActive)
		recruiter.DELETE("/job-offers/:id", h.Jobs.Delete)
		recruiter.GET("/job-offers/:id/applicants", h.Applications.Applicants)
		recruiter.POST("/company", h.Companies.Upsert)
		recruiter.GET("/company", h.Companies.Get)
		recruiter.GET("/job-applications/recent", h.Applications.RecentApplicants)
		recruiter.PATCH("/job-applications/:id", h.Applications.UpdateStatus)
	}

	user := api.Group("", auth.RequireUser())
	{
		user.POST("/job-applications", h.Applications.Apply)
		user.GET("/job-applications", h.Applications.List)
		user.POST("/saved", h.Applications.Save)
		user.GET("/saved", h.Applications.ListSaved)
		user.GET("/saved/:jobOfferId", h.Applications.IsSaved)
		user.DELETE("/saved/:jobOfferId", h.Applications.DeleteSaved)
	}
	return r
}
