package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/services"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if cfg.SeedCategories {
		if err := database.SeedCategories(db); err != nil {
			log.Fatal("Failed to seed categories: ", err)
		}
	}

	// 3. Initialize Services
	decorator := listing.Decorator{BaseURL: cfg.BaseURL}
	categoryService := services.NewCategoryService(db)
	matcherService := services.NewMatcherService(db)
	companyService := services.NewCompanyService(db)
	filterService := services.NewFilterService(db, categoryService, matcherService, decorator)
	jobOfferService := services.NewJobOfferService(db, categoryService, matcherService, decorator)
	applicationService := services.NewApplicationService(db, categoryService, matcherService, decorator)
	savedJobService := services.NewSavedJobService(db, categoryService, matcherService, decorator)

	// 4. Initialize Handlers
	if err := handlers.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators: ", err)
	}
	h := handlers.Handlers{
		Jobs:         handlers.NewJobHandler(filterService, jobOfferService),
		Companies:    handlers.NewCompanyHandler(companyService, categoryService, decorator),
		Applications: handlers.NewApplicationHandler(applicationService, savedJobService),
	}

	// 5. Setup Router
	r := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}, h)

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
