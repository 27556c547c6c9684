package services

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// setupTestDB starts a PostgreSQL container and returns a migrated gorm DB.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("jobboard_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Connect(connStr)
	require.NoError(t, err)
	require.NoError(t, database.SeedCategories(db))
	return db
}

type testEnv struct {
	db           *gorm.DB
	categories   *CategoryService
	matcher      *MatcherService
	companies    *CompanyService
	filter       *FilterService
	offers       *JobOfferService
	applications *ApplicationService
	saved        *SavedJobService
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	decorator := listing.Decorator{BaseURL: "http://test.local"}
	categories := NewCategoryService(db)
	matcher := NewMatcherService(db)
	return &testEnv{
		db:           db,
		categories:   categories,
		matcher:      matcher,
		companies:    NewCompanyService(db),
		filter:       NewFilterService(db, categories, matcher, decorator),
		offers:       NewJobOfferService(db, categories, matcher, decorator),
		applications: NewApplicationService(db, categories, matcher, decorator),
		saved:        NewSavedJobService(db, categories, matcher, decorator),
	}
}

// category returns a seeded category with its subcategories.
func (e *testEnv) category(t *testing.T, name string) models.Category {
	t.Helper()
	var c models.Category
	require.NoError(t, e.db.Preload("Subcategories").Where("name = ?", name).First(&c).Error)
	require.NotEmpty(t, c.Subcategories)
	return c
}

func (e *testEnv) recruiter(t *testing.T, userID uint, company, country string) {
	t.Helper()
	_, err := e.companies.Upsert(context.Background(), userID, CompanyInput{Name: company, Country: country, LogoName: "logo.png"})
	require.NoError(t, err)
}

// insertOffer writes an offer directly, with a fixed creation time.
func (e *testEnv) insertOffer(t *testing.T, o models.JobOffer, createdAt time.Time) models.JobOffer {
	t.Helper()
	o.CreatedAt = createdAt
	if len(o.RequiredSkills) == 0 {
		o.RequiredSkills = []string{"a", "b", "c"}
	}
	if o.JobDescription == "" {
		o.JobDescription = "A job"
	}
	if o.MinimumQualifications == "" {
		o.MinimumQualifications = "None"
	}
	if o.EmploymentTypeIndex == 0 {
		o.EmploymentTypeIndex = 1
	}
	if o.LocationTypeIndex == 0 {
		o.LocationTypeIndex = 1
	}
	require.NoError(t, e.db.Create(&o).Error)
	return o
}
