package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/justsurfingit/job-board/internal/filter"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RecentApplicantsDefaultLimit is the page size of the recruiter's recent
// applicants feed.
const RecentApplicantsDefaultLimit = 5

type ApplicationInput struct {
	JobOfferID       uint
	UseProfile       bool
	CVUpload         string
	MotivationLetter string
}

type ApplicationService struct {
	DB         *gorm.DB
	Categories *CategoryService
	Matcher    *MatcherService
	Decorator  listing.Decorator
}

func NewApplicationService(db *gorm.DB, categories *CategoryService, matcher *MatcherService, decorator listing.Decorator) *ApplicationService {
	return &ApplicationService{
		DB:         db,
		Categories: categories,
		Matcher:    matcher,
		Decorator:  decorator,
	}
}

// Apply records a user's application to an active offer.
func (s *ApplicationService) Apply(ctx context.Context, userID uint, in ApplicationInput) (*models.JobApplication, error) {
	if !in.UseProfile && strings.TrimSpace(in.CVUpload) == "" {
		return nil, BadRequest("CV is required when use_profile is false")
	}

	db := s.DB.WithContext(ctx)
	var offer models.JobOffer
	err := db.First(&offer, in.JobOfferID).Error
	if isNotFound(err) {
		return nil, NotFound("Job offer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load job offer %d: %w", in.JobOfferID, err)
	}
	if !offer.Active {
		return nil, BadRequest("Job offer is not accepting applications")
	}

	var existing int64
	err = db.Model(&models.JobApplication{}).
		Where("user_id = ? AND job_offer_id = ?", userID, offer.ID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("check existing application: %w", err)
	}
	if existing > 0 {
		return nil, Conflict("You already applied to this job offer")
	}

	app := &models.JobApplication{
		UserID:           userID,
		JobOfferID:       offer.ID,
		UseProfile:       in.UseProfile,
		CVUpload:         in.CVUpload,
		MotivationLetter: in.MotivationLetter,
		Status:           models.StatusSent,
	}
	if err := db.Create(app).Error; err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// ApplicantsForOffer lists the sent applications to one of the recruiter's
// offers.
func (s *ApplicationService) ApplicantsForOffer(ctx context.Context, recruiterID, offerID uint, page listing.Page) (*listing.ApplicantPage, error) {
	db := s.DB.WithContext(ctx)

	var owned int64
	if err := db.Model(&models.JobOffer{}).Where("id = ? AND user_id = ?", offerID, recruiterID).Count(&owned).Error; err != nil {
		return nil, fmt.Errorf("check job offer %d: %w", offerID, err)
	}
	if owned == 0 {
		return nil, NotFound("Job offer not found or not authorized")
	}

	base := db.Model(&models.JobApplication{}).Where("job_offer_id = ? AND status = ?", offerID, models.StatusSent)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count applicants: %w", err)
	}

	var apps []models.JobApplication
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	users, err := s.usersByID(ctx, apps)
	if err != nil {
		return nil, err
	}
	return &listing.ApplicantPage{
		TotalApplicants: total,
		TotalPages:      page.TotalPages(total),
		CurrentPage:     page.Number,
		Applications:    s.Decorator.Applicants(apps, users),
	}, nil
}

// RecentApplicants lists the sent applications to any of the recruiter's
// offers, newest first. A non-empty search keeps applicants whose first or
// last name, or whose job title, contains it.
func (s *ApplicationService) RecentApplicants(ctx context.Context, recruiterID uint, search string, page listing.Page) (*listing.ApplicantPage, error) {
	base := s.DB.WithContext(ctx).Model(&models.JobApplication{}).
		Joins("JOIN job_offers ON job_offers.id = job_applications.job_offer_id").
		Where("job_offers.user_id = ? AND job_applications.status = ?", recruiterID, models.StatusSent)

	if search = strings.TrimSpace(search); search != "" {
		subcategoryIDs, err := s.Categories.MatchingSubcategoryIDs(ctx, search)
		if err != nil {
			return nil, err
		}
		pattern := filter.Contains(search).Postgres()
		cond := s.DB.Where("users.first_name ~* ? OR users.last_name ~* ?", pattern, pattern)
		if len(subcategoryIDs) > 0 {
			cond = cond.Or("job_offers.subcategory_id IN ?", subcategoryIDs)
		}
		base = base.Joins("LEFT JOIN users ON users.id = job_applications.user_id").Where(cond)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count recent applicants: %w", err)
	}
	if total == 0 {
		return &listing.ApplicantPage{Applications: []listing.Applicant{}, CurrentPage: page.Number}, nil
	}

	var apps []models.JobApplication
	err := base.Session(&gorm.Session{}).
		Order("job_applications.created_at DESC, job_applications.id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list recent applicants: %w", err)
	}

	users, err := s.usersByID(ctx, apps)
	if err != nil {
		return nil, err
	}
	offers, lookups, err := s.offersOf(ctx, apps)
	if err != nil {
		return nil, err
	}
	return &listing.ApplicantPage{
		TotalApplicants: total,
		TotalPages:      page.TotalPages(total),
		CurrentPage:     page.Number,
		Applications:    s.Decorator.RecentApplicants(apps, users, offers, lookups),
	}, nil
}

func (s *ApplicationService) usersByID(ctx context.Context, apps []models.JobApplication) (map[uint]models.User, error) {
	users := make(map[uint]models.User)
	if len(apps) == 0 {
		return users, nil
	}
	ids := make([]uint, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.UserID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var rows []models.User
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}

// UpdateStatus changes the status of an application to one of the
// recruiter's offers.
func (s *ApplicationService) UpdateStatus(ctx context.Context, recruiterID, appID uint, status string) (*models.JobApplication, error) {
	if !slices.Contains(models.ApplicationStatuses, status) {
		return nil, BadRequest("Invalid status value")
	}

	db := s.DB.WithContext(ctx)
	var app models.JobApplication
	err := db.
		Joins("JOIN job_offers ON job_offers.id = job_applications.job_offer_id").
		Where("job_applications.id = ? AND job_offers.user_id = ?", appID, recruiterID).
		First(&app).Error
	if isNotFound(err) {
		return nil, NotFound("Job application not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load application %d: %w", appID, err)
	}

	if err := db.Model(&app).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update application %d: %w", appID, err)
	}
	app.Status = status
	return &app, nil
}

// matchingOfferIDs returns the offers whose subcategory or company name
// contains search.
func (s *ApplicationService) matchingOfferIDs(ctx context.Context, search string) ([]uint, error) {
	var subcategoryIDs []string
	var owners []uint
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subcategoryIDs, err = s.Categories.MatchingSubcategoryIDs(gctx, search)
		return err
	})
	g.Go(func() error {
		var err error
		owners, err = s.Matcher.OwnersByCompanyName(gctx, search)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := filter.Or(
		filter.InStrings(filter.FieldSubcategoryID, subcategoryIDs),
		filter.InUints(filter.FieldUserID, owners),
	)
	ids := []uint{}
	if filter.IsNever(p) {
		return ids, nil
	}
	err := s.DB.WithContext(ctx).Model(&models.JobOffer{}).
		Where(filter.Expression(p)).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("match job offers: %w", err)
	}
	return ids, nil
}

// ListForUser lists a user's applications newest first, optionally narrowed
// to offers whose subcategory or company name contains search.
func (s *ApplicationService) ListForUser(ctx context.Context, userID uint, search string, page listing.Page) (*listing.ApplicationPage, error) {
	empty := &listing.ApplicationPage{JobApplications: []listing.ApplicationSummary{}, CurrentPage: page.Number}
	base := s.DB.WithContext(ctx).Model(&models.JobApplication{}).Where("user_id = ?", userID)

	if search = strings.TrimSpace(search); search != "" {
		ids, err := s.matchingOfferIDs(ctx, search)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return empty, nil
		}
		base = base.Where("job_offer_id IN ?", ids)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	if total == 0 {
		return empty, nil
	}

	var apps []models.JobApplication
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	offers, lookups, err := s.offersOf(ctx, apps)
	if err != nil {
		return nil, err
	}
	return &listing.ApplicationPage{
		JobApplications: s.Decorator.ApplicationSummaries(apps, offers, lookups),
		TotalPages:      page.TotalPages(total),
		CurrentPage:     page.Number,
	}, nil
}

func (s *ApplicationService) offersOf(ctx context.Context, apps []models.JobApplication) (map[uint]models.JobOffer, listing.Lookups, error) {
	ids := make([]uint, len(apps))
	for i, a := range apps {
		ids[i] = a.JobOfferID
	}
	return loadOffers(ctx, s.DB, s.Categories, s.Matcher, ids)
}
