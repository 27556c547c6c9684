package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Recruiter dashboard filter values.
const (
	DashboardAll      = "0"
	DashboardActive   = "1"
	DashboardInactive = "2"
)

const (
	RecentDefaultLimit    = 6
	DashboardDefaultLimit = 4
)

type JobOfferInput struct {
	CategoryID            uint
	SubcategoryID         string
	EmploymentTypeIndex   int
	LocationTypeIndex     int
	JobDescription        string
	MinimumQualifications string
	RequiredSkills        []string
}

// JobOfferPatch holds the fields of a partial update. Nil fields are kept.
type JobOfferPatch struct {
	CategoryID            *uint
	SubcategoryID         *string
	EmploymentTypeIndex   *int
	LocationTypeIndex     *int
	JobDescription        *string
	MinimumQualifications *string
	RequiredSkills        []string
}

type DashboardQuery struct {
	Page   listing.Page
	Search string
	Filter string
}

// Dashboard is a recruiter's ranked offers plus their company.
type Dashboard struct {
	listing.Result
	Company *models.Company `json:"company"`
}

type JobOfferService struct {
	DB         *gorm.DB
	Categories *CategoryService
	Matcher    *MatcherService
	Decorator  listing.Decorator
}

func NewJobOfferService(db *gorm.DB, categories *CategoryService, matcher *MatcherService, decorator listing.Decorator) *JobOfferService {
	return &JobOfferService{
		DB:         db,
		Categories: categories,
		Matcher:    matcher,
		Decorator:  decorator,
	}
}

func checkSkills(skills []string) error {
	n := 0
	for _, s := range skills {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	if n < models.MinRequiredSkills {
		return BadRequest(fmt.Sprintf("At least %d required skills are needed", models.MinRequiredSkills))
	}
	return nil
}

// Create posts a new active job offer for a recruiter that has a company.
func (s *JobOfferService) Create(ctx context.Context, userID uint, in JobOfferInput) (*models.JobOffer, error) {
	companies, err := s.Matcher.CompaniesByOwner(ctx, []uint{userID})
	if err != nil {
		return nil, err
	}
	if _, ok := companies[userID]; !ok {
		return nil, BadRequest("User has no associated company")
	}
	if err := s.Categories.CheckSubcategory(ctx, in.CategoryID, in.SubcategoryID); err != nil {
		return nil, err
	}
	if err := checkSkills(in.RequiredSkills); err != nil {
		return nil, err
	}

	offer := &models.JobOffer{
		UserID:                userID,
		CategoryID:            in.CategoryID,
		SubcategoryID:         in.SubcategoryID,
		EmploymentTypeIndex:   in.EmploymentTypeIndex,
		LocationTypeIndex:     in.LocationTypeIndex,
		JobDescription:        in.JobDescription,
		MinimumQualifications: in.MinimumQualifications,
		RequiredSkills:        in.RequiredSkills,
		Active:                true,
	}
	if err := s.DB.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, fmt.Errorf("create job offer: %w", err)
	}
	return offer, nil
}

func (s *JobOfferService) owned(ctx context.Context, db *gorm.DB, userID, id uint) (*models.JobOffer, error) {
	var offer models.JobOffer
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&offer).Error
	if isNotFound(err) {
		return nil, NotFound("Job offer not found or not authorized")
	}
	if err != nil {
		return nil, fmt.Errorf("load job offer %d: %w", id, err)
	}
	return &offer, nil
}

// Update applies a partial update to one of the recruiter's offers.
func (s *JobOfferService) Update(ctx context.Context, userID, id uint, patch JobOfferPatch) (*models.JobOffer, error) {
	offer, err := s.owned(ctx, s.DB, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.CategoryID != nil {
		offer.CategoryID = *patch.CategoryID
	}
	if patch.SubcategoryID != nil {
		offer.SubcategoryID = *patch.SubcategoryID
	}
	if patch.CategoryID != nil || patch.SubcategoryID != nil {
		if err := s.Categories.CheckSubcategory(ctx, offer.CategoryID, offer.SubcategoryID); err != nil {
			return nil, err
		}
	}
	if patch.EmploymentTypeIndex != nil {
		offer.EmploymentTypeIndex = *patch.EmploymentTypeIndex
	}
	if patch.LocationTypeIndex != nil {
		offer.LocationTypeIndex = *patch.LocationTypeIndex
	}
	if patch.JobDescription != nil {
		offer.JobDescription = *patch.JobDescription
	}
	if patch.MinimumQualifications != nil {
		offer.MinimumQualifications = *patch.MinimumQualifications
	}
	if patch.RequiredSkills != nil {
		if err := checkSkills(patch.RequiredSkills); err != nil {
			return nil, err
		}
		offer.RequiredSkills = patch.RequiredSkills
	}

	if err := s.DB.WithContext(ctx).Save(offer).Error; err != nil {
		return nil, fmt.Errorf("update job offer %d: %w", id, err)
	}
	return offer, nil
}

// SetActive sets the active flag to the given value.
func (s *JobOfferService) SetActive(ctx context.Context, userID, id uint, active bool) (*models.JobOffer, error) {
	offer, err := s.owned(ctx, s.DB, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(offer).Update("active", active).Error; err != nil {
		return nil, fmt.Errorf("set job offer %d active: %w", id, err)
	}
	offer.Active = active
	return offer, nil
}

// Delete removes the offer together with its bookmarks and applications.
func (s *JobOfferService) Delete(ctx context.Context, userID, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		offer, err := s.owned(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Where("job_offer_id = ?", offer.ID).Delete(&models.SavedJob{}).Error; err != nil {
			return fmt.Errorf("delete saved jobs of offer %d: %w", offer.ID, err)
		}
		if err := tx.Where("job_offer_id = ?", offer.ID).Delete(&models.JobApplication{}).Error; err != nil {
			return fmt.Errorf("delete applications of offer %d: %w", offer.ID, err)
		}
		if err := tx.Delete(offer).Error; err != nil {
			return fmt.Errorf("delete job offer %d: %w", offer.ID, err)
		}
		return nil
	})
}

// Get returns the decorated detail view of any offer.
func (s *JobOfferService) Get(ctx context.Context, id uint) (*listing.Detail, error) {
	var offer models.JobOffer
	err := s.DB.WithContext(ctx).First(&offer, id).Error
	if isNotFound(err) {
		return nil, NotFound("Job offer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load job offer %d: %w", id, err)
	}

	offers := []models.JobOffer{offer}
	lookups, err := loadLookups(ctx, s.Categories, s.Matcher, offers)
	if err != nil {
		return nil, err
	}
	detail := s.Decorator.Describe(offer, lookups)
	return &detail, nil
}

// Recent lists active offers newest first.
func (s *JobOfferService) Recent(ctx context.Context, page listing.Page) (listing.Result, error) {
	base := s.DB.WithContext(ctx).Model(&models.JobOffer{}).Where("job_offers.active = ?", true)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return listing.Result{}, fmt.Errorf("count recent job offers: %w", err)
	}

	var offers []models.JobOffer
	err := base.Session(&gorm.Session{}).
		Order(listing.RecencyOrder).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&offers).Error
	if err != nil {
		return listing.Result{}, fmt.Errorf("list recent job offers: %w", err)
	}
	return s.page(ctx, offers, total, page)
}

func (s *JobOfferService) page(ctx context.Context, offers []models.JobOffer, total int64, page listing.Page) (listing.Result, error) {
	lookups, err := loadLookups(ctx, s.Categories, s.Matcher, offers)
	if err != nil {
		return listing.Result{}, err
	}
	return listing.Result{
		JobOffers:   s.Decorator.Summaries(offers, lookups),
		TotalPages:  page.TotalPages(total),
		CurrentPage: page.Number,
	}, nil
}

// Dashboard lists the recruiter's own offers ranked by sent applications,
// newest first among equal counts.
func (s *JobOfferService) Dashboard(ctx context.Context, userID uint, q DashboardQuery) (*Dashboard, error) {
	db := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	switch q.Filter {
	case DashboardActive:
		db = db.Where("active = ?", true)
	case DashboardInactive:
		db = db.Where("active = ?", false)
	}

	out := &Dashboard{Result: listing.EmptyResult(q.Page)}
	company, err := s.Matcher.CompaniesByOwner(ctx, []uint{userID})
	if err != nil {
		return nil, err
	}
	if c, ok := company[userID]; ok {
		out.Company = &c
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		ids, err := s.Categories.MatchingCategoryIDs(ctx, search)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return out, nil
		}
		db = db.Where("category_id IN ?", ids)
	}

	var offers []models.JobOffer
	if err := db.Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("list job offers of user %d: %w", userID, err)
	}
	if len(offers) == 0 {
		return out, nil
	}

	var (
		counts  map[uint]int64
		lookups listing.Lookups
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.sentCounts(gctx, offers)
		return err
	})
	g.Go(func() error {
		var err error
		lookups, err = loadLookups(gctx, s.Categories, s.Matcher, offers)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := listing.Slice(listing.RankByApplicants(offers, counts), q.Page)
	out.JobOffers = s.Decorator.RankedSummaries(ranked, lookups)
	out.TotalPages = q.Page.TotalPages(int64(len(offers)))
	return out, nil
}

type offerCount struct {
	JobOfferID uint
	Count      int64
}

// sentCounts returns the number of sent applications per offer.
func (s *JobOfferService) sentCounts(ctx context.Context, offers []models.JobOffer) (map[uint]int64, error) {
	ids := make([]uint, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}

	var rows []offerCount
	err := s.DB.WithContext(ctx).
		Model(&models.JobApplication{}).
		Select("job_offer_id, COUNT(*) AS count").
		Where("status = ? AND job_offer_id IN ?", models.StatusSent, ids).
		Group("job_offer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.JobOfferID] = r.Count
	}
	return counts, nil
}
