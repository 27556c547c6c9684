package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

type SavedJobService struct {
	DB         *gorm.DB
	Categories *CategoryService
	Matcher    *MatcherService
	Decorator  listing.Decorator
}

func NewSavedJobService(db *gorm.DB, categories *CategoryService, matcher *MatcherService, decorator listing.Decorator) *SavedJobService {
	return &SavedJobService{
		DB:         db,
		Categories: categories,
		Matcher:    matcher,
		Decorator:  decorator,
	}
}

// Save bookmarks an offer for the user.
func (s *SavedJobService) Save(ctx context.Context, userID, offerID uint) (*models.SavedJob, error) {
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&models.JobOffer{}).Where("id = ?", offerID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check job offer %d: %w", offerID, err)
	}
	if count == 0 {
		return nil, NotFound("Job offer not found")
	}

	saved := &models.SavedJob{UserID: userID, JobOfferID: offerID}
	err := db.Create(saved).Error
	if isUniqueViolation(err) {
		return nil, Conflict("Job offer already saved")
	}
	if err != nil {
		return nil, fmt.Errorf("save job offer %d: %w", offerID, err)
	}
	return saved, nil
}

// List returns the user's bookmarks, most recent first.
func (s *SavedJobService) List(ctx context.Context, userID uint) ([]listing.SavedSummary, error) {
	var saved []models.SavedJob
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}
	if len(saved) == 0 {
		return []listing.SavedSummary{}, nil
	}

	ids := make([]uint, len(saved))
	for i, sj := range saved {
		ids[i] = sj.JobOfferID
	}
	offers, lookups, err := loadOffers(ctx, s.DB, s.Categories, s.Matcher, ids)
	if err != nil {
		return nil, err
	}
	return s.Decorator.SavedSummaries(saved, offers, lookups), nil
}

// Find returns the user's bookmark of an offer.
func (s *SavedJobService) Find(ctx context.Context, userID, offerID uint) (*models.SavedJob, error) {
	var saved models.SavedJob
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND job_offer_id = ?", userID, offerID).
		First(&saved).Error
	if isNotFound(err) {
		return nil, NotFound("Saved job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load saved job: %w", err)
	}
	return &saved, nil
}

// Delete removes the user's bookmark of an offer.
func (s *SavedJobService) Delete(ctx context.Context, userID, offerID uint) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND job_offer_id = ?", userID, offerID).
		Delete(&models.SavedJob{})
	if res.Error != nil {
		return fmt.Errorf("delete saved job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("Saved job not found or not authorized")
	}
	return nil
}
