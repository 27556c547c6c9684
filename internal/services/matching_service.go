package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/justsurfingit/job-board/internal/filter"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

// MatcherService resolves the facets of a job search that live outside the
// job_offers table.
type MatcherService struct {
	DB *gorm.DB
}

func NewMatcherService(db *gorm.DB) *MatcherService {
	return &MatcherService{DB: db}
}

// ResolveOwners returns the recruiters whose company country contains
// location and who own at least one offer.
func (s *MatcherService) ResolveOwners(ctx context.Context, location string) ([]uint, error) {
	location = strings.TrimSpace(location)
	owners := []uint{}
	if location == "" {
		return owners, nil
	}

	err := s.DB.WithContext(ctx).
		Model(&models.Company{}).
		Distinct("companies.user_id").
		Joins("JOIN job_offers ON job_offers.user_id = companies.user_id").
		Where("companies.country ~* ?", filter.Contains(location).Postgres()).
		Pluck("companies.user_id", &owners).Error
	if err != nil {
		return nil, fmt.Errorf("resolve location %q: %w", location, err)
	}
	return owners, nil
}

// CompaniesByOwner loads the companies of the given recruiters, keyed by
// user ID.
func (s *MatcherService) CompaniesByOwner(ctx context.Context, ownerIDs []uint) (map[uint]models.Company, error) {
	out := make(map[uint]models.Company, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	var companies []models.Company
	if err := s.DB.WithContext(ctx).Where("user_id IN ?", ownerIDs).Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	for _, c := range companies {
		out[c.UserID] = c
	}
	return out, nil
}

// OwnersByCompanyName returns the recruiters whose company name contains
// name.
func (s *MatcherService) OwnersByCompanyName(ctx context.Context, name string) ([]uint, error) {
	owners := []uint{}
	err := s.DB.WithContext(ctx).
		Model(&models.Company{}).
		Where("name ~* ?", filter.Contains(strings.TrimSpace(name)).Postgres()).
		Pluck("user_id", &owners).Error
	if err != nil {
		return nil, fmt.Errorf("match company names: %w", err)
	}
	return owners, nil
}
