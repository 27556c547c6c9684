package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// loadLookups fetches the categories and companies referenced by offers.
func loadLookups(ctx context.Context, categories *CategoryService, matcher *MatcherService, offers []models.JobOffer) (listing.Lookups, error) {
	var l listing.Lookups
	if len(offers) == 0 {
		return listing.Lookups{Categories: map[uint]models.Category{}, Companies: map[uint]models.Company{}}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := categories.ByIDs(gctx, listing.CategoryIDs(offers))
		l.Categories = m
		return err
	})
	g.Go(func() error {
		m, err := matcher.CompaniesByOwner(gctx, listing.OwnerIDs(offers))
		l.Companies = m
		return err
	})
	if err := g.Wait(); err != nil {
		return listing.Lookups{}, err
	}
	return l, nil
}

// loadOffers fetches offers by ID together with their lookups.
func loadOffers(ctx context.Context, db *gorm.DB, categories *CategoryService, matcher *MatcherService, ids []uint) (map[uint]models.JobOffer, listing.Lookups, error) {
	var offers []models.JobOffer
	if len(ids) > 0 {
		if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&offers).Error; err != nil {
			return nil, listing.Lookups{}, fmt.Errorf("load job offers: %w", err)
		}
	}
	lookups, err := loadLookups(ctx, categories, matcher, offers)
	if err != nil {
		return nil, listing.Lookups{}, err
	}
	return listing.ByID(offers), lookups, nil
}
