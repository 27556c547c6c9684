package services

import (
	"context"
	"fmt"
	"log"

	"github.com/justsurfingit/job-board/internal/filter"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// FilterService runs public job searches.
type FilterService struct {
	DB         *gorm.DB
	Categories *CategoryService
	Matcher    *MatcherService
	Decorator  listing.Decorator
}

func NewFilterService(db *gorm.DB, categories *CategoryService, matcher *MatcherService, decorator listing.Decorator) *FilterService {
	return &FilterService{
		DB:         db,
		Categories: categories,
		Matcher:    matcher,
		Decorator:  decorator,
	}
}

// resolve runs the storage lookups the criteria need, concurrently.
func (s *FilterService) resolve(ctx context.Context, c filter.Criteria) (filter.Resolved, error) {
	var r filter.Resolved
	g, gctx := errgroup.WithContext(ctx)
	if c.HasLocation() {
		g.Go(func() error {
			owners, err := s.Matcher.ResolveOwners(gctx, c.Location)
			r.Owners = owners
			return err
		})
	}
	if c.HasSearch() {
		g.Go(func() error {
			ids, err := s.Categories.MatchingSubcategoryIDs(gctx, c.Search)
			r.SubcategoryIDs = ids
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return filter.Resolved{}, err
	}
	return r, nil
}

// Search returns one page of active offers matching c, newest first.
func (s *FilterService) Search(ctx context.Context, c filter.Criteria, page listing.Page) (listing.Result, error) {
	resolved, err := s.resolve(ctx, c)
	if err != nil {
		return listing.Result{}, err
	}

	q := filter.Compose(c, resolved)
	if q.Empty() {
		if facet := q.EmptyBecause(); facet != "" {
			log.Printf("Job filter: %s matched nothing, skipping query", facet)
		}
		return listing.EmptyResult(page), nil
	}

	base := s.DB.WithContext(ctx).Model(&models.JobOffer{}).Where(filter.Expression(q.Predicate()))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return listing.Result{}, fmt.Errorf("count filtered job offers: %w", err)
	}
	if total == 0 {
		return listing.EmptyResult(page), nil
	}

	var offers []models.JobOffer
	err = base.Session(&gorm.Session{}).
		Order(listing.RecencyOrder).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&offers).Error
	if err != nil {
		return listing.Result{}, fmt.Errorf("filter job offers: %w", err)
	}

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
