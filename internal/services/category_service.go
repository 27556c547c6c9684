package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/justsurfingit/job-board/internal/filter"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

// Search returns the categories whose name or any subcategory name contains
// query, each with only its matching subcategories. An empty query returns
// the whole tree.
func (s *CategoryService) Search(ctx context.Context, query string) ([]models.Category, error) {
	query = strings.TrimSpace(query)
	db := s.DB.WithContext(ctx)

	var categories []models.Category
	if query == "" {
		err := db.Preload("Subcategories", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position")
		}).Order("position").Find(&categories).Error
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		return categories, nil
	}

	pattern := filter.Contains(query).Postgres()
	err := db.
		Preload("Subcategories", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("name ~* ?", pattern).Order("position")
		}).
		Where("categories.name ~* ? OR EXISTS (SELECT 1 FROM subcategories s WHERE s.category_id = categories.id AND s.name ~* ?)", pattern, pattern).
		Order("position").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return categories, nil
}

// MatchingSubcategoryIDs returns the IDs of subcategories whose name
// contains search.
func (s *CategoryService) MatchingSubcategoryIDs(ctx context.Context, search string) ([]string, error) {
	ids := []string{}
	err := s.DB.WithContext(ctx).
		Model(&models.Subcategory{}).
		Where("name ~* ?", filter.Contains(strings.TrimSpace(search)).Postgres()).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("match subcategories: %w", err)
	}
	return ids, nil
}

// MatchingCategoryIDs returns the categories whose own name or one of whose
// subcategory names contains search.
func (s *CategoryService) MatchingCategoryIDs(ctx context.Context, search string) ([]uint, error) {
	pattern := filter.Contains(strings.TrimSpace(search)).Postgres()
	ids := []uint{}
	err := s.DB.WithContext(ctx).
		Model(&models.Category{}).
		Where("categories.name ~* ? OR EXISTS (SELECT 1 FROM subcategories s WHERE s.category_id = categories.id AND s.name ~* ?)", pattern, pattern).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("match categories: %w", err)
	}
	return ids, nil
}

// ByIDs loads categories with their full subcategory lists, keyed by ID.
func (s *CategoryService) ByIDs(ctx context.Context, ids []uint) (map[uint]models.Category, error) {
	out := make(map[uint]models.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var categories []models.Category
	err := s.DB.WithContext(ctx).Preload("Subcategories").Where("id IN ?", ids).Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	for _, c := range categories {
		out[c.ID] = c
	}
	return out, nil
}

// CheckSubcategory verifies that subcategoryID belongs to categoryID.
func (s *CategoryService) CheckSubcategory(ctx context.Context, categoryID uint, subcategoryID string) error {
	var category models.Category
	err := s.DB.WithContext(ctx).First(&category, categoryID).Error
	if isNotFound(err) {
		return BadRequest("Invalid category ID")
	}
	if err != nil {
		return fmt.Errorf("load category %d: %w", categoryID, err)
	}

	var count int64
	err = s.DB.WithContext(ctx).Model(&models.Subcategory{}).
		Where("id = ? AND category_id = ?", subcategoryID, categoryID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check subcategory: %w", err)
	}
	if count == 0 {
		return BadRequest("Invalid subcategory ID")
	}
	return nil
}
