package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxCompanyAddresses caps the address list of a company.
const MaxCompanyAddresses = 10

type CompanyInput struct {
	Name      string
	About     string
	Website   string
	Country   string
	Addresses []string
	LogoName  string
}

type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{DB: db}
}

// Upsert creates the recruiter's company or overwrites it. An empty LogoName
// keeps the stored logo.
func (s *CompanyService) Upsert(ctx context.Context, userID uint, in CompanyInput) (*models.Company, error) {
	if len(in.Addresses) > MaxCompanyAddresses {
		return nil, BadRequest(fmt.Sprintf("A company can have at most %d addresses", MaxCompanyAddresses))
	}

	company := models.Company{
		UserID:    userID,
		Name:      in.Name,
		About:     in.About,
		Website:   in.Website,
		Country:   in.Country,
		Addresses: in.Addresses,
		LogoName:  in.LogoName,
	}
	columns := []string{"name", "about", "website", "country", "addresses", "updated_at"}
	if in.LogoName != "" {
		columns = append(columns, "logo_name")
	}

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&company).Error
	if err != nil {
		return nil, fmt.Errorf("save company for user %d: %w", userID, err)
	}
	return s.Get(ctx, userID)
}

// Get returns the recruiter's own company.
func (s *CompanyService) Get(ctx context.Context, userID uint) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&company).Error
	if isNotFound(err) {
		return nil, NotFound("Company not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load company for user %d: %w", userID, err)
	}
	return &company, nil
}

