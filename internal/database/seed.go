package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

type categorySeed struct {
	Name          string
	Subcategories []string
}

var defaultCategories = []categorySeed{
	{"Software Development", []string{"Backend Developer", "Frontend Developer", "Full Stack Developer", "Mobile Developer", "DevOps Engineer", "QA Engineer"}},
	{"Data & Analytics", []string{"Data Analyst", "Data Scientist", "Data Engineer", "Machine Learning Engineer", "Business Intelligence Analyst"}},
	{"Design", []string{"UI Designer", "UX Designer", "Graphic Designer", "Product Designer"}},
	{"Marketing", []string{"Digital Marketing Specialist", "Content Writer", "SEO Specialist", "Social Media Manager"}},
	{"Sales", []string{"Sales Representative", "Account Manager", "Business Developer"}},
	{"Finance & Accounting", []string{"Accountant", "Financial Analyst", "Auditor", "Payroll Specialist"}},
	{"Human Resources", []string{"HR Generalist", "Recruiter", "Talent Acquisition Specialist"}},
	{"Customer Support", []string{"Customer Service Representative", "Technical Support Specialist", "Call Center Agent"}},
	{"Healthcare", []string{"Nurse", "Pharmacist", "Medical Assistant", "Lab Technician"}},
	{"Engineering", []string{"Civil Engineer", "Mechanical Engineer", "Electrical Engineer", "Industrial Engineer"}},
}

// SeedCategories inserts the default category tree when the table is empty.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := buildCategories(defaultCategories)
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	log.Printf("Seeded %d job categories", len(categories))
	return nil
}

// buildCategories turns seeds into models with generated subcategory IDs.
func buildCategories(seeds []categorySeed) []models.Category {
	categories := make([]models.Category, len(seeds))
	for i, seed := range seeds {
		subs := make([]models.Subcategory, len(seed.Subcategories))
		for j, name := range seed.Subcategories {
			subs[j] = models.Subcategory{ID: uuid.NewString(), Name: name, Index: j}
		}
		categories[i] = models.Category{Name: seed.Name, Index: i, Subcategories: subs}
	}
	return categories
}
