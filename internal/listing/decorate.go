package listing

import (
	"strings"
	"time"

	"github.com/justsurfingit/job-board/internal/models"
)

// Placeholders for references that no longer resolve.
const (
	UnknownCategory    = "Unknown Category"
	UnknownSubcategory = "Unknown Subcategory"
	UnknownCompany     = "Unknown Company"
	UnknownCountry     = "Unknown Country"
)

// Summary is the list view of a job offer.
type Summary struct {
	ID                  uint    `json:"id"`
	EmploymentTypeIndex int     `json:"employment_type_index"`
	LocationTypeIndex   int     `json:"location_type_index"`
	CategoryName        string  `json:"category_name"`
	SubcategoryName     string  `json:"subcategory_name"`
	CompanyName         string  `json:"company_name"`
	CompanyCountry      string  `json:"company_country"`
	LogoURL             *string `json:"logo_url"`
	Active              bool    `json:"active"`
	// Only set on the recruiter dashboard.
	Applicants *int64    `json:"applicants,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Detail is the single-offer view.
type Detail struct {
	Summary
	SubcategoryID         string   `json:"subcategory_id"`
	CategoryID            uint     `json:"category_id"`
	JobDescription        string   `json:"job_description"`
	MinimumQualifications string   `json:"minimum_qualifications"`
	RequiredSkills        []string `json:"required_skills"`
	CompanyAbout          string   `json:"company_about"`
}

// Lookups holds the related rows needed to decorate a batch of offers.
type Lookups struct {
	Categories map[uint]models.Category
	// keyed by owning user ID
	Companies map[uint]models.Company
}

// Decorator attaches denormalized display fields to job offers.
type Decorator struct {
	BaseURL string
}

// LogoURL builds the public URL of a company logo, nil when there is none.
func (d Decorator) LogoURL(logoName string) *string {
	return d.assetURL("companylogos", logoName)
}

// ResumeURL builds the public URL of an uploaded CV.
func (d Decorator) ResumeURL(fileName string) *string {
	return d.assetURL("resume", fileName)
}

func (d Decorator) assetURL(dir, name string) *string {
	if name == "" {
		return nil
	}
	url := strings.TrimRight(d.BaseURL, "/") + "/" + dir + "/" + name
	return &url
}

// SubcategoryName finds id in the category's subcategory list.
func SubcategoryName(cat models.Category, id string) string {
	for _, sub := range cat.Subcategories {
		if sub.ID == id {
			return sub.Name
		}
	}
	return UnknownSubcategory
}

// Summarize decorates one offer.
func (d Decorator) Summarize(o models.JobOffer, l Lookups) Summary {
	s := Summary{
		ID:                  o.ID,
		EmploymentTypeIndex: o.EmploymentTypeIndex,
		LocationTypeIndex:   o.LocationTypeIndex,
		CategoryName:        UnknownCategory,
		SubcategoryName:     UnknownSubcategory,
		CompanyName:         UnknownCompany,
		CompanyCountry:      UnknownCountry,
		Active:              o.Active,
		CreatedAt:           o.CreatedAt,
	}
	if cat, ok := l.Categories[o.CategoryID]; ok {
		s.CategoryName = cat.Name
		s.SubcategoryName = SubcategoryName(cat, o.SubcategoryID)
	}
	if company, ok := l.Companies[o.UserID]; ok {
		s.CompanyName = company.Name
		s.CompanyCountry = company.Country
		s.LogoURL = d.LogoURL(company.LogoName)
	}
	return s
}

// Summaries decorates offers, keeping their order.
func (d Decorator) Summaries(offers []models.JobOffer, l Lookups) []Summary {
	out := make([]Summary, len(offers))
	for i, o := range offers {
		out[i] = d.Summarize(o, l)
	}
	return out
}

// RankedSummaries decorates a ranked page and exposes the applicant counts.
func (d Decorator) RankedSummaries(ranked []Ranked, l Lookups) []Summary {
	out := make([]Summary, len(ranked))
	for i, r := range ranked {
		s := d.Summarize(r.Offer, l)
		count := r.Applicants
		s.Applicants = &count
		out[i] = s
	}
	return out
}

// Describe builds the detail view of one offer.
func (d Decorator) Describe(o models.JobOffer, l Lookups) Detail {
	detail := Detail{
		Summary:               d.Summarize(o, l),
		SubcategoryID:         o.SubcategoryID,
		CategoryID:            o.CategoryID,
		JobDescription:        o.JobDescription,
		MinimumQualifications: o.MinimumQualifications,
		RequiredSkills:        []string(o.RequiredSkills),
	}
	if company, ok := l.Companies[o.UserID]; ok {
		detail.CompanyAbout = company.About
	}
	return detail
}

// OwnerIDs returns the distinct owners of offers, for batch company loads.
func OwnerIDs(offers []models.JobOffer) []uint {
	return distinct(offers, func(o models.JobOffer) uint { return o.UserID })
}

// CategoryIDs returns the distinct categories of offers.
func CategoryIDs(offers []models.JobOffer) []uint {
	return distinct(offers, func(o models.JobOffer) uint { return o.CategoryID })
}

func distinct(offers []models.JobOffer, key func(models.JobOffer) uint) []uint {
	seen := make(map[uint]struct{}, len(offers))
	ids := make([]uint, 0, len(offers))
	for _, o := range offers {
		k := key(o)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, k)
	}
	return ids
}
