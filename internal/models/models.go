package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleRecruiter = "recruiter"
	RoleUser      = "user"
)

// Application statuses. Only "sent" applications count towards a job's
// applicant total on the recruiter dashboard.
const (
	StatusSent     = "sent"
	StatusPending  = "pending"
	StatusRejected = "rejected"
	StatusAccepted = "accepted"
)

var ApplicationStatuses = []string{StatusSent, StatusPending, StatusRejected, StatusAccepted}

// MinRequiredSkills is the minimum number of skills a job offer must list.
const MinRequiredSkills = 3

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Role      string `gorm:"not null;default:'user'" json:"role"`
}

type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// One company per recruiter.
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      string         `gorm:"not null" json:"company_name"`
	About     string         `gorm:"type:text" json:"about_company"`
	Website   string         `json:"website"`
	Country   string         `gorm:"not null;index" json:"country"`
	Addresses pq.StringArray `gorm:"type:text[]" json:"addresses"`
	LogoName  string         `json:"logo_name,omitempty"`
}

type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Index int    `gorm:"column:position" json:"index"`

	Subcategories []Subcategory `gorm:"constraint:OnDelete:CASCADE" json:"subcategories"`
}

// Subcategory IDs are generated strings; job offers reference them without a
// foreign key, so a subcategory can disappear from under an offer.
type Subcategory struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CategoryID uint   `gorm:"index;not null" json:"-"`
	Name       string `gorm:"not null" json:"name"`
	Index      int    `gorm:"column:position" json:"index"`
}

type JobOffer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owning recruiter
	UserID        uint   `gorm:"index;not null" json:"user_id"`
	CategoryID    uint   `gorm:"index;not null" json:"category_id"`
	SubcategoryID string `gorm:"index;not null;type:varchar(36)" json:"subcategory_id"`

	// Stored one-based.
	EmploymentTypeIndex int `gorm:"index;not null" json:"employment_type_index"`
	LocationTypeIndex   int `gorm:"index;not null" json:"location_type_index"`

	JobDescription        string         `gorm:"type:varchar(500);not null" json:"job_description"`
	MinimumQualifications string         `gorm:"type:varchar(500);not null" json:"minimum_qualifications"`
	RequiredSkills        pq.StringArray `gorm:"type:text[]" json:"required_skills"`
	Active                bool           `gorm:"index;not null" json:"active"`
}

type JobApplication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint `gorm:"index;not null" json:"user_id"`
	JobOfferID uint `gorm:"index;not null" json:"job_offer_id"`

	UseProfile       bool   `gorm:"not null;default:false" json:"use_profile"`
	CVUpload         string `json:"cv_upload,omitempty"`
	MotivationLetter string `gorm:"type:text" json:"motivation_letter,omitempty"`
	Status           string `gorm:"index;not null;default:'sent'" json:"status"`
}

type SavedJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint `gorm:"uniqueIndex:idx_saved_user_offer;not null" json:"user_id"`
	JobOfferID uint `gorm:"uniqueIndex:idx_saved_user_offer;index;not null" json:"job_offer_id"`
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{}, &Company{}, &Category{}, &Subcategory{},
		&JobOffer{}, &JobApplication{}, &SavedJob{},
	}
}
