package listing

import (
	"time"

	"github.com/justsurfingit/job-board/internal/models"
)

// ApplicationSummary is an applicant's view of one of their applications.
type ApplicationSummary struct {
	ID                uint      `json:"id"`
	JobOfferID        uint      `json:"job_offer_id"`
	SubcategoryName   string    `json:"subcategory_name"`
	CompanyName       string    `json:"company_name"`
	ApplicationStatus string    `json:"application_status"`
	LogoURL           *string   `json:"logo_url"`
	CreatedAt         time.Time `json:"created_at"`
}

type ApplicationPage struct {
	JobApplications []ApplicationSummary `json:"job_applications"`
	TotalPages      int                  `json:"total_pages"`
	CurrentPage     int                  `json:"current_page"`
}

type ApplicantUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Applicant is a recruiter's view of one application to their offer.
type Applicant struct {
	ID               uint          `json:"id"`
	User             ApplicantUser `json:"user"`
	JobOfferID       uint          `json:"job_offer_id"`
	// Subcategory name of the offer; only set across several offers.
	Job              string        `json:"job,omitempty"`
	UseProfile       bool          `json:"use_profile"`
	CVURL            *string       `json:"cv_url"`
	MotivationLetter string        `json:"motivation_letter"`
	Status           string        `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type ApplicantPage struct {
	TotalApplicants int64       `json:"total_applicants"`
	TotalPages      int         `json:"total_pages"`
	CurrentPage     int         `json:"current_page"`
	Applications    []Applicant `json:"applications"`
}

// SavedSummary is a bookmarked offer.
type SavedSummary struct {
	ID         uint    `json:"id"`
	JobOfferID uint    `json:"job_offer_id"`
	JobOffer   Summary `json:"job_offer"`
}

// ApplicationSummaries decorates a user's applications. offers is keyed by
// ID; an application whose offer is gone is left out.
func (d Decorator) ApplicationSummaries(apps []models.JobApplication, offers map[uint]models.JobOffer, l Lookups) []ApplicationSummary {
	out := make([]ApplicationSummary, 0, len(apps))
	for _, app := range apps {
		offer, ok := offers[app.JobOfferID]
		if !ok {
			continue
		}
		s := d.Summarize(offer, l)
		out = append(out, ApplicationSummary{
			ID:                app.ID,
			JobOfferID:        offer.ID,
			SubcategoryName:   s.SubcategoryName,
			CompanyName:       s.CompanyName,
			ApplicationStatus: app.Status,
			LogoURL:           s.LogoURL,
			CreatedAt:         app.CreatedAt,
		})
	}
	return out
}

// Applicants decorates applications with their applicant's name. users is
// keyed by ID; unknown users keep only their ID.
func (d Decorator) Applicants(apps []models.JobApplication, users map[uint]models.User) []Applicant {
	out := make([]Applicant, len(apps))
	for i, app := range apps {
		u := users[app.UserID]
		out[i] = Applicant{
			ID: app.ID,
			User: ApplicantUser{
				ID:        app.UserID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Email:     u.Email,
			},
			JobOfferID:       app.JobOfferID,
			UseProfile:       app.UseProfile,
			CVURL:            d.ResumeURL(app.CVUpload),
			MotivationLetter: app.MotivationLetter,
			Status:           app.Status,
			CreatedAt:        app.CreatedAt,
			UpdatedAt:        app.UpdatedAt,
		}
	}
	return out
}

// RecentApplicants decorates applications spread over several of a
// recruiter's offers, naming the job each one is for.
func (d Decorator) RecentApplicants(apps []models.JobApplication, users map[uint]models.User, offers map[uint]models.JobOffer, l Lookups) []Applicant {
	out := d.Applicants(apps, users)
	for i := range out {
		out[i].Job = UnknownSubcategory
		offer, ok := offers[out[i].JobOfferID]
		if !ok {
			continue
		}
		if cat, ok := l.Categories[offer.CategoryID]; ok {
			out[i].Job = SubcategoryName(cat, offer.SubcategoryID)
		}
	}
	return out
}

// SavedSummaries decorates bookmarks, dropping those whose offer is gone.
func (d Decorator) SavedSummaries(saved []models.SavedJob, offers map[uint]models.JobOffer, l Lookups) []SavedSummary {
	out := make([]SavedSummary, 0, len(saved))
	for _, sj := range saved {
		offer, ok := offers[sj.JobOfferID]
		if !ok {
			continue
		}
		out = append(out, SavedSummary{
			ID:         sj.ID,
			JobOfferID: offer.ID,
			JobOffer:   d.Summarize(offer, l),
		})
	}
	return out
}

// ByID indexes offers by ID.
func ByID(offers []models.JobOffer) map[uint]models.JobOffer {
	m := make(map[uint]models.JobOffer, len(offers))
	for _, o := range offers {
		m[o.ID] = o
	}
	return m
}
