package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/justsurfingit/job-board/internal/filter"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryIDs(s []listing.Summary) []uint {
	out := make([]uint, len(s))
	for i, v := range s {
		out[i] = v.ID
	}
	return out
}

func assertStatus(t *testing.T, want int, err error) {
	t.Helper()
	require.Error(t, err)
	status, _ := StatusOf(err)
	assert.Equal(t, want, status, err.Error())
}

func TestFilterIntegration(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	software := e.category(t, "Software Development")
	backend := software.Subcategories[0]
	frontend := software.Subcategories[1]

	e.recruiter(t, 1, "Acme", "Morocco")
	e.recruiter(t, 2, "Globex", "France")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o1 := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: backend.ID, Active: true,
		JobDescription: "Go services, 10+ years experience", MinimumQualifications: "PhD in Computer Science"}, base)
	o2 := e.insertOffer(t, models.JobOffer{UserID: 2, CategoryID: software.ID, SubcategoryID: frontend.ID, Active: true, LocationTypeIndex: 2,
		JobDescription: "React (C++ a plus)", MinimumQualifications: "3 years of TypeScript"}, base.Add(time.Hour))
	o3 := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: frontend.ID, Active: true,
		JobDescription: "Vue developer", MinimumQualifications: "no experience required"}, base.Add(time.Hour))
	e.insertOffer(t, models.JobOffer{UserID: 2, CategoryID: software.ID, SubcategoryID: backend.ID, Active: false,
		JobDescription: "Closed Go role"}, base.Add(2*time.Hour))

	page := listing.Page{Number: 1, Limit: 10}

	t.Run("empty criteria lists active offers by recency", func(t *testing.T) {
		res, err := e.filter.Search(ctx, filter.Criteria{}, page)
		require.NoError(t, err)
		// o2 and o3 share a timestamp; the higher ID comes first
		assert.Equal(t, []uint{o3.ID, o2.ID, o1.ID}, summaryIDs(res.JobOffers))
		assert.Equal(t, 1, res.TotalPages)
		assert.Equal(t, 1, res.CurrentPage)
	})

	t.Run("pagination", func(t *testing.T) {
		res, err := e.filter.Search(ctx, filter.Criteria{}, listing.Page{Number: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []uint{o1.ID}, summaryIDs(res.JobOffers))
		assert.Equal(t, 2, res.TotalPages)

		res, err = e.filter.Search(ctx, filter.Criteria{}, listing.Page{Number: 5, Limit: 2})
		require.NoError(t, err)
		assert.Empty(t, res.JobOffers)
	})

	t.Run("unknown location matches nothing", func(t *testing.T) {
		res, err := e.filter.Search(ctx, filter.Criteria{Location: "Atlantis"}, page)
		require.NoError(t, err)
		assert.Empty(t, res.JobOffers)
		assert.Equal(t, 0, res.TotalPages)
	})

	t.Run("location", func(t *testing.T) {
		res, err := e.filter.Search(ctx, filter.Criteria{Location: "morocco"}, page)
		require.NoError(t, err)
		assert.Equal(t, []uint{o3.ID, o1.ID}, summaryIDs(res.JobOffers))
		assert.Equal(t, "Acme", res.JobOffers[0].CompanyName)
		require.NotNil(t, res.JobOffers[0].LogoURL)
		assert.Equal(t, "http://test.local/companylogos/logo.png", *res.JobOffers[0].LogoURL)
	})

	t.Run("experience", func(t *testing.T) {
		res, err := e.filter.Search(ctx, filter.Criteria{Experience: []string{"More Than 10 Years"}}, page)
		require.NoError(t, err)
		assert.Equal(t, []uint{o1.ID}, summaryIDs(res.JobOffers))

		res, err = e.filter.Search(ctx, filter.Criteria{Experience: []string{"1-5 Years", "6-10 Years"}}, page)
		require.NoError(t, err)
		assert.Equal(t, []uint{o2.ID}, summaryIDs(res.JobOffers))

		res, err = e.filter.Search(ctx, filter.Criteria{Experience: []string{"No Experience"}}, page)
		require.NoError(t, err)
		assert.Equal(t, []uint{o3.ID}, summaryIDs(res.JobOffers))
	})

	t.Run("education", func(t *testing.T) {
		res, err := e.filter.Search(ctx, filter.Criteria{Education: []string{"phd"}}, page)
		require.NoError(t, err)
		assert.Equal(t, []uint{o1.ID}, summaryIDs(res.JobOffers))

		res, err = e.filter.Search(ctx, filter.Criteria{Education: []string{"highSchool"}}, page)
		require.NoError(t, err)
		assert.Empty(t, res.JobOffers)
	})

	t.Run("search over subcategory names and text", func(t *testing.T) {
		res, err := e.filter.Search(ctx, filter.Criteria{Search: backend.Name}, page)
		require.NoError(t, err)
		assert.Equal(t, []uint{o1.ID}, summaryIDs(res.JobOffers))

		res, err = e.filter.Search(ctx, filter.Criteria{Search: "c++"}, page)
		require.NoError(t, err)
		assert.Equal(t, []uint{o2.ID}, summaryIDs(res.JobOffers))
	})

	t.Run("work type index is zero based", func(t *testing.T) {
		res, err := e.filter.Search(ctx, filter.Criteria{WorkTypeIndexes: []int{1}}, page)
		require.NoError(t, err)
		assert.Equal(t, []uint{o2.ID}, summaryIDs(res.JobOffers))
	})

	t.Run("recent", func(t *testing.T) {
		res, err := e.offers.Recent(ctx, listing.Page{Number: 1, Limit: RecentDefaultLimit})
		require.NoError(t, err)
		assert.Equal(t, []uint{o3.ID, o2.ID, o1.ID}, summaryIDs(res.JobOffers))
	})
}

func TestJobOfferLifecycleIntegration(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	software := e.category(t, "Software Development")
	design := e.category(t, "Design")

	input := JobOfferInput{
		CategoryID:            software.ID,
		SubcategoryID:         software.Subcategories[0].ID,
		EmploymentTypeIndex:   1,
		LocationTypeIndex:     2,
		JobDescription:        "Build APIs",
		MinimumQualifications: "2 years",
		RequiredSkills:        []string{"go", "sql", "docker"},
	}

	_, err := e.offers.Create(ctx, 1, input)
	assertStatus(t, http.StatusBadRequest, err)

	e.recruiter(t, 1, "Acme", "Morocco")

	mismatched := input
	mismatched.SubcategoryID = design.Subcategories[0].ID
	_, err = e.offers.Create(ctx, 1, mismatched)
	assertStatus(t, http.StatusBadRequest, err)

	offer, err := e.offers.Create(ctx, 1, input)
	require.NoError(t, err)
	assert.True(t, offer.Active)

	desc := "Build great APIs"
	updated, err := e.offers.Update(ctx, 1, offer.ID, JobOfferPatch{JobDescription: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.JobDescription)
	assert.Equal(t, input.MinimumQualifications, updated.MinimumQualifications)

	_, err = e.offers.Update(ctx, 2, offer.ID, JobOfferPatch{JobDescription: &desc})
	assertStatus(t, http.StatusNotFound, err)

	wrongSub := design.Subcategories[0].ID
	_, err = e.offers.Update(ctx, 1, offer.ID, JobOfferPatch{SubcategoryID: &wrongSub})
	assertStatus(t, http.StatusBadRequest, err)

	toggled, err := e.offers.SetActive(ctx, 1, offer.ID, false)
	require.NoError(t, err)
	assert.False(t, toggled.Active)
	// setting the same value twice keeps it
	toggled, err = e.offers.SetActive(ctx, 1, offer.ID, false)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	detail, err := e.offers.Get(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, software.Subcategories[0].Name, detail.SubcategoryName)
	assert.Equal(t, "Acme", detail.CompanyName)
	assert.False(t, detail.Active)

	_, err = e.offers.Get(ctx, offer.ID+100)
	assertStatus(t, http.StatusNotFound, err)
}

func TestDeleteCascadesIntegration(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	software := e.category(t, "Software Development")
	e.recruiter(t, 1, "Acme", "Morocco")

	offer := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: software.Subcategories[0].ID, Active: true}, time.Now())
	other := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: software.Subcategories[0].ID, Active: true}, time.Now())

	for user := uint(10); user < 13; user++ {
		_, err := e.saved.Save(ctx, user, offer.ID)
		require.NoError(t, err)
		_, err = e.applications.Apply(ctx, user, ApplicationInput{JobOfferID: offer.ID, UseProfile: true})
		require.NoError(t, err)
	}
	_, err := e.saved.Save(ctx, 10, other.ID)
	require.NoError(t, err)

	assertStatus(t, http.StatusNotFound, e.offers.Delete(ctx, 2, offer.ID))
	require.NoError(t, e.offers.Delete(ctx, 1, offer.ID))

	var count int64
	require.NoError(t, e.db.Model(&models.SavedJob{}).Where("job_offer_id = ?", offer.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, e.db.Model(&models.JobApplication{}).Where("job_offer_id = ?", offer.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, e.db.Model(&models.JobOffer{}).Where("id = ?", offer.ID).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, e.db.Model(&models.SavedJob{}).Where("job_offer_id = ?", other.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDashboardRankingIntegration(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	software := e.category(t, "Software Development")
	design := e.category(t, "Design")
	e.recruiter(t, 1, "Acme", "Morocco")

	now := time.Now().UTC().Truncate(time.Second)
	sub := software.Subcategories[0].ID
	oldest := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: sub, Active: true}, now.Add(-2*time.Hour))
	newest := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: sub, Active: true}, now)
	middle := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: sub, Active: false}, now.Add(-time.Hour))
	e.insertOffer(t, models.JobOffer{UserID: 2, CategoryID: software.ID, SubcategoryID: sub, Active: true}, now)
	designOffer := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: design.ID, SubcategoryID: design.Subcategories[0].ID, Active: true}, now.Add(-3*time.Hour))

	apply := func(offerID uint, n int, status string) {
		for i := 0; i < n; i++ {
			require.NoError(t, e.db.Create(&models.JobApplication{UserID: uint(100 + i), JobOfferID: offerID, UseProfile: true, Status: status}).Error)
		}
	}
	apply(oldest.ID, 5, models.StatusSent)
	apply(middle.ID, 3, models.StatusSent)
	// only sent applications count
	apply(newest.ID, 4, models.StatusRejected)

	q := DashboardQuery{Page: listing.Page{Number: 1, Limit: 10}, Search: "software", Filter: DashboardAll}
	d, err := e.offers.Dashboard(ctx, 1, q)
	require.NoError(t, err)
	assert.Equal(t, []uint{oldest.ID, middle.ID, newest.ID}, summaryIDs(d.JobOffers))
	assert.Equal(t, int64(5), *d.JobOffers[0].Applicants)
	assert.Equal(t, int64(3), *d.JobOffers[1].Applicants)
	assert.Equal(t, int64(0), *d.JobOffers[2].Applicants)
	require.NotNil(t, d.Company)
	assert.Equal(t, "Acme", d.Company.Name)

	q.Filter = DashboardActive
	d, err = e.offers.Dashboard(ctx, 1, q)
	require.NoError(t, err)
	assert.Equal(t, []uint{oldest.ID, newest.ID}, summaryIDs(d.JobOffers))

	q = DashboardQuery{Page: listing.Page{Number: 2, Limit: 3}, Filter: DashboardAll}
	d, err = e.offers.Dashboard(ctx, 1, q)
	require.NoError(t, err)
	assert.Equal(t, []uint{designOffer.ID}, summaryIDs(d.JobOffers))
	assert.Equal(t, 2, d.TotalPages)

	q = DashboardQuery{Page: listing.Page{Number: 1, Limit: 4}, Search: "no such category"}
	d, err = e.offers.Dashboard(ctx, 1, q)
	require.NoError(t, err)
	assert.Empty(t, d.JobOffers)
	assert.Equal(t, 0, d.TotalPages)
}

func TestApplicationsAndSavedJobsIntegration(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	software := e.category(t, "Software Development")
	e.recruiter(t, 1, "Acme", "Morocco")
	require.NoError(t, e.db.Create(&models.User{ID: 20, Username: "jdoe", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}).Error)

	offer := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: software.Subcategories[0].ID, Active: true}, time.Now())
	closed := e.insertOffer(t, models.JobOffer{UserID: 1, CategoryID: software.ID, SubcategoryID: software.Subcategories[0].ID, Active: false}, time.Now())

	_, err := e.applications.Apply(ctx, 20, ApplicationInput{JobOfferID: offer.ID})
	assertStatus(t, http.StatusBadRequest, err)
	_, err = e.applications.Apply(ctx, 20, ApplicationInput{JobOfferID: closed.ID, UseProfile: true})
	assertStatus(t, http.StatusBadRequest, err)

	app, err := e.applications.Apply(ctx, 20, ApplicationInput{JobOfferID: offer.ID, CVUpload: "cv.pdf"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSent, app.Status)

	_, err = e.applications.Apply(ctx, 20, ApplicationInput{JobOfferID: offer.ID, UseProfile: true})
	assertStatus(t, http.StatusConflict, err)

	applicants, err := e.applications.ApplicantsForOffer(ctx, 1, offer.ID, listing.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), applicants.TotalApplicants)
	require.Len(t, applicants.Applications, 1)
	assert.Equal(t, "Jane", applicants.Applications[0].User.FirstName)
	assert.Equal(t, "http://test.local/resume/cv.pdf", *applicants.Applications[0].CVURL)

	_, err = e.applications.ApplicantsForOffer(ctx, 2, offer.ID, listing.Page{Number: 1, Limit: 10})
	assertStatus(t, http.StatusNotFound, err)

	recent, err := e.applications.RecentApplicants(ctx, 1, "", listing.Page{Number: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), recent.TotalApplicants)
	require.Len(t, recent.Applications, 1)
	assert.Equal(t, software.Subcategories[0].Name, recent.Applications[0].Job)

	for _, search := range []string{"jane", "DOE", software.Subcategories[0].Name} {
		recent, err = e.applications.RecentApplicants(ctx, 1, search, listing.Page{Number: 1, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(1), recent.TotalApplicants, search)
	}
	recent, err = e.applications.RecentApplicants(ctx, 1, "nurse", listing.Page{Number: 1, Limit: 5})
	require.NoError(t, err)
	assert.Zero(t, recent.TotalApplicants)
	assert.Empty(t, recent.Applications)

	recent, err = e.applications.RecentApplicants(ctx, 2, "", listing.Page{Number: 1, Limit: 5})
	require.NoError(t, err)
	assert.Zero(t, recent.TotalApplicants)

	_, err = e.applications.UpdateStatus(ctx, 2, app.ID, models.StatusAccepted)
	assertStatus(t, http.StatusNotFound, err)
	_, err = e.applications.UpdateStatus(ctx, 1, app.ID, "hired")
	assertStatus(t, http.StatusBadRequest, err)
	updated, err := e.applications.UpdateStatus(ctx, 1, app.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)

	mine, err := e.applications.ListForUser(ctx, 20, "", listing.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, mine.JobApplications, 1)
	assert.Equal(t, models.StatusPending, mine.JobApplications[0].ApplicationStatus)
	assert.Equal(t, "Acme", mine.JobApplications[0].CompanyName)

	mine, err = e.applications.ListForUser(ctx, 20, "acme", listing.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, mine.JobApplications, 1)
	mine, err = e.applications.ListForUser(ctx, 20, "globex", listing.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, mine.JobApplications)

	_, err = e.saved.Save(ctx, 20, offer.ID+100)
	assertStatus(t, http.StatusNotFound, err)
	_, err = e.saved.Save(ctx, 20, offer.ID)
	require.NoError(t, err)
	_, err = e.saved.Save(ctx, 20, offer.ID)
	assertStatus(t, http.StatusConflict, err)

	saved, err := e.saved.List(ctx, 20)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, offer.ID, saved[0].JobOfferID)

	found, err := e.saved.Find(ctx, 20, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, saved[0].ID, found.ID)

	require.NoError(t, e.saved.Delete(ctx, 20, offer.ID))
	assertStatus(t, http.StatusNotFound, e.saved.Delete(ctx, 20, offer.ID))
	_, err = e.saved.Find(ctx, 20, offer.ID)
	assertStatus(t, http.StatusNotFound, err)
}

func TestCategoryAndCompanyIntegration(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	all, err := e.categories.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 10)

	found, err := e.categories.Search(ctx, "designer")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Design", found[0].Name)
	for _, sub := range found[0].Subcategories {
		assert.Contains(t, sub.Name, "Designer")
	}

	// metacharacters are literals
	found, err = e.categories.Search(ctx, "(")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = e.companies.Get(ctx, 5)
	assertStatus(t, http.StatusNotFound, err)

	c, err := e.companies.Upsert(ctx, 5, CompanyInput{Name: "Initech", Country: "USA", LogoName: "initech.png", Addresses: []string{"1 Main St"}})
	require.NoError(t, err)
	assert.Equal(t, "Initech", c.Name)

	c, err = e.companies.Upsert(ctx, 5, CompanyInput{Name: "Initech Corp", Country: "USA"})
	require.NoError(t, err)
	assert.Equal(t, "Initech Corp", c.Name)
	assert.Equal(t, "initech.png", c.LogoName, "empty logo keeps the stored one")

	_, err = e.companies.Upsert(ctx, 5, CompanyInput{Name: "X", Country: "USA", Addresses: make([]string, MaxCompanyAddresses+1)})
	assertStatus(t, http.StatusBadRequest, err)
}
