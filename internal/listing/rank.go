package listing

import (
	"sort"

	"github.com/justsurfingit/job-board/internal/models"
)

// RecencyOrder is the ORDER BY for public listings. The id tie-break keeps
// pages stable when offers share a timestamp.
const RecencyOrder = "job_offers.created_at DESC, job_offers.id DESC"

// Ranked is a job offer with its live count of sent applications.
type Ranked struct {
	Offer      models.JobOffer
	Applicants int64
}

// RankByApplicants orders a recruiter's offers by sent-application count,
// newest first among equal counts. Offers missing from counts have zero
// applicants.
func RankByApplicants(offers []models.JobOffer, counts map[uint]int64) []Ranked {
	ranked := make([]Ranked, len(offers))
	for i, o := range offers {
		ranked[i] = Ranked{Offer: o, Applicants: counts[o.ID]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Applicants != b.Applicants {
			return a.Applicants > b.Applicants
		}
		return newer(a.Offer, b.Offer)
	})
	return ranked
}

func newer(a, b models.JobOffer) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
