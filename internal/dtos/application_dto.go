package dtos

import "github.com/justsurfingit/job-board/internal/services"

type ApplicationRequest struct {
	JobOfferID       uint   `json:"job_offer_id" binding:"required"`
	UseProfile       bool   `json:"use_profile"`
	CVUpload         string `json:"cv_upload"`
	MotivationLetter string `json:"motivation_letter" binding:"max=5000"`
}

func (r ApplicationRequest) ToInput() services.ApplicationInput {
	return services.ApplicationInput{
		JobOfferID:       r.JobOfferID,
		UseProfile:       r.UseProfile,
		CVUpload:         r.CVUpload,
		MotivationLetter: r.MotivationLetter,
	}
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,jobstatus"`
}

type SaveJobRequest struct {
	JobOfferID uint `json:"job_offer_id" binding:"required"`
}
