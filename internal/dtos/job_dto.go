package dtos

import (
	"encoding/json"

	"github.com/justsurfingit/job-board/internal/filter"
	"github.com/justsurfingit/job-board/internal/services"
)

// FilterRequest is the body of POST /job-offers/filter.
type FilterRequest struct {
	Search                string   `json:"search"`
	Location              string   `json:"location"`
	Education             []string `json:"education"`
	JobLevel              []string `json:"job_level"`
	Experience            []string `json:"experience"`
	JobFunctionIDs        []uint   `json:"job_function_ids"`
	WorkTypeIndexes       []int    `json:"work_type_indexes"`
	EmploymentTypeIndexes []int    `json:"employment_type_indexes"`
}

// ParseFilterRequest decodes body field by field. A field that does not
// decode is left unset instead of failing the request, and a body that is
// not a JSON object yields empty criteria.
func ParseFilterRequest(body []byte) FilterRequest {
	var req FilterRequest
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return req
	}

	fields := map[string]any{
		"search":                  &req.Search,
		"location":                &req.Location,
		"education":               &req.Education,
		"job_level":               &req.JobLevel,
		"experience":              &req.Experience,
		"job_function_ids":        &req.JobFunctionIDs,
		"work_type_indexes":       &req.WorkTypeIndexes,
		"employment_type_indexes": &req.EmploymentTypeIndexes,
	}
	for name, dst := range fields {
		v, ok := raw[name]
		if !ok {
			continue
		}
		// Unmarshal may leave a partial value behind on type errors.
		if err := json.Unmarshal(v, dst); err != nil {
			resetField(dst)
		}
	}
	return req
}

func resetField(dst any) {
	switch p := dst.(type) {
	case *string:
		*p = ""
	case *[]string:
		*p = nil
	case *[]uint:
		*p = nil
	case *[]int:
		*p = nil
	}
}

func (r FilterRequest) ToCriteria() filter.Criteria {
	return filter.Criteria{
		Search:                r.Search,
		Location:              r.Location,
		Education:             r.Education,
		JobLevel:              r.JobLevel,
		Experience:            r.Experience,
		CategoryIDs:           r.JobFunctionIDs,
		WorkTypeIndexes:       r.WorkTypeIndexes,
		EmploymentTypeIndexes: r.EmploymentTypeIndexes,
	}
}

type JobOfferRequest struct {
	CategoryID            uint     `json:"category_id" binding:"required"`
	SubcategoryID         string   `json:"subcategory_id" binding:"required"`
	EmploymentTypeIndex   int      `json:"employment_type_index" binding:"required,min=1"`
	LocationTypeIndex     int      `json:"location_type_index" binding:"required,min=1"`
	JobDescription        string   `json:"job_description" binding:"required,max=500"`
	MinimumQualifications string   `json:"minimum_qualifications" binding:"required,max=500"`
	RequiredSkills        []string `json:"required_skills" binding:"required,min=3,dive,required"`
}

func (r JobOfferRequest) ToInput() services.JobOfferInput {
	return services.JobOfferInput{
		CategoryID:            r.CategoryID,
		SubcategoryID:         r.SubcategoryID,
		EmploymentTypeIndex:   r.EmploymentTypeIndex,
		LocationTypeIndex:     r.LocationTypeIndex,
		JobDescription:        r.JobDescription,
		MinimumQualifications: r.MinimumQualifications,
		RequiredSkills:        r.RequiredSkills,
	}
}

// JobOfferPatchRequest is a partial update; omitted fields are kept.
type JobOfferPatchRequest struct {
	CategoryID            *uint    `json:"category_id" binding:"omitempty,min=1"`
	SubcategoryID         *string  `json:"subcategory_id" binding:"omitempty,min=1"`
	EmploymentTypeIndex   *int     `json:"employment_type_index" binding:"omitempty,min=1"`
	LocationTypeIndex     *int     `json:"location_type_index" binding:"omitempty,min=1"`
	JobDescription        *string  `json:"job_description" binding:"omitempty,min=1,max=500"`
	MinimumQualifications *string  `json:"minimum_qualifications" binding:"omitempty,min=1,max=500"`
	RequiredSkills        []string `json:"required_skills" binding:"omitempty,min=3,dive,required"`
}

func (r JobOfferPatchRequest) ToPatch() services.JobOfferPatch {
	return services.JobOfferPatch{
		CategoryID:            r.CategoryID,
		SubcategoryID:         r.SubcategoryID,
		EmploymentTypeIndex:   r.EmploymentTypeIndex,
		LocationTypeIndex:     r.LocationTypeIndex,
		JobDescription:        r.JobDescription,
		MinimumQualifications: r.MinimumQualifications,
		RequiredSkills:        r.RequiredSkills,
	}
}

type ActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type CategorySearchRequest struct {
	Name string `json:"name"`
}
