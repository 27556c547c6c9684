package dtos

import "github.com/justsurfingit/job-board/internal/services"

type CompanyRequest struct {
	Name      string   `json:"company_name" binding:"required"`
	About     string   `json:"about_company"`
	Website   string   `json:"website" binding:"omitempty,url"`
	Country   string   `json:"country" binding:"required"`
	Addresses []string `json:"addresses" binding:"max=10,dive,required"`
	LogoName  string   `json:"logo_name"`
}

func (r CompanyRequest) ToInput() services.CompanyInput {
	return services.CompanyInput{
		Name:      r.Name,
		About:     r.About,
		Website:   r.Website,
		Country:   r.Country,
		Addresses: r.Addresses,
		LogoName:  r.LogoName,
	}
}
