package models

import (
	"strings"
)

// Address is a postal address of a company or one of its establishment units
type Address struct {
	Street       string `json:"street,omitempty"`
	StreetNumber string `json:"street_number,omitempty"`
	PostalBox    string `json:"postal_box,omitempty"`
	PostalCode   string `json:"postal_code,omitempty" validate:"omitempty,len=4,numeric"`
	City         string `json:"city,omitempty"`
	Province     string `json:"province,omitempty"`
	Region       string `json:"region,omitempty" validate:"omitempty,oneof=Bruxelles Flandre Wallonie"`
	Country      string `json:"country,omitempty"`
}

// FullAddress renders the address on a single line, skipping empty parts
func (a Address) FullAddress() string {
	street := strings.TrimSpace(strings.Join(nonEmpty(a.Street, a.StreetNumber), " "))
	if a.PostalBox != "" {
		street = strings.TrimSpace(street + " bte " + a.PostalBox)
	}
	locality := strings.TrimSpace(strings.Join(nonEmpty(a.PostalCode, a.City), " "))
	return strings.Join(nonEmpty(street, locality, a.Country), ", ")
}

// IsEmpty reports whether no part of the address is known
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// EstablishmentUnit is one row of the KBO establishment list
type EstablishmentUnit struct {
	Status              string `json:"status"`
	EstablishmentNumber string `json:"establishment_number"`
	StartDate           string `json:"start_date"`
	Denomination        string `json:"denomination"`
	Address             string `json:"address"`
}

// FinancialSummary is the financial part of a company record
type FinancialSummary struct {
	GrossMargin       *int64       `json:"gross_margin,omitempty"`
	NumberOfEmployees *int64       `json:"number_of_employees,omitempty" validate:"omitempty,gte=0"`
	CompanySize       *CompanySize `json:"company_size,omitempty" validate:"omitempty,oneof=micro small medium large"`
}

// NewFinancialSummary truncates the floating point figures of an annual account to integers
func NewFinancialSummary(size *CompanySize, account AnnualAccount) FinancialSummary {
	summary := FinancialSummary{CompanySize: size}
	if account.GrossMargin != nil {
		v := int64(*account.GrossMargin)
		summary.GrossMargin = &v
	}
	if account.Employees != nil {
		v := int64(*account.Employees)
		summary.NumberOfEmployees = &v
	}
	return summary
}

// Company is the consolidated registry record of one Belgian company
type Company struct {
	VATNumber          string              `json:"vat_number" validate:"required,len=10,numeric"`
	Name               string              `json:"name,omitempty"`
	LegalForm          string              `json:"legal_form,omitempty"`
	Status             string              `json:"status,omitempty"`
	StartDate          string              `json:"start_date,omitempty"`
	Address            Address             `json:"address"`
	NACEBELCodes       []string            `json:"nacebel_codes,omitempty" validate:"dive,nacebel"`
	EstablishmentUnits []EstablishmentUnit `json:"establishment_units,omitempty"`
	Financial          FinancialSummary    `json:"financial"`
	GeneralInformation string              `json:"general_information,omitempty"` // Markdown rendition of the registry page
	Errors             []string            `json:"errors,omitempty"`              // One placeholder per failed extraction task
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GeoLocation is the administrative area resolved for an address
type GeoLocation struct {
	Country   string  `json:"country"`
	Province  string  `json:"province"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
