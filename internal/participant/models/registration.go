package models

import (
	"strings"

	dErrors "orgregistry/pkg/domain-errors"
)

// RegistrationForm is the pre-validated field set extracted from an
// organization's registration document. Every field is mandatory.
type RegistrationForm struct {
	OrganizationName   string `json:"organizationName"`
	LegalName          string `json:"legalName"`
	RegistrationNumber string `json:"registrationNumber"`
	MailAddress        string `json:"mailAddress"`
	TncLink            string `json:"tncLink"`
	TncHash            string `json:"tncHash"`
	CountryCode        string `json:"countryCode"`
	City               string `json:"city"`
	PostalCode         string `json:"postalCode"`
	Street             string `json:"street"`
}

// Validate rejects the form when any mandatory field is empty or blank.
// The error deliberately does not enumerate which field failed.
func (f *RegistrationForm) Validate() error {
	fields := []string{
		f.OrganizationName,
		f.LegalName,
		f.RegistrationNumber,
		f.MailAddress,
		f.TncLink,
		f.TncHash,
		f.CountryCode,
		f.City,
		f.PostalCode,
		f.Street,
	}
	for _, field := range fields {
		if strings.TrimSpace(field) == "" {
			return dErrors.New(dErrors.CodeBadRequest, "invalid registration form: empty or blank fields")
		}
	}
	return nil
}
