package model

import "fmt"

// Category identifies a class of personally identifiable information the
// backend can redact. The string value is the key used in the backend's
// piiOptions payload.
type Category string

// The closed set of redactable categories.
const (
	CategoryPerson           Category = "person"
	CategoryAddress          Category = "address"
	CategoryOrganization     Category = "org"
	CategoryNationalID       Category = "aadhar"
	CategoryTaxID            Category = "pan"
	CategoryDateOfBirth      Category = "dob"
	CategoryDriverLicense    Category = "dl"
	CategoryVoterID          Category = "voter"
	CategoryRationCard       Category = "ration_card"
	CategoryBirthCertificate Category = "birth_certificate"
	CategoryPassport         Category = "passport"
)

// categories is the registry order. It drives display order and the order of
// keys a caller iterates over.
var categories = [...]Category{
	CategoryPerson,
	CategoryAddress,
	CategoryOrganization,
	CategoryNationalID,
	CategoryTaxID,
	CategoryDateOfBirth,
	CategoryDriverLicense,
	CategoryVoterID,
	CategoryRationCard,
	CategoryBirthCertificate,
	CategoryPassport,
}

var categoryLabels = map[Category]string{
	CategoryPerson:           "Person",
	CategoryAddress:          "Address",
	CategoryOrganization:     "Organization",
	CategoryNationalID:       "National ID number",
	CategoryTaxID:            "Tax ID",
	CategoryDateOfBirth:      "Date of birth",
	CategoryDriverLicense:    "Driver license",
	CategoryVoterID:          "Voter ID",
	CategoryRationCard:       "Ration card",
	CategoryBirthCertificate: "Birth certificate",
	CategoryPassport:         "Passport",
}

// Categories returns the ordered list of every known category.
// The returned slice is a copy and may be modified by the caller.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// ParseCategory converts a wire key into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown PII category %q", s)
	}
	return c, nil
}

// Valid reports whether c belongs to the registry.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns a human readable name for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}
