package policy

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/redact-flow/internal/model"
)

// HeuristicRule maps the leading character of a filename to the categories
// that document type reveals.
type HeuristicRule struct {
	Name    string
	Exempts []model.Category
	Prefix  rune
}

// DefaultHeuristics returns the first-letter lookup table used by
// DefaultClassifier.
func DefaultHeuristics() []HeuristicRule {
	return []HeuristicRule{
		// Single document types
		{Prefix: 'a', Name: "National ID card", Exempts: []model.Category{model.CategoryNationalID, model.CategoryPerson}},
		{Prefix: 'p', Name: "Tax ID card", Exempts: []model.Category{model.CategoryTaxID, model.CategoryPerson}},
		{Prefix: 'd', Name: "Driver license", Exempts: []model.Category{model.CategoryDriverLicense, model.CategoryPerson}},
		{Prefix: 'v', Name: "Voter ID", Exempts: []model.Category{model.CategoryVoterID, model.CategoryPerson}},
		{Prefix: 'r', Name: "Ration card", Exempts: []model.Category{model.CategoryRationCard, model.CategoryPerson}},
		{Prefix: 't', Name: "Travel document", Exempts: []model.Category{model.CategoryPassport, model.CategoryPerson, model.CategoryDateOfBirth}},

		// Multi-category codes
		{Prefix: 'b', Name: "Birth certificate", Exempts: []model.Category{model.CategoryBirthCertificate, model.CategoryPerson, model.CategoryDateOfBirth}},
		{Prefix: 'k', Name: "KYC bundle", Exempts: []model.Category{model.CategoryNationalID, model.CategoryTaxID, model.CategoryAddress, model.CategoryPerson}},
		{Prefix: 'u', Name: "Utility bill", Exempts: []model.Category{model.CategoryAddress, model.CategoryPerson}},
	}
}

// NewTableClassifier builds a Classifier from a rule table. Later rules with
// the same prefix replace earlier ones. Prefixes are matched case-insensitively.
func NewTableClassifier(rules []HeuristicRule) Classifier {
	table := make(map[rune][]model.Category, len(rules))
	for _, rule := range rules {
		exempts := make([]model.Category, len(rule.Exempts))
		copy(exempts, rule.Exempts)
		table[unicode.ToLower(rule.Prefix)] = exempts
	}

	return func(filename string) []model.Category {
		base := strings.TrimSpace(filepath.Base(filename))
		if base == "" || base == "." {
			return nil
		}
		first, _ := utf8.DecodeRuneInString(base)
		// Unknown leading characters exempt nothing: redact everything.
		return append([]model.Category(nil), table[unicode.ToLower(first)]...)
	}
}

// DefaultClassifier applies DefaultHeuristics.
var DefaultClassifier = NewTableClassifier(DefaultHeuristics())
