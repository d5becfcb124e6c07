// Package policy resolves which PII categories to redact for a use case and,
// for unclassified documents, a filename.
package policy

import (
	"github.com/Veraticus/redact-flow/internal/model"
)

// Classifier inspects a filename and returns the categories the document is
// expected to reveal on purpose. It stands in for a real document-type
// detector and can be swapped with WithClassifier.
type Classifier func(filename string) []model.Category

// useCaseExemptions lists the categories each scenario deliberately keeps
// visible, because revealing them is the point of that scenario.
var useCaseExemptions = map[model.UseCase][]model.Category{
	model.UseCaseIdentityVerification: {model.CategoryNationalID, model.CategoryPerson},
	model.UseCaseAddressVerification:  {model.CategoryAddress, model.CategoryPerson},
	model.UseCaseFacialVerification:   {model.CategoryPerson},
}

// Resolver turns a use case and an optional filename into a SelectionSet.
// The zero value is not usable; construct one with New.
type Resolver struct {
	classify Classifier
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClassifier replaces the filename heuristic.
func WithClassifier(c Classifier) Option {
	return func(r *Resolver) {
		if c != nil {
			r.classify = c
		}
	}
}

// New creates a resolver using the default first-letter heuristic.
func New(opts ...Option) *Resolver {
	r := &Resolver{classify: DefaultClassifier}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes the selection for useCase. An empty filename means no
// file is available yet; for unclassified documents the heuristic is then
// deferred and everything is redacted. Resolve is pure and never fails.
func (r *Resolver) Resolve(useCase model.UseCase, filename string) model.SelectionSet {
	selection := model.DefaultSelection()

	if exempt, ok := useCaseExemptions[useCase]; ok {
		return selection.Exempt(exempt...)
	}

	if useCase != model.UseCaseUnclassified || filename == "" {
		return selection
	}

	return selection.Exempt(r.classify(filename)...)
}

var defaultResolver = New()

// Resolve uses the default resolver.
func Resolve(useCase model.UseCase, filename string) model.SelectionSet {
	return defaultResolver.Resolve(useCase, filename)
}

// Exemptions returns the categories a named scenario keeps visible.
func Exemptions(useCase model.UseCase) []model.Category {
	out := make([]model.Category, len(useCaseExemptions[useCase]))
	copy(out, useCaseExemptions[useCase])
	return out
}
