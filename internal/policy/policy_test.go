package policy

import (
	"testing"

	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_UseCases(t *testing.T) {
	tests := []struct {
		name       string
		useCase    model.UseCase
		filename   string
		wantExempt []model.Category
	}{
		{
			name:       "identity verification",
			useCase:    model.UseCaseIdentityVerification,
			filename:   "alice.jpg",
			wantExempt: []model.Category{model.CategoryPerson, model.CategoryNationalID},
		},
		{
			name:       "address verification",
			useCase:    model.UseCaseAddressVerification,
			wantExempt: []model.Category{model.CategoryPerson, model.CategoryAddress},
		},
		{
			name:       "facial verification",
			useCase:    model.UseCaseFacialVerification,
			filename:   "dl_scan.png",
			wantExempt: []model.Category{model.CategoryPerson},
		},
		{
			name:       "unclassified without file defers heuristic",
			useCase:    model.UseCaseUnclassified,
			wantExempt: nil,
		},
		{
			name:       "unclassified driver license",
			useCase:    model.UseCaseUnclassified,
			filename:   "driver_card.png",
			wantExempt: []model.Category{model.CategoryPerson, model.CategoryDriverLicense},
		},
		{
			name:       "unclassified voter id upper case",
			useCase:    model.UseCaseUnclassified,
			filename:   "VOTER.pdf",
			wantExempt: []model.Category{model.CategoryPerson, model.CategoryVoterID},
		},
		{
			name:     "unclassified multi-category code",
			useCase:  model.UseCaseUnclassified,
			filename: "kyc-docs.pdf",
			wantExempt: []model.Category{
				model.CategoryPerson,
				model.CategoryAddress,
				model.CategoryNationalID,
				model.CategoryTaxID,
			},
		},
		{
			name:       "unclassified unknown letter redacts everything",
			useCase:    model.UseCaseUnclassified,
			filename:   "zebra.png",
			wantExempt: nil,
		},
		{
			name:       "unclassified digit redacts everything",
			useCase:    model.UseCaseUnclassified,
			filename:   "2024-scan.png",
			wantExempt: nil,
		},
		{
			name:       "unclassified uses base name",
			useCase:    model.UseCaseUnclassified,
			filename:   "/tmp/zzz/passport_stub_t.png",
			wantExempt: []model.Category{model.CategoryPerson, model.CategoryTaxID},
		},
		{
			name:       "no use case",
			useCase:    model.UseCaseNone,
			filename:   "driver.png",
			wantExempt: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.useCase, tt.filename)

			require.True(t, got.IsTotal())
			assert.Equal(t, tt.wantExempt, got.Exempted())
		})
	}
}

func TestResolve_IdentityScenario(t *testing.T) {
	got := Resolve(model.UseCaseIdentityVerification, "alice.jpg")

	for _, c := range model.Categories() {
		switch c {
		case model.CategoryNationalID, model.CategoryPerson:
			assert.False(t, got[c], c)
		default:
			assert.True(t, got[c], c)
		}
	}
}

func TestResolve_NamedUseCaseIgnoresFilename(t *testing.T) {
	filenames := []string{"", "alice.jpg", "driver.png", "voter.pdf", "kyc.pdf", "зебра.png"}

	for _, uc := range model.UseCases() {
		if uc == model.UseCaseUnclassified {
			continue
		}
		want := Resolve(uc, "")
		for _, name := range filenames {
			assert.True(t, want.Equal(Resolve(uc, name)), "use case %s, file %q", uc, name)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	for _, uc := range append(model.UseCases(), model.UseCaseNone) {
		for _, name := range []string{"", "a.png", "birth.pdf", "x"} {
			first := Resolve(uc, name)
			second := Resolve(uc, name)
			assert.True(t, first.Equal(second))
			assert.True(t, first.IsTotal())
		}
	}
}

func TestWithClassifier(t *testing.T) {
	calls := 0
	r := New(WithClassifier(func(filename string) []model.Category {
		calls++
		return []model.Category{model.CategoryOrganization}
	}))

	got := r.Resolve(model.UseCaseUnclassified, "anything.pdf")
	assert.Equal(t, []model.Category{model.CategoryOrganization}, got.Exempted())
	assert.Equal(t, 1, calls)

	r.Resolve(model.UseCaseUnclassified, "")
	r.Resolve(model.UseCaseFacialVerification, "anything.pdf")
	assert.Equal(t, 1, calls, "classifier only runs for unclassified documents with a filename")
}

func TestNewTableClassifier(t *testing.T) {
	classify := NewTableClassifier([]HeuristicRule{
		{Prefix: 'X', Exempts: []model.Category{model.CategoryPassport}},
		{Prefix: 'x', Exempts: []model.Category{model.CategoryDateOfBirth}},
	})

	assert.Equal(t, []model.Category{model.CategoryDateOfBirth}, classify("xray.png"))
	assert.Nil(t, classify("yak.png"))
	assert.Nil(t, classify(""))
}

func TestExemptions(t *testing.T) {
	got := Exemptions(model.UseCaseAddressVerification)
	got[0] = model.CategoryPassport

	assert.Equal(t, model.CategoryAddress, Exemptions(model.UseCaseAddressVerification)[0])
	assert.Empty(t, Exemptions(model.UseCaseUnclassified))
}
