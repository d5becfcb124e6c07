package model

import "fmt"

// UseCase names a scenario that implies a default redaction policy.
type UseCase string

// Known use cases. UseCaseNone means the user has not picked one.
const (
	UseCaseNone                 UseCase = ""
	UseCaseIdentityVerification UseCase = "identity_verification"
	UseCaseAddressVerification  UseCase = "address_verification"
	UseCaseFacialVerification   UseCase = "facial_verification"
	UseCaseUnclassified         UseCase = "unclassified"
)

var useCases = [...]UseCase{
	UseCaseIdentityVerification,
	UseCaseAddressVerification,
	UseCaseFacialVerification,
	UseCaseUnclassified,
}

var useCaseLabels = map[UseCase]string{
	UseCaseNone:                 "None",
	UseCaseIdentityVerification: "Identity document verification",
	UseCaseAddressVerification:  "Address verification",
	UseCaseFacialVerification:   "Facial verification",
	UseCaseUnclassified:         "Unclassified",
}

// UseCases returns the selectable use cases in display order.
func UseCases() []UseCase {
	out := make([]UseCase, len(useCases))
	copy(out, useCases[:])
	return out
}

// ParseUseCase converts a wire key into a UseCase. The empty string and
// "none" both map to UseCaseNone.
func ParseUseCase(s string) (UseCase, error) {
	if s == "" || s == "none" {
		return UseCaseNone, nil
	}
	uc := UseCase(s)
	if _, ok := useCaseLabels[uc]; !ok {
		return UseCaseNone, fmt.Errorf("unknown use case %q", s)
	}
	return uc, nil
}

// IsSet reports whether a use case has been chosen.
func (u UseCase) IsSet() bool {
	return u != UseCaseNone
}

// Label returns a human readable name for the use case.
func (u UseCase) Label() string {
	if label, ok := useCaseLabels[u]; ok {
		return label
	}
	return string(u)
}

// Next cycles through UseCases, wrapping back to UseCaseNone after the last.
func (u UseCase) Next() UseCase {
	if u == UseCaseNone {
		return useCases[0]
	}
	for i, uc := range useCases {
		if uc == u && i+1 < len(useCases) {
			return useCases[i+1]
		}
	}
	return UseCaseNone
}
