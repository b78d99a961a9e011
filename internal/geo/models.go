// Package geo holds the geography reference data consumed by phone fields:
// countries with localized names, dialing codes and flags. The catalog is
// reference data: rows are seeded or imported, never edited by end users.
package geo

import (
	"regexp"

	id "oppform/pkg/domain"
	dErrors "oppform/pkg/domain-errors"
	"oppform/pkg/transstring"
)

var phoneCodePattern = regexp.MustCompile(`^\+?\d{1,3}$`)

// Country is one reference row.
type Country struct {
	ID        id.CountryID
	Name      transstring.String
	PhoneCode string
	FlagEmoji string
}

// NewCountry validates a reference row before insertion.
func NewCountry(countryID id.CountryID, name transstring.String, phoneCode, flagEmoji string) (*Country, error) {
	if countryID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "country id is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "country name is required")
	}
	if !phoneCodePattern.MatchString(phoneCode) {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "malformed phone code %q", phoneCode)
	}
	if flagEmoji == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "flag emoji is required")
	}
	return &Country{ID: countryID, Name: name, PhoneCode: phoneCode, FlagEmoji: flagEmoji}, nil
}
