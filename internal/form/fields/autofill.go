package fields

import (
	"strings"
	"time"

	"oppform/internal/form/models"
	"oppform/internal/form/ports"
)

// Autofill attempts to pre-populate an answer for def from the user's stored
// profile. ok=false means no data is available, which is not an error. now is
// the request clock, used for age derivation.
func Autofill(def models.FieldDefinition, profile *ports.Profile, now time.Time) (value any, ok bool) {
	if profile == nil {
		return nil, false
	}
	return table[def.Kind].autofill(def, profile, now)
}

func autofillString(def models.FieldDefinition, profile *ports.Profile, _ time.Time) (any, bool) {
	c := def.Constraints.(models.StringConstraints)
	return fillName(c.Fill, profile)
}

func autofillRegex(def models.FieldDefinition, profile *ports.Profile, _ time.Time) (any, bool) {
	c := def.Constraints.(models.RegexConstraints)
	return fillName(c.Fill, profile)
}

func fillName(fill *models.FillPurpose, profile *ports.Profile) (any, bool) {
	if fill == nil {
		return nil, false
	}
	switch *fill {
	case models.FillFirstName:
		if profile.Name != "" {
			return profile.Name, true
		}
	case models.FillSecondName:
		if profile.Surname != "" {
			return profile.Surname, true
		}
	case models.FillFullName:
		full := strings.TrimSpace(profile.Name + " " + profile.Surname)
		if full != "" {
			return full, true
		}
	}
	return nil, false
}

// autofillEmail always fills: every account has a verified email.
func autofillEmail(_ models.FieldDefinition, profile *ports.Profile, _ time.Time) (any, bool) {
	return profile.Email, true
}

func autofillGender(def models.FieldDefinition, profile *ports.Profile, _ time.Time) (any, bool) {
	if profile.IsMale == nil {
		return nil, false
	}
	c := def.Constraints.(models.GenderConstraints)
	if *profile.IsMale {
		return c.MaleLabel, true
	}
	return c.FemaleLabel, true
}

func autofillFile(def models.FieldDefinition, profile *ports.Profile, _ time.Time) (any, bool) {
	c := def.Constraints.(models.FileConstraints)
	if c.Fill == nil || *c.Fill != models.FillCV || profile.CVFileID == nil {
		return nil, false
	}
	return profile.CVFileID.String(), true
}

func autofillInteger(def models.FieldDefinition, profile *ports.Profile, now time.Time) (any, bool) {
	c := def.Constraints.(models.IntegerConstraints)
	if c.Fill == nil || *c.Fill != models.FillAge || profile.Birthday == nil {
		return nil, false
	}
	return ageAt(*profile.Birthday, now), true
}

func autofillDate(def models.FieldDefinition, profile *ports.Profile, _ time.Time) (any, bool) {
	c := def.Constraints.(models.DateConstraints)
	if c.Fill == nil || *c.Fill != models.FillBirthday || profile.Birthday == nil {
		return nil, false
	}
	return profile.Birthday.Format("2006-01-02"), true
}

// ageAt computes age in whole years as of now: the year difference, minus one
// if this year's birthday has not yet occurred.
func ageAt(birthday, now time.Time) int {
	years := now.Year() - birthday.Year()
	anniversary := birthday.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
