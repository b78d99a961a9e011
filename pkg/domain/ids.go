// Package domain defines the typed identifiers shared across the module.
//
// Each ID is a distinct type over uuid.UUID so that an opportunity ID can
// never be passed where a user ID is expected. Conversions are explicit.
package domain

import "github.com/google/uuid"

type (
	// OpportunityID identifies a listing; it is also the primary key of the
	// listing's form, since a listing owns at most one form.
	OpportunityID uuid.UUID

	// UserID identifies an account.
	UserID uuid.UUID

	// CountryID identifies a country in the geography reference data.
	CountryID uuid.UUID

	// FileID identifies an uploaded file's metadata record.
	FileID uuid.UUID

	// ResponseID identifies a stored form response.
	ResponseID uuid.UUID
)

func (id OpportunityID) String() string { return uuid.UUID(id).String() }
func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id CountryID) String() string     { return uuid.UUID(id).String() }
func (id FileID) String() string        { return uuid.UUID(id).String() }
func (id ResponseID) String() string    { return uuid.UUID(id).String() }

func (id OpportunityID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsZero() bool        { return uuid.UUID(id) == uuid.Nil }
func (id CountryID) IsZero() bool     { return uuid.UUID(id) == uuid.Nil }
func (id FileID) IsZero() bool        { return uuid.UUID(id) == uuid.Nil }

// Text marshaling keeps the canonical UUID string form in JSON and JSONB
// payloads (a named type over uuid.UUID does not inherit its methods).

func (id OpportunityID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id UserID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id CountryID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id FileID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id ResponseID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }

func (id *OpportunityID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = OpportunityID(u)
	return err
}

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = UserID(u)
	return err
}

func (id *CountryID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = CountryID(u)
	return err
}

func (id *FileID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = FileID(u)
	return err
}

func (id *ResponseID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = ResponseID(u)
	return err
}

// ParseOpportunityID parses the canonical string form.
func ParseOpportunityID(s string) (OpportunityID, error) {
	u, err := uuid.Parse(s)
	return OpportunityID(u), err
}

// ParseUserID parses the canonical string form.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	return UserID(u), err
}

// ParseCountryID parses the canonical string form.
func ParseCountryID(s string) (CountryID, error) {
	u, err := uuid.Parse(s)
	return CountryID(u), err
}

// ParseFileID parses the canonical string form.
func ParseFileID(s string) (FileID, error) {
	u, err := uuid.Parse(s)
	return FileID(u), err
}
