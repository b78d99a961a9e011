package models

import "fmt"

// FieldKind enumerates the closed set of form field kinds. Adding a kind
// means adding a capability-table entry in internal/form/fields; nothing
// dispatches on kind outside that table.
type FieldKind string

const (
	KindString      FieldKind = "string"
	KindRegex       FieldKind = "regex"
	KindText        FieldKind = "text"
	KindEmail       FieldKind = "email"
	KindPhoneNumber FieldKind = "phone_number"
	KindChoice      FieldKind = "choice"
	KindGender      FieldKind = "gender"
	KindFile        FieldKind = "file"
	KindCheckbox    FieldKind = "checkbox"
	KindInteger     FieldKind = "integer"
	KindDate        FieldKind = "date"
)

// Kinds lists every supported field kind.
var Kinds = []FieldKind{
	KindString, KindRegex, KindText, KindEmail, KindPhoneNumber,
	KindChoice, KindGender, KindFile, KindCheckbox, KindInteger, KindDate,
}

// ParseFieldKind validates a kind tag from untrusted input.
func ParseFieldKind(s string) (FieldKind, error) {
	for _, k := range Kinds {
		if s == string(k) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown field kind %q", s)
}

// FillPurpose tags a field for profile-driven autofill. Which purposes are
// admissible depends on the field kind; the factory rejects mismatches.
type FillPurpose string

const (
	FillFirstName  FillPurpose = "first_name"
	FillSecondName FillPurpose = "second_name"
	FillFullName   FillPurpose = "fullname"
	FillAge        FillPurpose = "age"
	FillBirthday   FillPurpose = "birthday"
	FillCV         FillPurpose = "cv"
)
