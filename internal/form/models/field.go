package models

import (
	"encoding/json"
	"fmt"

	id "oppform/pkg/domain"
	"oppform/pkg/transstring"
)

// Constraints is the kind-specific half of a field definition. Exactly one
// concrete constraints type corresponds to each kind (string and text share
// StringConstraints). The interface is sealed.
type Constraints interface {
	isConstraints()
}

// StringConstraints applies to string and text fields.
type StringConstraints struct {
	MaxLength *int         `json:"max_length,omitempty"`
	Fill      *FillPurpose `json:"fill,omitempty"`
}

// RegexConstraints applies to regex fields: a string field whose answers are
// expected to match Pattern. The pattern is validated at authoring time.
type RegexConstraints struct {
	MaxLength *int         `json:"max_length,omitempty"`
	Fill      *FillPurpose `json:"fill,omitempty"`
	Pattern   string       `json:"pattern"`
}

// EmailConstraints applies to email fields.
type EmailConstraints struct {
	MaxLength *int `json:"max_length,omitempty"`
}

// PhoneConstraints applies to phone_number fields. A nil whitelist allows any
// existing country; a non-nil whitelist is non-empty by construction.
type PhoneConstraints struct {
	Whitelist []id.CountryID `json:"whitelist,omitempty"`
}

// ChoiceConstraints applies to choice fields. Non-empty by construction.
type ChoiceConstraints struct {
	Choices map[string]transstring.String `json:"choices"`
}

// GenderConstraints applies to gender fields: the two free-text labels that
// are also the two admissible answer values.
type GenderConstraints struct {
	MaleLabel   string `json:"male_label"`
	FemaleLabel string `json:"female_label"`
}

// FileConstraints applies to file fields.
type FileConstraints struct {
	MaxSizeBytes *int64       `json:"max_size_bytes,omitempty"`
	Fill         *FillPurpose `json:"fill,omitempty"`
}

// CheckboxConstraints applies to checkbox fields.
type CheckboxConstraints struct {
	CheckedByDefault bool `json:"checked_by_default,omitempty"`
}

// IntegerConstraints applies to integer fields. Bounds are authoring-time
// constraints: submissions are not re-checked against them.
type IntegerConstraints struct {
	Min  *int         `json:"min,omitempty"`
	Max  *int         `json:"max,omitempty"`
	Fill *FillPurpose `json:"fill,omitempty"`
}

// DateConstraints applies to date fields.
type DateConstraints struct {
	Fill *FillPurpose `json:"fill,omitempty"`
}

func (StringConstraints) isConstraints()   {}
func (RegexConstraints) isConstraints()    {}
func (EmailConstraints) isConstraints()    {}
func (PhoneConstraints) isConstraints()    {}
func (ChoiceConstraints) isConstraints()   {}
func (GenderConstraints) isConstraints()   {}
func (FileConstraints) isConstraints()     {}
func (CheckboxConstraints) isConstraints() {}
func (IntegerConstraints) isConstraints()  {}
func (DateConstraints) isConstraints()     {}

// FieldDefinition is one typed question within a form. It is owned by its
// OpportunityForm and replaced wholesale on update, never mutated in place.
type FieldDefinition struct {
	ID          string
	Kind        FieldKind
	Label       transstring.String
	Required    bool
	Constraints Constraints
}

type fieldJSON struct {
	ID          string             `json:"id"`
	Kind        FieldKind          `json:"kind"`
	Label       transstring.String `json:"label"`
	Required    bool               `json:"required"`
	Constraints json.RawMessage    `json:"constraints,omitempty"`
}

// MarshalJSON flattens the definition for JSONB storage.
func (f FieldDefinition) MarshalJSON() ([]byte, error) {
	constraints, err := json.Marshal(f.Constraints)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fieldJSON{
		ID:          f.ID,
		Kind:        f.Kind,
		Label:       f.Label,
		Required:    f.Required,
		Constraints: constraints,
	})
}

// UnmarshalJSON restores a stored definition, dispatching the constraints
// payload on the kind tag.
func (f *FieldDefinition) UnmarshalJSON(data []byte) error {
	var in fieldJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if _, err := ParseFieldKind(string(in.Kind)); err != nil {
		return fmt.Errorf("stored field %q: %w", in.ID, err)
	}

	constraints, err := decodeConstraints(in.Kind, in.Constraints)
	if err != nil {
		return fmt.Errorf("stored field %q: %w", in.ID, err)
	}

	f.ID = in.ID
	f.Kind = in.Kind
	f.Label = in.Label
	f.Required = in.Required
	f.Constraints = constraints
	return nil
}

func decodeConstraints(kind FieldKind, raw json.RawMessage) (Constraints, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	unmarshal := func(dst Constraints) (Constraints, error) {
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, err
		}
		return dst, nil
	}

	var c Constraints
	var err error
	switch kind {
	case KindString, KindText:
		c, err = unmarshal(&StringConstraints{})
	case KindRegex:
		c, err = unmarshal(&RegexConstraints{})
	case KindEmail:
		c, err = unmarshal(&EmailConstraints{})
	case KindPhoneNumber:
		c, err = unmarshal(&PhoneConstraints{})
	case KindChoice:
		c, err = unmarshal(&ChoiceConstraints{})
	case KindGender:
		c, err = unmarshal(&GenderConstraints{})
	case KindFile:
		c, err = unmarshal(&FileConstraints{})
	case KindCheckbox:
		c, err = unmarshal(&CheckboxConstraints{})
	case KindInteger:
		c, err = unmarshal(&IntegerConstraints{})
	case KindDate:
		c, err = unmarshal(&DateConstraints{})
	default:
		return nil, fmt.Errorf("unknown field kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return deref(c), nil
}

// deref converts the *T produced by decoding back to the value form stored in
// FieldDefinition.Constraints.
func deref(c Constraints) Constraints {
	switch v := c.(type) {
	case *StringConstraints:
		return *v
	case *RegexConstraints:
		return *v
	case *EmailConstraints:
		return *v
	case *PhoneConstraints:
		return *v
	case *ChoiceConstraints:
		return *v
	case *GenderConstraints:
		return *v
	case *FileConstraints:
		return *v
	case *CheckboxConstraints:
		return *v
	case *IntegerConstraints:
		return *v
	case *DateConstraints:
		return *v
	default:
		return c
	}
}
