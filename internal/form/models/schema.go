package models

import (
	"encoding/json"
	"time"

	id "oppform/pkg/domain"
	dErrors "oppform/pkg/domain-errors"
)

// OpportunityForm is the aggregate root for one listing's questionnaire.
//
// Invariants:
//   - Fields is non-empty and field IDs are unique, in authored order
//   - Version >= 1 and increases strictly on every semantic update unless the
//     caller explicitly suppresses the bump
//   - Field definitions are owned by this form; updates replace them
//     wholesale, never mutate them in place
//
// The version exists so consumers can detect responses answering a form
// shape that no longer matches the live one; it does not serialize
// concurrent writers (last writer wins at the storage layer).
type OpportunityForm struct {
	OpportunityID id.OpportunityID
	Version       int
	SubmitMethod  *SubmitMethod
	Fields        []FieldDefinition
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOpportunityForm constructs a version-1 form. Field validity is the
// factory's business; this enforces aggregate-level invariants only.
func NewOpportunityForm(oppID id.OpportunityID, fields []FieldDefinition, submitMethod *SubmitMethod, now time.Time) (*OpportunityForm, error) {
	if err := checkFieldSet(fields); err != nil {
		return nil, err
	}
	return &OpportunityForm{
		OpportunityID: oppID,
		Version:       1,
		SubmitMethod:  submitMethod,
		Fields:        fields,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func checkFieldSet(fields []FieldDefinition) error {
	if len(fields) == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "form must have at least one field")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.ID == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "field id cannot be empty")
		}
		if _, dup := seen[f.ID]; dup {
			return dErrors.Newf(dErrors.CodeInvariantViolation, "duplicate field id %q", f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// Field looks up a definition by id.
func (f *OpportunityForm) Field(fieldID string) (FieldDefinition, bool) {
	for _, fd := range f.Fields {
		if fd.ID == fieldID {
			return fd, true
		}
	}
	return FieldDefinition{}, false
}

// ReplaceFields swaps the owned field set for a new one.
func (f *OpportunityForm) ReplaceFields(fields []FieldDefinition) error {
	if err := checkFieldSet(fields); err != nil {
		return err
	}
	f.Fields = fields
	return nil
}

// BumpVersion marks a semantic update.
func (f *OpportunityForm) BumpVersion(now time.Time) {
	f.Version++
	f.UpdatedAt = now
}

// Touch records an update that deliberately kept the version.
func (f *OpportunityForm) Touch(now time.Time) {
	f.UpdatedAt = now
}

// Clone deep-copies the aggregate so memory stores never hand out aliased
// field slices.
func (f *OpportunityForm) Clone() *OpportunityForm {
	cp := *f
	cp.Fields = make([]FieldDefinition, len(f.Fields))
	copy(cp.Fields, f.Fields)
	if f.SubmitMethod != nil {
		sm := *f.SubmitMethod
		cp.SubmitMethod = &sm
	}
	return &cp
}

// EncodeFields serializes the field set for JSONB storage.
func (f *OpportunityForm) EncodeFields() ([]byte, error) {
	return json.Marshal(f.Fields)
}

// DecodeFields restores a field set from JSONB storage.
func DecodeFields(data []byte) ([]FieldDefinition, error) {
	var fields []FieldDefinition
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
