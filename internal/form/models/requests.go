package models

// Untrusted request shapes. These are the only long-lived input models: the
// factory consumes them and produces canonical FieldDefinitions, so no
// parallel hierarchy of input field types exists.

// LabelPayload is an untrusted translated string.
type LabelPayload struct {
	EN       string `json:"en,omitempty"`
	RU       string `json:"ru,omitempty"`
	Fallback string `json:"fallback_language"`
}

// FieldRequest is an untrusted field definition. Kind selects which of the
// constraint members are meaningful; the rest must be absent.
type FieldRequest struct {
	Kind     string        `json:"kind"`
	Label    *LabelPayload `json:"label"`
	Required bool          `json:"required"`

	MaxLength        *int                    `json:"max_length,omitempty"`
	Pattern          *string                 `json:"pattern,omitempty"`
	Whitelist        []string                `json:"whitelist,omitempty"`
	Choices          map[string]LabelPayload `json:"choices,omitempty"`
	MaleLabel        *string                 `json:"male_label,omitempty"`
	FemaleLabel      *string                 `json:"female_label,omitempty"`
	MaxSizeBytes     *int64                  `json:"max_size_bytes,omitempty"`
	CheckedByDefault *bool                   `json:"checked_by_default,omitempty"`
	Min              *int                    `json:"min,omitempty"`
	Max              *int                    `json:"max,omitempty"`
	Fill             *string                 `json:"fill,omitempty"`
}

// FieldRequestEntry pairs a field id with its request, preserving authored
// order.
type FieldRequestEntry struct {
	ID      string       `json:"id"`
	Request FieldRequest `json:"definition"`
}

// SubmitMethodRequest is an untrusted submit method.
type SubmitMethodRequest struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// CreateRequest describes a full form definition at the service boundary.
type CreateRequest struct {
	Fields       []FieldRequestEntry
	SubmitMethod *SubmitMethodRequest
}

// UpdateRequest describes a partial form update at the service boundary.
//
// Fields semantics mirror the wire contract: a nil pointer means "fields not
// mentioned, keep them"; a pointer to an empty slice means the caller
// explicitly cleared fields, which is rejected (a form's field set may never
// be empty).
type UpdateRequest struct {
	Fields            *[]FieldRequestEntry
	SubmitMethod      *SubmitMethodRequest
	ClearSubmitMethod bool
	SkipVersionBump   bool
}

// IsEmpty reports whether the update changes nothing besides the version
// flag.
func (u UpdateRequest) IsEmpty() bool {
	return u.Fields == nil && u.SubmitMethod == nil && !u.ClearSubmitMethod
}
