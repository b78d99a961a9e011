package models

// Validation failures are values, not Go errors: a definition or submission
// operation returns the complete list so callers can fix everything at once.

// DefinitionErrorCode classifies an authoring-time validation failure.
type DefinitionErrorCode string

const (
	DefUnknownKind          DefinitionErrorCode = "unknown_kind"
	DefMissingLabel         DefinitionErrorCode = "missing_label"
	DefEmptyLabel           DefinitionErrorCode = "empty_label"
	DefMissingFallbackText  DefinitionErrorCode = "missing_fallback_text"
	DefUnknownLanguage      DefinitionErrorCode = "unknown_language"
	DefInvalidPattern       DefinitionErrorCode = "invalid_pattern"
	DefInvalidBounds        DefinitionErrorCode = "invalid_bounds"
	DefInvalidMaxLength     DefinitionErrorCode = "invalid_max_length"
	DefInvalidMaxSize       DefinitionErrorCode = "invalid_max_size"
	DefInvalidCountryID     DefinitionErrorCode = "invalid_country_id"
	DefEmptyWhitelist       DefinitionErrorCode = "empty_whitelist"
	DefEmptyChoices         DefinitionErrorCode = "empty_choices"
	DefMissingGenderLabels  DefinitionErrorCode = "missing_gender_labels"
	DefInvalidFill          DefinitionErrorCode = "invalid_fill"
	DefInvalidSubmitMethod  DefinitionErrorCode = "invalid_submit_method"
	DefEmptyFieldID         DefinitionErrorCode = "empty_field_id"
	DefDuplicateFieldID     DefinitionErrorCode = "duplicate_field_id"
	DefEmptyUpdate          DefinitionErrorCode = "empty_update"
	DefNullFields           DefinitionErrorCode = "null_fields"
)

// DefinitionError reports one authoring-time failure. FieldID is empty for
// schema-level failures (empty_update, null_fields, invalid_submit_method).
// Index points into a list-valued constraint (e.g. the phone whitelist entry
// that referenced an unknown country).
type DefinitionError struct {
	Code    DefinitionErrorCode `json:"code"`
	FieldID string              `json:"field_id,omitempty"`
	Index   *int                `json:"index,omitempty"`
	Detail  string              `json:"detail,omitempty"`
}

// SubmissionErrorCode classifies a submission-time validation failure.
type SubmissionErrorCode string

const (
	SubMissingRequired          SubmissionErrorCode = "missing_required"
	SubMalformedAnswer          SubmissionErrorCode = "malformed_answer"
	SubInvalidChoice            SubmissionErrorCode = "invalid_choice"
	SubPhoneInvalidCountryID    SubmissionErrorCode = "phone_invalid_country_id"
	SubPhoneNonWhitelistCountry SubmissionErrorCode = "phone_non_whitelist_country"
	SubFileInvalidID            SubmissionErrorCode = "file_invalid_id"
	SubFileCannotAccess         SubmissionErrorCode = "file_cannot_access"
	SubFileExceedsSize          SubmissionErrorCode = "file_exceeds_size"
)

// SubmissionError reports one failed answer, tagged with the field it
// belongs to.
type SubmissionError struct {
	Code    SubmissionErrorCode `json:"code"`
	FieldID string              `json:"field_id"`
	Detail  string              `json:"detail,omitempty"`
}
