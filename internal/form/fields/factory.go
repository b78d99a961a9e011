// Package fields implements the polymorphic field-kind system: one dispatch
// table mapping each kind to its definition validation, rendering, autofill
// and submission validation behavior. Adding a kind means adding a table
// entry; nothing else switches on kind.
package fields

import (
	"context"
	"fmt"
	"regexp"

	"oppform/internal/form/models"
	"oppform/internal/form/ports"
	id "oppform/pkg/domain"
	"oppform/pkg/transstring"
)

// Factory converts untrusted field requests into canonical definitions. It
// needs the country directory because phone whitelists are checked for
// existence at authoring time.
type Factory struct {
	countries ports.CountryDirectory
}

func NewFactory(countries ports.CountryDirectory) *Factory {
	return &Factory{countries: countries}
}

// Create validates one untrusted field request. It returns either the
// canonical definition or the complete list of definition errors tagged with
// fieldID. The error return carries infrastructure failures only (e.g. the
// country directory being unreachable), never validation outcomes.
func (fa *Factory) Create(ctx context.Context, fieldID string, req models.FieldRequest) (models.FieldDefinition, []models.DefinitionError, error) {
	var errs []models.DefinitionError

	if fieldID == "" {
		errs = append(errs, models.DefinitionError{Code: models.DefEmptyFieldID})
	}

	kind, kindErr := models.ParseFieldKind(req.Kind)
	if kindErr != nil {
		errs = append(errs, models.DefinitionError{
			Code:    models.DefUnknownKind,
			FieldID: fieldID,
			Detail:  kindErr.Error(),
		})
		return models.FieldDefinition{}, errs, nil
	}

	label, labelErrs := buildLabel(fieldID, req.Label)
	errs = append(errs, labelErrs...)

	spec := table[kind]
	constraints, constraintErrs, err := spec.validateDefinition(ctx, fa, fieldID, req)
	if err != nil {
		return models.FieldDefinition{}, nil, err
	}
	errs = append(errs, constraintErrs...)

	if len(errs) > 0 {
		return models.FieldDefinition{}, errs, nil
	}
	return models.FieldDefinition{
		ID:          fieldID,
		Kind:        kind,
		Label:       label,
		Required:    req.Required,
		Constraints: constraints,
	}, nil, nil
}

// CreateAll runs Create over an ordered request set, aggregating errors
// across all entries and detecting duplicate ids, so a whole schema
// submission is corrected in one round trip. On any validation error the
// returned definitions are nil.
func (fa *Factory) CreateAll(ctx context.Context, entries []models.FieldRequestEntry) ([]models.FieldDefinition, []models.DefinitionError, error) {
	var (
		defs []models.FieldDefinition
		errs []models.DefinitionError
	)
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.ID]; dup {
			errs = append(errs, models.DefinitionError{
				Code:    models.DefDuplicateFieldID,
				FieldID: entry.ID,
			})
			continue
		}
		seen[entry.ID] = struct{}{}

		def, defErrs, err := fa.Create(ctx, entry.ID, entry.Request)
		if err != nil {
			return nil, nil, err
		}
		if len(defErrs) > 0 {
			errs = append(errs, defErrs...)
			continue
		}
		defs = append(defs, def)
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}
	return defs, nil, nil
}

func buildLabel(fieldID string, payload *models.LabelPayload) (transstring.String, []models.DefinitionError) {
	if payload == nil {
		return transstring.String{}, []models.DefinitionError{{
			Code:    models.DefMissingLabel,
			FieldID: fieldID,
		}}
	}
	label, err := transstring.New(map[transstring.Language]string{
		transstring.LanguageEnglish: payload.EN,
		transstring.LanguageRussian: payload.RU,
	}, transstring.Language(payload.Fallback))
	if err == nil {
		return label, nil
	}
	return transstring.String{}, []models.DefinitionError{labelError(fieldID, err)}
}

func labelError(fieldID string, err error) models.DefinitionError {
	code := models.DefEmptyLabel
	switch err {
	case transstring.ErrMissingFallbackText:
		code = models.DefMissingFallbackText
	case transstring.ErrUnknownLanguage:
		code = models.DefUnknownLanguage
	}
	return models.DefinitionError{Code: code, FieldID: fieldID, Detail: err.Error()}
}

// fillFor validates the optional fill tag against the purposes admissible
// for the kind.
func fillFor(fieldID string, raw *string, allowed ...models.FillPurpose) (*models.FillPurpose, []models.DefinitionError) {
	if raw == nil {
		return nil, nil
	}
	for _, purpose := range allowed {
		if *raw == string(purpose) {
			return &purpose, nil
		}
	}
	return nil, []models.DefinitionError{{
		Code:    models.DefInvalidFill,
		FieldID: fieldID,
		Detail:  fmt.Sprintf("fill %q is not valid for this kind", *raw),
	}}
}

func positiveLength(fieldID string, maxLength *int) []models.DefinitionError {
	if maxLength != nil && *maxLength < 1 {
		return []models.DefinitionError{{
			Code:    models.DefInvalidMaxLength,
			FieldID: fieldID,
			Detail:  fmt.Sprintf("max_length must be >= 1, got %d", *maxLength),
		}}
	}
	return nil
}

func validateStringDefinition(_ context.Context, _ *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	var errs []models.DefinitionError
	errs = append(errs, positiveLength(fieldID, req.MaxLength)...)
	fill, fillErrs := fillFor(fieldID, req.Fill,
		models.FillFirstName, models.FillSecondName, models.FillFullName)
	errs = append(errs, fillErrs...)
	return models.StringConstraints{MaxLength: req.MaxLength, Fill: fill}, errs, nil
}

func validateRegexDefinition(_ context.Context, _ *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	var errs []models.DefinitionError
	errs = append(errs, positiveLength(fieldID, req.MaxLength)...)
	fill, fillErrs := fillFor(fieldID, req.Fill,
		models.FillFirstName, models.FillSecondName, models.FillFullName)
	errs = append(errs, fillErrs...)

	pattern := ""
	if req.Pattern != nil {
		pattern = *req.Pattern
	}
	if pattern == "" {
		errs = append(errs, models.DefinitionError{
			Code:    models.DefInvalidPattern,
			FieldID: fieldID,
			Detail:  "pattern is required",
		})
	} else if _, err := regexp.Compile(pattern); err != nil {
		errs = append(errs, models.DefinitionError{
			Code:    models.DefInvalidPattern,
			FieldID: fieldID,
			Detail:  err.Error(),
		})
	}
	return models.RegexConstraints{MaxLength: req.MaxLength, Fill: fill, Pattern: pattern}, errs, nil
}

func validateEmailDefinition(_ context.Context, _ *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	return models.EmailConstraints{MaxLength: req.MaxLength}, positiveLength(fieldID, req.MaxLength), nil
}

func validatePhoneDefinition(ctx context.Context, fa *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	if req.Whitelist == nil {
		return models.PhoneConstraints{}, nil, nil
	}
	if len(req.Whitelist) == 0 {
		return models.PhoneConstraints{}, []models.DefinitionError{{
			Code:    models.DefEmptyWhitelist,
			FieldID: fieldID,
			Detail:  "whitelist, when given, must not be empty",
		}}, nil
	}

	var errs []models.DefinitionError
	whitelist := make([]id.CountryID, 0, len(req.Whitelist))
	for i, raw := range req.Whitelist {
		index := i
		countryID, err := id.ParseCountryID(raw)
		if err != nil {
			errs = append(errs, models.DefinitionError{
				Code:    models.DefInvalidCountryID,
				FieldID: fieldID,
				Index:   &index,
				Detail:  fmt.Sprintf("malformed country id %q", raw),
			})
			continue
		}
		exists, err := fa.countries.Exists(ctx, countryID)
		if err != nil {
			return nil, nil, fmt.Errorf("country lookup: %w", err)
		}
		if !exists {
			errs = append(errs, models.DefinitionError{
				Code:    models.DefInvalidCountryID,
				FieldID: fieldID,
				Index:   &index,
				Detail:  fmt.Sprintf("unknown country %s", countryID),
			})
			continue
		}
		whitelist = append(whitelist, countryID)
	}
	return models.PhoneConstraints{Whitelist: whitelist}, errs, nil
}

func validateChoiceDefinition(_ context.Context, _ *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	if len(req.Choices) == 0 {
		return models.ChoiceConstraints{}, []models.DefinitionError{{
			Code:    models.DefEmptyChoices,
			FieldID: fieldID,
		}}, nil
	}
	var errs []models.DefinitionError
	choices := make(map[string]transstring.String, len(req.Choices))
	for key, payload := range req.Choices {
		label, err := transstring.New(map[transstring.Language]string{
			transstring.LanguageEnglish: payload.EN,
			transstring.LanguageRussian: payload.RU,
		}, transstring.Language(payload.Fallback))
		if err != nil {
			e := labelError(fieldID, err)
			e.Detail = fmt.Sprintf("choice %q: %s", key, e.Detail)
			errs = append(errs, e)
			continue
		}
		choices[key] = label
	}
	return models.ChoiceConstraints{Choices: choices}, errs, nil
}

func validateGenderDefinition(_ context.Context, _ *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	if req.MaleLabel == nil || *req.MaleLabel == "" || req.FemaleLabel == nil || *req.FemaleLabel == "" {
		return models.GenderConstraints{}, []models.DefinitionError{{
			Code:    models.DefMissingGenderLabels,
			FieldID: fieldID,
			Detail:  "both answer labels are required",
		}}, nil
	}
	return models.GenderConstraints{MaleLabel: *req.MaleLabel, FemaleLabel: *req.FemaleLabel}, nil, nil
}

func validateFileDefinition(_ context.Context, _ *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	var errs []models.DefinitionError
	if req.MaxSizeBytes != nil && *req.MaxSizeBytes < 1 {
		errs = append(errs, models.DefinitionError{
			Code:    models.DefInvalidMaxSize,
			FieldID: fieldID,
			Detail:  fmt.Sprintf("max_size_bytes must be >= 1, got %d", *req.MaxSizeBytes),
		})
	}
	fill, fillErrs := fillFor(fieldID, req.Fill, models.FillCV)
	errs = append(errs, fillErrs...)
	return models.FileConstraints{MaxSizeBytes: req.MaxSizeBytes, Fill: fill}, errs, nil
}

func validateCheckboxDefinition(_ context.Context, _ *Factory, _ string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	checked := req.CheckedByDefault != nil && *req.CheckedByDefault
	return models.CheckboxConstraints{CheckedByDefault: checked}, nil, nil
}

func validateIntegerDefinition(_ context.Context, _ *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	var errs []models.DefinitionError
	if req.Min != nil && req.Max != nil && *req.Max < *req.Min {
		errs = append(errs, models.DefinitionError{
			Code:    models.DefInvalidBounds,
			FieldID: fieldID,
			Detail:  fmt.Sprintf("max %d is less than min %d", *req.Max, *req.Min),
		})
	}
	fill, fillErrs := fillFor(fieldID, req.Fill, models.FillAge)
	errs = append(errs, fillErrs...)
	return models.IntegerConstraints{Min: req.Min, Max: req.Max, Fill: fill}, errs, nil
}

func validateDateDefinition(_ context.Context, _ *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error) {
	fill, fillErrs := fillFor(fieldID, req.Fill, models.FillBirthday)
	return models.DateConstraints{Fill: fill}, fillErrs, nil
}
