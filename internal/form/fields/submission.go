package fields

import (
	"context"
	"errors"
	"fmt"

	"oppform/internal/form/models"
	"oppform/internal/form/ports"
	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
)

// SubmissionEnv carries the collaborators a submission-time check may
// consult and the identity of the submitting user.
type SubmissionEnv struct {
	UserID    id.UserID
	Countries ports.CountryDirectory
	Files     ports.FileVault
}

// ValidateAnswers applies every field's submission validation to the answer
// set and aggregates all failures before returning.
//
// Contract (deliberately asymmetric):
//   - keys in answers with no matching field are ignored, not errors;
//   - absence of a required field's answer is checked here, at the aggregate
//     level, never by individual kinds;
//   - kind-specific constraints like integer bounds and string lengths are
//     authoring-time checks and are NOT re-applied here.
//
// The error return carries infrastructure failures only.
func ValidateAnswers(ctx context.Context, env *SubmissionEnv, form *models.OpportunityForm, answers map[string]any) ([]models.SubmissionError, error) {
	var errs []models.SubmissionError

	for _, def := range form.Fields {
		raw, present := answers[def.ID]
		if !present || raw == nil {
			if def.Required {
				errs = append(errs, models.SubmissionError{
					Code:    models.SubMissingRequired,
					FieldID: def.ID,
				})
			}
			continue
		}
		fieldErrs, err := table[def.Kind].validateSubmission(ctx, env, def, raw)
		if err != nil {
			return nil, err
		}
		errs = append(errs, fieldErrs...)
	}
	return errs, nil
}

func validateChoiceSubmission(_ context.Context, _ *SubmissionEnv, def models.FieldDefinition, raw any) ([]models.SubmissionError, error) {
	key, ok := raw.(string)
	if !ok {
		return []models.SubmissionError{{
			Code:    models.SubMalformedAnswer,
			FieldID: def.ID,
			Detail:  "choice answer must be a string key",
		}}, nil
	}
	c := def.Constraints.(models.ChoiceConstraints)
	if _, declared := c.Choices[key]; !declared {
		return []models.SubmissionError{{
			Code:    models.SubInvalidChoice,
			FieldID: def.ID,
			Detail:  fmt.Sprintf("%q is not a declared choice", key),
		}}, nil
	}
	return nil, nil
}

func validatePhoneSubmission(ctx context.Context, env *SubmissionEnv, def models.FieldDefinition, raw any) ([]models.SubmissionError, error) {
	pair, ok := raw.(map[string]any)
	if !ok {
		return []models.SubmissionError{{
			Code:    models.SubMalformedAnswer,
			FieldID: def.ID,
			Detail:  "phone answer must be a (country_id, subscriber_number) pair",
		}}, nil
	}
	rawCountry, _ := pair["country_id"].(string)
	subscriber, _ := pair["subscriber_number"].(string)
	if rawCountry == "" || subscriber == "" {
		return []models.SubmissionError{{
			Code:    models.SubMalformedAnswer,
			FieldID: def.ID,
			Detail:  "phone answer must carry country_id and subscriber_number",
		}}, nil
	}

	countryID, err := id.ParseCountryID(rawCountry)
	if err != nil {
		return []models.SubmissionError{{
			Code:    models.SubPhoneInvalidCountryID,
			FieldID: def.ID,
			Detail:  fmt.Sprintf("malformed country id %q", rawCountry),
		}}, nil
	}
	exists, err := env.Countries.Exists(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("country lookup: %w", err)
	}
	if !exists {
		return []models.SubmissionError{{
			Code:    models.SubPhoneInvalidCountryID,
			FieldID: def.ID,
			Detail:  fmt.Sprintf("unknown country %s", countryID),
		}}, nil
	}

	c := def.Constraints.(models.PhoneConstraints)
	if len(c.Whitelist) > 0 && !containsCountry(c.Whitelist, countryID) {
		return []models.SubmissionError{{
			Code:    models.SubPhoneNonWhitelistCountry,
			FieldID: def.ID,
			Detail:  fmt.Sprintf("country %s is not in this field's whitelist", countryID),
		}}, nil
	}
	return nil, nil
}

func containsCountry(list []id.CountryID, countryID id.CountryID) bool {
	for _, c := range list {
		if c == countryID {
			return true
		}
	}
	return false
}

func validateFileSubmission(ctx context.Context, env *SubmissionEnv, def models.FieldDefinition, raw any) ([]models.SubmissionError, error) {
	rawID, ok := raw.(string)
	if !ok {
		return []models.SubmissionError{{
			Code:    models.SubMalformedAnswer,
			FieldID: def.ID,
			Detail:  "file answer must be a file id",
		}}, nil
	}
	fileID, err := id.ParseFileID(rawID)
	if err != nil {
		return []models.SubmissionError{{
			Code:    models.SubFileInvalidID,
			FieldID: def.ID,
			Detail:  fmt.Sprintf("malformed file id %q", rawID),
		}}, nil
	}

	info, err := env.Files.Stat(ctx, fileID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return []models.SubmissionError{{
			Code:    models.SubFileInvalidID,
			FieldID: def.ID,
			Detail:  fmt.Sprintf("unknown file %s", fileID),
		}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file lookup: %w", err)
	}

	canAccess, err := env.Files.CanAccess(ctx, fileID, env.UserID)
	if err != nil {
		return nil, fmt.Errorf("file access check: %w", err)
	}
	if !canAccess {
		return []models.SubmissionError{{
			Code:    models.SubFileCannotAccess,
			FieldID: def.ID,
		}}, nil
	}

	c := def.Constraints.(models.FileConstraints)
	if c.MaxSizeBytes != nil && info.SizeBytes > *c.MaxSizeBytes {
		return []models.SubmissionError{{
			Code:    models.SubFileExceedsSize,
			FieldID: def.ID,
			Detail:  fmt.Sprintf("file is %d bytes, limit is %d", info.SizeBytes, *c.MaxSizeBytes),
		}}, nil
	}
	return nil, nil
}
