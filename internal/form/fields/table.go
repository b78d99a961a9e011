package fields

import (
	"context"
	"time"

	"oppform/internal/form/models"
	"oppform/internal/form/ports"
	"oppform/pkg/transstring"
)

// capability is the fixed behavior set every kind implements. Definition
// validation consumes the untrusted request; the other three operate on the
// canonical definition.
type capability struct {
	validateDefinition func(ctx context.Context, fa *Factory, fieldID string, req models.FieldRequest) (models.Constraints, []models.DefinitionError, error)
	render             func(out *RenderedField, def models.FieldDefinition, lang transstring.Language)
	autofill           func(def models.FieldDefinition, profile *ports.Profile, now time.Time) (any, bool)
	validateSubmission func(ctx context.Context, env *SubmissionEnv, def models.FieldDefinition, raw any) ([]models.SubmissionError, error)
}

var table = map[models.FieldKind]capability{
	models.KindString: {
		validateDefinition: validateStringDefinition,
		render:             renderString,
		autofill:           autofillString,
		validateSubmission: validateNothing,
	},
	models.KindText: {
		validateDefinition: validateStringDefinition,
		render:             renderString,
		autofill:           autofillString,
		validateSubmission: validateNothing,
	},
	models.KindRegex: {
		validateDefinition: validateRegexDefinition,
		render:             renderRegex,
		autofill:           autofillRegex,
		validateSubmission: validateNothing,
	},
	models.KindEmail: {
		validateDefinition: validateEmailDefinition,
		render:             renderEmail,
		autofill:           autofillEmail,
		validateSubmission: validateNothing,
	},
	models.KindPhoneNumber: {
		validateDefinition: validatePhoneDefinition,
		render:             renderPhone,
		autofill:           autofillNothing,
		validateSubmission: validatePhoneSubmission,
	},
	models.KindChoice: {
		validateDefinition: validateChoiceDefinition,
		render:             renderChoice,
		autofill:           autofillNothing,
		validateSubmission: validateChoiceSubmission,
	},
	models.KindGender: {
		validateDefinition: validateGenderDefinition,
		render:             renderGender,
		autofill:           autofillGender,
		validateSubmission: validateNothing,
	},
	models.KindFile: {
		validateDefinition: validateFileDefinition,
		render:             renderFile,
		autofill:           autofillFile,
		validateSubmission: validateFileSubmission,
	},
	models.KindCheckbox: {
		validateDefinition: validateCheckboxDefinition,
		render:             renderCheckbox,
		autofill:           autofillNothing,
		validateSubmission: validateNothing,
	},
	models.KindInteger: {
		validateDefinition: validateIntegerDefinition,
		render:             renderInteger,
		autofill:           autofillInteger,
		validateSubmission: validateNothing,
	},
	models.KindDate: {
		validateDefinition: validateDateDefinition,
		render:             renderDate,
		autofill:           autofillDate,
		validateSubmission: validateNothing,
	},
}

func validateNothing(context.Context, *SubmissionEnv, models.FieldDefinition, any) ([]models.SubmissionError, error) {
	return nil, nil
}

func autofillNothing(models.FieldDefinition, *ports.Profile, time.Time) (any, bool) {
	return nil, false
}
