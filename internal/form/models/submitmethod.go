package models

import (
	"fmt"
	"regexp"
)

// SubmitMethodType enumerates supported submission delivery methods.
type SubmitMethodType string

// SubmitMethodYandexForms delivers submissions through an external Yandex
// Forms questionnaire instead of the built-in response flow.
const SubmitMethodYandexForms SubmitMethodType = "yandex_forms"

var yandexFormsURL = regexp.MustCompile(`^https://forms\.yandex\.ru/.*$`)

// SubmitMethod is an optional delivery method attached to a form.
type SubmitMethod struct {
	Type SubmitMethodType `json:"type"`
	URL  string           `json:"url,omitempty"`
}

// NewSubmitMethod validates an untrusted submit method request.
func NewSubmitMethod(req SubmitMethodRequest) (*SubmitMethod, *DefinitionError) {
	switch SubmitMethodType(req.Type) {
	case SubmitMethodYandexForms:
		if !yandexFormsURL.MatchString(req.URL) {
			return nil, &DefinitionError{
				Code:   DefInvalidSubmitMethod,
				Detail: fmt.Sprintf("url %q is not a Yandex Forms link", req.URL),
			}
		}
		return &SubmitMethod{Type: SubmitMethodYandexForms, URL: req.URL}, nil
	default:
		return nil, &DefinitionError{
			Code:   DefInvalidSubmitMethod,
			Detail: fmt.Sprintf("unknown submit method type %q", req.Type),
		}
	}
}
