package fields

import (
	"sort"

	"oppform/internal/form/models"
	"oppform/pkg/transstring"
)

// RenderedField is the client-facing shape of one field: resolved label,
// kind tag, and the kind's public metadata. Rendering never fails.
type RenderedField struct {
	ID       string           `json:"id"`
	Kind     models.FieldKind `json:"kind"`
	Label    string           `json:"label"`
	Required bool             `json:"required"`

	MaxLength        *int              `json:"max_length,omitempty"`
	Pattern          string            `json:"pattern,omitempty"`
	Whitelist        []string          `json:"whitelist,omitempty"`
	Choices          map[string]string `json:"choices,omitempty"`
	ChoiceOrder      []string          `json:"choice_order,omitempty"`
	MaleLabel        string            `json:"male_label,omitempty"`
	FemaleLabel      string            `json:"female_label,omitempty"`
	MaxSizeBytes     *int64            `json:"max_size_bytes,omitempty"`
	CheckedByDefault bool              `json:"checked_by_default,omitempty"`
	Min              *int              `json:"min,omitempty"`
	Max              *int              `json:"max,omitempty"`
}

// Render produces the displayable descriptor for one field in the requested
// language.
func Render(def models.FieldDefinition, lang transstring.Language) RenderedField {
	out := RenderedField{
		ID:       def.ID,
		Kind:     def.Kind,
		Label:    def.Label.Resolve(lang),
		Required: def.Required,
	}
	table[def.Kind].render(&out, def, lang)
	return out
}

func renderString(out *RenderedField, def models.FieldDefinition, _ transstring.Language) {
	c := def.Constraints.(models.StringConstraints)
	out.MaxLength = c.MaxLength
}

func renderRegex(out *RenderedField, def models.FieldDefinition, _ transstring.Language) {
	c := def.Constraints.(models.RegexConstraints)
	out.MaxLength = c.MaxLength
	out.Pattern = c.Pattern
}

func renderEmail(out *RenderedField, def models.FieldDefinition, _ transstring.Language) {
	c := def.Constraints.(models.EmailConstraints)
	out.MaxLength = c.MaxLength
}

func renderPhone(out *RenderedField, def models.FieldDefinition, _ transstring.Language) {
	c := def.Constraints.(models.PhoneConstraints)
	if len(c.Whitelist) == 0 {
		return
	}
	out.Whitelist = make([]string, len(c.Whitelist))
	for i, countryID := range c.Whitelist {
		out.Whitelist[i] = countryID.String()
	}
}

func renderChoice(out *RenderedField, def models.FieldDefinition, lang transstring.Language) {
	c := def.Constraints.(models.ChoiceConstraints)
	out.Choices = make(map[string]string, len(c.Choices))
	out.ChoiceOrder = make([]string, 0, len(c.Choices))
	for key, label := range c.Choices {
		out.Choices[key] = label.Resolve(lang)
		out.ChoiceOrder = append(out.ChoiceOrder, key)
	}
	// Choice keys have no authored order (they form a mapping); sorting keeps
	// rendering deterministic.
	sort.Strings(out.ChoiceOrder)
}

func renderGender(out *RenderedField, def models.FieldDefinition, _ transstring.Language) {
	c := def.Constraints.(models.GenderConstraints)
	out.MaleLabel = c.MaleLabel
	out.FemaleLabel = c.FemaleLabel
}

func renderFile(out *RenderedField, def models.FieldDefinition, _ transstring.Language) {
	c := def.Constraints.(models.FileConstraints)
	out.MaxSizeBytes = c.MaxSizeBytes
}

func renderCheckbox(out *RenderedField, def models.FieldDefinition, _ transstring.Language) {
	c := def.Constraints.(models.CheckboxConstraints)
	out.CheckedByDefault = c.CheckedByDefault
}

func renderInteger(out *RenderedField, def models.FieldDefinition, _ transstring.Language) {
	c := def.Constraints.(models.IntegerConstraints)
	out.Min = c.Min
	out.Max = c.Max
}

func renderDate(_ *RenderedField, _ models.FieldDefinition, _ transstring.Language) {}
