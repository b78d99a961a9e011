package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"oppform/internal/form/cache"
	"oppform/internal/form/fields"
	"oppform/internal/form/models"
	id "oppform/pkg/domain"
	dErrors "oppform/pkg/domain-errors"
	"oppform/pkg/platform/sentinel"
	"oppform/pkg/requestcontext"
	"oppform/pkg/transstring"
)

// RenderedForm is the displayable shape of a stored form in one language.
type RenderedForm struct {
	OpportunityID id.OpportunityID      `json:"opportunity_id"`
	Version       int                   `json:"version"`
	Language      transstring.Language  `json:"language"`
	SubmitMethod  *models.SubmitMethod  `json:"submit_method,omitempty"`
	Fields        []fields.RenderedField `json:"fields"`
}

// RenderSchema resolves a listing's form into the requested language.
// Rendering is pure given the stored definition, so the result is cached per
// (listing, version, language); a version bump changes the key.
func (s *Service) RenderSchema(ctx context.Context, oppID id.OpportunityID, lang transstring.Language) (*RenderedForm, error) {
	form, err := s.findForm(ctx, oppID)
	if err != nil {
		return nil, err
	}

	if payload, err := s.cache.Get(ctx, oppID, form.Version, lang); err == nil {
		var rendered RenderedForm
		if err := json.Unmarshal(payload, &rendered); err == nil {
			s.metrics.RenderCacheHits.Inc()
			return &rendered, nil
		}
		s.logger.WarnContext(ctx, "discarding undecodable render cache entry",
			slog.String("opportunity_id", oppID.String()))
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.WarnContext(ctx, "render cache read failed", slog.Any("error", err))
	}
	s.metrics.RenderCacheMisses.Inc()

	rendered := renderForm(form, lang)
	if payload, err := json.Marshal(rendered); err == nil {
		if err := s.cache.Set(ctx, oppID, form.Version, lang, payload); err != nil {
			s.logger.WarnContext(ctx, "render cache write failed", slog.Any("error", err))
		}
	}
	return rendered, nil
}

func renderForm(form *models.OpportunityForm, lang transstring.Language) *RenderedForm {
	out := &RenderedForm{
		OpportunityID: form.OpportunityID,
		Version:       form.Version,
		Language:      lang,
		SubmitMethod:  form.SubmitMethod,
		Fields:        make([]fields.RenderedField, len(form.Fields)),
	}
	for i, def := range form.Fields {
		out.Fields[i] = fields.Render(def, lang)
	}
	return out
}

// PrefillAnswers derives suggested answers for a listing's form from the
// user's stored profile. Fields with no profile data are simply absent; a
// user with no profile gets an empty suggestion set, not an error.
func (s *Service) PrefillAnswers(ctx context.Context, oppID id.OpportunityID, userID id.UserID) (map[string]any, error) {
	form, err := s.findForm(ctx, oppID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Find(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load profile")
	}

	now := requestcontext.Now(ctx)
	answers := make(map[string]any)
	for _, def := range form.Fields {
		if value, ok := fields.Autofill(def, profile, now); ok {
			answers[def.ID] = value
		}
	}
	return answers, nil
}
