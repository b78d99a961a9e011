package service

import (
	"context"
	"errors"
	"log/slog"

	"oppform/internal/form/models"
	id "oppform/pkg/domain"
	dErrors "oppform/pkg/domain-errors"
	"oppform/pkg/platform/sentinel"
	"oppform/pkg/requestcontext"
)

// CreateSchema validates and stores a brand-new form for a listing.
// Validation is all-or-nothing: on any definition error nothing is persisted
// and the complete error list comes back. The error return carries
// infrastructure and state failures (listing already has a form), never
// validation outcomes.
func (s *Service) CreateSchema(ctx context.Context, oppID id.OpportunityID, req models.CreateRequest) (*models.OpportunityForm, []models.DefinitionError, error) {
	if len(req.Fields) == 0 {
		return nil, []models.DefinitionError{{Code: models.DefNullFields}}, nil
	}
	defs, defErrs, err := s.factory.CreateAll(ctx, req.Fields)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "validate fields")
	}
	var method *models.SubmitMethod
	if req.SubmitMethod != nil {
		m, methodErr := models.NewSubmitMethod(*req.SubmitMethod)
		if methodErr != nil {
			defErrs = append(defErrs, *methodErr)
		}
		method = m
	}
	if len(defErrs) > 0 {
		return nil, defErrs, nil
	}
	return s.persistNew(ctx, oppID, defs, method)
}

func (s *Service) persistNew(ctx context.Context, oppID id.OpportunityID, defs []models.FieldDefinition, method *models.SubmitMethod) (*models.OpportunityForm, []models.DefinitionError, error) {
	now := requestcontext.Now(ctx)
	form, err := models.NewOpportunityForm(oppID, defs, method, now)
	if err != nil {
		return nil, nil, err
	}
	if err := s.schemas.Create(ctx, form); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, nil, dErrors.New(dErrors.CodeConflict, "listing already has a form")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "store form")
	}
	s.metrics.FormsCreated.Inc()
	s.logger.InfoContext(ctx, "form created",
		slog.String("opportunity_id", oppID.String()),
		slog.Int("fields", len(form.Fields)))
	return form, nil, nil
}

// UpdateSchema applies a partial update to an existing form. A semantic
// change bumps the version unless the caller suppressed the bump. Like
// creation, field validation is all-or-nothing.
func (s *Service) UpdateSchema(ctx context.Context, oppID id.OpportunityID, req models.UpdateRequest) (*models.OpportunityForm, []models.DefinitionError, error) {
	if req.IsEmpty() {
		return nil, []models.DefinitionError{{Code: models.DefEmptyUpdate}}, nil
	}

	form, err := s.findForm(ctx, oppID)
	if err != nil {
		return nil, nil, err
	}

	var defErrs []models.DefinitionError

	if req.Fields != nil {
		if len(*req.Fields) == 0 {
			defErrs = append(defErrs, models.DefinitionError{Code: models.DefNullFields})
		} else {
			defs, fieldErrs, err := s.factory.CreateAll(ctx, *req.Fields)
			if err != nil {
				return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "validate fields")
			}
			defErrs = append(defErrs, fieldErrs...)
			if len(fieldErrs) == 0 {
				if err := form.ReplaceFields(defs); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	if req.SubmitMethod != nil {
		method, methodErr := models.NewSubmitMethod(*req.SubmitMethod)
		if methodErr != nil {
			defErrs = append(defErrs, *methodErr)
		} else {
			form.SubmitMethod = method
		}
	} else if req.ClearSubmitMethod {
		form.SubmitMethod = nil
	}

	if len(defErrs) > 0 {
		return nil, defErrs, nil
	}

	now := requestcontext.Now(ctx)
	if req.SkipVersionBump {
		form.Touch(now)
	} else {
		form.BumpVersion(now)
	}

	if err := s.schemas.Save(ctx, form); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "listing has no form")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "store form")
	}
	s.metrics.FormsUpdated.Inc()
	s.logger.InfoContext(ctx, "form updated",
		slog.String("opportunity_id", oppID.String()),
		slog.Int("version", form.Version))
	return form, nil, nil
}

// GetSchema returns a listing's stored form.
func (s *Service) GetSchema(ctx context.Context, oppID id.OpportunityID) (*models.OpportunityForm, error) {
	return s.findForm(ctx, oppID)
}

// DeleteSchema removes a listing's form and drops its cached renderings.
// Stored responses are kept: they answered a form that existed.
func (s *Service) DeleteSchema(ctx context.Context, oppID id.OpportunityID) error {
	if err := s.schemas.Delete(ctx, oppID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "listing has no form")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete form")
	}
	if err := s.cache.Invalidate(ctx, oppID); err != nil {
		s.logger.WarnContext(ctx, "render cache invalidation failed",
			slog.String("opportunity_id", oppID.String()),
			slog.Any("error", err))
	}
	s.metrics.FormsDeleted.Inc()
	s.logger.InfoContext(ctx, "form deleted", slog.String("opportunity_id", oppID.String()))
	return nil
}

func (s *Service) findForm(ctx context.Context, oppID id.OpportunityID) (*models.OpportunityForm, error) {
	form, err := s.schemas.FindBySubject(ctx, oppID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "listing has no form")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load form")
	}
	return form, nil
}
