package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"oppform/internal/form/fields"
	"oppform/internal/form/models"
	id "oppform/pkg/domain"
	dErrors "oppform/pkg/domain-errors"
	"oppform/pkg/requestcontext"
)

// SubmitAnswers validates an answer set against the listing's current form
// and stores it on success. All submission errors are aggregated before
// returning; nothing is persisted on any failure. The stored response is
// stamped with the form version it answered.
func (s *Service) SubmitAnswers(ctx context.Context, oppID id.OpportunityID, userID id.UserID, answers map[string]any) (*models.FormResponse, []models.SubmissionError, error) {
	form, err := s.findForm(ctx, oppID)
	if err != nil {
		return nil, nil, err
	}
	if form.SubmitMethod != nil {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest,
			"form is answered through an external submit method")
	}

	env := &fields.SubmissionEnv{UserID: userID, Countries: s.countries, Files: s.files}
	subErrs, err := fields.ValidateAnswers(ctx, env, form, answers)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "validate answers")
	}
	if len(subErrs) > 0 {
		s.metrics.ResponsesRejected.Inc()
		return nil, subErrs, nil
	}

	response := &models.FormResponse{
		ID:            id.ResponseID(uuid.New()),
		OpportunityID: oppID,
		UserID:        userID,
		FormVersion:   form.Version,
		Answers:       answers,
		CreatedAt:     requestcontext.Now(ctx),
	}
	if err := s.responses.Insert(ctx, response); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "store response")
	}
	s.metrics.ResponsesAccepted.Inc()
	s.logger.InfoContext(ctx, "response accepted",
		slog.String("opportunity_id", oppID.String()),
		slog.String("response_id", response.ID.String()),
		slog.Int("form_version", response.FormVersion))
	return response, nil, nil
}

// ListResponses returns the user's own stored responses for a listing,
// oldest first.
func (s *Service) ListResponses(ctx context.Context, oppID id.OpportunityID, userID id.UserID) ([]*models.FormResponse, error) {
	responses, err := s.responses.ListByUser(ctx, oppID, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list responses")
	}
	return responses, nil
}

// CountResponses reports how many responses a listing's form has received.
func (s *Service) CountResponses(ctx context.Context, oppID id.OpportunityID) (int, error) {
	count, err := s.responses.CountBySubject(ctx, oppID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "count responses")
	}
	return count, nil
}
