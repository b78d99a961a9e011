// Package handler exposes the form engine over HTTP. It is a thin layer:
// decode, delegate, encode; all rules live in the service.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"oppform/internal/form/models"
	"oppform/internal/form/service"
	id "oppform/pkg/domain"
	dErrors "oppform/pkg/domain-errors"
	"oppform/pkg/platform/httputil"
	"oppform/pkg/requestcontext"
	"oppform/pkg/transstring"
)

// Service is the form operations contract the handler needs.
type Service interface {
	CreateSchema(ctx context.Context, oppID id.OpportunityID, req models.CreateRequest) (*models.OpportunityForm, []models.DefinitionError, error)
	UpdateSchema(ctx context.Context, oppID id.OpportunityID, req models.UpdateRequest) (*models.OpportunityForm, []models.DefinitionError, error)
	GetSchema(ctx context.Context, oppID id.OpportunityID) (*models.OpportunityForm, error)
	DeleteSchema(ctx context.Context, oppID id.OpportunityID) error
	RenderSchema(ctx context.Context, oppID id.OpportunityID, lang transstring.Language) (*service.RenderedForm, error)
	PrefillAnswers(ctx context.Context, oppID id.OpportunityID, userID id.UserID) (map[string]any, error)
	SubmitAnswers(ctx context.Context, oppID id.OpportunityID, userID id.UserID, answers map[string]any) (*models.FormResponse, []models.SubmissionError, error)
	ListResponses(ctx context.Context, oppID id.OpportunityID, userID id.UserID) ([]*models.FormResponse, error)
	CountResponses(ctx context.Context, oppID id.OpportunityID) (int, error)
}

// Handler handles form endpoints.
type Handler struct {
	forms  Service
	logger *slog.Logger
}

func New(forms Service, logger *slog.Logger) *Handler {
	return &Handler{forms: forms, logger: logger}
}

// Register mounts the form routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/opportunities/{opportunityID}/form", func(r chi.Router) {
		r.Put("/", h.handleCreate)
		r.Patch("/", h.handleUpdate)
		r.Get("/", h.handleRender)
		r.Delete("/", h.handleDelete)
		r.Get("/prefill", h.handlePrefill)
	})
	r.Route("/opportunities/{opportunityID}/responses", func(r chi.Router) {
		r.Post("/", h.handleSubmit)
		r.Get("/", h.handleListResponses)
		r.Get("/count", h.handleCountResponses)
	})
}

type createBody struct {
	Fields       []models.FieldRequestEntry  `json:"fields"`
	SubmitMethod *models.SubmitMethodRequest `json:"submit_method,omitempty"`
}

// updateBody keeps fields and submit_method as raw JSON so explicit null can
// be told apart from an absent member.
type updateBody struct {
	Fields       json.RawMessage `json:"fields,omitempty"`
	SubmitMethod json.RawMessage `json:"submit_method,omitempty"`
	BumpVersion  *bool           `json:"bump_version,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	oppID, ok := h.opportunityID(w, r)
	if !ok {
		return
	}

	var body createBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	form, defErrs, err := h.forms.CreateSchema(ctx, oppID, models.CreateRequest{
		Fields:       body.Fields,
		SubmitMethod: body.SubmitMethod,
	})
	if err != nil {
		h.writeServiceError(ctx, w, "create form", err)
		return
	}
	if len(defErrs) > 0 {
		writeDefinitionErrors(w, defErrs)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, formView(form))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	oppID, ok := h.opportunityID(w, r)
	if !ok {
		return
	}

	var body updateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	req, err := body.toUpdateRequest()
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}

	form, defErrs, err := h.forms.UpdateSchema(ctx, oppID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "update form", err)
		return
	}
	if len(defErrs) > 0 {
		writeDefinitionErrors(w, defErrs)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, formView(form))
}

func (b updateBody) toUpdateRequest() (models.UpdateRequest, error) {
	req := models.UpdateRequest{}
	if b.BumpVersion != nil && !*b.BumpVersion {
		req.SkipVersionBump = true
	}

	if len(b.Fields) > 0 {
		if isJSONNull(b.Fields) {
			empty := []models.FieldRequestEntry{}
			req.Fields = &empty
		} else {
			var entries []models.FieldRequestEntry
			if err := json.Unmarshal(b.Fields, &entries); err != nil {
				return models.UpdateRequest{}, err
			}
			req.Fields = &entries
		}
	}

	if len(b.SubmitMethod) > 0 {
		if isJSONNull(b.SubmitMethod) {
			req.ClearSubmitMethod = true
		} else {
			var method models.SubmitMethodRequest
			if err := json.Unmarshal(b.SubmitMethod, &method); err != nil {
				return models.UpdateRequest{}, err
			}
			req.SubmitMethod = &method
		}
	}
	return req, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	oppID, ok := h.opportunityID(w, r)
	if !ok {
		return
	}

	lang := transstring.LanguageEnglish
	if raw := r.URL.Query().Get("lang"); raw != "" {
		parsed, err := transstring.ParseLanguage(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "unsupported language %q", raw))
			return
		}
		lang = parsed
	}

	rendered, err := h.forms.RenderSchema(ctx, oppID, lang)
	if err != nil {
		h.writeServiceError(ctx, w, "render form", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rendered)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	oppID, ok := h.opportunityID(w, r)
	if !ok {
		return
	}
	if err := h.forms.DeleteSchema(ctx, oppID); err != nil {
		h.writeServiceError(ctx, w, "delete form", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePrefill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	oppID, ok := h.opportunityID(w, r)
	if !ok {
		return
	}
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	answers, err := h.forms.PrefillAnswers(ctx, oppID, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "prefill answers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"answers": answers})
}

type submitBody struct {
	Answers map[string]any `json:"answers"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	oppID, ok := h.opportunityID(w, r)
	if !ok {
		return
	}
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var body submitBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if body.Answers == nil {
		body.Answers = map[string]any{}
	}

	response, subErrs, err := h.forms.SubmitAnswers(ctx, oppID, userID, body.Answers)
	if err != nil {
		h.writeServiceError(ctx, w, "submit answers", err)
		return
	}
	if len(subErrs) > 0 {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": subErrs})
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, responseView(response))
}

func (h *Handler) handleListResponses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	oppID, ok := h.opportunityID(w, r)
	if !ok {
		return
	}
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	responses, err := h.forms.ListResponses(ctx, oppID, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "list responses", err)
		return
	}
	views := make([]map[string]any, len(responses))
	for i, response := range responses {
		views[i] = responseView(response)
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"responses": views})
}

// handleCountResponses serves listing owners a response tally. It needs no
// caller identity: the count leaks no answer content.
func (h *Handler) handleCountResponses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	oppID, ok := h.opportunityID(w, r)
	if !ok {
		return
	}

	count, err := h.forms.CountResponses(ctx, oppID)
	if err != nil {
		h.writeServiceError(ctx, w, "count responses", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"count": count})
}

func (h *Handler) opportunityID(w http.ResponseWriter, r *http.Request) (id.OpportunityID, bool) {
	oppID, err := id.ParseOpportunityID(chi.URLParam(r, "opportunityID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed opportunity id"))
		return id.OpportunityID{}, false
	}
	return oppID, true
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID := requestcontext.UserID(r.Context())
	if userID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "caller identity is required"))
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, op+" failed",
			slog.String("request_id", requestcontext.RequestID(ctx)),
			slog.Any("error", err))
	}
	httputil.WriteError(w, err)
}

func writeDefinitionErrors(w http.ResponseWriter, errs []models.DefinitionError) {
	httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

func formView(form *models.OpportunityForm) map[string]any {
	view := map[string]any{
		"opportunity_id": form.OpportunityID,
		"version":        form.Version,
		"fields":         form.Fields,
		"created_at":     form.CreatedAt.Format(time.RFC3339),
		"updated_at":     form.UpdatedAt.Format(time.RFC3339),
	}
	if form.SubmitMethod != nil {
		view["submit_method"] = form.SubmitMethod
	}
	return view
}

func responseView(response *models.FormResponse) map[string]any {
	return map[string]any{
		"id":           response.ID,
		"form_version": response.FormVersion,
		"answers":      response.Answers,
		"created_at":   response.CreatedAt.Format(time.RFC3339),
	}
}
