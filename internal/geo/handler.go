package geo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "oppform/pkg/domain-errors"
	"oppform/pkg/platform/httputil"
	"oppform/pkg/transstring"
)

// Handler serves the read-only country catalog clients need to build phone
// field inputs.
type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/countries", h.handleList)
}

type countryView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PhoneCode string `json:"phone_code"`
	FlagEmoji string `json:"flag_emoji"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lang := transstring.LanguageEnglish
	if raw := r.URL.Query().Get("lang"); raw != "" {
		parsed, err := transstring.ParseLanguage(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "unsupported language %q", raw))
			return
		}
		lang = parsed
	}

	countries, err := h.store.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list countries failed", slog.Any("error", err))
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "list countries"))
		return
	}

	views := make([]countryView, len(countries))
	for i, country := range countries {
		views[i] = countryView{
			ID:        country.ID.String(),
			Name:      country.Name.Resolve(lang),
			PhoneCode: country.PhoneCode,
			FlagEmoji: country.FlagEmoji,
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"countries": views})
}
