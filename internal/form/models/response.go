package models

import (
	"time"

	id "oppform/pkg/domain"
)

// FormResponse is one user's stored answer set. Immutable once created: a
// user re-submitting produces a new response stamped with the live form
// version, never an edit of an old one. FormVersion lets consumers hide
// responses answering a form shape that has since changed.
type FormResponse struct {
	ID            id.ResponseID
	OpportunityID id.OpportunityID
	UserID        id.UserID
	FormVersion   int
	Answers       map[string]any
	CreatedAt     time.Time
}

// Clone deep-copies the top level of the answer map so memory stores never
// hand out aliased maps. Answer values themselves are treated as immutable
// decoded JSON.
func (r *FormResponse) Clone() *FormResponse {
	cp := *r
	cp.Answers = make(map[string]any, len(r.Answers))
	for k, v := range r.Answers {
		cp.Answers[k] = v
	}
	return &cp
}
