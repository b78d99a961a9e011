package schema

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"oppform/internal/form/models"
	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
	"oppform/pkg/transstring"
)

type SchemaStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestSchemaStoreSuite(t *testing.T) {
	suite.Run(t, new(SchemaStoreSuite))
}

func (s *SchemaStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *SchemaStoreSuite) newForm() *models.OpportunityForm {
	label := transstring.MustNew(map[transstring.Language]string{
		transstring.LanguageEnglish: "Question",
	}, transstring.LanguageEnglish)
	form, err := models.NewOpportunityForm(
		id.OpportunityID(uuid.New()),
		[]models.FieldDefinition{{
			ID:          "q",
			Kind:        models.KindString,
			Label:       label,
			Constraints: models.StringConstraints{},
		}},
		nil,
		time.Now(),
	)
	s.Require().NoError(err)
	return form
}

func (s *SchemaStoreSuite) TestCreateAndFind() {
	s.Run("stores and retrieves a form", func() {
		form := s.newForm()
		s.Require().NoError(s.store.Create(s.ctx, form))

		found, err := s.store.FindBySubject(s.ctx, form.OpportunityID)
		s.Require().NoError(err)
		s.Equal(form.Version, found.Version)
		s.Equal("q", found.Fields[0].ID)
	})

	s.Run("returns ErrNotFound for unknown listing", func() {
		_, err := s.store.FindBySubject(s.ctx, id.OpportunityID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects a second form for the same listing", func() {
		form := s.newForm()
		s.Require().NoError(s.store.Create(s.ctx, form))
		s.Require().ErrorIs(s.store.Create(s.ctx, form), sentinel.ErrConflict)
	})
}

func (s *SchemaStoreSuite) TestSave() {
	s.Run("replaces a stored form", func() {
		form := s.newForm()
		s.Require().NoError(s.store.Create(s.ctx, form))

		form.BumpVersion(time.Now())
		s.Require().NoError(s.store.Save(s.ctx, form))

		found, err := s.store.FindBySubject(s.ctx, form.OpportunityID)
		s.Require().NoError(err)
		s.Equal(2, found.Version)
	})

	s.Run("refuses to save a form that was never created", func() {
		s.Require().ErrorIs(s.store.Save(s.ctx, s.newForm()), sentinel.ErrNotFound)
	})
}

func (s *SchemaStoreSuite) TestDelete() {
	form := s.newForm()
	s.Require().NoError(s.store.Create(s.ctx, form))
	s.Require().NoError(s.store.Delete(s.ctx, form.OpportunityID))

	_, err := s.store.FindBySubject(s.ctx, form.OpportunityID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	s.Require().ErrorIs(s.store.Delete(s.ctx, form.OpportunityID), sentinel.ErrNotFound)
}

func (s *SchemaStoreSuite) TestHandedOutFormsAreNotAliased() {
	form := s.newForm()
	s.Require().NoError(s.store.Create(s.ctx, form))

	found, err := s.store.FindBySubject(s.ctx, form.OpportunityID)
	s.Require().NoError(err)
	found.Fields[0].ID = "mutated"
	found.BumpVersion(time.Now())

	again, err := s.store.FindBySubject(s.ctx, form.OpportunityID)
	s.Require().NoError(err)
	s.Equal("q", again.Fields[0].ID)
	s.Equal(1, again.Version)
}
