//go:build integration

package schema_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"oppform/internal/form/models"
	schemastore "oppform/internal/form/store/schema"
	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
	"oppform/pkg/testutil/containers"
	"oppform/pkg/transstring"
)

type PostgresSchemaSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *schemastore.PostgresStore
}

func TestPostgresSchemaSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSchemaSuite))
}

func (s *PostgresSchemaSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = schemastore.NewPostgres(s.pg.DB)
}

func (s *PostgresSchemaSuite) TearDownSuite() {
	_ = s.pg.DB.Close()
	_ = s.pg.Container.Terminate(context.Background())
}

func (s *PostgresSchemaSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(context.Background()))
}

func (s *PostgresSchemaSuite) newForm() *models.OpportunityForm {
	maxLen := 100
	label := transstring.MustNew(map[transstring.Language]string{
		transstring.LanguageEnglish: "Name",
		transstring.LanguageRussian: "Имя",
	}, transstring.LanguageEnglish)
	form, err := models.NewOpportunityForm(
		id.OpportunityID(uuid.New()),
		[]models.FieldDefinition{
			{ID: "name", Kind: models.KindString, Label: label, Required: true,
				Constraints: models.StringConstraints{MaxLength: &maxLen}},
			{ID: "phone", Kind: models.KindPhoneNumber, Label: label,
				Constraints: models.PhoneConstraints{Whitelist: []id.CountryID{id.CountryID(uuid.New())}}},
		},
		&models.SubmitMethod{Type: models.SubmitMethodYandexForms, URL: "https://forms.yandex.ru/u/x/"},
		time.Now().UTC().Truncate(time.Microsecond),
	)
	s.Require().NoError(err)
	return form
}

func (s *PostgresSchemaSuite) TestRoundTripThroughJSONB() {
	ctx := context.Background()
	form := s.newForm()
	s.Require().NoError(s.store.Create(ctx, form))

	found, err := s.store.FindBySubject(ctx, form.OpportunityID)
	s.Require().NoError(err)
	s.Equal(form.Version, found.Version)
	s.Require().Len(found.Fields, 2)
	s.Equal(form.Fields[0], found.Fields[0])
	s.Equal(form.Fields[1], found.Fields[1])
	s.Require().NotNil(found.SubmitMethod)
	s.Equal(form.SubmitMethod.URL, found.SubmitMethod.URL)
}

func (s *PostgresSchemaSuite) TestCreateConflict() {
	ctx := context.Background()
	form := s.newForm()
	s.Require().NoError(s.store.Create(ctx, form))
	s.Require().ErrorIs(s.store.Create(ctx, form), sentinel.ErrConflict)
}

func (s *PostgresSchemaSuite) TestSaveAndDelete() {
	ctx := context.Background()
	form := s.newForm()
	s.Require().NoError(s.store.Create(ctx, form))

	form.SubmitMethod = nil
	form.BumpVersion(time.Now().UTC())
	s.Require().NoError(s.store.Save(ctx, form))

	found, err := s.store.FindBySubject(ctx, form.OpportunityID)
	s.Require().NoError(err)
	s.Equal(2, found.Version)
	s.Nil(found.SubmitMethod)

	s.Require().NoError(s.store.Delete(ctx, form.OpportunityID))
	_, err = s.store.FindBySubject(ctx, form.OpportunityID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresSchemaSuite) TestSaveUnknownSubject() {
	s.Require().ErrorIs(s.store.Save(context.Background(), s.newForm()), sentinel.ErrNotFound)
}
