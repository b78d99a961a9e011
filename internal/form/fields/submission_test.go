package fields_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"oppform/internal/form/fields"
	"oppform/internal/form/models"
	"oppform/internal/geo"
	"oppform/internal/storage"
	id "oppform/pkg/domain"
	"oppform/pkg/transstring"
)

type SubmissionSuite struct {
	suite.Suite
	ctx     context.Context
	env     *fields.SubmissionEnv
	files   *storage.InMemoryStore
	userID  id.UserID
	known   id.CountryID
	unknown id.CountryID
}

func TestSubmissionSuite(t *testing.T) {
	suite.Run(t, new(SubmissionSuite))
}

func (s *SubmissionSuite) SetupTest() {
	s.ctx = context.Background()
	s.userID = id.UserID(uuid.New())
	s.known = id.CountryID(uuid.New())
	s.unknown = id.CountryID(uuid.New())

	countries := geo.NewInMemoryStore()
	country, err := geo.NewCountry(s.known, transstring.MustNew(map[transstring.Language]string{
		transstring.LanguageEnglish: "Netherlands",
	}, transstring.LanguageEnglish), "+31", "🇳🇱")
	s.Require().NoError(err)
	s.Require().NoError(countries.Insert(s.ctx, country))

	s.files = storage.NewInMemoryStore()
	s.env = &fields.SubmissionEnv{
		UserID:    s.userID,
		Countries: countries,
		Files:     storage.NewVault(s.files),
	}
}

func (s *SubmissionSuite) form(defs ...models.FieldDefinition) *models.OpportunityForm {
	form, err := models.NewOpportunityForm(id.OpportunityID(uuid.New()), defs, nil, time.Now())
	s.Require().NoError(err)
	return form
}

func (s *SubmissionSuite) addFile(owner id.UserID, mode storage.AccessMode, size int64) id.FileID {
	fileID := id.FileID(uuid.New())
	s.Require().NoError(s.files.Insert(s.ctx, &storage.FileMeta{
		ID:        fileID,
		Name:      "cv.pdf",
		Bucket:    storage.BucketUserCV,
		SizeBytes: size,
		Owner:     owner,
		Mode:      mode,
		CreatedAt: time.Now(),
	}))
	return fileID
}

func (s *SubmissionSuite) TestRequiredFields() {
	form := s.form(
		models.FieldDefinition{ID: "must", Kind: models.KindString, Label: bilingual("Must", "Надо"), Required: true, Constraints: models.StringConstraints{}},
		models.FieldDefinition{ID: "may", Kind: models.KindString, Label: bilingual("May", "Можно"), Constraints: models.StringConstraints{}},
	)

	s.Run("absent required answer is reported", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{})
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubMissingRequired, errs[0].Code)
		s.Equal("must", errs[0].FieldID)
	})

	s.Run("explicit null counts as absent", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"must": nil})
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubMissingRequired, errs[0].Code)
	})

	s.Run("optional field may stay unanswered", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"must": "here"})
		s.Require().NoError(err)
		s.Empty(errs)
	})
}

func (s *SubmissionSuite) TestUnknownAnswerKeysAreIgnored() {
	form := s.form(models.FieldDefinition{
		ID: "q", Kind: models.KindString, Label: bilingual("Q", "В"), Constraints: models.StringConstraints{},
	})
	errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{
		"q":        "answered",
		"stowaway": "ignored",
	})
	s.Require().NoError(err)
	s.Empty(errs)
}

func (s *SubmissionSuite) TestAuthoringConstraintsNotReapplied() {
	form := s.form(
		models.FieldDefinition{
			ID: "age", Kind: models.KindInteger, Label: bilingual("Age", "Возраст"),
			Constraints: models.IntegerConstraints{Min: ptr(18), Max: ptr(30)},
		},
		models.FieldDefinition{
			ID: "bio", Kind: models.KindString, Label: bilingual("Bio", "О себе"),
			Constraints: models.StringConstraints{MaxLength: ptr(5)},
		},
	)
	errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{
		"age": float64(99),
		"bio": "much longer than five characters",
	})
	s.Require().NoError(err)
	s.Empty(errs, "bounds and lengths are authoring-time constraints")
}

func (s *SubmissionSuite) TestChoiceAnswers() {
	form := s.form(models.FieldDefinition{
		ID: "size", Kind: models.KindChoice, Label: bilingual("Size", "Размер"),
		Constraints: models.ChoiceConstraints{Choices: map[string]transstring.String{
			"s": bilingual("Small", "Маленький"),
		}},
	})

	s.Run("declared key passes", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"size": "s"})
		s.Require().NoError(err)
		s.Empty(errs)
	})

	s.Run("undeclared key fails", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"size": "xl"})
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubInvalidChoice, errs[0].Code)
	})

	s.Run("non-string answer is malformed", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"size": 3})
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubMalformedAnswer, errs[0].Code)
	})
}

func (s *SubmissionSuite) TestPhoneAnswers() {
	restricted := s.form(models.FieldDefinition{
		ID: "phone", Kind: models.KindPhoneNumber, Label: bilingual("Phone", "Телефон"),
		Constraints: models.PhoneConstraints{Whitelist: []id.CountryID{s.known}},
	})

	answer := func(countryID string) map[string]any {
		return map[string]any{"phone": map[string]any{
			"country_id":        countryID,
			"subscriber_number": "612345678",
		}}
	}

	s.Run("whitelisted country passes", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, restricted, answer(s.known.String()))
		s.Require().NoError(err)
		s.Empty(errs)
	})

	s.Run("unknown country is invalid", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, restricted, answer(s.unknown.String()))
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubPhoneInvalidCountryID, errs[0].Code)
	})

	s.Run("missing subscriber number is malformed", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, restricted, map[string]any{
			"phone": map[string]any{"country_id": s.known.String()},
		})
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubMalformedAnswer, errs[0].Code)
	})

	s.Run("existing country outside the whitelist fails", func() {
		other := id.CountryID(uuid.New())
		country, err := geo.NewCountry(other, transstring.MustNew(map[transstring.Language]string{
			transstring.LanguageEnglish: "Belgium",
		}, transstring.LanguageEnglish), "+32", "🇧🇪")
		s.Require().NoError(err)
		s.Require().NoError(s.env.Countries.(*geo.InMemoryStore).Insert(s.ctx, country))

		errs, verr := fields.ValidateAnswers(s.ctx, s.env, restricted, answer(other.String()))
		s.Require().NoError(verr)
		s.Require().Len(errs, 1)
		s.Equal(models.SubPhoneNonWhitelistCountry, errs[0].Code)
	})
}

func (s *SubmissionSuite) TestFileAnswers() {
	limit := int64(1 << 20)
	form := s.form(models.FieldDefinition{
		ID: "cv", Kind: models.KindFile, Label: bilingual("CV", "Резюме"),
		Constraints: models.FileConstraints{MaxSizeBytes: &limit},
	})

	s.Run("own private file within the limit passes", func() {
		fileID := s.addFile(s.userID, storage.AccessPrivate, 1024)
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"cv": fileID.String()})
		s.Require().NoError(err)
		s.Empty(errs)
	})

	s.Run("unknown file id fails", func() {
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"cv": uuid.NewString()})
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubFileInvalidID, errs[0].Code)
	})

	s.Run("someone else's private file is inaccessible", func() {
		fileID := s.addFile(id.UserID(uuid.New()), storage.AccessPrivate, 1024)
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"cv": fileID.String()})
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubFileCannotAccess, errs[0].Code)
	})

	s.Run("someone else's public file is fine", func() {
		fileID := s.addFile(id.UserID(uuid.New()), storage.AccessPublic, 1024)
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"cv": fileID.String()})
		s.Require().NoError(err)
		s.Empty(errs)
	})

	s.Run("oversized file fails", func() {
		fileID := s.addFile(s.userID, storage.AccessPrivate, limit+1)
		errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"cv": fileID.String()})
		s.Require().NoError(err)
		s.Require().Len(errs, 1)
		s.Equal(models.SubFileExceedsSize, errs[0].Code)
	})
}

func (s *SubmissionSuite) TestFailuresAggregate() {
	form := s.form(
		models.FieldDefinition{ID: "must", Kind: models.KindString, Label: bilingual("Must", "Надо"), Required: true, Constraints: models.StringConstraints{}},
		models.FieldDefinition{ID: "size", Kind: models.KindChoice, Label: bilingual("Size", "Размер"),
			Constraints: models.ChoiceConstraints{Choices: map[string]transstring.String{"s": bilingual("S", "С")}}},
	)
	errs, err := fields.ValidateAnswers(s.ctx, s.env, form, map[string]any{"size": "xl"})
	s.Require().NoError(err)
	s.Len(errs, 2)
}
