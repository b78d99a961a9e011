package fields_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oppform/internal/form/fields"
	"oppform/internal/form/models"
	"oppform/internal/form/ports"
	id "oppform/pkg/domain"
	"oppform/pkg/testutil"
)

func fillPtr(p models.FillPurpose) *models.FillPurpose { return &p }

func testProfile() *ports.Profile {
	birthday := time.Date(1996, time.July, 1, 0, 0, 0, 0, time.UTC)
	isMale := false
	cvID := id.FileID(uuid.New())
	return &ports.Profile{
		UserID:   id.UserID(uuid.New()),
		Name:     "Ada",
		Surname:  "Lovelace",
		Birthday: &birthday,
		IsMale:   &isMale,
		CVFileID: &cvID,
		Email:    "ada@example.com",
	}
}

func stringField(fill *models.FillPurpose) models.FieldDefinition {
	return models.FieldDefinition{
		ID:          "q",
		Kind:        models.KindString,
		Label:       bilingual("Q", "В"),
		Constraints: models.StringConstraints{Fill: fill},
	}
}

func TestAutofillNames(t *testing.T) {
	profile := testProfile()
	now := testutil.FixedTime

	t.Run("first name", func(t *testing.T) {
		value, ok := fields.Autofill(stringField(fillPtr(models.FillFirstName)), profile, now)
		require.True(t, ok)
		assert.Equal(t, "Ada", value)
	})

	t.Run("full name joins both parts", func(t *testing.T) {
		value, ok := fields.Autofill(stringField(fillPtr(models.FillFullName)), profile, now)
		require.True(t, ok)
		assert.Equal(t, "Ada Lovelace", value)
	})

	t.Run("no fill tag means no suggestion", func(t *testing.T) {
		_, ok := fields.Autofill(stringField(nil), profile, now)
		assert.False(t, ok)
	})

	t.Run("empty profile member means no suggestion", func(t *testing.T) {
		bare := &ports.Profile{}
		_, ok := fields.Autofill(stringField(fillPtr(models.FillFirstName)), bare, now)
		assert.False(t, ok)
	})
}

func TestAutofillEmailAlwaysFills(t *testing.T) {
	def := models.FieldDefinition{
		ID:          "email",
		Kind:        models.KindEmail,
		Label:       bilingual("Email", "Почта"),
		Constraints: models.EmailConstraints{},
	}
	value, ok := fields.Autofill(def, testProfile(), testutil.FixedTime)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", value)
}

func TestAutofillGenderUsesAnswerLabels(t *testing.T) {
	def := models.FieldDefinition{
		ID:          "gender",
		Kind:        models.KindGender,
		Label:       bilingual("Gender", "Пол"),
		Constraints: models.GenderConstraints{MaleLabel: "Male", FemaleLabel: "Female"},
	}

	profile := testProfile()
	value, ok := fields.Autofill(def, profile, testutil.FixedTime)
	require.True(t, ok)
	assert.Equal(t, "Female", value)

	profile.IsMale = nil
	_, ok = fields.Autofill(def, profile, testutil.FixedTime)
	assert.False(t, ok)
}

func TestAutofillAge(t *testing.T) {
	def := models.FieldDefinition{
		ID:          "age",
		Kind:        models.KindInteger,
		Label:       bilingual("Age", "Возраст"),
		Constraints: models.IntegerConstraints{Fill: fillPtr(models.FillAge)},
	}

	testutil.Given(t, "a profile born 1996-07-01", func(t *testing.T) {
		profile := testProfile()

		testutil.When(t, "the birthday has not happened yet this year", func(t *testing.T) {
			testutil.Then(t, "the suggestion is the completed years", func(t *testing.T) {
				value, ok := fields.Autofill(def, profile, testutil.FixedTime)
				require.True(t, ok)
				assert.Equal(t, 28, value)
			})
		})

		testutil.When(t, "the birthday has passed", func(t *testing.T) {
			testutil.Then(t, "the suggestion counts the new year", func(t *testing.T) {
				afterBirthday := time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)
				value, ok := fields.Autofill(def, profile, afterBirthday)
				require.True(t, ok)
				assert.Equal(t, 29, value)
			})
		})
	})
}

func TestAutofillBirthdayFormatsISODate(t *testing.T) {
	def := models.FieldDefinition{
		ID:          "dob",
		Kind:        models.KindDate,
		Label:       bilingual("Birthday", "День рождения"),
		Constraints: models.DateConstraints{Fill: fillPtr(models.FillBirthday)},
	}
	value, ok := fields.Autofill(def, testProfile(), testutil.FixedTime)
	require.True(t, ok)
	assert.Equal(t, "1996-07-01", value)
}

func TestAutofillCV(t *testing.T) {
	def := models.FieldDefinition{
		ID:          "cv",
		Kind:        models.KindFile,
		Label:       bilingual("CV", "Резюме"),
		Constraints: models.FileConstraints{Fill: fillPtr(models.FillCV)},
	}

	profile := testProfile()
	value, ok := fields.Autofill(def, profile, testutil.FixedTime)
	require.True(t, ok)
	assert.Equal(t, profile.CVFileID.String(), value)

	profile.CVFileID = nil
	_, ok = fields.Autofill(def, profile, testutil.FixedTime)
	assert.False(t, ok)
}

func TestAutofillNilProfile(t *testing.T) {
	_, ok := fields.Autofill(stringField(fillPtr(models.FillFirstName)), nil, testutil.FixedTime)
	assert.False(t, ok)
}
