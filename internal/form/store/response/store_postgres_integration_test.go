//go:build integration

package response_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"oppform/internal/form/models"
	responsestore "oppform/internal/form/store/response"
	id "oppform/pkg/domain"
	"oppform/pkg/testutil/containers"
)

type PostgresResponseSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *responsestore.PostgresStore
}

func TestPostgresResponseSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresResponseSuite))
}

func (s *PostgresResponseSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = responsestore.NewPostgres(s.pg.DB)
}

func (s *PostgresResponseSuite) TearDownSuite() {
	_ = s.pg.DB.Close()
	_ = s.pg.Container.Terminate(context.Background())
}

func (s *PostgresResponseSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(context.Background()))
}

func (s *PostgresResponseSuite) TestInsertListAndCount() {
	ctx := context.Background()
	oppID := id.OpportunityID(uuid.New())
	userID := id.UserID(uuid.New())
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := 0; i < 2; i++ {
		s.Require().NoError(s.store.Insert(ctx, &models.FormResponse{
			ID:            id.ResponseID(uuid.New()),
			OpportunityID: oppID,
			UserID:        userID,
			FormVersion:   i + 1,
			Answers: map[string]any{
				"name":  "Ada",
				"phone": map[string]any{"country_id": uuid.NewString(), "subscriber_number": "612345678"},
			},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	s.Require().NoError(s.store.Insert(ctx, &models.FormResponse{
		ID:            id.ResponseID(uuid.New()),
		OpportunityID: oppID,
		UserID:        id.UserID(uuid.New()),
		FormVersion:   1,
		Answers:       map[string]any{"name": "Grace"},
		CreatedAt:     base,
	}))

	got, err := s.store.ListByUser(ctx, oppID, userID)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(1, got[0].FormVersion)
	s.Equal(2, got[1].FormVersion)
	s.Equal("Ada", got[0].Answers["name"])
	s.IsType(map[string]any{}, got[0].Answers["phone"])

	count, err := s.store.CountBySubject(ctx, oppID)
	s.Require().NoError(err)
	s.Equal(3, count)
}
