package response

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"oppform/internal/form/models"
	id "oppform/pkg/domain"
)

// PostgresStore persists responses in PostgreSQL with JSONB answers.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, r *models.FormResponse) error {
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO form_responses (id, opportunity_id, user_id, form_version, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(r.ID), uuid.UUID(r.OpportunityID), uuid.UUID(r.UserID), r.FormVersion, answers, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, oppID id.OpportunityID, userID id.UserID) ([]*models.FormResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_version, answers, created_at
		FROM form_responses
		WHERE opportunity_id = $1 AND user_id = $2
		ORDER BY created_at
	`, uuid.UUID(oppID), uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []*models.FormResponse
	for rows.Next() {
		var (
			rawID      uuid.UUID
			rawAnswers []byte
			r          models.FormResponse
		)
		if err := rows.Scan(&rawID, &r.FormVersion, &rawAnswers, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		if err := json.Unmarshal(rawAnswers, &r.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		r.ID = id.ResponseID(rawID)
		r.OpportunityID = oppID
		r.UserID = userID
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountBySubject(ctx context.Context, oppID id.OpportunityID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM form_responses WHERE opportunity_id = $1
	`, uuid.UUID(oppID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return count, nil
}
