package schema

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"oppform/internal/form/models"
	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
)

// PostgresStore persists forms in PostgreSQL. The field set and submit
// method are JSONB: the aggregate is read and written whole, never queried
// field-by-field, so a document column fits better than a join table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, form *models.OpportunityForm) error {
	fields, submitMethod, err := encodeForm(form)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO opportunity_forms (opportunity_id, version, submit_method, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(form.OpportunityID), form.Version, submitMethod, fields, form.CreatedAt, form.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create form: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindBySubject(ctx context.Context, oppID id.OpportunityID) (*models.OpportunityForm, error) {
	var (
		version      int
		submitMethod []byte
		rawFields    []byte
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT version, submit_method, fields, created_at, updated_at
		FROM opportunity_forms WHERE opportunity_id = $1
	`, uuid.UUID(oppID)).Scan(&version, &submitMethod, &rawFields, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find form: %w", err)
	}

	fields, err := models.DecodeFields(rawFields)
	if err != nil {
		return nil, fmt.Errorf("decode form fields: %w", err)
	}
	form := &models.OpportunityForm{
		OpportunityID: oppID,
		Version:       version,
		Fields:        fields,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
	if len(submitMethod) > 0 {
		var sm models.SubmitMethod
		if err := json.Unmarshal(submitMethod, &sm); err != nil {
			return nil, fmt.Errorf("decode submit method: %w", err)
		}
		form.SubmitMethod = &sm
	}
	return form, nil
}

func (s *PostgresStore) Save(ctx context.Context, form *models.OpportunityForm) error {
	fields, submitMethod, err := encodeForm(form)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE opportunity_forms
		SET version = $2, submit_method = $3, fields = $4, updated_at = $5
		WHERE opportunity_id = $1
	`, uuid.UUID(form.OpportunityID), form.Version, submitMethod, fields, form.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save form: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save form: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, oppID id.OpportunityID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM opportunity_forms WHERE opportunity_id = $1
	`, uuid.UUID(oppID))
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func encodeForm(form *models.OpportunityForm) (fields, submitMethod []byte, err error) {
	fields, err = form.EncodeFields()
	if err != nil {
		return nil, nil, fmt.Errorf("encode form fields: %w", err)
	}
	if form.SubmitMethod != nil {
		submitMethod, err = json.Marshal(form.SubmitMethod)
		if err != nil {
			return nil, nil, fmt.Errorf("encode submit method: %w", err)
		}
	}
	return fields, submitMethod, nil
}
