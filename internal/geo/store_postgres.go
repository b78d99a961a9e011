package geo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
	"oppform/pkg/transstring"
)

// PostgresStore persists the country catalog in PostgreSQL. Names are JSONB
// so the localized value round-trips without a join table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, country *Country) error {
	name, err := json.Marshal(country.Name)
	if err != nil {
		return fmt.Errorf("encode country name: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO countries (id, name, phone_code, flag_emoji)
		VALUES ($1, $2, $3, $4)
	`, uuid.UUID(country.ID), name, country.PhoneCode, country.FlagEmoji)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert country: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, countryID id.CountryID) (*Country, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone_code, flag_emoji FROM countries WHERE id = $1
	`, uuid.UUID(countryID))
	country, err := scanCountry(row)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find country: %w", err)
	}
	return country, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Country, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone_code, flag_emoji FROM countries ORDER BY name->>'en'
	`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var out []*Country
	for rows.Next() {
		country, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, country)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Exists(ctx context.Context, countryID id.CountryID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM countries WHERE id = $1)
	`, uuid.UUID(countryID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check country: %w", err)
	}
	return exists, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCountry(row scanner) (*Country, error) {
	var (
		rawID   uuid.UUID
		rawName []byte
		country Country
	)
	if err := row.Scan(&rawID, &rawName, &country.PhoneCode, &country.FlagEmoji); err != nil {
		return nil, err
	}
	var name transstring.String
	if err := json.Unmarshal(rawName, &name); err != nil {
		return nil, fmt.Errorf("decode country name: %w", err)
	}
	country.ID = id.CountryID(rawID)
	country.Name = name
	return &country, nil
}
