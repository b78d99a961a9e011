package geo

import (
	"context"

	id "oppform/pkg/domain"
)

// Store is the persistence contract for the country catalog. FindByID
// returns sentinel.ErrNotFound for unknown ids. List returns countries in a
// stable order (by English name).
//
// Exists makes Store satisfy ports.CountryDirectory for the form engine.
type Store interface {
	Insert(ctx context.Context, country *Country) error
	FindByID(ctx context.Context, countryID id.CountryID) (*Country, error)
	List(ctx context.Context) ([]*Country, error)
	Exists(ctx context.Context, countryID id.CountryID) (bool, error)
}
