package storage

import (
	"context"

	"oppform/internal/form/ports"
	id "oppform/pkg/domain"
)

// Vault adapts a metadata Store to the form engine's FileVault port.
type Vault struct {
	store Store
}

func NewVault(store Store) *Vault {
	return &Vault{store: store}
}

func (v *Vault) Stat(ctx context.Context, fileID id.FileID) (ports.FileInfo, error) {
	meta, err := v.store.FindByID(ctx, fileID)
	if err != nil {
		return ports.FileInfo{}, err
	}
	return ports.FileInfo{SizeBytes: meta.SizeBytes}, nil
}

func (v *Vault) CanAccess(ctx context.Context, fileID id.FileID, userID id.UserID) (bool, error) {
	meta, err := v.store.FindByID(ctx, fileID)
	if err != nil {
		return false, err
	}
	return meta.Readable(userID), nil
}
