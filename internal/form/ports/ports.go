// Package ports declares the narrow contracts the form engine consumes from
// external collaborators. Implementations live in internal/geo,
// internal/storage and internal/profile; tests substitute fakes.
package ports

import (
	"context"
	"time"

	id "oppform/pkg/domain"
)

// CountryDirectory answers existence questions about geography reference
// data. Used for phone whitelist validation at both authoring and submission
// time.
type CountryDirectory interface {
	Exists(ctx context.Context, countryID id.CountryID) (bool, error)
}

// FileInfo is the slice of file metadata the engine needs.
type FileInfo struct {
	SizeBytes int64
}

// FileVault exposes stored file metadata. Stat returns sentinel.ErrNotFound
// for unknown ids; CanAccess reports whether the user may read the file.
type FileVault interface {
	Stat(ctx context.Context, fileID id.FileID) (FileInfo, error)
	CanAccess(ctx context.Context, fileID id.FileID, userID id.UserID) (bool, error)
}

// Profile is the stored profile slice consumed by autofill. Pointer members
// are absent when the user never provided them.
type Profile struct {
	UserID      id.UserID
	Name        string
	Surname     string
	Birthday    *time.Time
	IsMale      *bool
	PhoneNumber string
	CVFileID    *id.FileID
	Email       string
}

// ProfileDirectory looks up user profiles. Find returns sentinel.ErrNotFound
// for unknown users.
type ProfileDirectory interface {
	Find(ctx context.Context, userID id.UserID) (*Profile, error)
}
