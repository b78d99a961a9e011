// Package storage tracks metadata for uploaded files. Object bytes live in
// an external object store outside this module's scope; the form engine only
// needs existence, size and access checks, which this metadata answers.
package storage

import (
	"context"
	"time"

	id "oppform/pkg/domain"
)

// AccessMode controls who may read a file.
type AccessMode string

const (
	// AccessPublic files are readable by anyone.
	AccessPublic AccessMode = "public"
	// AccessPrivate files are readable only by their owner.
	AccessPrivate AccessMode = "private"
)

// Bucket names the logical grouping a file was uploaded into.
type Bucket string

const (
	BucketUserCV             Bucket = "user-cv"
	BucketResponseAttachment Bucket = "response-attachment"
)

// FileMeta is one stored file's metadata record.
type FileMeta struct {
	ID        id.FileID
	Name      string
	Bucket    Bucket
	SizeBytes int64
	Owner     id.UserID
	Mode      AccessMode
	CreatedAt time.Time
}

// Store is the metadata persistence contract. FindByID returns
// sentinel.ErrNotFound for unknown ids.
type Store interface {
	Insert(ctx context.Context, meta *FileMeta) error
	FindByID(ctx context.Context, fileID id.FileID) (*FileMeta, error)
}

// Readable reports whether userID may read the file.
func (m *FileMeta) Readable(userID id.UserID) bool {
	if m.Mode == AccessPublic {
		return true
	}
	return m.Owner == userID
}
