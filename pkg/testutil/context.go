package testutil

import (
	"context"
	"time"

	"oppform/pkg/requestcontext"
)

// FixedTime is the clock used by deterministic tests.
var FixedTime = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// Context returns a background context carrying the fixed test clock, so
// anything reading requestcontext.Now observes a stable time.
func Context() context.Context {
	return requestcontext.WithTime(context.Background(), FixedTime)
}
