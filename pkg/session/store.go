package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound reports an absent record. It is never returned for store
// failures; those are ErrStoreUnavailable so callers can tell "no record"
// from "store down".
var ErrNotFound = errors.New("session record not found")

// ErrStoreUnavailable marks connection errors and timeouts from the
// underlying store.
var ErrStoreUnavailable = errors.New("session store unavailable")

// DefaultTTL is the expiration window refreshed on every write.
const DefaultTTL = 24 * time.Hour

// Store is the adapter over the external key/value session store. All
// operations are safe to call concurrently for different keys.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// HistoryKey builds the store key for a conversation's history record.
func HistoryKey(sessionID string) string {
	return fmt.Sprintf("session:%s:history", sessionID)
}
