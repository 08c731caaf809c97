package history

import (
	"context"
	"time"

	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/session"
)

// Aggregator owns the history record for one session key. Every mutation
// loads the current record, applies the change and rewrites the whole
// record with a refreshed TTL. Store failures never propagate: reads fall
// back to a fresh record and writes report false.
type Aggregator struct {
	store     session.Store
	sessionID string
	ttl       time.Duration
	log       logger.ILogger
}

func NewAggregator(store session.Store, sessionID string, log logger.ILogger) *Aggregator {
	return &Aggregator{
		store:     store,
		sessionID: sessionID,
		ttl:       session.DefaultTTL,
		log:       log,
	}
}

func (a *Aggregator) SessionID() string {
	return a.sessionID
}

// Get loads the session record, or returns a fresh one when the record is
// absent, unreadable or the store is down.
func (a *Aggregator) Get(ctx context.Context) *session.Record {
	data, err := a.store.Load(ctx, session.HistoryKey(a.sessionID))
	if err != nil {
		if err != session.ErrNotFound {
			a.log.Warn("history", "session load failed, starting fresh", map[string]interface{}{
				"session_id": a.sessionID,
				"error":      err.Error(),
			})
		}
		return session.NewRecord(a.sessionID)
	}
	rec, err := session.UnmarshalRecord(data)
	if err != nil {
		a.log.Warn("history", "corrupt session record, starting fresh", map[string]interface{}{
			"session_id": a.sessionID,
			"error":      err.Error(),
		})
		return session.NewRecord(a.sessionID)
	}
	return rec
}

// Update persists the record with a refreshed timestamp and TTL. Returns
// false when the write fails; callers treat that as best-effort.
func (a *Aggregator) Update(ctx context.Context, rec *session.Record) bool {
	rec.SessionID = a.sessionID
	rec.Timestamp = time.Now().Format(time.RFC3339)
	data, err := rec.Marshal()
	if err != nil {
		a.log.Error("history", "session record marshal failed", map[string]interface{}{
			"session_id": a.sessionID,
			"error":      err.Error(),
		})
		return false
	}
	if err := a.store.Save(ctx, session.HistoryKey(a.sessionID), data, a.ttl); err != nil {
		a.log.Warn("history", "session save failed", map[string]interface{}{
			"session_id": a.sessionID,
			"error":      err.Error(),
		})
		return false
	}
	return true
}

// AppendQuery adds one user query to the log and persists.
func (a *Aggregator) AppendQuery(ctx context.Context, query string) bool {
	rec := a.Get(ctx)
	rec.Queries = append(rec.Queries, query)
	return a.Update(ctx, rec)
}

// SetLanguage records the detected language of the latest query.
func (a *Aggregator) SetLanguage(ctx context.Context, lang string) bool {
	rec := a.Get(ctx)
	rec.Language = lang
	return a.Update(ctx, rec)
}

// SetIntent records the latest classification outcome.
func (a *Aggregator) SetIntent(ctx context.Context, intentType string, confidence float64) bool {
	rec := a.Get(ctx)
	rec.Intent = intentType
	rec.Confidence = confidence
	return a.Update(ctx, rec)
}

// Delete removes the session history entirely.
func (a *Aggregator) Delete(ctx context.Context) error {
	return a.store.Delete(ctx, session.HistoryKey(a.sessionID))
}
