package session

import (
	"encoding/json"
	"time"
)

// Record is the per-conversation state persisted in the session store.
// Queries is an append-only log in arrival order; every persist rewrites
// the whole record.
type Record struct {
	SessionID  string   `json:"session_id"`
	Timestamp  string   `json:"timestamp"`
	Intent     string   `json:"query_type,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Language   string   `json:"lang,omitempty"`
	Queries    []string `json:"user_queries"`
}

func NewRecord(sessionID string) *Record {
	return &Record{
		SessionID: sessionID,
		Timestamp: time.Now().Format(time.RFC3339),
		Queries:   []string{},
	}
}

// LastQueries returns up to n queries from the tail, most-recent last.
func (r *Record) LastQueries(n int) []string {
	if n <= 0 || len(r.Queries) == 0 {
		return nil
	}
	if len(r.Queries) <= n {
		return r.Queries
	}
	return r.Queries[len(r.Queries)-n:]
}

// Marshal serializes the record for storage. Field order is fixed by the
// struct, so serialization is stable across round-trips.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func UnmarshalRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Queries == nil {
		rec.Queries = []string{}
	}
	return &rec, nil
}
