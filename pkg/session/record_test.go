package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	rec := NewRecord("user_main")
	rec.Queries = append(rec.Queries, "bonjour", "où est ma commande ?")
	rec.Language = "fr"
	rec.Intent = "PLATFORM_INFO"
	rec.Confidence = 0.9

	data, err := rec.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalRecord(data)
	require.NoError(t, err)
	assert.Equal(t, rec.SessionID, got.SessionID)
	assert.Equal(t, rec.Queries, got.Queries)
	assert.Equal(t, rec.Language, got.Language)
	assert.Equal(t, rec.Intent, got.Intent)
	assert.Equal(t, rec.Confidence, got.Confidence)

	// A second round-trip must not change the serialized form.
	data2, err := got.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(data2))
}

func TestUnmarshalRecordNilQueries(t *testing.T) {
	got, err := UnmarshalRecord([]byte(`{"session_id":"s1","timestamp":"2025-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Queries)
	assert.Empty(t, got.Queries)
}

func TestLastQueries(t *testing.T) {
	rec := NewRecord("s1")
	rec.Queries = []string{"a", "b", "c"}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "tail of two", n: 2, want: []string{"b", "c"}},
		{name: "more than available", n: 10, want: []string{"a", "b", "c"}},
		{name: "zero", n: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rec.LastQueries(tt.n))
		})
	}
}

func TestHistoryKey(t *testing.T) {
	assert.Equal(t, "session:user_main:history", HistoryKey("user_main"))
}
