package dto

// ClassifyQueryRequest is the body of POST /classify/classify-query.
type ClassifyQueryRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

// ClassifyQueryResponse reports the classification outcome.
type ClassifyQueryResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"lang"`
}

// HistoryResponse is the full session record as stored.
type HistoryResponse struct {
	SessionID  string   `json:"session_id"`
	Timestamp  string   `json:"timestamp"`
	Intent     string   `json:"query_type,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Language   string   `json:"lang,omitempty"`
	Queries    []string `json:"user_queries"`
}

// AddQueryRequest appends one query to a session's history.
type AddQueryRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

// SaveContextRequest rewrites the session's language and intent fields.
type SaveContextRequest struct {
	Language   string  `json:"lang" validate:"required"`
	Intent     string  `json:"query_type" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// UpdateQueryTypeRequest overwrites only the stored intent.
type UpdateQueryTypeRequest struct {
	Intent     string  `json:"query_type" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// LastQueriesResponse returns the tail of the query log.
type LastQueriesResponse struct {
	Queries []string `json:"user_queries"`
}

// IndexDocumentMessage is the payload published to the indexing topic.
type IndexDocumentMessage struct {
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
}
