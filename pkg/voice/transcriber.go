package voice

import (
	"context"
	"io"
)

// Segment is one timestamped span of transcribed speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcription is the full result for one audio file.
type Transcription struct {
	Language            string    `json:"language"`
	LanguageProbability float64   `json:"language_probability"`
	Segments            []Segment `json:"segments"`
	Model               string    `json:"model,omitempty"`
}

// Text joins all segments into the plain transcript.
func (t *Transcription) Text() string {
	out := ""
	for _, s := range t.Segments {
		out += s.Text
	}
	return out
}

// Transcriber converts audio into text. The reader is consumed fully.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*Transcription, error)
}
