package llm

import (
	"context"
	"io"
)

type streamItem struct {
	text string
	err  error
}

// Stream is a lazy sequence of generated text chunks. Producers push with
// Send/Fail and must Close when done; the consumer pulls with Recv until
// io.EOF. No chunk is buffered beyond the channel slot, so backend pacing
// is preserved.
type Stream struct {
	ch chan streamItem
}

func NewStream() *Stream {
	return &Stream{ch: make(chan streamItem, 1)}
}

// Send delivers one chunk. It returns false when the context is cancelled
// before the consumer takes the chunk, so producers can stop early when
// the caller disconnects.
func (s *Stream) Send(ctx context.Context, text string) bool {
	select {
	case s.ch <- streamItem{text: text}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Fail delivers a terminal error to the consumer.
func (s *Stream) Fail(ctx context.Context, err error) bool {
	select {
	case s.ch <- streamItem{err: err}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close ends the stream. Recv returns io.EOF afterwards.
func (s *Stream) Close() {
	close(s.ch)
}

// Recv returns the next chunk, io.EOF at end of stream, or the error the
// producer failed with.
func (s *Stream) Recv() (string, error) {
	item, ok := <-s.ch
	if !ok {
		return "", io.EOF
	}
	if item.err != nil {
		return "", item.err
	}
	return item.text, nil
}
