package service

import (
	"context"
	"encoding/json"
	"log"

	"adv-assistant-be/internal/dto"
	"adv-assistant-be/pkg/embedding"
	"adv-assistant-be/pkg/index"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

// indexerService embeds published platform documents off the request path
// and keeps the vector index current.
type indexerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	embeddingProvider embedding.Provider
	idx               *index.MemoryIndex
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embeddingProvider embedding.Provider,
	idx *index.MemoryIndex,
) IIndexerService {
	return &indexerService{
		pubSub:            pubSub,
		topicName:         topicName,
		embeddingProvider: embeddingProvider,
		idx:               idx,
	}
}

func (is *indexerService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Indexing document %s (text length: %d)", payload.DocumentID, len(payload.Text))

	vec, err := is.embeddingProvider.Embed(ctx, payload.Text)
	if err != nil {
		log.Printf("[ERROR] Failed to embed document %s: %v", payload.DocumentID, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	is.idx.Upsert(index.Document{
		ID:        payload.DocumentID,
		Text:      payload.Text,
		Embedding: vec,
	})

	log.Printf("[SUCCESS] Document indexed: %s (index size: %d)", payload.DocumentID, is.idx.Len())
	msg.Ack()
}
