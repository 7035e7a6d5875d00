package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-videobrain-be/internal/dto"
	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/repository/specification"
	"ai-videobrain-be/internal/repository/unitofwork"
	"ai-videobrain-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedAssetMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing asset embedding for AssetId: %s", payload.AssetId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	asset, err := uow.MediaAssetRepository().FindOne(ctx, specification.ByID{ID: payload.AssetId})
	if err != nil {
		log.Printf("[ERROR] Failed to get asset %s: %v", payload.AssetId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if asset == nil {
		log.Printf("[ERROR] Asset not found: %s", payload.AssetId)
		msg.Ack() // Asset deleted? Ack.
		return
	}

	document := assetDocument(asset)

	res, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for asset %s: %v", payload.AssetId, err)
		msg.Nack()
		return
	}

	newEmbedding := &entity.AssetEmbedding{
		Id:             uuid.New(),
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		AssetId:        asset.Id,
		CreatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.AssetEmbeddingRepository().DeleteByAssetId(ctx, asset.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.AssetEmbeddingRepository().Create(ctx, newEmbedding); err != nil {
		log.Printf("[ERROR] Failed to create embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Asset embedded: %s", payload.AssetId)
	msg.Ack()
}

// assetDocument renders the searchable text for one asset: its name, kind and
// tags. Asset descriptions are short; no chunking needed.
func assetDocument(asset *entity.MediaAsset) string {
	return fmt.Sprintf("Asset: %s\nKind: %s\nTags: %s",
		asset.Name,
		asset.Kind,
		strings.Join(asset.Tags, ", "),
	)
}
