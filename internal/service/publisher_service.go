package service

import (
	"encoding/json"
	"fmt"

	"ai-videobrain-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	PublishEmbedAsset(assetID uuid.UUID) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishEmbedAsset(assetID uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishEmbedAssetMessage{AssetId: assetID})
	if err != nil {
		return fmt.Errorf("failed to marshal embed message: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
