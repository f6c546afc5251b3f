package service

import (
	"context"
	"encoding/json"
	"time"

	"rag-postgres-be/internal/dto"
	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/logger"
	"rag-postgres-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process search-audit topic and writes each
// message to the history table. Running it off the request path keeps audit
// latency out of search responses.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	historyRepo contract.SearchHistoryRepository
	logger      logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	historyRepo contract.SearchHistoryRepository,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		historyRepo: historyRepo,
		logger:      sysLogger,
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
	var payload dto.SearchLoggedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal search audit message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid, do not retry
		return
	}

	record := &entity.SearchRecord{
		Query:          payload.Query,
		QueryEmbedding: payload.QueryEmbedding,
		ResultsCount:   payload.ResultsCount,
		ResponseTimeMs: payload.ResponseTimeMs,
		CreatedAt:      time.Now().UTC(),
	}

	if err := cs.historyRepo.Create(ctx, record); err != nil {
		cs.logger.Error("consumer", "failed to persist search audit record", map[string]interface{}{
			"query": payload.Query,
			"error": err.Error(),
		})
		msg.Nack() // store hiccups are retriable
		return
	}

	msg.Ack()
}
