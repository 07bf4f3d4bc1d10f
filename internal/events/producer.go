package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/google/uuid"
)

// Producer publishes engagement events.
type Producer struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewProducer connects to the brokers named by KAFKA_BROKERS. Idempotence is
// enabled so retries never duplicate a notification.
func NewProducer(logger *slog.Logger) (*Producer, error) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  brokers,
		"enable.idempotence": true,
		"acks":               "all",
	})
	if err != nil {
		return nil, fmt.Errorf("create producer: %w", err)
	}

	producer := &Producer{producer: p, logger: logger}
	go producer.handleDeliveryReports()

	logger.Info("engagement event producer connected", "brokers", brokers)
	return producer, nil
}

// PostLiked publishes a like event. Nil-safe: a nil producer is a no-op so
// the feed service runs without a broker in development.
func (p *Producer) PostLiked(postID, actorID, designerID string, liked bool) error {
	if p == nil {
		return nil
	}
	eventType := TypePostLiked
	if !liked {
		eventType = TypePostUnliked
	}
	return p.publish(EngagementEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		PostID:     postID,
		ActorID:    actorID,
		DesignerID: designerID,
		OccurredAt: time.Now(),
	})
}

// CommentAdded publishes a comment event. Nil-safe.
func (p *Producer) CommentAdded(postID, commentID, actorID, designerID string) error {
	if p == nil {
		return nil
	}
	return p.publish(EngagementEvent{
		EventID:    uuid.New().String(),
		Type:       TypeCommentAdded,
		PostID:     postID,
		CommentID:  commentID,
		ActorID:    actorID,
		DesignerID: designerID,
		OccurredAt: time.Now(),
	})
}

func (p *Producer) publish(event EngagementEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	topic := Topic
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(event.PostID),
		Value: data,
	}
	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("produce event: %w", err)
	}

	p.logger.Debug("engagement event published", "type", event.Type, "post_id", event.PostID)
	return nil
}

func (p *Producer) handleDeliveryReports() {
	for e := range p.producer.Events() {
		if msg, ok := e.(*kafka.Message); ok && msg.TopicPartition.Error != nil {
			p.logger.Error("event delivery failed",
				"topic", *msg.TopicPartition.Topic,
				"err", msg.TopicPartition.Error)
		}
	}
}

// Close flushes pending events and shuts the producer down.
func (p *Producer) Close() {
	if p == nil {
		return
	}
	if remaining := p.producer.Flush(5000); remaining > 0 {
		p.logger.Warn("events unflushed at shutdown", "remaining", remaining)
	}
	p.producer.Close()
}
