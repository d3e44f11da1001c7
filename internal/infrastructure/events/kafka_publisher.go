// Package events publishes stored detections to downstream consumers.
package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/vigiaai/vigia-provision/internal/config"
	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/service"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// KafkaPublisher writes detection events to a Kafka topic, keyed by tenant so
// a tenant's detections land on one partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

// NewKafkaPublisher creates the detection event publisher.
func NewKafkaPublisher(cfg *config.KafkaConfig, log logger.Logger) service.DetectionPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.DetectionTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{
		writer: writer,
		logger: log.WithComponent("detection_publisher"),
	}
}

// Publish emits the detection event. The caller treats failures as
// non-fatal relative to the already-persisted record.
func (p *KafkaPublisher) Publish(ctx context.Context, detection *models.Detection) error {
	payload, err := json.Marshal(detection)
	if err != nil {
		return apperrors.ErrInternal("detection event encoding failed").WithCause(err)
	}

	msg := kafka.Message{
		Key:   []byte(detection.TenantID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "Failed to publish detection event", err,
			logger.String("tenant_id", detection.TenantID),
			logger.String("detection_id", detection.DetectionID),
		)
		return apperrors.ErrInternal("detection event publish failed").WithCause(err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when Kafka is disabled.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that discards all events.
func NewNopPublisher() service.DetectionPublisher {
	return &NopPublisher{}
}

func (NopPublisher) Publish(context.Context, *models.Detection) error { return nil }
func (NopPublisher) Close() error                                     { return nil }
