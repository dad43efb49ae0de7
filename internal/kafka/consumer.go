package kafka

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"

	"io.ruvo/notification/internal/domain"
	"io.ruvo/notification/internal/kafka/registry"

	// Blank import triggers init() in each handler file,
	// registering all event handlers into the registry.
	_ "io.ruvo/notification/internal/kafka/handlers"
)

// Ingester consumes decoded events. Implemented by application.Service.
type Ingester interface {
	Ingest(ctx context.Context, in domain.IngestInput) error
}

// Consumer wraps the franz-go Kafka client.
type Consumer struct {
	client   *kgo.Client
	ingester Ingester
}

// New creates a Consumer with the given brokers, group ID, and topics.
func New(brokers []string, groupID string, topics []string, ingester Ingester) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, err
	}
	return &Consumer{client: client, ingester: ingester}, nil
}

// Start begins polling Kafka and processing records. Blocks until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Info().Msg("kafka consumer started")

	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			break
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			log.Error().Err(err).Str("topic", topic).Int32("partition", partition).Msg("kafka fetch error")
		})

		fetches.EachRecord(func(r *kgo.Record) {
			Process(ctx, c.ingester, r.Topic, r.Value)
		})

		if err := c.client.CommitUncommittedOffsets(ctx); err != nil {
			log.Error().Err(err).Msg("kafka commit error")
		}
	}

	c.client.Close()
	log.Info().Msg("kafka consumer stopped")
}

// Process dispatches one record value to its registered handler and hands the
// result to ingester. It reports whether a handler produced an input.
func Process(ctx context.Context, ingester Ingester, topic string, value []byte) bool {
	log.Debug().Str("topic", topic).Msg("processing kafka record")

	// notification-commands doesn't use eventType routing
	in := registry.DispatchDirect(topic, value)
	if in == nil {
		in = registry.Dispatch(topic, value)
	}
	if in == nil {
		log.Debug().Str("topic", topic).Msg("no handler matched, skipping")
		return false
	}

	if err := ingester.Ingest(ctx, *in); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to ingest kafka event")
	}
	return true
}
