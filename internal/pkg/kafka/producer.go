package kafka

import (
	"Viralize/internal/api/config"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EventPublisher 事件发布。预测工作流只依赖这个接口，
// kafka.enabled=false 时注入 nil，调用方需判空
type EventPublisher interface {
	PublishPredictionCreated(event *PredictionCreatedEvent)
	PublishUsageSummary(event *UsageSummaryEvent)
	Close() error
}

type eventPublisherImpl struct {
	producer sarama.AsyncProducer
	topic    string
}

// NewEventPublisher 创建异步生产者。发送失败只记日志，不影响请求链路
func NewEventPublisher(cfg *config.Config) (EventPublisher, error) {
	producer, err := sarama.NewAsyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}

	go func() {
		for err := range producer.Errors() {
			log.Error("Kafka produce failed", "topic", err.Msg.Topic, "err", err.Err)
		}
	}()

	return &eventPublisherImpl{
		producer: producer,
		topic:    cfg.Kafka.Topic,
	}, nil
}

func (s *eventPublisherImpl) PublishPredictionCreated(event *PredictionCreatedEvent) {
	event.EventType = EventTypePredictionCreated
	s.send(strconv.FormatUint(event.UserID, 10), event)
}

func (s *eventPublisherImpl) PublishUsageSummary(event *UsageSummaryEvent) {
	event.EventType = EventTypeUsageSummary
	s.send(event.UsageDate, event)
}

func (s *eventPublisherImpl) send(key string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("Kafka event marshal failed", "err", err)
		return
	}
	s.producer.Input() <- &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}
}

func (s *eventPublisherImpl) Close() error {
	return s.producer.Close()
}
