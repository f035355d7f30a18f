package kafka

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/events"
)

// Settings параметры подключения к Kafka
type Settings struct {
	Brokers     []string
	ClientID    string
	TopicPrefix string // префикс добавляется к типу события как есть
}

// Producer EventSink поверх sarama.AsyncProducer
// Ошибки доставки приходят асинхронно, логируются и учитываются в метриках
type Producer struct {
	producer sarama.AsyncProducer
	prefix   string
	metrics  Metrics
	logger   Logger
	wg       sync.WaitGroup
}

// NewProducer создает асинхронного продюсера
func NewProducer(cfg Settings, metrics Metrics, log Logger) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_5_0_0
	if cfg.ClientID != "" {
		saramaConfig.ClientID = cfg.ClientID
	}

	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	saramaConfig.Producer.Flush.Frequency = 100 * time.Millisecond
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = false
	saramaConfig.Producer.Return.Errors = true

	saramaConfig.Metadata.Retry.Max = 3
	saramaConfig.Metadata.Retry.Backoff = 250 * time.Millisecond

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateProducer, err)
	}

	log.Info("Kafka producer initialized: brokers=%v, topic_prefix=%q", cfg.Brokers, cfg.TopicPrefix)
	return NewWithAsyncProducer(producer, cfg.TopicPrefix, metrics, log), nil
}

// NewWithAsyncProducer оборачивает готового продюсера и запускает обработку ошибок
func NewWithAsyncProducer(producer sarama.AsyncProducer, topicPrefix string, metrics Metrics, log Logger) *Producer {
	p := &Producer{
		producer: producer,
		prefix:   topicPrefix,
		metrics:  metrics,
		logger:   log,
	}

	p.wg.Add(1)
	go p.handleErrors()

	return p
}

// Publish ставит событие в очередь продюсера
// Ключ сообщения ID бронирования, поэтому события одного бронирования упорядочены
func (p *Producer) Publish(ctx context.Context, event domain.Event) error {
	bytes, err := events.Marshal(event)
	if err != nil {
		return err
	}

	message := &sarama.ProducerMessage{
		Topic: p.TopicName(event.EventType()),
		Key:   sarama.StringEncoder(strconv.FormatInt(event.Key(), 10)),
		Value: sarama.ByteEncoder(bytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType())},
			{Key: []byte("event_id"), Value: []byte(event.ID())},
		},
		Metadata: event.EventType(),
	}

	select {
	case p.producer.Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TopicName возвращает имя топика для типа события
func (p *Producer) TopicName(eventType string) string {
	return p.prefix + eventType
}

// Close дожидается отправки буферизованных сообщений и обработки ошибок
func (p *Producer) Close() error {
	p.logger.Info("Closing Kafka producer")
	p.producer.AsyncClose()
	p.wg.Wait()
	return nil
}

func (p *Producer) handleErrors() {
	defer p.wg.Done()

	for perr := range p.producer.Errors() {
		if perr == nil || perr.Msg == nil {
			continue
		}
		eventType, _ := perr.Msg.Metadata.(string)
		p.logger.Error("Kafka producer error: topic=%s, event_type=%s, err=%v", perr.Msg.Topic, eventType, perr.Err)
		if p.metrics != nil {
			p.metrics.RecordPublishFailure(eventType)
		}
	}
}
