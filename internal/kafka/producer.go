package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mvdti/dashboard-service/internal/logging"
	"github.com/segmentio/kafka-go"
)

// Event names published by the dashboard.
const (
	EventFeedbackCreated  = "feedback.created"
	EventInsightGenerated = "insight.generated"
	EventTicketSnapshot   = "ticket.snapshot"
)

// EventProducer — интерфейс для отправки событий в Kafka (для подмены моком в тестах).
// Handlers используют ProduceEventAsync, чтобы недоступный брокер не тормозил ответ API.
type EventProducer interface {
	ProduceEvent(ctx context.Context, event string, payload map[string]interface{})
	ProduceEventAsync(event string, payload map[string]interface{})
}

// Producer пишет события дашборда в топик Kafka (best-effort, не блокирует API).
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer создаёт продюсер. Если brokers пустой или topic пустой — методы no-op.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// ProduceEvent отправляет событие в топик. Ошибки логируются и не влияют на ответ API.
func (p *Producer) ProduceEvent(ctx context.Context, event string, payload map[string]interface{}) {
	if p.writer == nil {
		return
	}
	msg := map[string]interface{}{"event": event, "ts": time.Now().Unix()}
	for k, v := range payload {
		msg[k] = v
	}
	body, err := json.Marshal(msg)
	if err != nil {
		logging.Errorf("kafka: marshal event %s: %v", event, err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		logging.Errorf("kafka: write event %s: %v", event, err)
	}
}

// ProduceEventAsync вызывает ProduceEvent в отдельной горутине (не блокирует ответ API).
func (p *Producer) ProduceEventAsync(event string, payload map[string]interface{}) {
	if p.writer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p.ProduceEvent(ctx, event, payload)
	}()
}

// Close закрывает writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
