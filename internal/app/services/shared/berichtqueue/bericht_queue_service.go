package berichtqueue

import (
	"context"
	"fmt"
	"sync"

	"isik-bericht-service/internal/app/contracts"
	"isik-bericht-service/internal/app/models"
	"isik-bericht-service/internal/pkg/constvars"
	"isik-bericht-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Service publishes bericht lifecycle events to RabbitMQ. The queue is
// declared durable and every publish waits for a broker confirm, so a
// returned nil error means the event has reached the broker's store.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName string) (contracts.BerichtPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

// PublishBerichtAssembled enqueues the event with persistence and waits for the confirm.
func (s *Service) PublishBerichtAssembled(ctx context.Context, event *models.BerichtAssembledEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("BerichtQueue.PublishBerichtAssembled called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBerichtIDKey, event.BerichtID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg); err != nil {
		return exceptions.ErrPublishBericht(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrPublishBericht(fmt.Errorf("message not confirmed"))
		}
	case <-ctx.Done():
		return exceptions.ErrPublishBericht(ctx.Err())
	}
	return nil
}
