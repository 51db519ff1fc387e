// Package service publishes catalog search events to RabbitMQ off the
// request path.
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/pitch-reservation/internal/metrics"
	"github.com/iliyamo/pitch-reservation/internal/queue"
)

// EventPublisher accepts search events without blocking the caller.
type EventPublisher interface {
	Publish(ev queue.SearchPerformedEvent)
}

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// connector opens a channel with the search queue declared.
type connector func() (channel, func(), error)

// AMQPPublisher forwards events from a bounded buffer to the durable
// search queue on a single background goroutine. Events are dropped when
// the buffer is full or the broker is unreachable.
type AMQPPublisher struct {
	events  chan queue.SearchPerformedEvent
	connect connector
	log     *zap.Logger
	timeout time.Duration

	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}
}

// NewAMQPPublisher starts the publishing goroutine. Call Close on shutdown.
func NewAMQPPublisher(url string, buffer int, log *zap.Logger) *AMQPPublisher {
	return newPublisher(dialAMQP(url), buffer, log)
}

func newPublisher(connect connector, buffer int, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	p := &AMQPPublisher{
		events:  make(chan queue.SearchPerformedEvent, max(buffer, 1)),
		connect: connect,
		log:     log.Named("search-publisher"),
		timeout: 5 * time.Second,
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.loop()
	return p
}

// Publish enqueues ev, dropping it if the buffer is full or the publisher
// is closing. It is safe to call after Close.
func (p *AMQPPublisher) Publish(ev queue.SearchPerformedEvent) {
	select {
	case <-p.closing:
		metrics.EventsPublished.WithLabelValues("dropped").Inc()
		return
	default:
	}
	select {
	case p.events <- ev:
	default:
		metrics.EventsPublished.WithLabelValues("dropped").Inc()
	}
}

// Close stops accepting events, flushes what is buffered and waits for the
// goroutine to exit.
func (p *AMQPPublisher) Close() {
	p.closeOnce.Do(func() { close(p.closing) })
	<-p.done
}

func (p *AMQPPublisher) loop() {
	defer close(p.done)
	var (
		ch      channel
		release func()
	)
	defer func() {
		if release != nil {
			release()
		}
	}()

	forward := func(ev queue.SearchPerformedEvent) {
		body, err := json.Marshal(ev)
		if err != nil {
			metrics.EventsPublished.WithLabelValues("error").Inc()
			return
		}
		if ch == nil {
			if ch, release, err = p.connect(); err != nil {
				p.log.Warn("broker unavailable, dropping event", zap.Error(err))
				metrics.EventsPublished.WithLabelValues("dropped").Inc()
				ch, release = nil, nil
				return
			}
		}
		if err := p.send(ch, body); err != nil {
			p.log.Warn("publish failed", zap.Error(err))
			metrics.EventsPublished.WithLabelValues("error").Inc()
			// reconnect on the next event
			release()
			ch, release = nil, nil
			return
		}
		metrics.EventsPublished.WithLabelValues("ok").Inc()
	}

	for {
		select {
		case ev := <-p.events:
			forward(ev)
		case <-p.closing:
			// flush whatever was buffered before Close
			for {
				select {
				case ev := <-p.events:
					forward(ev)
				default:
					return
				}
			}
		}
	}
}

func (p *AMQPPublisher) send(ch channel, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return ch.PublishWithContext(ctx, "", queue.SearchQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func dialAMQP(url string) connector {
	return func() (channel, func(), error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		if _, err := ch.QueueDeclare(queue.SearchQueueName, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, nil, err
		}
		return ch, func() { _ = ch.Close(); _ = conn.Close() }, nil
	}
}
