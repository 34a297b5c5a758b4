// Package events is the Postgres-backed pub/sub bus built on Watermill's SQL
// transport. The API publishes catalog change events; the worker consumes them.
//
// Subscribers sharing a consumer group (default "<service>-consumer") split the
// stream: each message is handled by one instance. A handler error is retried
// with exponential backoff; once retries run out the message is Nacked and the
// error is reported on the subscription's error channel.
//
// Trace context travels in message metadata, so a worker span continues the
// request span that caused the event.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/stowage/pkg/config"
	"github.com/ghuser/stowage/pkg/logger"
)

const (
	defaultRetries    = 3
	defaultRetryDelay = time.Second
	shutdownTimeout   = 30 * time.Second
	errBuffer         = 100

	forwarderTopic = "_forwarder_queue"
	forwarderGroup = "forwarder-consumer"
)

// Handler processes one message. Returning nil acks it.
type Handler func(context.Context, *message.Message) error

type options struct {
	forwarder     bool
	consumerGroup string
	retries       int
	retryDelay    time.Duration
}

// Option configures an EventBus.
type Option func(*options)

// WithForwarder routes Publish through a durable SQL queue drained by
// StartForwarder, so an event accepted by Publish survives a crash.
func WithForwarder() Option {
	return func(o *options) { o.forwarder = true }
}

// WithConsumerGroup overrides the subscriber consumer group. An empty group
// makes every subscriber see every message.
func WithConsumerGroup(group string) Option {
	return func(o *options) { o.consumerGroup = group }
}

// WithRetry sets how many times a handler runs before a message is Nacked
// and the base delay doubled between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(o *options) {
		if attempts > 0 {
			o.retries = attempts
		}
		if delay > 0 {
			o.retryDelay = delay
		}
	}
}

// EventBus publishes and subscribes over watermill-sql tables in the
// definition database.
type EventBus struct {
	opts       options
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	db         *sql.DB
	log        logger.Logger
	wlog       watermill.LoggerAdapter
	wg         sync.WaitGroup
}

// NewEventBus connects to cfg.DefinitionDatabaseURL. Schema tables are
// created on first use.
func NewEventBus(cfg *config.Config, log logger.Logger, opts ...Option) (*EventBus, error) {
	o := options{
		consumerGroup: cfg.ServiceName + "-consumer",
		retries:       defaultRetries,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("pgx", cfg.DefinitionDatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	bus := &EventBus{opts: o, db: db, log: log, wlog: &slogAdapter{log: log}}

	pub, err := bus.newPublisher()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	bus.publisher = pub
	if o.forwarder {
		bus.publisher = forwarder.NewPublisher(pub, forwarder.PublisherConfig{
			ForwarderTopic: forwarderTopic,
		})
	}

	bus.subscriber, err = bus.newSubscriber(o.consumerGroup)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}
	return bus, nil
}

func (q *EventBus) newPublisher() (*watermillsql.Publisher, error) {
	return watermillsql.NewPublisher(q.db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: true,
	}, q.wlog)
}

func (q *EventBus) newSubscriber(group string) (*watermillsql.Subscriber, error) {
	return watermillsql.NewSubscriber(q.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, q.wlog)
}

// StartForwarder runs the daemon that moves queued messages to their target
// topics. It returns once the daemon is running. Only valid on a bus built
// WithForwarder, and only once.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.opts.forwarder {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	fwdSub, err := q.newSubscriber(forwarderGroup)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}
	targetPub, err := q.newPublisher()
	if err != nil {
		_ = fwdSub.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}
	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, q.wlog, forwarder.Config{
		ForwarderTopic: forwarderTopic,
	})
	if err != nil {
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started")
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}
}

// Publish sends msgs to topic with the trace context of ctx attached.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		injectTrace(ctx, msg)
	}
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe consumes topic in the background until ctx ends or the bus
// closes. The returned channel carries handler failures that exhausted their
// retries; it is buffered and must be drained. Close waits for in-flight
// handlers.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)
		for msg := range ch {
			q.dispatch(extractTrace(ctx, msg), topic, msg, handler, errCh)
		}
	}()
	return errCh, nil
}

func (q *EventBus) dispatch(ctx context.Context, topic string, msg *message.Message, handler Handler, errCh chan<- error) {
	err := retryWithBackoff(ctx, msg, handler, q.opts.retries, q.opts.retryDelay, q.log)
	if err == nil {
		msg.Ack()
		return
	}
	msg.Nack()
	select {
	case errCh <- fmt.Errorf("%s %s: %w", topic, msg.UUID, err):
	default:
		q.log.ErrorContext(ctx, "events: error channel full, dropping error",
			"error", err, "topic", topic, "message_id", msg.UUID)
	}
}

// SubscribeAll subscribes handler to every topic and merges their error
// channels. The merged channel closes once every subscription ends.
func (q *EventBus) SubscribeAll(ctx context.Context, topics []string, handler Handler) (<-chan error, error) {
	chans := make([]<-chan error, 0, len(topics))
	for _, topic := range topics {
		ch, err := q.Subscribe(ctx, topic, handler)
		if err != nil {
			return nil, err
		}
		chans = append(chans, ch)
	}
	return mergeErrors(chans...), nil
}

func mergeErrors(chans ...<-chan error) <-chan error {
	out := make(chan error, errBuffer)
	var wg sync.WaitGroup
	wg.Add(len(chans))
	for _, ch := range chans {
		go func(ch <-chan error) {
			defer wg.Done()
			for err := range ch {
				out <- err
			}
		}(ch)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func injectTrace(ctx context.Context, msg *message.Message) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(msg.Metadata))
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

// retryWithBackoff runs handler up to attempts times, doubling delay after
// each failure. It returns the last error, or ctx.Err() if ctx ends first.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler Handler,
	attempts int,
	delay time.Duration,
	log logger.Logger,
) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt,
			"max_retries", attempts,
			"next_delay", delay,
			"message_id", msg.UUID,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("handler failed after %d attempts: %w", attempts, err)
}

// Ping checks the bus database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and forwarder, waits up to 30s for in-flight
// handlers, then closes the publisher and the database handle.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return q.db.Close()
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter. Watermill's
// trace level maps to debug.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
