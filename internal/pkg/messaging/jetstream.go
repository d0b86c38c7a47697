package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// ErrStreamRequired is returned when a JetStream stream name or its subjects
// are missing.
var ErrStreamRequired = errors.New("messaging: jetstream stream and subjects are required")

const (
	defaultJetStreamMaxDeliver = 5
	defaultJetStreamAckWait    = 30 * time.Second
	defaultJetStreamNakDelay   = 5 * time.Second
)

// JetStreamConfig configures the JetStream client. The stream is created or
// updated on connect so publishers and consumers agree on it.
type JetStreamConfig struct {
	NATSConfig

	Stream   string
	Subjects []string
	// MaxAge drops messages older than this from the stream. Zero keeps them.
	MaxAge time.Duration
	// MaxDeliver bounds redeliveries of a message that keeps failing.
	MaxDeliver int
	// AckWait is how long the server waits for an ack before redelivering.
	AckWait time.Duration
	// NakDelay postpones redelivery after a handler error.
	NakDelay time.Duration
}

// JetStream implements Messaging on a JetStream stream. Publishes wait for
// the stream ack and handler errors are redelivered up to MaxDeliver times.
type JetStream struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	stream string

	maxDeliver int
	ackWait    time.Duration
	nakDelay   time.Duration
}

// NewJetStream connects to the server in cfg and ensures the stream exists.
func NewJetStream(ctx context.Context, cfg JetStreamConfig) (*JetStream, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}
	if cfg.Stream == "" || len(cfg.Subjects) == 0 {
		return nil, ErrStreamRequired
	}

	opts := cfg.Options
	if cfg.Name != "" {
		opts = append([]nats.Option{nats.Name(cfg.Name)}, opts...)
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("messaging: jetstream: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.Stream,
		Subjects: cfg.Subjects,
		Storage:  jetstream.FileStorage,
		MaxAge:   cfg.MaxAge,
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("messaging: jetstream stream %s: %w", cfg.Stream, err)
	}

	return &JetStream{
		conn:       conn,
		js:         js,
		stream:     cfg.Stream,
		maxDeliver: positiveOr(cfg.MaxDeliver, defaultJetStreamMaxDeliver),
		ackWait:    positiveOr(cfg.AckWait, defaultJetStreamAckWait),
		nakDelay:   positiveOr(cfg.NakDelay, defaultJetStreamNakDelay),
	}, nil
}

// Close drains the connection, which also stops running consumers.
func (j *JetStream) Close() error {
	if err := j.conn.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return err
	}
	return nil
}

// Publish returns once the stream has persisted msg.
func (j *JetStream) Publish(ctx context.Context, subject string, msg OutgoingMessage) (PublishResult, error) {
	if subject == "" {
		return PublishResult{}, ErrSubjectRequired
	}

	nmsg := nats.NewMsg(subject)
	nmsg.Data = msg.Body
	for _, h := range msg.Headers {
		if h.Key != "" {
			nmsg.Header.Add(h.Key, string(h.Value))
		}
	}

	if _, err := j.js.PublishMsg(ctx, nmsg); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: jetstream publish: %w", err)
	}

	return PublishResult{Subject: subject, Timestamp: time.Now()}, nil
}

// Consume binds handler to a durable consumer named after the queue group,
// so every instance sharing the group load-balances one delivery stream. It
// blocks until ctx is done.
func (j *JetStream) Consume(ctx context.Context, subject string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if subject == "" {
		return ErrSubjectRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)
	durable := co.queueGroup
	if durable == "" {
		durable = durableName(subject)
	}

	cons, err := j.js.CreateOrUpdateConsumer(ctx, j.stream, jetstream.ConsumerConfig{
		Durable:       durable,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       j.ackWait,
		MaxDeliver:    j.maxDeliver,
		MaxAckPending: co.concurrency * 2,
	})
	if err != nil {
		return fmt.Errorf("messaging: jetstream consumer %s: %w", durable, err)
	}

	msgCh := make(chan jetstream.Msg, co.concurrency)
	cc, err := cons.Consume(func(m jetstream.Msg) {
		select {
		case msgCh <- m:
		case <-ctx.Done():
		}
	}, jetstream.PullMaxMessages(co.concurrency))
	if err != nil {
		return fmt.Errorf("messaging: jetstream consume: %w", err)
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range msgCh {
				dispatch(ctx, newJetStreamMessage(m, j.nakDelay), handler, co.autoAck)
			}
		})
	}

	<-ctx.Done()
	cc.Stop()
	<-cc.Closed()
	close(msgCh)
	wg.Wait()

	return nil
}

func durableName(subject string) string {
	return strings.NewReplacer(".", "_", "*", "_", ">", "_").Replace(subject)
}

func positiveOr[T int | time.Duration](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}
