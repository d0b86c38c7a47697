package messaging

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

type jetStreamMessage struct {
	msg       jetstream.Msg
	nakDelay  time.Duration
	responded atomic.Bool
}

func newJetStreamMessage(msg jetstream.Msg, nakDelay time.Duration) *jetStreamMessage {
	return &jetStreamMessage{msg: msg, nakDelay: nakDelay}
}

func (m *jetStreamMessage) hasResponded() bool { return m.responded.Load() }

func (m *jetStreamMessage) Body() []byte    { return m.msg.Data() }
func (m *jetStreamMessage) Subject() string { return m.msg.Subject() }

// Timestamp is the time the stream stored the message.
func (m *jetStreamMessage) Timestamp() time.Time {
	md, err := m.msg.Metadata()
	if err != nil || md == nil {
		return time.Time{}
	}
	return md.Timestamp
}

func (m *jetStreamMessage) Headers() []Header {
	hdr := m.msg.Headers()
	if len(hdr) == 0 {
		return nil
	}

	headers := make([]Header, 0, len(hdr))
	for k, values := range hdr {
		for _, v := range values {
			headers = append(headers, Header{Key: k, Value: []byte(v)})
		}
	}
	return headers
}

func (m *jetStreamMessage) Ack(ctx context.Context) error {
	return m.respond(ctx, m.msg.Ack)
}

// Nack asks for redelivery after the configured delay.
func (m *jetStreamMessage) Nack(ctx context.Context) error {
	if m.nakDelay > 0 {
		return m.respond(ctx, func() error { return m.msg.NakWithDelay(m.nakDelay) })
	}
	return m.respond(ctx, m.msg.Nak)
}

func (m *jetStreamMessage) respond(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	return fn()
}
