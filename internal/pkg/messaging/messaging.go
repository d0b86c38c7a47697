package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrSubjectRequired is returned when the subject is empty.
	ErrSubjectRequired = errors.New("messaging: subject is required")
	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
	// ErrClosed is returned when the client is already closed.
	ErrClosed = errors.New("messaging: client closed")
)

// Messaging can publish and consume.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

// Publisher sends messages to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer subscribes a handler to a subject. Consume blocks until ctx is
// cancelled.
type Consumer interface {
	Consume(ctx context.Context, subject string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one message. With auto ack, a nil error acks and a
// non-nil error naks.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to publish.
type OutgoingMessage struct {
	Body    []byte
	Headers []Header
}

// Header is a single message header. Keys may repeat.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult describes an accepted publish.
type PublishResult struct {
	Subject   string
	Timestamp time.Time
}

// Message is a received message.
type Message interface {
	Body() []byte
	Headers() []Header
	Subject() string
	Timestamp() time.Time
	Ack(ctx context.Context) error
}

// Nackable can ask the broker for redelivery.
type Nackable interface {
	Nack(ctx context.Context) error
}

// HeaderValue returns the first value of key in headers, or "".
func HeaderValue(headers []Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
