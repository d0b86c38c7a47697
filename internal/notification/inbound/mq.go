package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/passcode/internal/pkg/config"
	"github.com/shandysiswandi/passcode/internal/pkg/goroutine"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/messaging"
	"github.com/shandysiswandi/passcode/internal/pkg/uid"
	"github.com/shandysiswandi/passcode/internal/shared/event"
)

const defaultConsumerConcurrency = 10

// RegisterMQConsumer starts the consumers enabled in
// modules.notification.consumer_names and returns their names.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) []string {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")
	concurrency := cfg.GetInt("modules.notification.consumer_concurrency")
	if concurrency <= 0 {
		concurrency = defaultConsumerConcurrency
	}

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.PasscodeRequestedDestinationConsumerNotification,
			topic:   event.PasscodeRequestedDestination,
			handler: mqHandler.PasscodeRequestedNotification,
		},
	}

	var started []string
	for _, c := range consumers {
		if !slices.Contains(enableConsumerNames, c.name) {
			continue
		}

		ok := routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(pCtx, "Running job for handling consumer", "consumer", c.name)
			return messenger.Consume(pCtx,
				c.topic,
				c.handler,
				messaging.WithQueueGroup(c.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(concurrency),
			)
		})
		if !ok {
			slog.WarnContext(ctx, "consumer not started", "consumer", c.name)
			continue
		}
		started = append(started, c.name)
	}

	return started
}
