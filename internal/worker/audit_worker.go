package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/events"
)

// StartAuditWorker subscribes structured audit logging to the auth event
// stream. Handlers run synchronously on the publishing request.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}

	audit := logger.Named("audit")

	dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, event events.Event) error {
		audit.Info("user registered",
			zap.String("event_id", event.ID),
			zap.String("username", event.Username),
			zap.Any("payload", event.Payload),
		)
		return nil
	})

	dispatcher.Subscribe(events.EventLoginSucceeded, func(_ context.Context, event events.Event) error {
		audit.Info("login succeeded",
			zap.String("event_id", event.ID),
			zap.String("username", event.Username),
			zap.Any("payload", event.Payload),
		)
		return nil
	})

	dispatcher.Subscribe(events.EventLoginFailed, func(_ context.Context, event events.Event) error {
		audit.Warn("login failed",
			zap.String("event_id", event.ID),
			zap.String("username", event.Username),
		)
		return nil
	})
}
