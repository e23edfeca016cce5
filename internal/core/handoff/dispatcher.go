package handoff

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/kaos-order/internal/port"
)

// Dispatcher performs the two submit effects: open the link, then tell the
// customer after a short delay. The notice does not depend on whether the
// link could be opened.
type Dispatcher struct {
	launcher  port.Launcher
	notifier  port.Notifier
	logger    *zap.Logger
	afterFunc func(time.Duration, func()) *time.Timer
}

func NewDispatcher(launcher port.Launcher, notifier port.Notifier, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		launcher:  launcher,
		notifier:  notifier,
		logger:    logger,
		afterFunc: time.AfterFunc,
	}
}

// Dispatch opens h.URL and schedules h.Notice. The returned channel is closed
// once the notice has been delivered.
func (d *Dispatcher) Dispatch(ctx context.Context, h Handoff) <-chan struct{} {
	if err := d.launcher.Open(ctx, h.URL); err != nil {
		d.logger.Warn("open handoff link", zap.Error(err))
	} else {
		d.logger.Info("handoff link opened", zap.Int("message_bytes", len(h.Message)))
	}

	done := make(chan struct{})
	notifyCtx := context.WithoutCancel(ctx)
	d.afterFunc(h.NoticeDelay, func() {
		defer close(done)
		d.notifier.Notify(notifyCtx, h.Notice)
	})
	return done
}
