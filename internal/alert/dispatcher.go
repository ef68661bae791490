package alert

import (
	"context"
	"log/slog"
	"time"

	"pomodoro/internal/core/session"
)

const deliveryTimeout = 5 * time.Second

// Dispatcher forwards period-complete events to the notifier and player,
// honouring the toggles in the configuration carried by each event.
type Dispatcher struct {
	notifier     Notifier
	player       Player
	logger       *slog.Logger
	deniedLogged bool
}

// NewDispatcher builds a dispatcher. Nil collaborators become no-ops.
func NewDispatcher(notifier Notifier, player Player, logger *slog.Logger) *Dispatcher {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if player == nil {
		player = NopPlayer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{notifier: notifier, player: player, logger: logger}
}

// Run consumes events until the channel closes or ctx is done.
func (dispatcher *Dispatcher) Run(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			dispatcher.Handle(ctx, event)
		}
	}
}

// Handle delivers a single event. Anything other than a period-complete
// event is ignored. Collaborator failures are logged and swallowed.
func (dispatcher *Dispatcher) Handle(ctx context.Context, event session.Event) {
	if event.Type != session.EventPeriodComplete {
		return
	}

	if event.Config.SoundEnabled {
		playCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		if err := dispatcher.player.Play(playCtx); err != nil {
			dispatcher.logger.Debug("completion sound failed", "error", err)
		}
		cancel()
	}

	if event.Config.NotificationsEnabled {
		dispatcher.notify(ctx, event)
	}
}

func (dispatcher *Dispatcher) notify(ctx context.Context, event session.Event) {
	notifyCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	if permission := dispatcher.notifier.Permission(notifyCtx); permission != PermissionGranted {
		if !dispatcher.deniedLogged {
			dispatcher.logger.Info("notifications unavailable", "permission", permission)
			dispatcher.deniedLogged = true
		}
		return
	}

	if err := dispatcher.notifier.Notify(notifyCtx, MessageFor(event.Completed)); err != nil {
		dispatcher.logger.Warn("notification failed", "ended", event.Completed, "error", err)
	}
}
