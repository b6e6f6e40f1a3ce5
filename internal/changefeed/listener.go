// Package changefeed consumes row-level change notifications on the
// bikes table. Delivery is at-least-once per committed change with no
// ordering guarantee relative to other writers, and nothing survives a
// dropped connection; subscribers compensate by refetching on every
// signal, and the listener emits one synthetic signal per (re)connect
// so changes missed while disconnected are not lost forever.
package changefeed

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const channel = "bike_changes"

const reconnectDelay = 2 * time.Second

type Listener struct {
	databaseURL string
	logger      *slog.Logger
	broadcaster *Broadcaster
}

func NewListener(databaseURL string, logger *slog.Logger) *Listener {
	return &Listener{
		databaseURL: databaseURL,
		logger:      logger,
		broadcaster: NewBroadcaster(),
	}
}

func (l *Listener) Subscribe() (<-chan struct{}, func()) {
	return l.broadcaster.Subscribe()
}

// Run blocks until ctx is cancelled, holding a dedicated connection in
// LISTEN mode and re-establishing it after failures.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.logger.Error("change feed connection lost", "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+channel)
	if err != nil {
		return err
	}

	// Anything committed while we were not listening is invisible, so
	// tell subscribers to refetch once per (re)connect.
	l.broadcaster.Notify()

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		l.logger.Debug("bike change", "payload", notification.Payload)
		l.broadcaster.Notify()
	}
}
