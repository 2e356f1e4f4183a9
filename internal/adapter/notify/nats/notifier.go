// Package natsnotify publishes persisted change batches to NATS so
// listeners can follow a player without polling. One subject per
// player keeps subscriptions cheap.
package natsnotify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"idleverse/internal/app/ports"
)

// Subject returns the per-player changes subject.
func Subject(playerID string) string {
	return fmt.Sprintf("idleverse.player.%s.changes", playerID)
}

type Notifier struct {
	conn *nats.Conn
}

// Connect dials the broker. The notifier owns the connection; Close
// releases it.
func Connect(url string) (*Notifier, error) {
	conn, err := nats.Connect(url, nats.Name("idleverse"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Notifier{conn: conn}, nil
}

func (n *Notifier) PublishChanges(_ context.Context, batch ports.ChangeBatch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encode change batch %s: %w", batch.BatchID, err)
	}
	if err := n.conn.Publish(Subject(batch.PlayerID), payload); err != nil {
		return fmt.Errorf("publish change batch %s: %w", batch.BatchID, err)
	}
	return nil
}

func (n *Notifier) Close() {
	n.conn.Close()
}

var _ ports.ChangeNotifier = (*Notifier)(nil)
