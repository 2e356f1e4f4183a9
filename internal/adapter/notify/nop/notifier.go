// Package nopnotify drops change notifications. Wired when no broker
// is configured.
package nopnotify

import (
	"context"

	"idleverse/internal/app/ports"
)

type Notifier struct{}

func (Notifier) PublishChanges(context.Context, ports.ChangeBatch) error { return nil }

var _ ports.ChangeNotifier = Notifier{}
