package ports

import "context"

// ChangeNotifier fans a persisted change batch out to listeners. Called
// after the owning transaction commits; a failure is logged, never
// rolled back.
type ChangeNotifier interface {
	PublishChanges(ctx context.Context, batch ChangeBatch) error
}
